package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

type PaymentState string

const (
	PaymentPending  PaymentState = "pending"
	PaymentPaid     PaymentState = "paid"
	PaymentFailed   PaymentState = "failed"
	PaymentRefunded PaymentState = "refunded"
)

// CanTransitionTo encodes the payment state machine: pending may settle as
// paid or failed, paid may only be refunded. Everything else is rejected,
// including transitions back to pending.
func (s PaymentState) CanTransitionTo(next PaymentState) bool {
	switch s {
	case PaymentPending:
		return next == PaymentPaid || next == PaymentFailed
	case PaymentPaid:
		return next == PaymentRefunded
	default:
		return false
	}
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	ZipCode   string `json:"zipCode"`
}

type Order struct {
	gorm.Model
	UserID          uint                          `json:"userId" gorm:"index"`
	OrderNumber     string                        `json:"orderNumber" gorm:"uniqueIndex;size:64"`
	Items           []OrderItem                   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal        float64                       `json:"subtotal"`
	Tax             float64                       `json:"tax"`
	Shipping        float64                       `json:"shipping"`
	Total           float64                       `json:"total"`
	Status          OrderStatus                   `json:"status" gorm:"size:50;default:pending"`
	PaymentStatus   PaymentState                  `json:"paymentStatus" gorm:"size:50;default:pending"`
	ShippingAddress datatypes.JSONType[Address]   `json:"shippingAddress"`
	BillingAddress  *datatypes.JSONType[Address]  `json:"billingAddress,omitempty"`
	PaymentMethod   string                        `json:"paymentMethod"`
	TransactionID   string                        `json:"transactionId"`
	Notes           string                        `json:"notes"`
}

type OrderItem struct {
	gorm.Model
	OrderID       uint                        `json:"orderId" gorm:"index"`
	ProductID     uint                        `json:"productId"`
	ProductName   string                      `json:"productName"`
	ProductImages datatypes.JSONSlice[string] `json:"productImages"`
	Quantity      int                         `json:"quantity"`
	Price         float64                     `json:"price"`
	Total         float64                     `json:"total"`
}

type CreateOrderInput struct {
	ShippingAddress Address  `json:"shippingAddress" binding:"required"`
	BillingAddress  *Address `json:"billingAddress"`
	Notes           string   `json:"notes"`
}

type UpdateOrderStatusInput struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// GenerateOrderNumber produces a unique human-readable order reference.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.Unix(), uuid.NewString()[:8])
}

// BuildOrderItems snapshots cart lines into immutable order items, copying
// the product name, images and price so later catalog edits do not reach
// into historical orders.
func BuildOrderItems(cartItems []CartItem) []OrderItem {
	items := make([]OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		items = append(items, OrderItem{
			ProductID:     ci.ProductID,
			ProductName:   ci.Product.Title,
			ProductImages: ci.Product.Images,
			Quantity:      ci.Quantity,
			Price:         ci.Price,
			Total:         round2(ci.Price * float64(ci.Quantity)),
		})
	}
	return items
}

// OrderTotals computes the monetary breakdown for a set of order items.
// Shipping is waived when the subtotal reaches freeShippingMin (when that
// threshold is positive). Total always equals subtotal + tax + shipping.
func OrderTotals(items []OrderItem, taxRate, shippingFee, freeShippingMin float64) (subtotal, tax, shipping, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = round2(subtotal)
	tax = round2(subtotal * taxRate)
	shipping = shippingFee
	if freeShippingMin > 0 && subtotal >= freeShippingMin {
		shipping = 0
	}
	total = round2(subtotal + tax + shipping)
	return subtotal, tax, shipping, total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
