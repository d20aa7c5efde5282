package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/popaya/grocery-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderService struct {
	db              *gorm.DB
	taxRate         float64
	shippingFee     float64
	freeShippingMin float64
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:              db,
		taxRate:         envFloat("TAX_RATE", 0),
		shippingFee:     envFloat("SHIPPING_FEE", 0),
		freeShippingMin: envFloat("FREE_SHIPPING_MIN", 0),
	}
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// CreateOrder snapshots the user's cart into an immutable order and clears
// the cart, all inside one transaction.
func (s *OrderService) CreateOrder(userID uint, input models.CreateOrderInput) (*models.Order, error) {
	var cart models.Cart
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	items := models.BuildOrderItems(cart.Items)
	subtotal, tax, shipping, total := models.OrderTotals(items, s.taxRate, s.shippingFee, s.freeShippingMin)

	order := models.Order{
		UserID:          userID,
		OrderNumber:     models.GenerateOrderNumber(time.Now()),
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		Total:           total,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		ShippingAddress: datatypes.NewJSONType(input.ShippingAddress),
		Notes:           input.Notes,
	}
	if input.BillingAddress != nil {
		billing := datatypes.NewJSONType(*input.BillingAddress)
		order.BillingAddress = &billing
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Updates(map[string]any{"total": 0, "items_count": 0}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetOrdersForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at desc").Find(&orders).Error
	return orders, err
}

// GetOrder loads an order. Non-elevated callers only see their own orders.
func (s *OrderService) GetOrder(orderID, userID uint, elevated bool) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	if !elevated && order.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return &order, nil
}

func (s *OrderService) GetOrders(page, limit int, sortOrder string) ([]models.Order, int64, error) {
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	offset := (page - 1) * limit

	var orders []models.Order
	err := s.db.Preload("Items").Order("created_at " + sortOrder).
		Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	var count int64
	if err := s.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

// UpdateStatus changes the fulfillment status. Payment status is owned by
// the payment service and never touched here.
func (s *OrderService) UpdateStatus(orderID uint, status models.OrderStatus) error {
	result := s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

func (s *OrderService) CountUndelivered() (int64, error) {
	var count int64
	err := s.db.Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{models.OrderDelivered, models.OrderCancelled}).
		Count(&count).Error
	return count, err
}
