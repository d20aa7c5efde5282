package services

import (
	"errors"
	"fmt"

	"github.com/popaya/grocery-api/models"
	"gorm.io/gorm"
)

// CardDetails is what the external gateway needs to charge a card. It is
// never persisted.
type CardDetails struct {
	CardNumber     string
	ExpirationDate string
	CardCode       string
}

// GatewayResult is the gateway's view of a transaction. Status maps 1:1 to
// the payment status stored locally.
type GatewayResult struct {
	Status        models.PaymentStatus
	TransactionID string
	Message       string
}

// TransactionDetails is the gateway's own record of a transaction, exposed
// read-only for reconciliation against the local payment row.
type TransactionDetails struct {
	TransactionID string  `json:"transactionId"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	AuthAmount    float64 `json:"authAmount"`
	SettleAmount  float64 `json:"settleAmount"`
	SubmittedAt   string  `json:"submittedAt"`
}

// Gateway is the external card processor contract. Failures surface directly
// to the caller; no retries happen at this layer.
type Gateway interface {
	Charge(card CardDetails, amount float64) (*GatewayResult, error)
	Refund(transactionID string, amount float64) (*GatewayResult, error)
	TransactionDetails(transactionID string) (*TransactionDetails, error)
}

type OrderStore interface {
	ForUser(orderID, userID uint) (*models.Order, error)
	SetPaymentStatus(orderID uint, status models.PaymentState, transactionID string) error
}

type PaymentStore interface {
	ByOrder(orderID uint) (*models.Payment, error)
	ByID(paymentID uint) (*models.Payment, error)
	Save(payment *models.Payment) error
}

type PaymentService struct {
	orders   OrderStore
	payments PaymentStore
	gateway  Gateway
}

func NewPaymentService(db *gorm.DB, gateway Gateway) *PaymentService {
	return &PaymentService{
		orders:   &gormOrderStore{db: db},
		payments: &gormPaymentStore{db: db},
		gateway:  gateway,
	}
}

// ProcessPayment charges the order total to the given card. The order must
// belong to the caller and must not already be paid; both checks run before
// the gateway is ever contacted.
func (s *PaymentService) ProcessPayment(userID uint, input models.ProcessPaymentInput) (*models.Payment, error) {
	order, err := s.orders.ForUser(input.OrderID, userID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if !order.PaymentStatus.CanTransitionTo(models.PaymentPaid) {
		return nil, fmt.Errorf("payment status %s: %w", order.PaymentStatus, ErrInvalidTransition)
	}

	if order.Total <= 0 {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidAmount, order.Total)
	}

	card := CardDetails{
		CardNumber:     input.CardNumber,
		ExpirationDate: input.ExpirationDate,
		CardCode:       input.CardCode,
	}
	result, err := s.gateway.Charge(card, order.Total)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}

	payment, err := s.payments.ByOrder(order.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if payment == nil {
		payment = &models.Payment{OrderID: order.ID}
	}
	payment.Amount = order.Total
	payment.Status = result.Status
	payment.TransactionID = result.TransactionID
	payment.Message = result.Message
	if err := s.payments.Save(payment); err != nil {
		return nil, err
	}

	// A decline stays recorded on the payment row only; the order keeps
	// waiting in pending so the customer can retry with another card.
	if result.Status == models.PaymentStatusCompleted {
		if err := s.orders.SetPaymentStatus(order.ID, models.PaymentPaid, result.TransactionID); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

// GetPaymentStatus returns the payment record for an order owned by the
// caller.
func (s *PaymentService) GetPaymentStatus(userID, orderID uint) (*models.Payment, error) {
	if _, err := s.orders.ForUser(orderID, userID); err != nil {
		return nil, err
	}
	return s.payments.ByOrder(orderID)
}

// RefundPayment sends a refund for an already settled payment. The caller
// must own the order or hold an elevated role.
func (s *PaymentService) RefundPayment(userID uint, elevated bool, paymentID uint, amount float64) (*models.Payment, error) {
	payment, err := s.payments.ByID(paymentID)
	if err != nil {
		return nil, err
	}

	if !elevated && payment.Order.UserID != userID {
		return nil, ErrForbidden
	}

	if payment.Order.PaymentStatus != models.PaymentPaid {
		return nil, fmt.Errorf("payment status %s: %w", payment.Order.PaymentStatus, ErrInvalidTransition)
	}
	if amount <= 0 || amount > payment.Amount {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}

	result, err := s.gateway.Refund(payment.TransactionID, amount)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}

	// A declined refund must not regress the settled charge. Only the
	// gateway message is recorded; status moves only on an actual refund.
	payment.Message = result.Message
	if result.Status == models.PaymentStatusRefunded {
		payment.Status = models.PaymentStatusRefunded
	}
	if err := s.payments.Save(payment); err != nil {
		return nil, err
	}

	if result.Status == models.PaymentStatusRefunded {
		if err := s.orders.SetPaymentStatus(payment.OrderID, models.PaymentRefunded, payment.TransactionID); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

// GetTransactionDetails fetches the gateway's record of the transaction
// behind an order owned by the caller.
func (s *PaymentService) GetTransactionDetails(userID, orderID uint) (*TransactionDetails, error) {
	if _, err := s.orders.ForUser(orderID, userID); err != nil {
		return nil, err
	}
	payment, err := s.payments.ByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if payment.TransactionID == "" {
		return nil, fmt.Errorf("order %d has no gateway transaction: %w", orderID, ErrNotFound)
	}
	details, err := s.gateway.TransactionDetails(payment.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	return details, nil
}

type gormOrderStore struct{ db *gorm.DB }

func (s *gormOrderStore) ForUser(orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *gormOrderStore) SetPaymentStatus(orderID uint, status models.PaymentState, transactionID string) error {
	return s.db.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"payment_status": status, "transaction_id": transactionID}).Error
}

type gormPaymentStore struct{ db *gorm.DB }

func (s *gormPaymentStore) ByOrder(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Where("order_id = ?", orderID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("payment for order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *gormPaymentStore) ByID(paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Preload("Order").First(&payment, paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("payment %d: %w", paymentID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *gormPaymentStore) Save(payment *models.Payment) error {
	return s.db.Save(payment).Error
}
