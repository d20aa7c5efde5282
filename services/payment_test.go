package services

import (
	"errors"
	"testing"

	"github.com/popaya/grocery-api/models"
	"gorm.io/gorm"
)

type fakeGateway struct {
	chargeResult  *GatewayResult
	chargeErr     error
	refundResult  *GatewayResult
	refundErr     error
	detailsResult *TransactionDetails
	detailsErr    error

	chargeCalls  int
	refundCalls  int
	detailsCalls int
	lastAmount   float64
	lastTxnID    string
}

func (g *fakeGateway) Charge(card CardDetails, amount float64) (*GatewayResult, error) {
	g.chargeCalls++
	g.lastAmount = amount
	return g.chargeResult, g.chargeErr
}

func (g *fakeGateway) Refund(transactionID string, amount float64) (*GatewayResult, error) {
	g.refundCalls++
	g.lastAmount = amount
	g.lastTxnID = transactionID
	return g.refundResult, g.refundErr
}

func (g *fakeGateway) TransactionDetails(transactionID string) (*TransactionDetails, error) {
	g.detailsCalls++
	g.lastTxnID = transactionID
	return g.detailsResult, g.detailsErr
}

type fakeOrderStore struct {
	order *models.Order
	err   error

	setStatus models.PaymentState
	setTxnID  string
	setCalls  int
}

func (s *fakeOrderStore) ForUser(orderID, userID uint) (*models.Order, error) {
	return s.order, s.err
}

func (s *fakeOrderStore) SetPaymentStatus(orderID uint, status models.PaymentState, transactionID string) error {
	s.setCalls++
	s.setStatus = status
	s.setTxnID = transactionID
	return nil
}

type fakePaymentStore struct {
	payment *models.Payment
	err     error
	saved   *models.Payment
}

func (s *fakePaymentStore) ByOrder(orderID uint) (*models.Payment, error) {
	if s.payment == nil && s.err == nil {
		return nil, ErrNotFound
	}
	return s.payment, s.err
}

func (s *fakePaymentStore) ByID(paymentID uint) (*models.Payment, error) {
	if s.payment == nil && s.err == nil {
		return nil, ErrNotFound
	}
	return s.payment, s.err
}

func (s *fakePaymentStore) Save(payment *models.Payment) error {
	s.saved = payment
	return nil
}

func pendingOrder(total float64) *models.Order {
	return &models.Order{
		Model:         gorm.Model{ID: 7},
		UserID:        1,
		Total:         total,
		PaymentStatus: models.PaymentPending,
	}
}

func cardInput() models.ProcessPaymentInput {
	return models.ProcessPaymentInput{
		OrderID:        7,
		CardNumber:     "4111111111111111",
		ExpirationDate: "2027-12",
		CardCode:       "123",
	}
}

func TestProcessPayment(t *testing.T) {
	t.Run("successful charge marks the order paid", func(t *testing.T) {
		gateway := &fakeGateway{chargeResult: &GatewayResult{
			Status:        models.PaymentStatusCompleted,
			TransactionID: "txn-100",
			Message:       "This transaction has been approved.",
		}}
		orders := &fakeOrderStore{order: pendingOrder(29.99)}
		payments := &fakePaymentStore{}
		svc := &PaymentService{orders: orders, payments: payments, gateway: gateway}

		payment, err := svc.ProcessPayment(1, cardInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.Status != models.PaymentStatusCompleted {
			t.Errorf("expected completed payment, got %s", payment.Status)
		}
		if payment.Amount != 29.99 {
			t.Errorf("expected the order total to be charged, got %v", payment.Amount)
		}
		if gateway.lastAmount != 29.99 {
			t.Errorf("gateway charged %v, want 29.99", gateway.lastAmount)
		}
		if orders.setCalls != 1 || orders.setStatus != models.PaymentPaid || orders.setTxnID != "txn-100" {
			t.Errorf("expected order to move to paid with txn-100, got %s/%s after %d calls",
				orders.setStatus, orders.setTxnID, orders.setCalls)
		}
		if payments.saved == nil {
			t.Error("expected the payment record to be persisted")
		}
	})

	t.Run("declined charge records a failed payment, order stays pending", func(t *testing.T) {
		gateway := &fakeGateway{chargeResult: &GatewayResult{
			Status:  models.PaymentStatusFailed,
			Message: "This transaction has been declined.",
		}}
		orders := &fakeOrderStore{order: pendingOrder(29.99)}
		svc := &PaymentService{orders: orders, payments: &fakePaymentStore{}, gateway: gateway}

		payment, err := svc.ProcessPayment(1, cardInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.Status != models.PaymentStatusFailed {
			t.Errorf("expected failed payment, got %s", payment.Status)
		}
		if orders.setCalls != 0 {
			t.Errorf("a decline must leave the order pending for a retry, got %d status updates", orders.setCalls)
		}
	})

	t.Run("a declined order can be retried with another card", func(t *testing.T) {
		gateway := &fakeGateway{chargeResult: &GatewayResult{
			Status:  models.PaymentStatusFailed,
			Message: "This transaction has been declined.",
		}}
		orders := &fakeOrderStore{order: pendingOrder(29.99)}
		payments := &fakePaymentStore{}
		svc := &PaymentService{orders: orders, payments: payments, gateway: gateway}

		if _, err := svc.ProcessPayment(1, cardInput()); err != nil {
			t.Fatalf("unexpected error on first attempt: %v", err)
		}
		payments.payment = payments.saved

		gateway.chargeResult = &GatewayResult{
			Status:        models.PaymentStatusCompleted,
			TransactionID: "txn-101",
		}
		payment, err := svc.ProcessPayment(1, cardInput())
		if err != nil {
			t.Fatalf("unexpected error on retry: %v", err)
		}
		if payment.Status != models.PaymentStatusCompleted {
			t.Errorf("expected the retry to succeed, got %s", payment.Status)
		}
		if orders.setStatus != models.PaymentPaid || orders.setTxnID != "txn-101" {
			t.Errorf("expected the order paid under txn-101, got %s/%s", orders.setStatus, orders.setTxnID)
		}
	})

	t.Run("an already paid order is rejected without touching the gateway", func(t *testing.T) {
		gateway := &fakeGateway{}
		order := pendingOrder(29.99)
		order.PaymentStatus = models.PaymentPaid
		svc := &PaymentService{orders: &fakeOrderStore{order: order}, payments: &fakePaymentStore{}, gateway: gateway}

		_, err := svc.ProcessPayment(1, cardInput())
		if !errors.Is(err, ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}
		if gateway.chargeCalls != 0 {
			t.Errorf("gateway must not be contacted for a paid order, got %d calls", gateway.chargeCalls)
		}
	})

	t.Run("a zero total order is rejected before charging", func(t *testing.T) {
		gateway := &fakeGateway{}
		svc := &PaymentService{orders: &fakeOrderStore{order: pendingOrder(0)}, payments: &fakePaymentStore{}, gateway: gateway}

		_, err := svc.ProcessPayment(1, cardInput())
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if gateway.chargeCalls != 0 {
			t.Errorf("gateway must not be contacted for a zero total, got %d calls", gateway.chargeCalls)
		}
	})

	t.Run("an order the caller does not own is not found", func(t *testing.T) {
		gateway := &fakeGateway{}
		svc := &PaymentService{orders: &fakeOrderStore{err: ErrNotFound}, payments: &fakePaymentStore{}, gateway: gateway}

		_, err := svc.ProcessPayment(1, cardInput())
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if gateway.chargeCalls != 0 {
			t.Errorf("gateway must not be contacted, got %d calls", gateway.chargeCalls)
		}
	})

	t.Run("gateway transport failure surfaces without a status update", func(t *testing.T) {
		gateway := &fakeGateway{chargeErr: errors.New("connection timed out")}
		orders := &fakeOrderStore{order: pendingOrder(29.99)}
		svc := &PaymentService{orders: orders, payments: &fakePaymentStore{}, gateway: gateway}

		_, err := svc.ProcessPayment(1, cardInput())
		if err == nil {
			t.Fatal("expected an error from the gateway")
		}
		if orders.setCalls != 0 {
			t.Errorf("order status must not change on a transport failure, got %d updates", orders.setCalls)
		}
	})
}

func paidPayment() *models.Payment {
	return &models.Payment{
		Model:         gorm.Model{ID: 5},
		OrderID:       7,
		Amount:        29.99,
		Status:        models.PaymentStatusCompleted,
		TransactionID: "txn-100",
		Order: models.Order{
			Model:         gorm.Model{ID: 7},
			UserID:        1,
			PaymentStatus: models.PaymentPaid,
		},
	}
}

func TestRefundPayment(t *testing.T) {
	t.Run("owner refunds a settled payment", func(t *testing.T) {
		gateway := &fakeGateway{refundResult: &GatewayResult{
			Status:        models.PaymentStatusRefunded,
			TransactionID: "txn-100",
		}}
		orders := &fakeOrderStore{}
		svc := &PaymentService{orders: orders, payments: &fakePaymentStore{payment: paidPayment()}, gateway: gateway}

		payment, err := svc.RefundPayment(1, false, 5, 29.99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.Status != models.PaymentStatusRefunded {
			t.Errorf("expected refunded payment, got %s", payment.Status)
		}
		if orders.setStatus != models.PaymentRefunded {
			t.Errorf("expected the order marked refunded, got %s", orders.setStatus)
		}
	})

	t.Run("declined refund leaves the payment completed", func(t *testing.T) {
		gateway := &fakeGateway{refundResult: &GatewayResult{
			Status:  models.PaymentStatusFailed,
			Message: "The referenced transaction does not meet the criteria for issuing a credit.",
		}}
		orders := &fakeOrderStore{}
		payments := &fakePaymentStore{payment: paidPayment()}
		svc := &PaymentService{orders: orders, payments: payments, gateway: gateway}

		payment, err := svc.RefundPayment(1, false, 5, 29.99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.Status != models.PaymentStatusCompleted {
			t.Errorf("a declined refund must not regress the settled charge, got %s", payment.Status)
		}
		if payment.Message == "" {
			t.Error("expected the gateway decline message to be recorded")
		}
		if orders.setCalls != 0 {
			t.Errorf("the order must stay paid after a declined refund, got %d status updates", orders.setCalls)
		}
	})

	t.Run("another customer cannot refund without elevation", func(t *testing.T) {
		gateway := &fakeGateway{}
		svc := &PaymentService{orders: &fakeOrderStore{}, payments: &fakePaymentStore{payment: paidPayment()}, gateway: gateway}

		_, err := svc.RefundPayment(2, false, 5, 29.99)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if gateway.refundCalls != 0 {
			t.Errorf("gateway must not be contacted, got %d calls", gateway.refundCalls)
		}
	})

	t.Run("an elevated caller may refund any payment", func(t *testing.T) {
		gateway := &fakeGateway{refundResult: &GatewayResult{Status: models.PaymentStatusRefunded}}
		svc := &PaymentService{orders: &fakeOrderStore{}, payments: &fakePaymentStore{payment: paidPayment()}, gateway: gateway}

		if _, err := svc.RefundPayment(2, true, 5, 29.99); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("only a paid order can be refunded", func(t *testing.T) {
		gateway := &fakeGateway{}
		payment := paidPayment()
		payment.Order.PaymentStatus = models.PaymentPending
		svc := &PaymentService{orders: &fakeOrderStore{}, payments: &fakePaymentStore{payment: payment}, gateway: gateway}

		_, err := svc.RefundPayment(1, false, 5, 29.99)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if gateway.refundCalls != 0 {
			t.Errorf("gateway must not be contacted, got %d calls", gateway.refundCalls)
		}
	})

	t.Run("refund amount may not exceed the charge", func(t *testing.T) {
		gateway := &fakeGateway{}
		svc := &PaymentService{orders: &fakeOrderStore{}, payments: &fakePaymentStore{payment: paidPayment()}, gateway: gateway}

		_, err := svc.RefundPayment(1, false, 5, 50.00)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if gateway.refundCalls != 0 {
			t.Errorf("gateway must not be contacted, got %d calls", gateway.refundCalls)
		}
	})
}

func TestGetTransactionDetails(t *testing.T) {
	t.Run("looks up the transaction behind the caller's order", func(t *testing.T) {
		gateway := &fakeGateway{detailsResult: &TransactionDetails{
			TransactionID: "txn-100",
			Status:        "settledSuccessfully",
			SettleAmount:  29.99,
		}}
		payments := &fakePaymentStore{payment: paidPayment()}
		svc := &PaymentService{orders: &fakeOrderStore{order: pendingOrder(29.99)}, payments: payments, gateway: gateway}

		details, err := svc.GetTransactionDetails(1, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if details.Status != "settledSuccessfully" {
			t.Errorf("expected the gateway record, got %+v", details)
		}
		if gateway.lastTxnID != "txn-100" {
			t.Errorf("expected lookup of txn-100, got %q", gateway.lastTxnID)
		}
	})

	t.Run("an order someone else owns is not found", func(t *testing.T) {
		gateway := &fakeGateway{}
		svc := &PaymentService{orders: &fakeOrderStore{err: ErrNotFound}, payments: &fakePaymentStore{}, gateway: gateway}

		_, err := svc.GetTransactionDetails(2, 7)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if gateway.detailsCalls != 0 {
			t.Errorf("gateway must not be contacted, got %d calls", gateway.detailsCalls)
		}
	})

	t.Run("an order never charged has no transaction", func(t *testing.T) {
		gateway := &fakeGateway{}
		payment := paidPayment()
		payment.TransactionID = ""
		svc := &PaymentService{orders: &fakeOrderStore{order: pendingOrder(29.99)}, payments: &fakePaymentStore{payment: payment}, gateway: gateway}

		_, err := svc.GetTransactionDetails(1, 7)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if gateway.detailsCalls != 0 {
			t.Errorf("gateway must not be contacted, got %d calls", gateway.detailsCalls)
		}
	})
}
