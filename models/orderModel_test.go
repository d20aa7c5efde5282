package models

import (
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestPaymentStateTransitions(t *testing.T) {
	cases := []struct {
		from    PaymentState
		to      PaymentState
		allowed bool
	}{
		{PaymentPending, PaymentPaid, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPending, PaymentRefunded, false},
		{PaymentPaid, PaymentRefunded, true},
		{PaymentPaid, PaymentPending, false},
		{PaymentPaid, PaymentPaid, false},
		{PaymentPaid, PaymentFailed, false},
		{PaymentFailed, PaymentPaid, false},
		{PaymentFailed, PaymentPending, false},
		{PaymentRefunded, PaymentPaid, false},
		{PaymentRefunded, PaymentPending, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		if got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderTotals(t *testing.T) {
	items := []OrderItem{
		{Price: 10.00, Quantity: 2},
		{Price: 5.00, Quantity: 1},
	}

	t.Run("total equals subtotal plus tax plus shipping", func(t *testing.T) {
		subtotal, tax, shipping, total := OrderTotals(items, 0.1, 4.50, 0)

		if subtotal != 25.00 {
			t.Errorf("expected subtotal 25.00, got %v", subtotal)
		}
		if tax != 2.50 {
			t.Errorf("expected tax 2.50, got %v", tax)
		}
		if shipping != 4.50 {
			t.Errorf("expected shipping 4.50, got %v", shipping)
		}
		if total != subtotal+tax+shipping {
			t.Errorf("total %v != subtotal+tax+shipping %v", total, subtotal+tax+shipping)
		}
	})

	t.Run("shipping waived above the free shipping threshold", func(t *testing.T) {
		_, _, shipping, _ := OrderTotals(items, 0, 4.50, 20.00)
		if shipping != 0 {
			t.Errorf("expected free shipping, got %v", shipping)
		}
	})

	t.Run("threshold of zero never waives shipping", func(t *testing.T) {
		_, _, shipping, _ := OrderTotals(items, 0, 4.50, 0)
		if shipping != 4.50 {
			t.Errorf("expected shipping 4.50, got %v", shipping)
		}
	})

	t.Run("no items means zero everywhere but shipping", func(t *testing.T) {
		subtotal, tax, shipping, total := OrderTotals(nil, 0.1, 4.50, 0)
		if subtotal != 0 || tax != 0 {
			t.Errorf("expected zero subtotal and tax, got %v/%v", subtotal, tax)
		}
		if total != shipping {
			t.Errorf("expected total %v to equal shipping %v", total, shipping)
		}
	})
}

func TestBuildOrderItems(t *testing.T) {
	cartItems := []CartItem{
		{
			ProductID: 3,
			Quantity:  2,
			Price:     9.99,
			Product: Product{
				Title:  "Whole Milk",
				Images: datatypes.JSONSlice[string]{"https://cdn.example.com/milk.jpg"},
				Price:  12.50, // live price differs from the snapshot
			},
		},
	}

	items := BuildOrderItems(cartItems)

	if len(items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(items))
	}
	item := items[0]
	if item.ProductID != 3 {
		t.Errorf("expected product id 3, got %d", item.ProductID)
	}
	if item.ProductName != "Whole Milk" {
		t.Errorf("expected snapshot of product name, got %q", item.ProductName)
	}
	if item.Price != 9.99 {
		t.Errorf("expected the cart price snapshot 9.99, not the live price, got %v", item.Price)
	}
	if item.Total != 19.98 {
		t.Errorf("expected line total 19.98, got %v", item.Total)
	}
	if len(item.ProductImages) != 1 || item.ProductImages[0] != "https://cdn.example.com/milk.jpg" {
		t.Errorf("expected image snapshot, got %v", item.ProductImages)
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Unix(1700000000, 0)

	first := GenerateOrderNumber(now)
	second := GenerateOrderNumber(now)

	if !strings.HasPrefix(first, "ORD-1700000000-") {
		t.Errorf("unexpected order number format: %q", first)
	}
	if first == second {
		t.Errorf("order numbers should be unique, got %q twice", first)
	}
}
