package models

import "testing"

func TestCartTotals(t *testing.T) {
	t.Run("empty cart has zero totals", func(t *testing.T) {
		total, count := CartTotals(nil)
		if total != 0 || count != 0 {
			t.Errorf("expected 0/0, got %v/%v", total, count)
		}
	})

	t.Run("total is the sum of price times quantity", func(t *testing.T) {
		items := []CartItem{
			{ProductID: 1, Quantity: 2, Price: 10.00},
			{ProductID: 2, Quantity: 1, Price: 5.50},
		}
		total, count := CartTotals(items)
		if total != 25.50 {
			t.Errorf("expected total 25.50, got %v", total)
		}
		if count != 3 {
			t.Errorf("expected count 3, got %v", count)
		}
	})

	t.Run("adding price 10 quantity 2 to empty cart yields 20.00 and 2", func(t *testing.T) {
		items := MergeCartItem(nil, 1, 2, 10.00)
		total, count := CartTotals(items)
		if total != 20.00 {
			t.Errorf("expected total 20.00, got %v", total)
		}
		if count != 2 {
			t.Errorf("expected count 2, got %v", count)
		}
	})

	t.Run("adding the same product again with quantity 3 yields 50.00 and 5", func(t *testing.T) {
		items := MergeCartItem(nil, 1, 2, 10.00)
		items = MergeCartItem(items, 1, 3, 10.00)
		total, count := CartTotals(items)
		if total != 50.00 {
			t.Errorf("expected total 50.00, got %v", total)
		}
		if count != 5 {
			t.Errorf("expected count 5, got %v", count)
		}
	})
}

func TestMergeCartItem(t *testing.T) {
	t.Run("existing product merges quantity instead of duplicating the line", func(t *testing.T) {
		items := []CartItem{{ProductID: 7, Quantity: 1, Price: 3.00}}

		merged := MergeCartItem(items, 7, 4, 3.00)

		if len(merged) != 1 {
			t.Fatalf("expected 1 line, got %d", len(merged))
		}
		if merged[0].Quantity != 5 {
			t.Errorf("expected quantity 5, got %d", merged[0].Quantity)
		}
	})

	t.Run("new product appends a line", func(t *testing.T) {
		items := []CartItem{{ProductID: 7, Quantity: 1, Price: 3.00}}

		merged := MergeCartItem(items, 8, 2, 4.00)

		if len(merged) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(merged))
		}
		if merged[1].ProductID != 8 || merged[1].Quantity != 2 || merged[1].Price != 4.00 {
			t.Errorf("unexpected appended line: %+v", merged[1])
		}
	})

	t.Run("merge refreshes the price snapshot", func(t *testing.T) {
		items := []CartItem{{ProductID: 7, Quantity: 1, Price: 3.00}}

		merged := MergeCartItem(items, 7, 1, 3.50)

		if merged[0].Price != 3.50 {
			t.Errorf("expected refreshed price 3.50, got %v", merged[0].Price)
		}
	})

	t.Run("input slice stays untouched", func(t *testing.T) {
		items := []CartItem{{ProductID: 7, Quantity: 1, Price: 3.00}}

		MergeCartItem(items, 7, 4, 3.00)

		if items[0].Quantity != 1 {
			t.Errorf("input slice was mutated: %+v", items[0])
		}
	})
}
