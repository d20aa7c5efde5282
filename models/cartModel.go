package models

import "gorm.io/gorm"

type CartItem struct {
	gorm.Model
	CartID    uint    `json:"cartId" gorm:"index"`
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Cart struct {
	gorm.Model
	UserID     uint       `json:"userId" gorm:"uniqueIndex"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Total      float64    `json:"total"`
	ItemsCount int        `json:"itemsCount"`
}

type AddToCartInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

// CartTotals derives the cart summary fields from its items. Every mutation
// of the item set must persist the values this returns.
func CartTotals(items []CartItem) (total float64, count int) {
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	return total, count
}

// MergeCartItem folds a new line into an item set: if the product is already
// present its quantity grows and the price snapshot refreshes, otherwise the
// line is appended. The input slice is not modified.
func MergeCartItem(items []CartItem, productID uint, quantity int, price float64) []CartItem {
	merged := make([]CartItem, len(items))
	copy(merged, items)
	for i := range merged {
		if merged[i].ProductID == productID {
			merged[i].Quantity += quantity
			merged[i].Price = price
			return merged
		}
	}
	return append(merged, CartItem{ProductID: productID, Quantity: quantity, Price: price})
}
