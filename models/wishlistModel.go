package models

import "gorm.io/gorm"

type WishlistItem struct {
	gorm.Model
	WishlistID uint    `json:"wishlistId" gorm:"index:idx_wishlist_product,unique"`
	ProductID  uint    `json:"productId" gorm:"index:idx_wishlist_product,unique"`
	Product    Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Wishlist struct {
	gorm.Model
	UserID uint           `json:"userId" gorm:"uniqueIndex"`
	Items  []WishlistItem `json:"items" gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
}

type AddToWishlistInput struct {
	ProductID uint `json:"productId" binding:"required"`
}

// ContainsProduct reports whether the wishlist already holds a line for the
// product.
func (w *Wishlist) ContainsProduct(productID uint) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
