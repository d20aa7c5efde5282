package services

import (
	"errors"
	"fmt"

	"github.com/popaya/grocery-api/models"
	"gorm.io/gorm"
)

type WishlistService struct{ db *gorm.DB }

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

func (s *WishlistService) GetWishlist(userID uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).First(&wishlist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wishlist = models.Wishlist{UserID: userID}
		if err := s.db.Create(&wishlist).Error; err != nil {
			return nil, err
		}
		return &wishlist, nil
	}
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// AddItem adds a product to the wishlist. Adding a product that is already
// present is a no-op rather than an error.
func (s *WishlistService) AddItem(userID, productID uint) (*models.Wishlist, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	wishlist, err := s.GetWishlist(userID)
	if err != nil {
		return nil, err
	}
	if wishlist.ContainsProduct(productID) {
		return wishlist, nil
	}

	item := models.WishlistItem{WishlistID: wishlist.ID, ProductID: productID}
	if err := s.db.Create(&item).Error; err != nil {
		// Unique index on (wishlist, product) covers concurrent adds.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.GetWishlist(userID)
		}
		return nil, err
	}
	return s.GetWishlist(userID)
}

func (s *WishlistService) RemoveItem(userID, itemID uint) (*models.Wishlist, error) {
	wishlist, err := s.GetWishlist(userID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, item := range wishlist.Items {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("wishlist item %d: %w", itemID, ErrNotFound)
	}

	if err := s.db.Delete(&models.WishlistItem{}, itemID).Error; err != nil {
		return nil, err
	}
	return s.GetWishlist(userID)
}

func (s *WishlistService) Clear(userID uint) (*models.Wishlist, error) {
	wishlist, err := s.GetWishlist(userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Where("wishlist_id = ?", wishlist.ID).Delete(&models.WishlistItem{}).Error; err != nil {
		return nil, err
	}
	return s.GetWishlist(userID)
}
