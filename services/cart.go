package services

import (
	"errors"
	"fmt"

	"github.com/popaya/grocery-api/models"
	"gorm.io/gorm"
)

type CartService struct{ db *gorm.DB }

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := s.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem validates product availability, merges the quantity into an
// existing line if the product is already in the cart and recomputes the
// cart totals. Item mutation and totals update happen in one transaction so
// no state where they disagree is ever visible outside it.
func (s *CartService) AddItem(userID uint, input models.AddToCartInput) (*models.Cart, error) {
	var product models.Product
	if err := s.db.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", input.ProductID, ErrNotFound)
		}
		return nil, err
	}
	if !product.InStock || !product.IsActive {
		return nil, ErrOutOfStock
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	requested := input.Quantity
	for _, item := range cart.Items {
		if item.ProductID == input.ProductID {
			requested += item.Quantity
		}
	}
	if product.Quantity < requested {
		return nil, fmt.Errorf("%w: %d available", ErrInsufficientStock, product.Quantity)
	}

	merged := models.MergeCartItem(cart.Items, input.ProductID, input.Quantity, product.Price)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range merged {
			merged[i].CartID = cart.ID
			if err := tx.Save(&merged[i]).Error; err != nil {
				return err
			}
		}
		return s.persistTotals(tx, cart, merged)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// UpdateItem sets the quantity of a cart line. Quantity zero removes it.
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) (*models.Cart, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	var target *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			target = &cart.Items[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}

	if quantity > 0 {
		var product models.Product
		if err := s.db.First(&product, target.ProductID).Error; err != nil {
			return nil, err
		}
		if !product.Available(quantity) {
			return nil, fmt.Errorf("%w: %d available", ErrInsufficientStock, product.Quantity)
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		remaining := make([]models.CartItem, 0, len(cart.Items))
		if quantity == 0 {
			if err := tx.Delete(&models.CartItem{}, target.ID).Error; err != nil {
				return err
			}
			for _, item := range cart.Items {
				if item.ID != target.ID {
					remaining = append(remaining, item)
				}
			}
		} else {
			target.Quantity = quantity
			if err := tx.Save(target).Error; err != nil {
				return err
			}
			remaining = cart.Items
		}
		return s.persistTotals(tx, cart, remaining)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// RemoveItem deletes a cart line and recomputes totals.
func (s *CartService) RemoveItem(userID, itemID uint) (*models.Cart, error) {
	return s.UpdateItem(userID, itemID, 0)
}

// ClearCart removes every line and zeroes the totals.
func (s *CartService) ClearCart(userID uint) (*models.Cart, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return s.persistTotals(tx, cart, nil)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

func (s *CartService) persistTotals(tx *gorm.DB, cart *models.Cart, items []models.CartItem) error {
	total, count := models.CartTotals(items)
	return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]any{"total": total, "items_count": count}).Error
}
