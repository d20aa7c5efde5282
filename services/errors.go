package services

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrForbidden         = errors.New("forbidden")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("insufficient quantity")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAlreadyPaid       = errors.New("order already paid")
	ErrInvalidAmount     = errors.New("invalid order total")
	ErrInvalidTransition = errors.New("invalid payment status transition")
)
