package models

import "gorm.io/gorm"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	gorm.Model
	OrderID       uint          `json:"orderId" gorm:"uniqueIndex"`
	Order         Order         `json:"-" gorm:"foreignKey:OrderID"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status" gorm:"size:50;default:pending"`
	TransactionID string        `json:"transactionId" gorm:"size:64"`
	Message       string        `json:"message"`
}

type ProcessPaymentInput struct {
	OrderID        uint   `json:"orderId" binding:"required"`
	CardNumber     string `json:"cardNumber" binding:"required,min=13,max=19"`
	ExpirationDate string `json:"expirationDate" binding:"required"`
	CardCode       string `json:"cardCode" binding:"required,min=3,max=4"`
}

type RefundPaymentInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
