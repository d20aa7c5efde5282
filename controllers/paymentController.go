package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/middlewares"
	"github.com/popaya/grocery-api/models"
	"github.com/popaya/grocery-api/services"
)

type PaymentController struct {
	payments *services.PaymentService
	rbac     *services.RBACService
}

func NewPaymentController(payments *services.PaymentService, rbac *services.RBACService) *PaymentController {
	return &PaymentController{payments: payments, rbac: rbac}
}

// ProcessPayment charges the caller's order. The card details pass straight
// through to the gateway and are never stored.
func (c *PaymentController) ProcessPayment(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input models.ProcessPaymentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	payment, err := c.payments.ProcessPayment(userID, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	success := payment.Status == models.PaymentStatusCompleted
	status := http.StatusOK
	message := "Payment processed successfully"
	if !success {
		status = http.StatusBadRequest
		message = "Payment processing failed"
	}
	ctx.JSON(status, gin.H{
		"success": success,
		"payment": payment,
		"message": message,
	})
}

func (c *PaymentController) GetPaymentStatus(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid order id")
		return
	}

	payment, err := c.payments.GetPaymentStatus(userID, uint(orderID))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, payment)
}

// GetTransactionDetails proxies the gateway's record of the order's
// transaction for reconciliation.
func (c *PaymentController) GetTransactionDetails(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid order id")
		return
	}

	details, err := c.payments.GetTransactionDetails(userID, uint(orderID))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, details)
}

func (c *PaymentController) RefundPayment(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	paymentID, err := strconv.Atoi(ctx.Param("paymentId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid payment id")
		return
	}

	var input models.RefundPaymentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	elevated := c.rbac.HasPermission(userID, "order", "update")
	payment, err := c.payments.RefundPayment(userID, elevated, uint(paymentID), input.Amount)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
		"message": "Refund processed successfully",
	})
}
