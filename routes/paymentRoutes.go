package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/middlewares"
	"gorm.io/gorm"
)

func PaymentRoutes(server *gin.Engine, db *gorm.DB, payment *controllers.PaymentController) {
	group := server.Group("/api/payments", middlewares.RequireAuth(db))
	{
		group.POST("/process", payment.ProcessPayment)
		group.GET("/:orderId", payment.GetPaymentStatus)
		group.GET("/:orderId/transaction", payment.GetTransactionDetails)
		group.POST("/:paymentId/refund", payment.RefundPayment)
	}
}
