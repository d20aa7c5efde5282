package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/middlewares"
	"github.com/popaya/grocery-api/services"
	"gorm.io/gorm"
)

func OrderRoutes(server *gin.Engine, db *gorm.DB, rbac *services.RBACService, order *controllers.OrderController) {
	group := server.Group("/api/orders", middlewares.RequireAuth(db))
	{
		group.POST("", order.CreateOrder)
		group.GET("/my", order.GetMyOrders)
		group.GET("/:orderId", order.GetOrder)

		group.GET("", middlewares.RequirePermission(rbac, "order", "update"), order.GetOrders)
		group.GET("/undelivered/count", middlewares.RequirePermission(rbac, "order", "update"), order.GetUndeliveredOrders)
		group.PATCH("/:orderId", middlewares.RequirePermission(rbac, "order", "update"), order.UpdateOrderStatus)
	}
}
