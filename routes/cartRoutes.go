package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/middlewares"
	"gorm.io/gorm"
)

func CartRoutes(server *gin.Engine, db *gorm.DB, cart *controllers.CartController) {
	group := server.Group("/api/cart", middlewares.RequireAuth(db))
	{
		group.GET("", cart.GetCart)
		group.POST("/items", cart.AddItem)
		group.PATCH("/items/:itemId", cart.UpdateItem)
		group.DELETE("/items/:itemId", cart.RemoveItem)
		group.DELETE("", cart.ClearCart)
	}
}
