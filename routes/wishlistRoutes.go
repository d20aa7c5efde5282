package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/middlewares"
	"gorm.io/gorm"
)

func WishlistRoutes(server *gin.Engine, db *gorm.DB, wishlist *controllers.WishlistController) {
	group := server.Group("/api/wishlist", middlewares.RequireAuth(db))
	{
		group.GET("", wishlist.GetWishlist)
		group.POST("/items", wishlist.AddItem)
		group.DELETE("/items/:itemId", wishlist.RemoveItem)
		group.DELETE("", wishlist.ClearWishlist)
	}
}
