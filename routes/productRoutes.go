package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/middlewares"
	"github.com/popaya/grocery-api/services"
	"gorm.io/gorm"
)

func ProductRoutes(server *gin.Engine, db *gorm.DB, rbac *services.RBACService, product *controllers.ProductController) {
	group := server.Group("/api/products")
	{
		group.GET("", product.GetProducts)
		group.GET("/:id", product.GetProduct)
		group.GET("/categories/:slug/products", product.GetProductsByCategory)

		group.POST("", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "product", "create"), product.CreateProduct)
		group.POST("/images", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "product", "update"), product.UploadProductImages)
		group.PATCH("/:id", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "product", "update"), product.UpdateProduct)
		group.DELETE("/:id", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "product", "delete"), product.DeleteProduct)
	}
}
