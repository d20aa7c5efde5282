package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/middlewares"
	"github.com/popaya/grocery-api/services"
	"gorm.io/gorm"
)

func CategoryRoutes(server *gin.Engine, db *gorm.DB, rbac *services.RBACService, category *controllers.CategoryController) {
	group := server.Group("/api/categories")
	{
		group.GET("", category.GetCategories)
		group.GET("/:slug", category.GetCategoryBySlug)

		group.POST("", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "category", "create"), category.CreateCategory)
		group.PATCH("/:id", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "category", "update"), category.UpdateCategory)
		group.DELETE("/:id", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "category", "delete"), category.DeleteCategory)
	}
}
