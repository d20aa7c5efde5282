package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/middlewares"
	"github.com/popaya/grocery-api/services"
	"gorm.io/gorm"
)

func AuthRoutes(server *gin.Engine, db *gorm.DB, rbac *services.RBACService, auth *controllers.AuthController) {
	group := server.Group("/api/auth")
	{
		group.POST("/register", auth.Register)
		group.POST("/login", auth.Login)
		group.POST("/logout", auth.Logout)
		group.POST("/refresh-token", auth.RefreshToken)
		group.POST("/request-password-reset", auth.RequestPasswordReset)
		group.POST("/reset-password", auth.ResetPassword)

		group.GET("/me", middlewares.RequireAuth(db), auth.Me)
		group.GET("/users", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "user", "read"), auth.GetUsers)
		group.GET("/users/:id", middlewares.RequireAuth(db), middlewares.RequirePermission(rbac, "user", "read"), auth.GetUserByID)
	}
}
