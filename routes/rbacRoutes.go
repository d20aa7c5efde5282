package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/middlewares"
	"github.com/popaya/grocery-api/services"
	"gorm.io/gorm"
)

func RBACRoutes(server *gin.Engine, db *gorm.DB, rbac *services.RBACService, ctrl *controllers.RBACController) {
	group := server.Group("/api/rbac", middlewares.RequireAuth(db))
	{
		group.POST("/roles", middlewares.RequirePermission(rbac, "role", "create"), ctrl.CreateRole)
		group.GET("/roles", middlewares.RequirePermission(rbac, "role", "read"), ctrl.GetRoles)

		group.POST("/permissions", middlewares.RequirePermission(rbac, "permission", "create"), ctrl.CreatePermission)
		group.GET("/permissions", middlewares.RequirePermission(rbac, "permission", "read"), ctrl.GetPermissions)

		group.POST("/user-roles", middlewares.RequirePermission(rbac, "user-role", "create"), ctrl.AssignRoleToUser)
		group.GET("/users/:userId/roles", middlewares.RequirePermission(rbac, "user-role", "read"), ctrl.GetUserRoles)

		group.POST("/role-permissions", middlewares.RequirePermission(rbac, "role-permission", "create"), ctrl.AssignPermissionToRole)
		group.GET("/roles/:roleId/permissions", middlewares.RequirePermission(rbac, "role-permission", "read"), ctrl.GetRolePermissions)
	}
}
