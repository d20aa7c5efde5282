package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/services"
)

// RequirePermission gates a route on an exact (resource, action) permission.
// Must run after RequireAuth.
func RequirePermission(rbac *services.RBACService, resource, action string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := CurrentUserID(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		if !rbac.HasPermission(userID, resource, action) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}

		ctx.Next()
	}
}
