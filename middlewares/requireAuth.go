package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/models"
	"github.com/popaya/grocery-api/utils"
	"gorm.io/gorm"
)

const (
	ContextUser   = "user"
	ContextUserID = "userID"
)

// RequireAuth resolves the access token (cookie first, Authorization header
// as fallback) to a user record and stores it on the request context.
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie("accessToken")
		if err != nil || tokenString == "" {
			header := ctx.GetHeader("Authorization")
			if after, ok := strings.CutPrefix(header, "Bearer "); ok {
				tokenString = after
			}
		}
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token missing"})
			return
		}

		claims, err := utils.VerifyAccessToken(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid access token"})
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		ctx.Set(ContextUser, user)
		ctx.Set(ContextUserID, user.ID)
		ctx.Next()
	}
}

// CurrentUserID returns the authenticated user's id from the context.
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	v, exists := ctx.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
