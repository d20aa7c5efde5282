package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Grocery Store API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/register" - Create user account
- POST "/api/auth/login" - Access user account
- POST "/api/auth/logout" - End session
- POST "/api/auth/refresh-token" - Rotate token pair
- POST "/api/auth/request-password-reset" - Request password reset OTP
- POST "/api/auth/reset-password" - Reset password with OTP

CATALOG
- GET "/api/categories" - List categories
- GET "/api/categories/:slug" - Get category with products
- GET "/api/products" - List products
- GET "/api/products/:id" - Get product by ID
- GET "/api/products/categories/:slug/products" - Products by category

CART & WISHLIST
- GET "/api/cart" - Get cart
- POST "/api/cart/items" - Add item to cart
- PATCH "/api/cart/items/:itemId" - Update item quantity
- DELETE "/api/cart/items/:itemId" - Remove item
- DELETE "/api/cart" - Clear cart
- GET "/api/wishlist" - Get wishlist

ORDERS & PAYMENTS
- POST "/api/orders" - Place order from cart
- GET "/api/orders/my" - My orders
- GET "/api/orders/:orderId" - Get order by ID
- POST "/api/payments/process" - Pay for an order
- GET "/api/payments/:orderId" - Payment status
- POST "/api/payments/:paymentId/refund" - Refund a payment`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
