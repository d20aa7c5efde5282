package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/middlewares"
	"github.com/popaya/grocery-api/models"
	"github.com/popaya/grocery-api/services"
)

type OrderController struct {
	orders *services.OrderService
	rbac   *services.RBACService
}

func NewOrderController(orders *services.OrderService, rbac *services.RBACService) *OrderController {
	return &OrderController{orders: orders, rbac: rbac}
}

// elevated reports whether the user may act on orders they do not own.
func (c *OrderController) elevated(userID uint) bool {
	return c.rbac.HasPermission(userID, "order", "update")
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input models.CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := c.orders.CreateOrder(userID, input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, order)
}

func (c *OrderController) GetMyOrders(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := c.orders.GetOrdersForUser(userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := c.orders.GetOrder(uint(orderID), userID, c.elevated(userID))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// GetOrders lists all orders, paginated (permission gated).
func (c *OrderController) GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	page, limit = clampPagination(page, limit, 15)
	sortOrder := ctx.DefaultQuery("sort", "desc")

	orders, count, err := c.orders.GetOrders(page, limit, sortOrder)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid order id")
		return
	}

	var input models.UpdateOrderStatusInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := c.orders.UpdateStatus(uint(orderID), input.Status); err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

func (c *OrderController) GetUndeliveredOrders(ctx *gin.Context) {
	count, err := c.orders.CountUndelivered()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
