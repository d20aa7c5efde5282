package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/services"
)

// clampPagination normalizes user-supplied pagination values. Pages start at
// one and a non-positive limit falls back to the default, so offsets and page
// counts stay well defined.
func clampPagination(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

// handleServiceError translates service sentinel errors into HTTP statuses.
// Anything unrecognized is logged and reported as a 500 without leaking
// internals.
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		sendErrorResponse(ctx, http.StatusForbidden, "Access denied")
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidTransition):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		log.Println("Internal error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
