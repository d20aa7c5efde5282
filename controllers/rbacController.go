package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/models"
	"github.com/popaya/grocery-api/services"
)

type RBACController struct {
	rbac *services.RBACService
}

func NewRBACController(rbac *services.RBACService) *RBACController {
	return &RBACController{rbac: rbac}
}

func (c *RBACController) CreateRole(ctx *gin.Context) {
	var input models.CreateRoleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	role, err := c.rbac.CreateRole(input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, role)
}

func (c *RBACController) GetRoles(ctx *gin.Context) {
	roles, err := c.rbac.GetRoles()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, roles)
}

func (c *RBACController) CreatePermission(ctx *gin.Context) {
	var input models.CreatePermissionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	perm, err := c.rbac.CreatePermission(input)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, perm)
}

func (c *RBACController) GetPermissions(ctx *gin.Context) {
	perms, err := c.rbac.GetPermissions()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, perms)
}

func (c *RBACController) AssignRoleToUser(ctx *gin.Context) {
	var input models.AssignRoleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := c.rbac.AssignRoleToUser(input.UserID, input.RoleID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Role assigned to user"})
}

func (c *RBACController) GetUserRoles(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid user id")
		return
	}

	roles, err := c.rbac.GetUserRoles(uint(userID))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, roles)
}

func (c *RBACController) AssignPermissionToRole(ctx *gin.Context) {
	var input models.AssignPermissionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := c.rbac.AssignPermissionToRole(input.RoleID, input.PermissionID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Permission assigned to role"})
}

func (c *RBACController) GetRolePermissions(ctx *gin.Context) {
	roleID, err := strconv.Atoi(ctx.Param("roleId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid role id")
		return
	}

	perms, err := c.rbac.GetRolePermissions(uint(roleID))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, perms)
}
