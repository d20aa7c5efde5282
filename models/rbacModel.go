package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role struct {
	gorm.Model
	Name        string       `json:"name" gorm:"uniqueIndex;size:100"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions,omitempty" gorm:"many2many:role_permissions"`
}

type Permission struct {
	gorm.Model
	Name        string         `json:"name" gorm:"uniqueIndex;size:100"`
	Resource    string         `json:"resource" gorm:"size:100;index:idx_resource_action"`
	Action      string         `json:"action" gorm:"size:100;index:idx_resource_action"`
	Description string         `json:"description"`
	Attributes  datatypes.JSON `json:"attributes,omitempty"`
}

type CreateRoleInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreatePermissionInput struct {
	Name        string         `json:"name" binding:"required"`
	Resource    string         `json:"resource" binding:"required"`
	Action      string         `json:"action" binding:"required"`
	Description string         `json:"description"`
	Attributes  datatypes.JSON `json:"attributes"`
}

type AssignRoleInput struct {
	UserID uint `json:"userId" binding:"required"`
	RoleID uint `json:"roleId" binding:"required"`
}

type AssignPermissionInput struct {
	RoleID       uint `json:"roleId" binding:"required"`
	PermissionID uint `json:"permissionId" binding:"required"`
}

// HasExactPermission reports whether any permission in the set matches the
// (resource, action) pair exactly. There are no wildcard or hierarchy
// semantics.
func HasExactPermission(perms []Permission, resource, action string) bool {
	for _, p := range perms {
		if p.Resource == resource && p.Action == action {
			return true
		}
	}
	return false
}
