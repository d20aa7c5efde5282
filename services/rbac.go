package services

import (
	"errors"
	"fmt"

	"github.com/popaya/grocery-api/models"
	"gorm.io/gorm"
)

// PermissionReader resolves the union of permissions reachable through all
// roles assigned to a user.
type PermissionReader interface {
	PermissionsForUser(userID uint) ([]models.Permission, error)
}

type gormPermissionStore struct{ db *gorm.DB }

func (s *gormPermissionStore) PermissionsForUser(userID uint) ([]models.Permission, error) {
	var perms []models.Permission
	err := s.db.
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Joins("JOIN user_roles ur ON ur.role_id = rp.role_id").
		Where("ur.user_id = ?", userID).
		Distinct().
		Find(&perms).Error
	if err != nil {
		return nil, fmt.Errorf("permissions for user %d: %w", userID, err)
	}
	return perms, nil
}

type RBACService struct {
	db    *gorm.DB
	store PermissionReader
}

func NewRBACService(db *gorm.DB) *RBACService {
	return &RBACService{db: db, store: &gormPermissionStore{db: db}}
}

// HasPermission checks for an exact (resource, action) match among the
// permissions granted via the user's roles. Any lookup failure denies rather
// than erroring, so authorization fails closed.
func (s *RBACService) HasPermission(userID uint, resource, action string) bool {
	perms, err := s.store.PermissionsForUser(userID)
	if err != nil {
		return false
	}
	return models.HasExactPermission(perms, resource, action)
}

func (s *RBACService) CreateRole(input models.CreateRoleInput) (*models.Role, error) {
	role := models.Role{Name: input.Name, Description: input.Description}
	if err := s.db.Create(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("role %q: %w", input.Name, ErrConflict)
		}
		return nil, err
	}
	return &role, nil
}

func (s *RBACService) GetRoles() ([]models.Role, error) {
	var roles []models.Role
	return roles, s.db.Find(&roles).Error
}

func (s *RBACService) CreatePermission(input models.CreatePermissionInput) (*models.Permission, error) {
	perm := models.Permission{
		Name:        input.Name,
		Resource:    input.Resource,
		Action:      input.Action,
		Description: input.Description,
		Attributes:  input.Attributes,
	}
	if err := s.db.Create(&perm).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("permission %q: %w", input.Name, ErrConflict)
		}
		return nil, err
	}
	return &perm, nil
}

func (s *RBACService) GetPermissions() ([]models.Permission, error) {
	var perms []models.Permission
	return perms, s.db.Find(&perms).Error
}

func (s *RBACService) AssignRoleToUser(userID, roleID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return err
	}

	var role models.Role
	if err := s.db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("role %d: %w", roleID, ErrNotFound)
		}
		return err
	}

	count := s.db.Model(&user).Where("id = ?", roleID).Association("Roles").Count()
	if count > 0 {
		return fmt.Errorf("user %d already has role %d: %w", userID, roleID, ErrConflict)
	}

	return s.db.Model(&user).Association("Roles").Append(&role)
}

func (s *RBACService) GetUserRoles(userID uint) ([]models.Role, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return user.Roles, nil
}

func (s *RBACService) AssignPermissionToRole(roleID, permissionID uint) error {
	var role models.Role
	if err := s.db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("role %d: %w", roleID, ErrNotFound)
		}
		return err
	}

	var perm models.Permission
	if err := s.db.First(&perm, permissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("permission %d: %w", permissionID, ErrNotFound)
		}
		return err
	}

	count := s.db.Model(&role).Where("id = ?", permissionID).Association("Permissions").Count()
	if count > 0 {
		return fmt.Errorf("role %d already has permission %d: %w", roleID, permissionID, ErrConflict)
	}

	return s.db.Model(&role).Association("Permissions").Append(&perm)
}

func (s *RBACService) GetRolePermissions(roleID uint) ([]models.Permission, error) {
	var role models.Role
	if err := s.db.Preload("Permissions").First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %d: %w", roleID, ErrNotFound)
		}
		return nil, err
	}
	return role.Permissions, nil
}
