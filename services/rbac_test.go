package services

import (
	"errors"
	"testing"

	"github.com/popaya/grocery-api/models"
)

type stubPermissionStore struct {
	perms []models.Permission
	err   error
	calls int
}

func (s *stubPermissionStore) PermissionsForUser(userID uint) ([]models.Permission, error) {
	s.calls++
	return s.perms, s.err
}

func TestHasPermission(t *testing.T) {
	t.Run("grants on an exact resource and action match", func(t *testing.T) {
		store := &stubPermissionStore{perms: []models.Permission{
			{Resource: "product", Action: "create"},
		}}
		svc := &RBACService{store: store}

		if !svc.HasPermission(42, "product", "create") {
			t.Error("expected product:create to be granted")
		}
	})

	t.Run("denies when only other actions are granted", func(t *testing.T) {
		store := &stubPermissionStore{perms: []models.Permission{
			{Resource: "product", Action: "read"},
			{Resource: "order", Action: "create"},
		}}
		svc := &RBACService{store: store}

		if svc.HasPermission(42, "product", "delete") {
			t.Error("expected product:delete to be denied")
		}
	})

	t.Run("denies when the user has no roles", func(t *testing.T) {
		svc := &RBACService{store: &stubPermissionStore{}}

		if svc.HasPermission(42, "order", "read") {
			t.Error("expected denial for a user with no permissions")
		}
	})

	t.Run("fails closed when the lookup errors", func(t *testing.T) {
		store := &stubPermissionStore{
			perms: []models.Permission{{Resource: "product", Action: "create"}},
			err:   errors.New("connection reset"),
		}
		svc := &RBACService{store: store}

		if svc.HasPermission(42, "product", "create") {
			t.Error("a failed lookup must deny, not grant")
		}
		if store.calls != 1 {
			t.Errorf("expected a single store lookup, got %d", store.calls)
		}
	})
}
