package models

import "testing"

func TestHasExactPermission(t *testing.T) {
	perms := []Permission{
		{Name: "create-product", Resource: "product", Action: "create"},
		{Name: "read-order", Resource: "order", Action: "read"},
	}

	t.Run("exact match grants", func(t *testing.T) {
		if !HasExactPermission(perms, "product", "create") {
			t.Error("expected product:create to be granted")
		}
	})

	t.Run("action on the wrong resource is denied", func(t *testing.T) {
		if HasExactPermission(perms, "product", "read") {
			t.Error("expected product:read to be denied")
		}
	})

	t.Run("no wildcard semantics", func(t *testing.T) {
		wildcards := []Permission{{Resource: "*", Action: "*"}}
		if HasExactPermission(wildcards, "product", "create") {
			t.Error("a wildcard permission must not match a concrete resource")
		}
	})

	t.Run("empty set denies everything", func(t *testing.T) {
		if HasExactPermission(nil, "order", "read") {
			t.Error("expected denial with no permissions at all")
		}
	})
}
