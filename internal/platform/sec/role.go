// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"slices"
	"strings"
)

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is closed: every value outside the constants below is treated as
// [RoleUser] when read back from storage.
type Role string

const (
	// Unrestricted system access, satisfies every ownership check
	RoleAdmin Role = "ADMIN"

	// Can publish and manage their own news
	RoleJournalist Role = "JOURNALIST"

	// Can write and manage their own comments
	RoleSubscriber Role = "SUBSCRIBER"

	// Default role for standard registered users
	RoleUser Role = "USER"
)

// Roles lists every known role in a stable order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleJournalist, RoleSubscriber, RoleUser}
}

// ParseRole converts a client-supplied string into a [Role].
//
// Matching is case-insensitive. An empty string selects [RoleUser].
// The boolean is false for any value outside the enumeration.
func ParseRole(raw string) (Role, bool) {
	if strings.TrimSpace(raw) == "" {
		return RoleUser, true
	}

	candidate := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if slices.Contains(Roles(), candidate) {
		return candidate, true
	}

	return RoleUser, false
}

// Normalize maps unknown stored values to [RoleUser].
func (r Role) Normalize() Role {
	if slices.Contains(Roles(), r) {
		return r
	}
	return RoleUser
}

// # Permissions

// Permission is a coarse capability tag derived from a [Role].
type Permission string

const (
	PermissionAdmin      Permission = "ADMIN"
	PermissionJournalist Permission = "JOURNALIST"
	PermissionSubscriber Permission = "SUBSCRIBER"
	PermissionUser       Permission = "USER"
)

// PermissionSet is an immutable-by-convention set of capability tags.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given tags.
func NewPermissionSet(permissions ...Permission) PermissionSet {
	set := make(PermissionSet, len(permissions))
	for _, permission := range permissions {
		set[permission] = struct{}{}
	}
	return set
}

// Has reports whether the set contains permission.
func (s PermissionSet) Has(permission Permission) bool {
	_, ok := s[permission]
	return ok
}

// HasAny reports whether the set contains at least one of the given permissions.
func (s PermissionSet) HasAny(permissions ...Permission) bool {
	for _, permission := range permissions {
		if s.Has(permission) {
			return true
		}
	}
	return false
}

// List returns the tags sorted alphabetically.
func (s PermissionSet) List() []Permission {
	list := make([]Permission, 0, len(s))
	for permission := range s {
		list = append(list, permission)
	}
	slices.Sort(list)
	return list
}

// PermissionsFor returns the fixed permission set of a role.
//
// Every result carries [PermissionUser].
func PermissionsFor(role Role) PermissionSet {
	switch role {
	case RoleAdmin:
		return NewPermissionSet(PermissionAdmin, PermissionUser)
	case RoleJournalist:
		return NewPermissionSet(PermissionJournalist, PermissionUser)
	case RoleSubscriber:
		return NewPermissionSet(PermissionSubscriber, PermissionUser)
	default:
		return NewPermissionSet(PermissionUser)
	}
}
