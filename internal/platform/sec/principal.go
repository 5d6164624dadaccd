// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
)

// ErrAccessDenied is returned when the caller neither owns the resource nor is an admin.
var ErrAccessDenied = apperr.New("ACCESS_DENIED", "No access to this resource", http.StatusForbidden)

// # Authenticated Identity

// Principal is the resolved identity of the caller for the duration of one request.
//
// It is built by the principal resolver after the token is verified and is
// passed down explicitly through the request context. It is never persisted.
type Principal struct {
	UserID      int64
	Login       string
	Role        Role
	Permissions PermissionSet
}

// NewPrincipal derives the permission set from the role and returns the principal.
func NewPrincipal(userID int64, login string, role Role) *Principal {
	normalized := role.Normalize()
	return &Principal{
		UserID:      userID,
		Login:       login,
		Role:        normalized,
		Permissions: PermissionsFor(normalized),
	}
}

// IsAdmin reports whether the principal holds the ADMIN capability.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Permissions.Has(PermissionAdmin)
}

// LogValue implements [slog.LogValuer] so principals log without leaking internals.
func (p *Principal) LogValue() slog.Value {
	if p == nil {
		return slog.StringValue("anonymous")
	}
	return slog.GroupValue(
		slog.Int64("id", p.UserID),
		slog.String("login", p.Login),
		slog.String("role", string(p.Role)),
	)
}

// # Ownership Guard

// Owner identifies who a resource belongs to.
//
// News are owned by a numeric user id, comments by a login, so the guard
// accepts either form.
type Owner struct {
	id      int64
	login   string
	byLogin bool
}

// OwnerID declares ownership by numeric user id.
func OwnerID(id int64) Owner {
	return Owner{id: id}
}

// OwnerLogin declares ownership by login.
func OwnerLogin(login string) Owner {
	return Owner{login: login, byLogin: true}
}

// matches reports whether the principal is the declared owner.
func (o Owner) matches(principal *Principal) bool {
	if o.byLogin {
		return o.login != "" && o.login == principal.Login
	}
	return o.id != 0 && o.id == principal.UserID
}

// AssertOwnerOrAdmin fails with [ErrAccessDenied] unless principal owns the
// resource or holds ADMIN. A nil principal is always denied.
func AssertOwnerOrAdmin(principal *Principal, owner Owner) error {
	if principal == nil {
		return ErrAccessDenied
	}
	if principal.IsAdmin() || owner.matches(principal) {
		return nil
	}
	return ErrAccessDenied
}
