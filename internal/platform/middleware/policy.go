// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
	"github.com/taibuivan/newsgate/internal/platform/ctxutil"
	"github.com/taibuivan/newsgate/internal/platform/respond"
	"github.com/taibuivan/newsgate/internal/platform/sec"
)

// # Route Policy

// Rule maps an HTTP method set and a path pattern to the permissions it requires.
//
// Patterns are either exact paths or a prefix ending in "/**", which matches
// the prefix itself and everything below it.
type Rule struct {
	Methods     []string
	Pattern     string
	Anonymous   bool
	Permissions []sec.Permission
}

// AllowAnonymous builds a rule that lets any caller through.
// No methods means every method.
func AllowAnonymous(pattern string, methods ...string) Rule {
	return Rule{Methods: methods, Pattern: pattern, Anonymous: true}
}

// RequireAny builds a rule satisfied by holding at least one of permissions.
func RequireAny(pattern string, permissions []sec.Permission, methods ...string) Rule {
	return Rule{Methods: methods, Pattern: pattern, Permissions: permissions}
}

func (r Rule) matches(method, requestPath string) bool {
	if len(r.Methods) > 0 && !slices.ContainsFunc(r.Methods, func(m string) bool {
		return strings.EqualFold(m, method)
	}) {
		return false
	}

	if prefix, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return requestPath == prefix || strings.HasPrefix(requestPath, prefix+"/")
	}
	return requestPath == r.Pattern
}

// Policy is an ordered rule table. The first matching rule decides.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy evaluated in the given order.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: slices.Clone(rules)}
}

// DefaultPolicy is the gateway's route table.
//
//	any              /api/auth/**      anonymous
//	GET              /api/**           USER
//	POST PUT DELETE  /api/news/**      JOURNALIST or ADMIN
//	POST PUT DELETE  /api/comments/**  SUBSCRIBER or ADMIN
//	any              /api/**           USER
//
// The last rule closes the API: nothing under /api is reachable anonymously
// unless an earlier rule says so.
func DefaultPolicy() *Policy {
	mutating := []string{http.MethodPost, http.MethodPut, http.MethodDelete}

	return NewPolicy(
		AllowAnonymous("/api/auth/**"),
		RequireAny("/api/**", []sec.Permission{sec.PermissionUser}, http.MethodGet),
		RequireAny("/api/news/**", []sec.Permission{sec.PermissionJournalist, sec.PermissionAdmin}, mutating...),
		RequireAny("/api/comments/**", []sec.Permission{sec.PermissionSubscriber, sec.PermissionAdmin}, mutating...),
		RequireAny("/api/**", []sec.Permission{sec.PermissionUser}),
	)
}

// Match returns the first rule covering the request, if any.
func (p *Policy) Match(method, requestPath string) (Rule, bool) {
	cleaned := path.Clean("/" + requestPath)
	for _, rule := range p.rules {
		if rule.matches(method, cleaned) {
			return rule, true
		}
	}
	return Rule{}, false
}

// routePath is the cleaned path the router dispatches on. It keeps percent
// escapes, so "%2F" or "%2E%2E" inside a parameter cannot move the request
// to another rule.
func routePath(request *http.Request) string {
	raw := request.URL.RawPath
	if raw == "" {
		raw = request.URL.Path
	}
	return path.Clean("/" + raw)
}

// Authorize enforces the policy against the principal installed by [Authenticate].
//
// Unmatched routes pass through. An anonymous caller on a protected rule gets
// 401, an authenticated caller without the permission gets 403.
func Authorize(policy *Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			rule, found := policy.Match(request.Method, routePath(request))
			if !found || rule.Anonymous {
				next.ServeHTTP(writer, request)
				return
			}

			principal := ctxutil.GetPrincipal(request.Context())
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !principal.Permissions.HasAny(rule.Permissions...) {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "access_denied",
					slog.Any("principal", principal),
					slog.String("rule", rule.Pattern),
				)
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
