// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
	"github.com/taibuivan/newsgate/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/newsgate/internal/platform/request"
	"github.com/taibuivan/newsgate/internal/platform/respond"
	"github.com/taibuivan/newsgate/internal/platform/sec"
)

// TokenVerifier checks a bearer token and returns its subject.
//
// Defining it here keeps the middleware independent from [sec.TokenService]
// so tests can inject fakes.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PrincipalResolver turns a verified subject into the caller's identity.
type PrincipalResolver interface {
	Resolve(ctx context.Context, subject string) (*sec.Principal, error)
}

// AuthOption customizes [Authenticate].
type AuthOption func(*authConfig)

type authConfig struct {
	skipPaths map[string]struct{}
}

// SkipPaths leaves the listed exact paths untouched, whatever header they carry.
// Anonymous endpoints use it so a stale token cannot block sign-in.
func SkipPaths(paths ...string) AuthOption {
	return func(cfg *authConfig) {
		for _, p := range paths {
			cfg.skipPaths[p] = struct{}{}
		}
	}
}

// Authenticate extracts the bearer token, verifies it and installs the caller.
//
// # Flow
//  1. No Authorization header: the request proceeds anonymous.
//  2. Header present: it must read "Bearer <token>" and the token must verify, else 401.
//  3. The subject is resolved to a [sec.Principal]; failures are rendered as-is
//     (401 for an unknown principal, 500 for storage errors).
//  4. The principal is stored with [ctxutil.WithPrincipal] and the chain continues.
//
// A rejected request never reaches the next handler.
func Authenticate(verifier TokenVerifier, resolver PrincipalResolver, options ...AuthOption) func(http.Handler) http.Handler {
	cfg := &authConfig{skipPaths: make(map[string]struct{})}
	for _, option := range options {
		option(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if _, skip := cfg.skipPaths[routePath(request)]; skip {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 1. Anonymous Access ───────────────────────────────────────────
			token, present, err := requestutil.BearerToken(request)
			if !present {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			subject, err := verifier.Verify(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "token_rejected",
					slog.String("reason", err.Error()),
				)
				respond.Error(writer, request, sec.ErrTokenInvalid)
				return
			}

			// ── 4. Principal Resolution ───────────────────────────────────────
			principal, err := resolver.Resolve(request.Context(), subject)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			recordIdentity(request.Context(), principal.Login)
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks anonymous requests.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
