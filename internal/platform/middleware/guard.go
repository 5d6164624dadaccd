// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
	"github.com/taibuivan/newsgate/internal/platform/constants"
	"github.com/taibuivan/newsgate/internal/platform/ctxutil"
	"github.com/taibuivan/newsgate/internal/platform/respond"
)

// PanicRecovery converts a handler panic into a 500 and logs the stack.
// [http.ErrAbortHandler] is re-raised so the server can drop the connection.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				ctx := request.Context()
				logger.ErrorContext(ctx, "panic_recovered",
					slog.String("request_id", ctxutil.GetRequestID(ctx)),
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// AppConfig is the part of the configuration [CORS] reads.
type AppConfig interface {
	IsDevelopment() bool
	OriginSuffix() string
}

var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods":     "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers":     "Accept, Authorization, Content-Type, X-Request-ID",
	"Access-Control-Expose-Headers":    "X-Request-ID",
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Max-Age":           "300",
}

// CORS echoes any origin in development and only origins ending in the
// configured suffix otherwise. Preflight requests end here with 204.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	allowed := func(origin string) bool {
		if cfg.IsDevelopment() {
			return true
		}
		suffix := cfg.OriginSuffix()
		return suffix != "" && strings.HasSuffix(origin, suffix)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if allowed(origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Add("Vary", constants.HeaderOrigin)
				for name, value := range corsHeaders {
					header.Set(name, value)
				}
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RealIP prefers X-Real-IP, then the first X-Forwarded-For hop, then the peer address.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(request.RemoteAddr); err == nil {
		return host
	}
	return request.RemoteAddr
}
