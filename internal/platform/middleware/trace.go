// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the gateway's request chain, in mount order:

  - [RequestID] and [StructuredLogger] for correlation and access logs.
  - [RateLimit], [PanicRecovery] and [CORS] to protect the process.
  - [Authenticate] to turn a bearer token into a [sec.Principal].
  - [Authorize] to apply the route [Policy] before any handler runs.

Handlers downstream of the chain read the caller with [ctxutil.GetPrincipal].
*/
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/newsgate/internal/platform/constants"
	"github.com/taibuivan/newsgate/internal/platform/ctxutil"
	"github.com/taibuivan/newsgate/pkg/uuid"
)

// RequestID propagates a UUID-shaped X-Request-ID or mints a fresh one, and
// echoes it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			id := request.Header.Get(constants.HeaderXRequestID)
			if !uuid.IsValid(id) {
				id = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, id)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), id)))
		})
	}
}

// accessLog is shared between [StructuredLogger] and the handlers below it.
type accessLog struct {
	http.ResponseWriter
	status int
	login  string
}

func (entry *accessLog) WriteHeader(status int) {
	entry.status = status
	entry.ResponseWriter.WriteHeader(status)
}

func (entry *accessLog) level() slog.Level {
	switch {
	case entry.status >= http.StatusInternalServerError:
		return slog.LevelError
	case entry.status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

type accessLogKey struct{}

// recordIdentity names the caller on the access log line, once authenticated.
func recordIdentity(ctx context.Context, login string) {
	if entry, ok := ctx.Value(accessLogKey{}).(*accessLog); ok {
		entry.login = login
	}
}

// StructuredLogger installs a request-scoped logger and writes one
// "http_request_finished" line per request.
//
// Must run after [RequestID].
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			entry := &accessLog{ResponseWriter: writer, status: http.StatusOK}
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			ctx = context.WithValue(ctx, accessLogKey{}, entry)

			next.ServeHTTP(entry, request.WithContext(ctx))

			attrs := []slog.Attr{
				slog.Int("status", entry.status),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if entry.login != "" {
				attrs = append(attrs, slog.String("user_login", entry.login))
			}

			requestLogger.LogAttrs(ctx, entry.level(), "http_request_finished", attrs...)
		})
	}
}
