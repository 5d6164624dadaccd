// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package httpclient

import (
	"context"
	"net/http"

	requestutil "github.com/taibuivan/newsgate/internal/platform/request"
)

type bearerTokenKey struct{}

// WithBearerToken returns a context whose downstream calls carry token.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey{}, token)
}

// BearerToken returns the token set by [WithBearerToken], or "".
func BearerToken(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey{}).(string)
	return token
}

// ForwardAuthorization copies the caller's bearer token into the context so
// downstream calls made while serving the request present the same credential.
func ForwardAuthorization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token, _, err := requestutil.BearerToken(request)
		if err != nil || token == "" {
			next.ServeHTTP(writer, request)
			return
		}
		next.ServeHTTP(writer, request.WithContext(WithBearerToken(request.Context(), token)))
	})
}
