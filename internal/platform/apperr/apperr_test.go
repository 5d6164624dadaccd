// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
)

var errSentinel = apperr.New("SENTINEL", "Sentinel failure", http.StatusTeapot)

/*
TestAppError_IsMatchesByCode verifies that sentinel identity survives copying and wrapping.
*/
func TestAppError_IsMatchesByCode(t *testing.T) {
	cause := errors.New("low level")
	copied := errSentinel.WithCause(cause)

	// 1. The copy is a distinct value but still matches the sentinel
	assert.NotSame(t, errSentinel, copied)
	assert.ErrorIs(t, copied, errSentinel)

	// 2. The cause is reachable through the chain
	assert.ErrorIs(t, copied, cause)

	// 3. Wrapping with fmt.Errorf keeps both reachable
	wrapped := fmt.Errorf("service: %w", copied)
	assert.ErrorIs(t, wrapped, errSentinel)

	// 4. The sentinel itself was not mutated
	assert.Nil(t, errSentinel.Cause)

	// 5. A different code never matches
	assert.NotErrorIs(t, copied, apperr.Forbidden("nope"))
}

/*
TestAppError_As verifies extraction of the AppError from a wrapped chain.
*/
func TestAppError_As(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", apperr.Conflict("exists"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	assert.True(t, apperr.IsAppError(wrapped))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsAppError(errors.New("plain")))
}

/*
TestAppError_GatewayErrors checks the downstream failure constructors.
*/
func TestAppError_GatewayErrors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"bad_gateway", apperr.BadGateway("News", cause), http.StatusBadGateway, "BAD_GATEWAY"},
		{"gateway_timeout", apperr.GatewayTimeout("News", cause), http.StatusGatewayTimeout, "GATEWAY_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Contains(t, tt.err.Message, "News")
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

/*
TestNormalize verifies unknown errors become INTERNAL_ERROR while AppErrors pass through.
*/
func TestNormalize(t *testing.T) {
	plain := errors.New("socket closed")

	normalized := apperr.Normalize(plain)
	assert.Equal(t, apperr.CodeInternal, normalized.Code)
	assert.Equal(t, http.StatusInternalServerError, normalized.HTTPStatus)
	assert.ErrorIs(t, normalized, plain)
	assert.NotContains(t, normalized.Error(), "socket")

	conflict := apperr.Conflict("taken")
	assert.Same(t, conflict, apperr.Normalize(fmt.Errorf("wrapped: %w", conflict)))
}
