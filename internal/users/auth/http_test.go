// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/newsgate/internal/platform/middleware"
	"github.com/taibuivan/newsgate/internal/users/auth"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

func newAuthServer(t *testing.T) http.Handler {
	t.Helper()
	service, _, tokens := newTestService(t)
	handler := auth.NewHandler(service)

	authenticate := middleware.Authenticate(tokens, service, middleware.SkipPaths("/signUp", "/signIn", "/check"))
	return authenticate(handler.Routes())
}

func doRequest(t *testing.T, server http.Handler, method, target, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	var decoded envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder, decoded
}

func accessToken(t *testing.T, data json.RawMessage) string {
	t.Helper()
	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	require.NotEmpty(t, payload.AccessToken)
	return payload.AccessToken
}

/*
TestHandler_SignUpAndSignIn exercises the anonymous endpoints end to end.
*/
func TestHandler_SignUpAndSignIn(t *testing.T) {
	server := newAuthServer(t)

	// 1. Sign up returns a token
	recorder, body := doRequest(t, server, http.MethodPost, "/signUp", `{"login":"alice","password":"pw","role":"SUBSCRIBER"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	accessToken(t, body.Data)

	// 2. Duplicate
	recorder, body = doRequest(t, server, http.MethodPost, "/signUp", `{"login":"alice","password":"x","role":"ADMIN"}`, "")
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "DUPLICATE_LOGIN", body.Code)

	// 3. Sign in
	recorder, body = doRequest(t, server, http.MethodPost, "/signIn", `{"login":"alice","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	token := accessToken(t, body.Data)

	// 4. A stale token does not block the anonymous endpoints
	recorder, _ = doRequest(t, server, http.MethodPost, "/signIn", `{"login":"alice","password":"pw"}`, "stale")
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 5. The token authenticates /me
	recorder, body = doRequest(t, server, http.MethodGet, "/me", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var me struct {
		Login       string   `json:"login"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &me))
	assert.Equal(t, "alice", me.Login)
	assert.Equal(t, "SUBSCRIBER", me.Role)
	assert.Equal(t, []string{"SUBSCRIBER", "USER"}, me.Permissions)
}

/*
TestHandler_Errors checks the status and code of each failure.
*/
func TestHandler_Errors(t *testing.T) {
	server := newAuthServer(t)
	doRequest(t, server, http.MethodPost, "/signUp", `{"login":"alice","password":"pw"}`, "")

	tests := []struct {
		name   string
		method string
		target string
		body   string
		token  string
		status int
		code   string
	}{
		{"invalid_json", http.MethodPost, "/signUp", `{"login":`, "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown_role", http.MethodPost, "/signUp", `{"login":"bob","password":"pw","role":"ROOT"}`, "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown_login", http.MethodPost, "/signIn", `{"login":"mallory","password":"pw"}`, "", http.StatusNotFound, "UNKNOWN_LOGIN"},
		{"bad_password", http.MethodPost, "/signIn", `{"login":"alice","password":"nope"}`, "", http.StatusUnauthorized, "BAD_CREDENTIALS"},
		{"me_anonymous", http.MethodGet, "/me", "", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"me_bad_token", http.MethodGet, "/me", "", "not-a-token", http.StatusUnauthorized, "TOKEN_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := doRequest(t, server, tt.method, tt.target, tt.body, tt.token)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

/*
TestHandler_Check verifies the token check never fails the request.
*/
func TestHandler_Check(t *testing.T) {
	server := newAuthServer(t)
	_, body := doRequest(t, server, http.MethodPost, "/signUp", `{"login":"alice","password":"pw"}`, "")
	token := accessToken(t, body.Data)

	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{"valid", token, true},
		{"missing", "", false},
		{"garbage", "garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := doRequest(t, server, http.MethodPost, "/check", "", tt.token)
			require.Equal(t, http.StatusOK, recorder.Code)

			var result struct {
				Valid bool `json:"valid"`
			}
			require.NoError(t, json.Unmarshal(body.Data, &result))
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}
