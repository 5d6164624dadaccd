// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/newsgate/internal/api"
	"github.com/taibuivan/newsgate/internal/content/comment"
	"github.com/taibuivan/newsgate/internal/content/news"
	"github.com/taibuivan/newsgate/internal/platform/config"
	"github.com/taibuivan/newsgate/internal/platform/constants"
	"github.com/taibuivan/newsgate/internal/platform/dberr"
	"github.com/taibuivan/newsgate/internal/platform/httpclient"
	"github.com/taibuivan/newsgate/internal/platform/middleware"
	"github.com/taibuivan/newsgate/internal/platform/sec"
	"github.com/taibuivan/newsgate/internal/users/auth"
)

func TestMain(m *testing.M) {
	sec.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// memoryUsers is an in-process credential store.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func (m *memoryUsers) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[login]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Login]; ok {
		return auth.ErrDuplicateLogin
	}
	user.ID = int64(len(m.users) + 1)
	user.CreatedAt = time.Now()
	copied := *user
	m.users[user.Login] = &copied
	return nil
}

// downstream records the calls a fake news or comment service receives.
type downstream struct {
	mu    sync.Mutex
	calls []string
	auth  []string
}

func (d *downstream) record(request *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, request.Method+" "+request.URL.Path)
	d.auth = append(d.auth, request.Header.Get("Authorization"))
}

func (d *downstream) snapshot() ([]string, []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...), append([]string(nil), d.auth...)
}

func newsService(t *testing.T, recorder *downstream) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		recorder.record(request)

		switch {
		case request.Method == http.MethodGet && request.URL.Path == "/api/news/2":
			_ = json.NewEncoder(writer).Encode(news.News{ID: 2, Title: "Owned by someone else", UserID: 99})
		case request.Method == http.MethodDelete:
			writer.WriteHeader(http.StatusNoContent)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func commentService(t *testing.T, recorder *downstream) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		recorder.record(request)

		var input comment.CreateInput
		_ = json.NewDecoder(request.Body).Decode(&input)
		_ = json.NewEncoder(writer).Encode(comment.Comment{ID: 7, Text: input.Text, Username: input.Username, NewsID: input.NewsID})
	}))
	t.Cleanup(server.Close)
	return server
}

type gateway struct {
	handler  http.Handler
	news     *downstream
	comments *downstream
}

func newGateway(t *testing.T) *gateway {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	tokens, err := sec.NewTokenService("test-secret", constants.AuthIssuer, time.Hour)
	require.NoError(t, err)

	authService := auth.NewService(&memoryUsers{users: map[string]*auth.User{}}, tokens, logger)

	newsCalls, commentCalls := &downstream{}, &downstream{}
	newsClient := news.NewHTTPClient(httpclient.New("News", newsService(t, newsCalls).URL+"/api/news", time.Second))
	commentClient := comment.NewHTTPClient(httpclient.New("Comment", commentService(t, commentCalls).URL+"/api/comments", time.Second))

	liveness, readiness := api.NewHealthHandlers(logger, api.Probe{Name: "postgres", Check: func(context.Context) error { return nil }})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "development"}, logger,
		api.Security{Verifier: tokens, Resolver: authService, Policy: middleware.DefaultPolicy()},
		api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Auth:      auth.NewHandler(authService),
			News:      news.NewHandler(news.NewService(newsClient, logger)),
			Comment:   comment.NewHandler(comment.NewService(commentClient, logger)),
		},
	)

	return &gateway{handler: server.Handler(), news: newsCalls, comments: commentCalls}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Code string          `json:"code"`
}

func (g *gateway) do(t *testing.T, method, target, body, authorization string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}

	recorder := httptest.NewRecorder()
	g.handler.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder.Code, decoded
}

func (g *gateway) signUp(t *testing.T, login, password, role string) string {
	t.Helper()

	status, body := g.do(t, http.MethodPost, "/api/auth/signUp",
		`{"login":"`+login+`","password":"`+password+`","role":"`+role+`"}`, "")
	require.Equal(t, http.StatusOK, status, "sign up %s", login)

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &payload))
	return "Bearer " + payload.AccessToken
}

/*
TestGateway_SubscriberScenario follows a subscriber through sign-up, sign-in and commenting.
*/
func TestGateway_SubscriberScenario(t *testing.T) {
	g := newGateway(t)

	// 1. Sign up and sign in
	g.signUp(t, "alice", "pw", "SUBSCRIBER")
	status, body := g.do(t, http.MethodPost, "/api/auth/signIn", `{"login":"alice","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, status)

	var signedIn struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &signedIn))
	alice := "Bearer " + signedIn.AccessToken

	// 2. The principal carries SUBSCRIBER and USER
	status, body = g.do(t, http.MethodGet, "/api/auth/me", "", alice)
	require.Equal(t, http.StatusOK, status)
	var me struct {
		Login       string   `json:"login"`
		Permissions []string `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &me))
	assert.Equal(t, "alice", me.Login)
	assert.ElementsMatch(t, []string{"SUBSCRIBER", "USER"}, me.Permissions)

	// 3. Commenting as bob is denied before any downstream call
	status, body = g.do(t, http.MethodPost, "/api/comments", `{"text":"hi","username":"bob","newsId":1}`, alice)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "ACCESS_DENIED", body.Code)

	calls, _ := g.comments.snapshot()
	assert.Empty(t, calls)

	// 4. Commenting as herself goes through with the token forwarded
	status, _ = g.do(t, http.MethodPost, "/api/comments", `{"text":"hi","username":"alice","newsId":1}`, alice)
	assert.Equal(t, http.StatusOK, status)

	calls, authorizations := g.comments.snapshot()
	assert.Equal(t, []string{"POST /api/comments"}, calls)
	assert.Equal(t, []string{alice}, authorizations)

	// 5. Subscribers cannot write news
	status, body = g.do(t, http.MethodPost, "/api/news", `{"title":"t","text":"x","userId":1}`, alice)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Code)
}

/*
TestGateway_NewsDeletion checks the ownership guard for journalists and admins.
*/
func TestGateway_NewsDeletion(t *testing.T) {
	g := newGateway(t)

	jane := g.signUp(t, "jane", "pw", "JOURNALIST")
	root := g.signUp(t, "root", "pw", "ADMIN")

	// 1. A journalist cannot delete another author's news
	status, body := g.do(t, http.MethodDelete, "/api/news/2", "", jane)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "ACCESS_DENIED", body.Code)

	// 2. An admin can, and the downstream delete carries the admin's id
	status, _ = g.do(t, http.MethodDelete, "/api/news/2", "", root)
	assert.Equal(t, http.StatusNoContent, status)

	calls, _ := g.news.snapshot()
	assert.Equal(t, []string{
		"GET /api/news/2",
		"GET /api/news/2",
		"DELETE /api/news/2/2",
	}, calls)
}

/*
TestGateway_Authentication covers anonymous access and invalid tokens at the edge.
*/
func TestGateway_Authentication(t *testing.T) {
	g := newGateway(t)
	g.signUp(t, "alice", "pw", "SUBSCRIBER")

	tests := []struct {
		name          string
		method        string
		target        string
		body          string
		authorization string
		wantStatus    int
		wantCode      string
	}{
		{"anonymous_read", http.MethodGet, "/api/news", "", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage_token", http.MethodGet, "/api/news", "", "Bearer garbage", http.StatusUnauthorized, "TOKEN_INVALID"},
		{"sign_in_ignores_stale_token", http.MethodPost, "/api/auth/signIn", `{"login":"alice","password":"pw"}`, "Bearer garbage", http.StatusOK, ""},
		{"wrong_password", http.MethodPost, "/api/auth/signIn", `{"login":"alice","password":"nope"}`, "", http.StatusUnauthorized, "BAD_CREDENTIALS"},
		{"unknown_login", http.MethodPost, "/api/auth/signIn", `{"login":"nobody","password":"pw"}`, "", http.StatusNotFound, "UNKNOWN_LOGIN"},
		{"me_anonymous", http.MethodGet, "/api/auth/me", "", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"health", http.MethodGet, "/health", "", "", http.StatusOK, ""},
		{"ready", http.MethodGet, "/ready", "", "", http.StatusOK, ""},
		{"health_ignores_stale_token", http.MethodGet, "/health", "", "Bearer garbage", http.StatusOK, ""},
		{"ready_ignores_stale_token", http.MethodGet, "/ready", "", "Bearer garbage", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := g.do(t, tt.method, tt.target, tt.body, tt.authorization)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

/*
TestGateway_EncodedTraversal keeps escaped dot segments from skipping the route policy.
*/
func TestGateway_EncodedTraversal(t *testing.T) {
	g := newGateway(t)

	targets := map[string]string{
		"out_of_api":   "/api/news/search/text/%2E%2E%2F%2E%2E%2F%2E%2E%2F%2E%2E%2Fx",
		"onto_health":  "/api/comments/search/text/%2E%2E%2F%2E%2E%2F%2E%2E%2Fhealth",
		"onto_sign_in": "/api/news/search/title/%2E%2E%2F%2E%2E%2F%2E%2E%2Fauth%2FsignIn",
	}

	for name, target := range targets {
		t.Run(name, func(t *testing.T) {
			// 1. Anonymous callers are stopped at the edge
			status, body := g.do(t, http.MethodGet, target, "", "")
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "UNAUTHORIZED", body.Code)

			// 2. A stale token is verified, not skipped
			status, body = g.do(t, http.MethodGet, target, "", "Bearer garbage")
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "TOKEN_INVALID", body.Code)
		})
	}

	// 3. Nothing reached the downstream services
	newsCalls, _ := g.news.snapshot()
	commentCalls, _ := g.comments.snapshot()
	assert.Empty(t, newsCalls)
	assert.Empty(t, commentCalls)
}

/*
TestGateway_Check reports token validity without rejecting the request.
*/
func TestGateway_Check(t *testing.T) {
	g := newGateway(t)
	alice := g.signUp(t, "alice", "pw", "SUBSCRIBER")

	tests := []struct {
		name          string
		authorization string
		want          bool
	}{
		{"valid", alice, true},
		{"garbage", "Bearer garbage", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := g.do(t, http.MethodPost, "/api/auth/check", "", tt.authorization)
			require.Equal(t, http.StatusOK, status)

			var payload struct {
				Valid bool `json:"valid"`
			}
			require.NoError(t, json.Unmarshal(body.Data, &payload))
			assert.Equal(t, tt.want, payload.Valid)
		})
	}
}
