// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/newsgate/internal/platform/middleware"
	requestutil "github.com/taibuivan/newsgate/internal/platform/request"
	"github.com/taibuivan/newsgate/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the /api/auth endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signUp : Creates a credential and returns a token.
//   - POST /signIn : Authenticates and returns a token.
//   - POST /check  : Reports whether the bearer token is usable.
//   - GET  /me     : Returns the caller (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signUp", handler.signUp)
	router.Post("/signIn", handler.signIn)
	router.Post("/check", handler.check)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type signUpRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type signInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type checkResponse struct {
	Valid bool `json:"valid"`
}

type meResponse struct {
	ID          int64    `json:"id"`
	Login       string   `json:"login"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

/*
SignUp creates a credential.

POST /api/auth/signUp

Request:
  - Body: signUpRequest (login, password, role)

Response:
  - 200: {accessToken}
  - 400: Validation failure
  - 409: DUPLICATE_LOGIN
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.SignUp(request.Context(), SignUpInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
SignIn authenticates a login and password.

POST /api/auth/signIn

Request:
  - Body: signInRequest (login, password)

Response:
  - 200: {accessToken}
  - 401: BAD_CREDENTIALS
  - 404: UNKNOWN_LOGIN
  - 429: SIGNIN_THROTTLED
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.SignIn(request.Context(), input.Login, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Check answers whether the bearer token verifies and names an existing account.

POST /api/auth/check

Request:
  - Header: Authorization: Bearer <token>

Response:
  - 200: {valid}. A missing or malformed header is simply not valid.
*/
func (handler *Handler) check(writer http.ResponseWriter, request *http.Request) {
	token, _, err := requestutil.BearerToken(request)
	if err != nil || token == "" {
		respond.OK(writer, checkResponse{Valid: false})
		return
	}

	respond.OK(writer, checkResponse{Valid: handler.authService.Check(request.Context(), token)})
}

/*
Me returns the authenticated caller.

GET /api/auth/me

Response:
  - 200: meResponse
  - 401: Anonymous request
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	permissions := make([]string, 0, len(principal.Permissions))
	for _, permission := range principal.Permissions.List() {
		permissions = append(permissions, string(permission))
	}

	respond.OK(writer, meResponse{
		ID:          principal.UserID,
		Login:       principal.Login,
		Role:        string(principal.Role),
		Permissions: permissions,
	})
}
