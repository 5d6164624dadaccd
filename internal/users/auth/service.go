// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/newsgate/internal/platform/dberr"
	"github.com/taibuivan/newsgate/internal/platform/sec"
	"github.com/taibuivan/newsgate/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider issues and verifies bearer tokens.
type TokenProvider interface {
	Issue(subject string) (*sec.IssuedToken, error)
	Verify(token string) (string, error)
}

// Service implements sign-up, sign-in and principal resolution.
//
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	userRepository    UserRepository
	attemptRepository AttemptRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger

	maxAttempts   int64
	attemptWindow time.Duration
}

// Option customizes a [Service].
type Option func(*Service)

// WithThrottle enables failed sign-in counting. A login is refused once it
// reaches maxAttempts failures inside window.
func WithThrottle(repository AttemptRepository, maxAttempts int, window time.Duration) Option {
	return func(service *Service) {
		service.attemptRepository = repository
		service.maxAttempts = int64(maxAttempts)
		service.attemptWindow = window
	}
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(users UserRepository, tokens TokenProvider, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		userRepository: users,
		tokenProvider:  tokens,
		logger:         logger,
		maxAttempts:    DefaultMaxAttempts,
		attemptWindow:  DefaultAttemptWindow,
	}

	for _, option := range options {
		option(service)
	}

	return service
}

// TokenResult is the payload returned by sign-up and sign-in.
type TokenResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"-"`
}

// normalizeLogin puts a login in Unicode NFC so visually equal logins compare equal.
func normalizeLogin(login string) string {
	return norm.NFC.String(login)
}

// # Registration Flow

// SignUpInput holds the data required to create a credential.
type SignUpInput struct {
	Login    string
	Password string
	Role     string
}

/*
SignUp validates, hashes and persists a new credential, then issues a token for it.

Description: The FindByLogin pre-check only provides a fast, friendly failure.
Concurrent sign-ups for the same login are settled by the store's unique index,
which also yields ErrDuplicateLogin.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *TokenResult: Freshly issued token for the login
  - error: Validation errors, ErrDuplicateLogin, or storage and signing failures
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*TokenResult, error) {
	login := normalizeLogin(input.Login)
	role, knownRole := sec.ParseRole(input.Role)

	validator := &validate.Validator{}
	validator.Required(FieldLogin, login).
		MinLen(FieldLogin, login, LoginMinLength).
		MaxLen(FieldLogin, login, LoginMaxLength).
		Custom(FieldLogin, login != strings.TrimSpace(login), "Must not start or end with whitespace").
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		MaxBytes(FieldPassword, input.Password, PasswordMaxBytes).
		Custom(FieldRole, !knownRole, "Must be one of: ADMIN, JOURNALIST, SUBSCRIBER, USER")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Fast path. The unique index remains the authority.
	_, err := service.userRepository.FindByLogin(context, login)
	if err == nil {
		return nil, ErrDuplicateLogin
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Login:        login,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_signed_up",
		slog.Int64("user_id", user.ID),
		slog.String("login", user.Login),
		slog.String("role", string(user.Role)),
	)

	return service.issue(login)
}

// # Authentication Flow

/*
SignIn checks a login and password and issues a token on success.

Description: When throttling is enabled, repeated wrong passwords for one login
lock it out until the attempt window lapses. A throttle store outage is logged
and ignored so Redis never blocks sign-in.

Parameters:
  - context: context.Context
  - login: string
  - password: string

Returns:
  - *TokenResult: Freshly issued token
  - error: ErrUnknownLogin, ErrBadCredentials, ErrSignInThrottled, or internal failures
*/
func (service *Service) SignIn(context context.Context, login, password string) (*TokenResult, error) {
	login = normalizeLogin(login)

	validator := &validate.Validator{}
	validator.Required(FieldLogin, login).
		Required(FieldPassword, password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if service.throttled(context, login) {
		return nil, ErrSignInThrottled
	}

	user, err := service.userRepository.FindByLogin(context, login)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrUnknownLogin
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		service.recordFailure(context, login)
		return nil, ErrBadCredentials
	}

	service.clearFailures(context, login)

	return service.issue(user.Login)
}

func (service *Service) issue(login string) (*TokenResult, error) {
	token, err := service.tokenProvider.Issue(login)
	if err != nil {
		return nil, err
	}

	return &TokenResult{AccessToken: token.Value, ExpiresAt: token.ExpiresAt}, nil
}

// # Principal Resolution

/*
Resolve loads the credential named by a verified token subject.

Description: Runs on every authenticated request. Nothing is cached, so a
deleted account stops authenticating immediately.

Parameters:
  - context: context.Context
  - subject: string (the login carried by the token)

Returns:
  - *sec.Principal: Identity with role-derived permissions
  - error: ErrUnknownPrincipal when absent, storage failures otherwise
*/
func (service *Service) Resolve(context context.Context, subject string) (*sec.Principal, error) {
	user, err := service.userRepository.FindByLogin(context, subject)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrUnknownPrincipal
		}
		return nil, err
	}

	return user.Principal(), nil
}

// Check reports whether token verifies and names an existing account.
// Any failure, including storage errors, yields false.
func (service *Service) Check(context context.Context, token string) bool {
	subject, err := service.tokenProvider.Verify(token)
	if err != nil {
		return false
	}

	if _, err := service.Resolve(context, subject); err != nil {
		if !errors.Is(err, ErrUnknownPrincipal) {
			service.logger.WarnContext(context, "token_check_resolve_failed", slog.Any("error", err))
		}
		return false
	}

	return true
}

// # Sign-in Throttling

func (service *Service) throttled(context context.Context, login string) bool {
	if service.attemptRepository == nil {
		return false
	}

	count, err := service.attemptRepository.Count(context, login)
	if err != nil {
		service.logger.WarnContext(context, "signin_throttle_unavailable", slog.Any("error", err))
		return false
	}

	return count >= service.maxAttempts
}

func (service *Service) recordFailure(context context.Context, login string) {
	if service.attemptRepository == nil {
		return
	}

	count, err := service.attemptRepository.Increment(context, login, service.attemptWindow)
	if err != nil {
		service.logger.WarnContext(context, "signin_throttle_unavailable", slog.Any("error", err))
		return
	}

	if count >= service.maxAttempts {
		service.logger.WarnContext(context, "signin_throttled",
			slog.String("login", login),
			slog.Int64("failures", count),
		)
	}
}

func (service *Service) clearFailures(context context.Context, login string) {
	if service.attemptRepository == nil {
		return
	}

	if err := service.attemptRepository.Reset(context, login); err != nil {
		service.logger.WarnContext(context, "signin_throttle_unavailable", slog.Any("error", err))
	}
}
