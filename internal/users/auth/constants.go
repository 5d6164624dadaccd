// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
)

// # Credential Constraints

const (
	LoginMinLength = 3
	LoginMaxLength = 64

	PasswordMinLength = 1

	// PasswordMaxBytes is bcrypt's input limit; longer passwords are rejected, not truncated.
	PasswordMaxBytes = 72
)

// # Sign-in Throttling Defaults

const (
	DefaultMaxAttempts   = 5
	DefaultAttemptWindow = 15 * time.Minute
)

// # Errors

var (
	// ErrDuplicateLogin is returned by SignUp when the login is taken.
	ErrDuplicateLogin = apperr.New("DUPLICATE_LOGIN", "Login already exists", http.StatusConflict)

	// ErrUnknownLogin is returned by SignIn when no account has the login.
	ErrUnknownLogin = apperr.New("UNKNOWN_LOGIN", "No account with this login", http.StatusNotFound)

	// ErrBadCredentials is returned by SignIn when the password does not match.
	ErrBadCredentials = apperr.New("BAD_CREDENTIALS", "Invalid login or password", http.StatusUnauthorized)

	// ErrUnknownPrincipal is returned when a valid token names an account that no longer exists.
	ErrUnknownPrincipal = apperr.New("UNKNOWN_PRINCIPAL", "Account for this token does not exist", http.StatusUnauthorized)

	// ErrSignInThrottled is returned while a login has too many recent failures.
	ErrSignInThrottled = apperr.New("SIGNIN_THROTTLED", "Too many failed sign-in attempts, try again later", http.StatusTooManyRequests)
)
