// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, role and
// ownership checks) from the domain logic. The [TokenService] is injected into the
// Application layer and the HTTP middleware through small interfaces.
package sec

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
)

// # Errors

var (
	// ErrTokenCreation is returned when a token cannot be signed.
	ErrTokenCreation = apperr.New("TOKEN_CREATION_FAILED", "Error while generating token", http.StatusInternalServerError)

	// ErrTokenInvalid is returned for malformed, tampered, or expired tokens.
	ErrTokenInvalid = apperr.New("TOKEN_INVALID", "Invalid or expired token", http.StatusUnauthorized)
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The subject is the user's login. The same value is mirrored in the
// "username" claim for services that read the payload without verifying it.
type AuthClaims struct {
	jwt.RegisteredClaims

	Username string `json:"username"`
}

// IssuedToken is a signed token together with its absolute expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// It holds no mutable state after construction and is safe for concurrent use.
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
	now        func() time.Time
}

// Option customizes a [TokenService].
type Option func(*TokenService)

// WithClock replaces the wall clock used for issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService signing with the shared secret.
func NewTokenService(secret, issuer string, timeToLive time.Duration, options ...Option) (*TokenService, error) {
	if timeToLive <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", timeToLive)
	}

	service := &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		timeToLive: timeToLive,
		now:        time.Now,
	}

	for _, option := range options {
		option(service)
	}

	return service, nil
}

// TimeToLive returns the fixed lifetime of issued tokens.
func (service *TokenService) TimeToLive() time.Duration {
	return service.timeToLive
}

// Issue creates a signed token for subject, valid for the configured TTL.
func (service *TokenService) Issue(subject string) (*IssuedToken, error) {
	if len(service.secret) == 0 {
		return nil, ErrTokenCreation.WithCause(errors.New("sec: signing secret is empty"))
	}
	if strings.TrimSpace(subject) == "" {
		return nil, ErrTokenCreation.WithCause(errors.New("sec: subject is empty"))
	}

	issuedAt := service.now().UTC()
	expiresAt := issuedAt.Add(service.timeToLive)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: subject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return nil, ErrTokenCreation.WithCause(fmt.Errorf("sec: failed to sign token: %w", err))
	}

	// NumericDate has second precision, report what is actually embedded.
	return &IssuedToken{
		Value:     signedToken,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks the signature and expiry of a token and returns its subject.
//
// A token is rejected once the current time reaches the embedded expiry.
func (service *TokenService) Verify(tokenString string) (string, error) {
	claims := &AuthClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Reject non-canonical base64url so every character of the token is significant.
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return "", ErrTokenInvalid.WithCause(err)
	}

	// The jwt validator accepts now == exp; this service does not.
	if !service.now().Before(claims.ExpiresAt.Time) {
		return "", ErrTokenInvalid.WithCause(jwt.ErrTokenExpired)
	}

	if claims.Subject == "" {
		return "", ErrTokenInvalid.WithCause(errors.New("sec: token has no subject"))
	}

	return claims.Subject, nil
}
