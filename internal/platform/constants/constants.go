// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared across gateway layers:
// server timing, rate limits, header names and wire field names.
package constants

import "time"

const (
	AppName    = "newsgate-api"
	AppVersion = "0.1.0-dev"
)

// # HTTP Server

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 40 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout bounds a whole request, downstream calls included.
	// It must exceed the downstream call timeout and stay under DefaultWriteTimeout.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second
)

// # Per-IP Rate Limit

const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// Buckets idle longer than RateLimitClientTTL are swept every RateLimitCleanupInterval.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Tokens

const (
	AuthIssuer   = "newsgate.app"
	BearerScheme = "Bearer"
)

// RedisPrefixSignInAttempts prefixes the failed sign-in counter, keyed by login.
const RedisPrefixSignInAttempts = "newsgate:signin:attempts:"

// # Headers

const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderOrigin        = "Origin"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXRequestID    = "X-Request-ID"

	ContentTypeJSON = "application/json; charset=utf-8"
)

// # Response Fields

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
