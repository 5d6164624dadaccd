// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid mints the correlation IDs attached to every gateway request.
//
// Version 7 values sort by creation time, so request IDs in aggregated logs
// line up with the order requests arrived in.
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string.
//
// It panics only if the OS random source fails.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	return uuid.Validate(s) == nil
}
