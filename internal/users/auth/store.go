// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Credential Data Access

// UserRepository defines the data access contract for stored credentials.
//
// It must be safe for concurrent use. Create is the only write path and
// must enforce login uniqueness atomically.
type UserRepository interface {

	/*
		FindByLogin returns the credential with the given login (exact, case-sensitive match).

		Parameters:
		  - context: context.Context
		  - login: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound when absent, storage failures otherwise
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		Create persists a new credential and fills in its ID and CreatedAt.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrDuplicateLogin when the login is taken, storage failures otherwise
	*/
	Create(context context.Context, user *User) error
}

// # Sign-in Attempt Tracking

// AttemptRepository counts failed sign-in attempts per login inside a sliding window.
type AttemptRepository interface {

	/*
		Count returns the number of failures recorded in the current window.

		Parameters:
		  - context: context.Context
		  - login: string

		Returns:
		  - int64: Failure count, zero when nothing is recorded
		  - error: Storage failures
	*/
	Count(context context.Context, login string) (int64, error)

	/*
		Increment records one failure. The window starts at the first failure.

		Parameters:
		  - context: context.Context
		  - login: string
		  - window: time.Duration

		Returns:
		  - int64: Failure count after the increment
		  - error: Storage failures
	*/
	Increment(context context.Context, login string, window time.Duration) (int64, error)

	/*
		Reset clears the failures of a login.

		Parameters:
		  - context: context.Context
		  - login: string

		Returns:
		  - error: Storage failures
	*/
	Reset(context context.Context, login string) error
}
