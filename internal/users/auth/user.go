// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth owns the credential store and the token issuing flows.

It signs users up, signs them in, and turns a verified token subject back into
a [sec.Principal] on every request.

# Architecture

  - Service: SignUp, SignIn, Resolve and Check.
  - Repository: Postgres for credentials, Redis for failed sign-in counters.
  - Handler: the anonymous /api/auth endpoints plus /me.
*/
package auth

import (
	"time"

	"github.com/taibuivan/newsgate/internal/platform/sec"
)

// # Domain Entities

// User is a stored credential record.
//
// Login and ID never change after creation. The password is only ever
// held as a bcrypt hash.
type User struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal derives the request-scoped identity of the user.
func (u *User) Principal() *sec.Principal {
	return sec.NewPrincipal(u.ID, u.Login, u.Role)
}

// # Field Identifiers

const (
	FieldLogin    = "login"
	FieldPassword = "password"
	FieldRole     = "role"
)
