// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns used by hand-written SQL.
package schema

// UserTable represents the 'users.credential' table.
type UserTable struct {
	Table     string
	ID        string
	Login     string
	Password  string
	Role      string
	CreatedAt string
}

// User is the schema definition for users.credential.
var User = UserTable{
	Table:     "users.credential",
	ID:        "id",
	Login:     "login",
	Password:  "passwordhash",
	Role:      "role",
	CreatedAt: "createdat",
}

// Columns returns every column in scan order.
func (t UserTable) Columns() []string {
	return []string{t.ID, t.Login, t.Password, t.Role, t.CreatedAt}
}
