// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment exposes the comment service through the gateway.

Reads are passed through. Create, update and delete are allowed only for the
comment's author or an admin, checked before the downstream call is made.
*/
package comment

import "time"

// # Domain Entities

// Comment is the downstream comment representation. Ownership is by login.
type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	NewsID    int64     `json:"newsId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput is the body of a comment creation.
type CreateInput struct {
	Text     string `json:"text"`
	Username string `json:"username"`
	NewsID   int64  `json:"newsId"`
}

// UpdateInput is the body of a comment update.
type UpdateInput struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Username string `json:"username"`
}

// # Field Identifiers

const (
	FieldID       = "id"
	FieldText     = "text"
	FieldUsername = "username"
	FieldNewsID   = "newsId"
)

// TextMaxLength bounds comment bodies before they are sent downstream.
const TextMaxLength = 2000
