// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package news exposes the news service through the gateway.

News items are owned by the numeric id of their author. Only the author or an
admin may create, edit or delete them. Reads are open to any signed-in user.
*/
package news

import (
	"time"

	"github.com/taibuivan/newsgate/internal/content/comment"
)

// # Domain Entities

// News is the downstream news representation.
//
// Comments is only populated by the with-comments read.
type News struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	UserID    int64             `json:"userId"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Comments  []comment.Comment `json:"comments,omitempty"`
}

// CreateInput is the body of a news creation.
type CreateInput struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	UserID int64  `json:"userId"`
}

// UpdateInput is the body of a news update.
type UpdateInput struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	UserID int64  `json:"userId"`
}

// # Field Identifiers

const (
	FieldID     = "id"
	FieldTitle  = "title"
	FieldText   = "text"
	FieldUserID = "userId"
)

const (
	TitleMaxLength = 255
	TextMaxLength  = 20000
)
