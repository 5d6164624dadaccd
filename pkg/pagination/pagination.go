// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination carries offset/limit windows between the gateway's
// clients and the news and comment services.
//
// Out-of-range query values are replaced by defaults rather than rejected, so
// a list endpoint always answers with some page.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultOffset = 0
	DefaultLimit  = 20
	MaxLimit      = 100
)

// Params is a requested window.
type Params struct {
	Offset int
	Limit  int
}

// FromRequest reads "offset" and "limit". A negative or unparsable offset
// becomes [DefaultOffset]; a limit outside 1..[MaxLimit] becomes [DefaultLimit].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	params := Params{Offset: DefaultOffset, Limit: DefaultLimit}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil && offset >= 0 {
		params.Offset = offset
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit >= 1 && limit <= MaxLimit {
		params.Limit = limit
	}
	return params
}

// Query is the downstream form of the window.
func (p Params) Query() url.Values {
	return url.Values{
		"offset": {strconv.Itoa(p.Offset)},
		"limit":  {strconv.Itoa(p.Limit)},
	}
}

// Meta is the "meta" block of a paged response.
type Meta struct {
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

func NewMeta(offset, limit int, total int64) Meta {
	return Meta{
		Offset:  offset,
		Limit:   limit,
		Total:   total,
		HasMore: int64(offset)+int64(limit) < total,
	}
}

// Page is a downstream list result.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Offset        int   `json:"offset"`
	Limit         int   `json:"limit"`
	TotalElements int64 `json:"totalElements"`
}

func (p *Page[T]) Meta() Meta {
	return NewMeta(p.Offset, p.Limit, p.TotalElements)
}
