// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"net/url"

	"github.com/taibuivan/newsgate/internal/platform/httpclient"
	"github.com/taibuivan/newsgate/pkg/pagination"
)

// # Downstream Access

// Client defines the calls made to the comment service.
type Client interface {
	Get(context context.Context, id int64) (*Comment, error)
	SearchByText(context context.Context, text string, params pagination.Params) (*pagination.Page[Comment], error)
	SearchByUsername(context context.Context, username string, params pagination.Params) (*pagination.Page[Comment], error)
	ListByNews(context context.Context, newsID int64, params pagination.Params) (*pagination.Page[Comment], error)
	Create(context context.Context, input CreateInput) (*Comment, error)
	Update(context context.Context, input UpdateInput) (*Comment, error)
	Delete(context context.Context, id, userID int64) error
}

// HTTPClient implements [Client] over the comment service's REST API.
type HTTPClient struct {
	http *httpclient.Client
}

// NewHTTPClient wraps a configured downstream client.
func NewHTTPClient(client *httpclient.Client) *HTTPClient {
	return &HTTPClient{http: client}
}

func (c *HTTPClient) Get(context context.Context, id int64) (*Comment, error) {
	comment := &Comment{}
	if err := c.http.Get(context, fmt.Sprintf("/%d", id), nil, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (c *HTTPClient) SearchByText(context context.Context, text string, params pagination.Params) (*pagination.Page[Comment], error) {
	return c.page(context, "/search/text/"+url.PathEscape(text), params)
}

func (c *HTTPClient) SearchByUsername(context context.Context, username string, params pagination.Params) (*pagination.Page[Comment], error) {
	return c.page(context, "/search/username/"+url.PathEscape(username), params)
}

func (c *HTTPClient) ListByNews(context context.Context, newsID int64, params pagination.Params) (*pagination.Page[Comment], error) {
	return c.page(context, fmt.Sprintf("/news/%d", newsID), params)
}

func (c *HTTPClient) Create(context context.Context, input CreateInput) (*Comment, error) {
	comment := &Comment{}
	if err := c.http.Post(context, "", input, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (c *HTTPClient) Update(context context.Context, input UpdateInput) (*Comment, error) {
	comment := &Comment{}
	if err := c.http.Put(context, "", input, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment on behalf of userID.
func (c *HTTPClient) Delete(context context.Context, id, userID int64) error {
	return c.http.Delete(context, fmt.Sprintf("/%d/%d", id, userID))
}

func (c *HTTPClient) page(context context.Context, path string, params pagination.Params) (*pagination.Page[Comment], error) {
	page := &pagination.Page[Comment]{}
	if err := c.http.Get(context, path, params.Query(), page); err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []Comment{}
	}
	if page.Limit == 0 {
		page.Offset, page.Limit = params.Offset, params.Limit
	}
	return page, nil
}
