// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"context"
	"fmt"
	"net/url"

	"github.com/taibuivan/newsgate/internal/platform/httpclient"
	"github.com/taibuivan/newsgate/pkg/pagination"
)

// Client defines the calls made to the news service.
type Client interface {
	List(context context.Context, params pagination.Params) (*pagination.Page[News], error)
	Get(context context.Context, id int64) (*News, error)
	GetWithComments(context context.Context, id int64, params pagination.Params) (*News, error)
	SearchByText(context context.Context, text string, params pagination.Params) (*pagination.Page[News], error)
	SearchByTitle(context context.Context, title string, params pagination.Params) (*pagination.Page[News], error)
	Create(context context.Context, input CreateInput) (*News, error)
	Update(context context.Context, input UpdateInput) (*News, error)
	Delete(context context.Context, id, userID int64) error
}

// HTTPClient implements [Client] over the news service's REST API.
type HTTPClient struct {
	http *httpclient.Client
}

// NewHTTPClient wraps a configured downstream client.
func NewHTTPClient(client *httpclient.Client) *HTTPClient {
	return &HTTPClient{http: client}
}

func (c *HTTPClient) List(context context.Context, params pagination.Params) (*pagination.Page[News], error) {
	return c.page(context, "", params)
}

func (c *HTTPClient) Get(context context.Context, id int64) (*News, error) {
	return c.one(context, fmt.Sprintf("/%d", id), nil)
}

// GetWithComments reads a news item with one page of its comments attached.
func (c *HTTPClient) GetWithComments(context context.Context, id int64, params pagination.Params) (*News, error) {
	return c.one(context, fmt.Sprintf("/%d/comments", id), params.Query())
}

func (c *HTTPClient) SearchByText(context context.Context, text string, params pagination.Params) (*pagination.Page[News], error) {
	return c.page(context, "/search/text/"+url.PathEscape(text), params)
}

func (c *HTTPClient) SearchByTitle(context context.Context, title string, params pagination.Params) (*pagination.Page[News], error) {
	return c.page(context, "/search/title/"+url.PathEscape(title), params)
}

func (c *HTTPClient) Create(context context.Context, input CreateInput) (*News, error) {
	news := &News{}
	if err := c.http.Post(context, "", input, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (c *HTTPClient) Update(context context.Context, input UpdateInput) (*News, error) {
	news := &News{}
	if err := c.http.Put(context, "", input, news); err != nil {
		return nil, err
	}
	return news, nil
}

// Delete removes a news item on behalf of userID.
func (c *HTTPClient) Delete(context context.Context, id, userID int64) error {
	return c.http.Delete(context, fmt.Sprintf("/%d/%d", id, userID))
}

func (c *HTTPClient) one(context context.Context, path string, query url.Values) (*News, error) {
	news := &News{}
	if err := c.http.Get(context, path, query, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (c *HTTPClient) page(context context.Context, path string, params pagination.Params) (*pagination.Page[News], error) {
	page := &pagination.Page[News]{}
	if err := c.http.Get(context, path, params.Query(), page); err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []News{}
	}
	if page.Limit == 0 {
		page.Offset, page.Limit = params.Offset, params.Limit
	}
	return page, nil
}
