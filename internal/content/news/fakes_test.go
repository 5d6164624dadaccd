// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news_test

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/taibuivan/newsgate/internal/content/comment"
	"github.com/taibuivan/newsgate/internal/content/news"
	"github.com/taibuivan/newsgate/internal/platform/apperr"
	"github.com/taibuivan/newsgate/internal/platform/sec"
	"github.com/taibuivan/newsgate/pkg/pagination"
)

type memoryClient struct {
	mu     sync.Mutex
	items  map[int64]news.News
	nextID int64

	deletedBy map[int64]int64
	writes    int
}

var _ news.Client = (*memoryClient)(nil)

func newMemoryClient(seed ...news.News) *memoryClient {
	client := &memoryClient{items: map[int64]news.News{}, deletedBy: map[int64]int64{}, nextID: 100}
	for _, item := range seed {
		client.items[item.ID] = item
	}
	return client
}

func (c *memoryClient) filter(match func(news.News) bool, params pagination.Params) *pagination.Page[news.News] {
	c.mu.Lock()
	defer c.mu.Unlock()

	matched := []news.News{}
	for _, item := range c.items {
		if match(item) {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := min(params.Offset, len(matched))
	end := min(start+params.Limit, len(matched))

	return &pagination.Page[news.News]{
		Content:       matched[start:end],
		Offset:        params.Offset,
		Limit:         params.Limit,
		TotalElements: total,
	}
}

func (c *memoryClient) List(_ context.Context, params pagination.Params) (*pagination.Page[news.News], error) {
	return c.filter(func(news.News) bool { return true }, params), nil
}

func (c *memoryClient) Get(_ context.Context, id int64) (*news.News, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return nil, apperr.NotFound("News")
	}
	return &item, nil
}

func (c *memoryClient) GetWithComments(ctx context.Context, id int64, params pagination.Params) (*news.News, error) {
	item, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Comments = []comment.Comment{{ID: 1, Text: "first!", Username: "bob", NewsID: id}}
	return item, nil
}

func (c *memoryClient) SearchByText(_ context.Context, text string, params pagination.Params) (*pagination.Page[news.News], error) {
	return c.filter(func(item news.News) bool { return strings.Contains(item.Text, text) }, params), nil
}

func (c *memoryClient) SearchByTitle(_ context.Context, title string, params pagination.Params) (*pagination.Page[news.News], error) {
	return c.filter(func(item news.News) bool { return strings.Contains(item.Title, title) }, params), nil
}

func (c *memoryClient) Create(_ context.Context, input news.CreateInput) (*news.News, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writes++
	c.nextID++
	created := news.News{ID: c.nextID, Title: input.Title, Text: input.Text, UserID: input.UserID}
	c.items[created.ID] = created
	return &created, nil
}

func (c *memoryClient) Update(_ context.Context, input news.UpdateInput) (*news.News, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[input.ID]; !ok {
		return nil, apperr.NotFound("News")
	}
	c.writes++
	updated := news.News{ID: input.ID, Title: input.Title, Text: input.Text, UserID: input.UserID}
	c.items[input.ID] = updated
	return &updated, nil
}

func (c *memoryClient) Delete(_ context.Context, id, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return apperr.NotFound("News")
	}
	c.writes++
	delete(c.items, id)
	c.deletedBy[id] = userID
	return nil
}

func (c *memoryClient) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

var (
	journalist = sec.NewPrincipal(1, "jane", sec.RoleJournalist)
	rival      = sec.NewPrincipal(2, "rick", sec.RoleJournalist)
	admin      = sec.NewPrincipal(9, "root", sec.RoleAdmin)
)

func seedNews() []news.News {
	return []news.News{
		{ID: 1, Title: "Go 1.24 released", Text: "generic type aliases", UserID: 1},
		{ID: 2, Title: "Local elections", Text: "turnout was high", UserID: 2},
		{ID: 3, Title: "Weather", Text: "rain all week", UserID: 2},
	}
}

func newTestService(t *testing.T) (*news.Service, *memoryClient) {
	t.Helper()
	client := newMemoryClient(seedNews()...)
	return news.NewService(client, slog.New(slog.DiscardHandler)), client
}
