// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/taibuivan/newsgate/internal/content/comment"
	"github.com/taibuivan/newsgate/internal/platform/apperr"
	"github.com/taibuivan/newsgate/internal/platform/sec"
	"github.com/taibuivan/newsgate/pkg/pagination"
)

// memoryClient stands in for the comment service.
type memoryClient struct {
	mu       sync.Mutex
	comments map[int64]comment.Comment
	nextID   int64

	deletedBy map[int64]int64
	writes    int
}

var _ comment.Client = (*memoryClient)(nil)

func newMemoryClient(seed ...comment.Comment) *memoryClient {
	client := &memoryClient{
		comments:  map[int64]comment.Comment{},
		deletedBy: map[int64]int64{},
		nextID:    100,
	}
	for _, c := range seed {
		client.comments[c.ID] = c
	}
	return client
}

func (c *memoryClient) Get(_ context.Context, id int64) (*comment.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	found, ok := c.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return &found, nil
}

func (c *memoryClient) filter(match func(comment.Comment) bool, params pagination.Params) *pagination.Page[comment.Comment] {
	c.mu.Lock()
	defer c.mu.Unlock()

	content := []comment.Comment{}
	for _, candidate := range c.comments {
		if match(candidate) {
			content = append(content, candidate)
		}
	}
	return &pagination.Page[comment.Comment]{
		Content:       content,
		Offset:        params.Offset,
		Limit:         params.Limit,
		TotalElements: int64(len(content)),
	}
}

func (c *memoryClient) SearchByText(_ context.Context, text string, params pagination.Params) (*pagination.Page[comment.Comment], error) {
	return c.filter(func(candidate comment.Comment) bool { return strings.Contains(candidate.Text, text) }, params), nil
}

func (c *memoryClient) SearchByUsername(_ context.Context, username string, params pagination.Params) (*pagination.Page[comment.Comment], error) {
	return c.filter(func(candidate comment.Comment) bool { return candidate.Username == username }, params), nil
}

func (c *memoryClient) ListByNews(_ context.Context, newsID int64, params pagination.Params) (*pagination.Page[comment.Comment], error) {
	return c.filter(func(candidate comment.Comment) bool { return candidate.NewsID == newsID }, params), nil
}

func (c *memoryClient) Create(_ context.Context, input comment.CreateInput) (*comment.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writes++
	c.nextID++
	created := comment.Comment{ID: c.nextID, Text: input.Text, Username: input.Username, NewsID: input.NewsID}
	c.comments[created.ID] = created
	return &created, nil
}

func (c *memoryClient) Update(_ context.Context, input comment.UpdateInput) (*comment.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.comments[input.ID]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	c.writes++
	existing.Text = input.Text
	existing.Username = input.Username
	c.comments[input.ID] = existing
	return &existing, nil
}

func (c *memoryClient) Delete(_ context.Context, id, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	c.writes++
	delete(c.comments, id)
	c.deletedBy[id] = userID
	return nil
}

func (c *memoryClient) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

var (
	alice = sec.NewPrincipal(1, "alice", sec.RoleSubscriber)
	bob   = sec.NewPrincipal(2, "bob", sec.RoleSubscriber)
	admin = sec.NewPrincipal(9, "root", sec.RoleAdmin)
)

func seedComments() []comment.Comment {
	return []comment.Comment{
		{ID: 1, Text: "first!", Username: "alice", NewsID: 10},
		{ID: 2, Text: "agreed", Username: "bob", NewsID: 10},
		{ID: 3, Text: "elsewhere", Username: "bob", NewsID: 11},
	}
}

func newTestService(t *testing.T) (*comment.Service, *memoryClient) {
	t.Helper()
	client := newMemoryClient(seedComments()...)
	return comment.NewService(client, slog.New(slog.DiscardHandler)), client
}
