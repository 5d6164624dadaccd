// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/newsgate/internal/platform/sec"
	"github.com/taibuivan/newsgate/internal/platform/validate"
	"github.com/taibuivan/newsgate/pkg/pagination"
)

// Service applies the ownership guard around the comment service calls.
type Service struct {
	client Client
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(client Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// # Reads

func (service *Service) Get(context context.Context, id int64) (*Comment, error) {
	return service.client.Get(context, id)
}

func (service *Service) SearchByText(context context.Context, text string, params pagination.Params) (*pagination.Page[Comment], error) {
	return service.client.SearchByText(context, text, params)
}

func (service *Service) SearchByUsername(context context.Context, username string, params pagination.Params) (*pagination.Page[Comment], error) {
	return service.client.SearchByUsername(context, username, params)
}

func (service *Service) ListByNews(context context.Context, newsID int64, params pagination.Params) (*pagination.Page[Comment], error) {
	return service.client.ListByNews(context, newsID, params)
}

// # Writes

/*
Create posts a comment in the name of input.Username.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (the caller)
  - input: CreateInput

Returns:
  - *Comment: The stored comment
  - error: Validation errors, sec.ErrAccessDenied unless the caller is the named author or an admin, downstream errors
*/
func (service *Service) Create(context context.Context, principal *sec.Principal, input CreateInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, TextMaxLength).
		Required(FieldUsername, input.Username).
		Positive(FieldNewsID, input.NewsID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.guard(context, principal, input.Username, "create"); err != nil {
		return nil, err
	}

	return service.client.Create(context, input)
}

/*
Update edits a comment.

Description: Both the stored author and the author named in the body must be
the caller, so a non-admin can neither edit someone else's comment nor hand
their own over.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - input: UpdateInput

Returns:
  - *Comment: The updated comment
  - error: Validation errors, NotFound, sec.ErrAccessDenied, downstream errors
*/
func (service *Service) Update(context context.Context, principal *sec.Principal, input UpdateInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldID, input.ID).
		Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, TextMaxLength).
		Required(FieldUsername, input.Username)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing, err := service.client.Get(context, input.ID)
	if err != nil {
		return nil, err
	}

	if err := service.guard(context, principal, existing.Username, "update"); err != nil {
		return nil, err
	}
	if err := service.guard(context, principal, input.Username, "update"); err != nil {
		return nil, err
	}

	return service.client.Update(context, input)
}

/*
Delete removes a comment after checking its stored author.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - id: int64

Returns:
  - error: NotFound, sec.ErrAccessDenied, downstream errors
*/
func (service *Service) Delete(context context.Context, principal *sec.Principal, id int64) error {
	existing, err := service.client.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.guard(context, principal, existing.Username, "delete"); err != nil {
		return err
	}

	if err := service.client.Delete(context, id, principal.UserID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comment_deleted",
		slog.Int64("comment_id", id),
		slog.Any("principal", principal),
	)
	return nil
}

func (service *Service) guard(context context.Context, principal *sec.Principal, owner, action string) error {
	if err := sec.AssertOwnerOrAdmin(principal, sec.OwnerLogin(owner)); err != nil {
		service.logger.WarnContext(context, "access_denied",
			slog.String("resource", "comment"),
			slog.String("action", action),
			slog.String("owner", owner),
			slog.Any("principal", principal),
		)
		return err
	}
	return nil
}
