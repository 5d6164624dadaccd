// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"context"
	"log/slog"

	"github.com/taibuivan/newsgate/internal/platform/sec"
	"github.com/taibuivan/newsgate/internal/platform/validate"
	"github.com/taibuivan/newsgate/pkg/pagination"
)

// Service applies the ownership guard around the news service calls.
type Service struct {
	client Client
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(client Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// # Reads

func (service *Service) List(context context.Context, params pagination.Params) (*pagination.Page[News], error) {
	return service.client.List(context, params)
}

func (service *Service) Get(context context.Context, id int64) (*News, error) {
	return service.client.Get(context, id)
}

// GetWithComments returns the news item with one page of its comments.
func (service *Service) GetWithComments(context context.Context, id int64, params pagination.Params) (*News, error) {
	return service.client.GetWithComments(context, id, params)
}

func (service *Service) SearchByText(context context.Context, text string, params pagination.Params) (*pagination.Page[News], error) {
	return service.client.SearchByText(context, text, params)
}

func (service *Service) SearchByTitle(context context.Context, title string, params pagination.Params) (*pagination.Page[News], error) {
	return service.client.SearchByTitle(context, title, params)
}

// # Writes

/*
Create publishes a news item under input.UserID.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - input: CreateInput

Returns:
  - *News: The stored item
  - error: Validation errors, sec.ErrAccessDenied unless the caller is input.UserID or an admin
*/
func (service *Service) Create(context context.Context, principal *sec.Principal, input CreateInput) (*News, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLength).
		Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, TextMaxLength).
		Positive(FieldUserID, input.UserID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.guard(context, principal, input.UserID, "create"); err != nil {
		return nil, err
	}

	created, err := service.client.Create(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "news_created",
		slog.Int64("news_id", created.ID),
		slog.Any("principal", principal),
	)
	return created, nil
}

/*
Update edits a news item.

Description: The stored owner is fetched first and must match the caller, as
must the userId in the body.

Returns:
  - *News: The updated item
  - error: Validation errors, NotFound, sec.ErrAccessDenied, downstream errors
*/
func (service *Service) Update(context context.Context, principal *sec.Principal, input UpdateInput) (*News, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldID, input.ID).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLength).
		Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, TextMaxLength).
		Positive(FieldUserID, input.UserID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing, err := service.client.Get(context, input.ID)
	if err != nil {
		return nil, err
	}

	if err := service.guard(context, principal, existing.UserID, "update"); err != nil {
		return nil, err
	}
	if err := service.guard(context, principal, input.UserID, "update"); err != nil {
		return nil, err
	}

	return service.client.Update(context, input)
}

/*
Delete removes a news item after checking its stored owner.

Returns:
  - error: NotFound, sec.ErrAccessDenied, downstream errors
*/
func (service *Service) Delete(context context.Context, principal *sec.Principal, id int64) error {
	existing, err := service.client.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.guard(context, principal, existing.UserID, "delete"); err != nil {
		return err
	}

	if err := service.client.Delete(context, id, principal.UserID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "news_deleted",
		slog.Int64("news_id", id),
		slog.Int64("owner_id", existing.UserID),
		slog.Any("principal", principal),
	)
	return nil
}

func (service *Service) guard(context context.Context, principal *sec.Principal, ownerID int64, action string) error {
	if err := sec.AssertOwnerOrAdmin(principal, sec.OwnerID(ownerID)); err != nil {
		service.logger.WarnContext(context, "access_denied",
			slog.String("resource", "news"),
			slog.String("action", action),
			slog.Int64("owner_id", ownerID),
			slog.Any("principal", principal),
		)
		return err
	}
	return nil
}
