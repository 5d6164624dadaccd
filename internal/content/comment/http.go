// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/newsgate/internal/platform/httpclient"
	requestutil "github.com/taibuivan/newsgate/internal/platform/request"
	"github.com/taibuivan/newsgate/internal/platform/respond"
	"github.com/taibuivan/newsgate/pkg/pagination"
)

// Handler implements the /api/comments endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] for the comment facade.
//
// # Endpoints
//   - GET    /{id}
//   - GET    /search/text/{text}
//   - GET    /search/username/{username}
//   - GET    /news/{newsId}
//   - POST   /
//   - PUT    /
//   - DELETE /{id}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(httpclient.ForwardAuthorization)

	router.Get("/{id}", handler.get)
	router.Get("/search/text/{text}", handler.searchByText)
	router.Get("/search/username/{username}", handler.searchByUsername)
	router.Get("/news/{newsId}", handler.listByNews)

	router.Post("/", handler.create)
	router.Put("/", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) searchByText(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.commentService.SearchByText(request.Context(),
		requestutil.PathText(request, FieldText), pagination.FromRequest(request))
	writePage(writer, request, page, err)
}

func (handler *Handler) searchByUsername(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.commentService.SearchByUsername(request.Context(),
		requestutil.PathText(request, FieldUsername), pagination.FromRequest(request))
	writePage(writer, request, page, err)
}

func (handler *Handler) listByNews(writer http.ResponseWriter, request *http.Request) {
	newsID, err := requestutil.Int64Param(request, FieldNewsID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.commentService.ListByNews(request.Context(), newsID, pagination.FromRequest(request))
	writePage(writer, request, page, err)
}

/*
Create posts a comment.

POST /api/comments

Request:
  - Body: CreateInput (text, username, newsId)

Response:
  - 200: Comment
  - 400: Validation failure
  - 403: ACCESS_DENIED when username is not the caller's login
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), principal, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
Update edits a comment.

PUT /api/comments

Response:
  - 200: Comment
  - 403: ACCESS_DENIED
  - 404: Comment not found downstream
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), principal, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
Delete removes a comment.

DELETE /api/comments/{id}

Response:
  - 204: Deleted
  - 403: ACCESS_DENIED
  - 404: Comment not found downstream
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), principal, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func writePage(writer http.ResponseWriter, request *http.Request, page *pagination.Page[Comment], err error) {
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Content, page.Meta())
}
