// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/newsgate/internal/platform/httpclient"
	requestutil "github.com/taibuivan/newsgate/internal/platform/request"
	"github.com/taibuivan/newsgate/internal/platform/respond"
	"github.com/taibuivan/newsgate/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /api/news endpoints.
type Handler struct {
	newsService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{newsService: service}
}

// Routes returns a [chi.Router] for the news facade.
//
// # Endpoints
//   - GET    /                    : Page of news (offset, limit)
//   - GET    /{id}                : One news item
//   - GET    /{id}/comments       : News item with a page of comments
//   - GET    /search/text/{text}  : Full-text search
//   - GET    /search/title/{title}: Title search
//   - POST   /                    : Create (owner or admin)
//   - PUT    /                    : Update (owner or admin)
//   - DELETE /{id}                : Delete (owner or admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(httpclient.ForwardAuthorization)

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/comments", handler.getWithComments)
	router.Get("/search/text/{text}", handler.searchByText)
	router.Get("/search/title/{title}", handler.searchByTitle)

	router.Post("/", handler.create)
	router.Put("/", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Reads

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.newsService.List(request.Context(), pagination.FromRequest(request))
	writePage(writer, request, page, err)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	news, err := handler.newsService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, news)
}

func (handler *Handler) getWithComments(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	news, err := handler.newsService.GetWithComments(request.Context(), id, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, news)
}

func (handler *Handler) searchByText(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.newsService.SearchByText(request.Context(),
		requestutil.PathText(request, FieldText), pagination.FromRequest(request))
	writePage(writer, request, page, err)
}

func (handler *Handler) searchByTitle(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.newsService.SearchByTitle(request.Context(),
		requestutil.PathText(request, FieldTitle), pagination.FromRequest(request))
	writePage(writer, request, page, err)
}

// # Writes

/*
Create publishes a news item.

POST /api/news

Request:
  - Body: CreateInput (title, text, userId)

Response:
  - 200: News
  - 400: Validation failure
  - 403: ACCESS_DENIED when userId is not the caller
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

	news, err := handler.newsService.Create(request.Context(), principal, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, news)
}

/*
Update edits a news item.

PUT /api/news

Request:
  - Body: UpdateInput (id, title, text, userId)

Response:
  - 200: News
  - 403: ACCESS_DENIED
  - 404: News not found downstream
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

	news, err := handler.newsService.Update(request.Context(), principal, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, news)
}

/*
Delete removes a news item.

DELETE /api/news/{id}

Response:
  - 204: Deleted
  - 403: ACCESS_DENIED
  - 404: News not found downstream
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

	if err := handler.newsService.Delete(request.Context(), principal, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func writePage(writer http.ResponseWriter, request *http.Request, page *pagination.Page[News], err error) {
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Content, page.Meta())
}
