// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

/*
Package recipe provides the HTTP delivery layer for the recipe domain.

# Route Groups

  - Public catalogue (this file): anonymous read access to published recipes.
  - Author dashboard (http_dashboard.go): authenticated draft lifecycle.
  - Moderation (http_moderation.go): admin-only publication control.
*/
package recipe

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/panelinha/panelinha/internal/platform/respond"
	"github.com/panelinha/panelinha/pkg/pagination"
)

// Handler implements the HTTP layer for the recipe domain.
type Handler struct {
	recipeService *Service
}

// NewHandler constructs a new recipe [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{recipeService: service}
}

// Routes returns a [chi.Router] with the public catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublished)
	router.Get("/{id}", handler.getPublished)

	return router
}

/*
GET /api/v1/recipes.

Description: Lists published recipes, newest first, with optional full-text
style search via the "q" query parameter.

Request:
  - q: string (Optional search term)
  - page, limit: int (Pagination)

Response:
  - 200: []Recipe + pagination metadata
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("q"),
	}

	recipes, total, err := handler.recipeService.ListPublished(
		request.Context(),
		filter,
		paginationParams.Limit,
		paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/recipes/{id}.

Description: Retrieves one published recipe. Drafts respond 404 here no
matter who asks.

Request:
  - id: string (UUID)

Response:
  - 200: Recipe: The published recipe
  - 404: ErrNotFound: Unknown, malformed, or unpublished id
*/
func (handler *Handler) getPublished(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	recipe, err := handler.recipeService.GetPublished(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recipe)
}
