// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package recipe

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/panelinha/panelinha/internal/platform/middleware"
	"github.com/panelinha/panelinha/internal/platform/respond"
	"github.com/panelinha/panelinha/internal/platform/sec"
)

// # Moderation Endpoints

// ModerationRoutes returns a [chi.Router] with the publication control
// endpoints. Every route requires the admin role.
func (handler *Handler) ModerationRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Patch("/recipes/{id}/publish", handler.publish)
	router.Patch("/recipes/{id}/unpublish", handler.unpublish)

	return router
}

/*
PATCH /api/v1/moderation/recipes/{id}/publish.

Description: Promotes a recipe into the public catalogue. The author loses
edit access: the dashboard only ever resolves unpublished recipes.

Request:
  - id: string (UUID)

Response:
  - 200: Recipe: The published recipe
  - 403: ErrForbidden: Caller lacks the admin role
  - 404: ErrNotFound: Unknown recipe
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	recipe, err := handler.recipeService.Publish(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recipe)
}

/*
PATCH /api/v1/moderation/recipes/{id}/unpublish.

Description: Retracts a recipe from the public catalogue, returning it to
the author's editable set.

Request:
  - id: string (UUID)

Response:
  - 200: Recipe: The recipe back in draft state
  - 403: ErrForbidden: Caller lacks the admin role
  - 404: ErrNotFound: Unknown recipe
*/
func (handler *Handler) unpublish(writer http.ResponseWriter, request *http.Request) {
	recipe, err := handler.recipeService.Unpublish(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recipe)
}
