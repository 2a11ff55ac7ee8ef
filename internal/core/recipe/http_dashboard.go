// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package recipe

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/panelinha/panelinha/internal/platform/middleware"
	requestutil "github.com/panelinha/panelinha/internal/platform/request"
	"github.com/panelinha/panelinha/internal/platform/respond"
	"github.com/panelinha/panelinha/internal/platform/validate"
	"github.com/panelinha/panelinha/pkg/pagination"
	"github.com/panelinha/panelinha/pkg/slice"
)

// # Author Dashboard Endpoints

// DashboardRoutes returns a [chi.Router] with the draft lifecycle endpoints.
// Every route requires an authenticated author.
func (handler *Handler) DashboardRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/recipes", handler.listDrafts)
	router.Post("/recipes", handler.createDraft)
	router.Get("/recipes/{id}", handler.getDraft)
	router.Put("/recipes/{id}", handler.updateDraft)
	router.Delete("/recipes/{id}", handler.deleteDraft)

	return router
}

// draftRequest defines the JSON payload a dashboard save accepts.
//
// There is intentionally no author, publication, or HTML field: those are
// decided server-side.
type draftRequest struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	PreparationTime     int    `json:"preparation_time"`
	PreparationTimeUnit string `json:"preparation_time_unit"`
	Servings            int    `json:"servings"`
	ServingsUnit        string `json:"servings_unit"`
	PreparationSteps    string `json:"preparation_steps"`
	CoverURL            string `json:"cover_url"`
}

func (input draftRequest) toInput() DraftInput {
	return DraftInput{
		Title:               input.Title,
		Description:         input.Description,
		PreparationTime:     input.PreparationTime,
		PreparationTimeUnit: input.PreparationTimeUnit,
		Servings:            input.Servings,
		ServingsUnit:        input.ServingsUnit,
		PreparationSteps:    input.PreparationSteps,
		CoverURL:            input.CoverURL,
	}
}

// draftSummary is the condensed listing row shown on the dashboard.
type draftSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updated_at"`
}

/*
GET /api/v1/dashboard/recipes.

Description: Lists the authenticated author's drafts, newest first.

Request:
  - page, limit: int (Pagination)

Response:
  - 200: []draftSummary + pagination metadata
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listDrafts(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	drafts, total, err := handler.recipeService.ListDrafts(
		request.Context(),
		authorID,
		paginationParams.Limit,
		paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summaries := slice.Map(drafts, func(draft *Recipe) draftSummary {
		return draftSummary{
			ID:        draft.ID,
			Title:     draft.Title,
			Slug:      draft.Slug,
			UpdatedAt: draft.UpdatedAt,
		}
	})

	respond.Paginated(writer, summaries, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/dashboard/recipes/{id}.

Description: Loads one draft for editing. Drafts of other authors and
published recipes answer 404, never 403.

Request:
  - id: string (UUID)

Response:
  - 200: Recipe: The editable draft
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Outside the caller's editable set
*/
func (handler *Handler) getDraft(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.recipeService.GetDraft(request.Context(), authorID, chi.URLParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}

/*
POST /api/v1/dashboard/recipes.

Description: Creates a new draft owned by the caller. The response carries
a Location header pointing at the edit view of the new draft.

Request:
  - Body: draftRequest

Response:
  - 201: Recipe + success message
  - 400: Validation failure with field details
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createDraft(writer http.ResponseWriter, request *http.Request) {
	handler.saveDraft(writer, request, "")
}

/*
PUT /api/v1/dashboard/recipes/{id}.

Description: Replaces the editable fields of an existing draft. Resolution
runs through the caller's ownership scope.

Request:
  - id: string (UUID)
  - Body: draftRequest

Response:
  - 201: Recipe + success message
  - 400: Validation failure with field details
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Outside the caller's editable set
*/
func (handler *Handler) updateDraft(writer http.ResponseWriter, request *http.Request) {
	handler.saveDraft(writer, request, chi.URLParam(request, "id"))
}

// saveDraft is the shared create/update path behind both save endpoints.
func (handler *Handler) saveDraft(writer http.ResponseWriter, request *http.Request, id string) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input draftRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	draft, err := handler.recipeService.SaveDraft(request.Context(), authorID, id, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Location", fmt.Sprintf("/api/v1/dashboard/recipes/%s", draft.ID))
	respond.JSON(writer, http.StatusCreated, map[string]any{
		FieldMessage: "Your recipe was successfully saved",
		"recipe":     draft,
	})
}

/*
DELETE /api/v1/dashboard/recipes/{id}.

Description: Permanently removes one of the caller's drafts.

Request:
  - id: string (UUID)

Response:
  - 200: Success message
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Outside the caller's editable set
*/
func (handler *Handler) deleteDraft(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.recipeService.DeleteDraft(request.Context(), authorID, chi.URLParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Deleted successfully",
	})
}
