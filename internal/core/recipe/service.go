// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

/*
Package recipe (Service) orchestrates the business logic of the recipe domain.

The service is split along its three audiences:
  - Public catalogue: anonymous, read-only access to published recipes.
  - Author dashboard: ownership-scoped draft lifecycle (see service_dashboard.go).
  - Moderation: administrative publication control (see service_moderation.go).
*/
package recipe

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/panelinha/panelinha/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates the business logic for the recipe domain.
type Service struct {
	recipeRepo Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(recipeRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		recipeRepo: recipeRepo,
		logger:     logger,
	}
}

// # Public Catalogue

/*
ListPublished retrieves a paginated, optionally searched collection of
published recipes.

Parameters:
  - context: context.Context
  - filter: Filter (Optional search criteria)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Recipe: Slice of published recipes, newest first
  - int: Total count of records matching the filter
  - error: Repository level errors
*/
func (service *Service) ListPublished(context context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	return service.recipeRepo.ListPublished(context, filter, limit, offset)
}

/*
GetPublished fetches a single published recipe by its ID.

Description: Drafts never resolve through this path: an unpublished recipe
is indistinguishable from a nonexistent one for public readers.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Recipe: The hydrated entity
  - error: apperr.NotFound if missing or unpublished
*/
func (service *Service) GetPublished(context context.Context, id string) (*Recipe, error) {
	// Fail closed: a malformed id is a miss, not a storage error.
	if !isUUID(id) {
		return nil, apperr.NotFound("Recipe")
	}

	return service.recipeRepo.FindPublishedByID(context, id)
}

// # Internal Helpers

// isUUID reports whether the string parses as a UUID. Anything else must
// short-circuit to Not Found before the id reaches a store predicate, where
// the text-to-uuid cast would turn garbage into a storage error.
func isUUID(s string) bool {
	// Length pins the canonical hyphenated form; Validate alone also admits
	// braced, bare, and urn variants the routes never produce.
	return len(s) == 36 && uuid.Validate(s) == nil
}
