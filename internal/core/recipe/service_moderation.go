// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package recipe

import (
	"context"
	"log/slog"

	"github.com/panelinha/panelinha/internal/platform/apperr"
)

// # Moderation

/*
Publish promotes a recipe into the public catalogue.

Description: Publication is an administrative action, never an author one.
Once published, the recipe disappears from its author's editable set: the
dashboard scope only ever resolves unpublished rows.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Recipe: The recipe in its published state
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Publish(context context.Context, id string) (*Recipe, error) {
	return service.setPublication(context, id, true)
}

/*
Unpublish retracts a recipe from the public catalogue.

Description: The recipe returns to draft state and becomes editable by its
author again.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Recipe: The recipe in its draft state
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Unpublish(context context.Context, id string) (*Recipe, error) {
	return service.setPublication(context, id, false)
}

// setPublication flips the publication flag and reloads the entity.
func (service *Service) setPublication(context context.Context, id string, published bool) (*Recipe, error) {
	if !isUUID(id) {
		return nil, apperr.NotFound("Recipe")
	}

	if err := service.recipeRepo.SetPublished(context, id, published); err != nil {
		return nil, err
	}

	recipe, err := service.recipeRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("recipe_publication_changed",
		slog.String("recipe_id", id),
		slog.Bool("published", published),
	)

	return recipe, nil
}
