// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/panelinha/panelinha/internal/platform/apperr"
	"github.com/panelinha/panelinha/internal/platform/validate"
	"github.com/panelinha/panelinha/pkg/slug"
	"github.com/panelinha/panelinha/pkg/uuidv7"
)

// # Author Dashboard

// DraftInput holds the editable recipe fields submitted from the dashboard.
//
// Ownership and publication state are deliberately absent: the service
// decides both, never the payload.
type DraftInput struct {
	Title               string
	Description         string
	PreparationTime     int
	PreparationTimeUnit string
	Servings            int
	ServingsUnit        string
	PreparationSteps    string
	CoverURL            string
}

// validate runs the recipe form rules, accumulating every failure.
func (input DraftInput) validate() error {
	v := &validate.Validator{}

	v.Required(FieldTitle, input.Title).
		MinLen(FieldTitle, input.Title, TitleMinLength).
		MaxLen(FieldTitle, input.Title, TitleMaxLength)

	v.Required(FieldDescription, input.Description).
		Custom(FieldDescription,
			input.Description != "" && strings.EqualFold(input.Description, input.Title),
			"Cannot be equal to title")

	v.Positive(FieldPreparationTime, input.PreparationTime)
	v.Required(FieldPreparationTimeUnit, input.PreparationTimeUnit)
	v.Positive(FieldServings, input.Servings)
	v.Required(FieldServingsUnit, input.ServingsUnit)
	v.Required(FieldPreparationSteps, input.PreparationSteps)

	return v.Err()
}

/*
ListDrafts retrieves the author's unpublished recipes for the dashboard.

Parameters:
  - context: context.Context
  - authorID: string (The authenticated caller)
  - limit: int
  - offset: int

Returns:
  - []*Recipe: The caller's drafts, newest first
  - int: Total draft count for pagination
  - error: Repository failures
*/
func (service *Service) ListDrafts(context context.Context, authorID string, limit, offset int) ([]*Recipe, int, error) {
	return service.recipeRepo.ListDrafts(context, authorID, limit, offset)
}

/*
GetDraft resolves one draft inside the caller's ownership scope.

Description: A recipe that is published, owned by someone else, or simply
nonexistent produces the same Not Found. Ownership mismatches are never
distinguishable from misses.

Parameters:
  - context: context.Context
  - authorID: string (The authenticated caller)
  - id: string (UUID)

Returns:
  - *Recipe: The hydrated draft
  - error: apperr.NotFound on any scope mismatch
*/
func (service *Service) GetDraft(context context.Context, authorID, id string) (*Recipe, error) {
	// Fail closed: a malformed id is a miss, not a storage error.
	if !isUUID(id) {
		return nil, apperr.NotFound("Recipe")
	}

	return service.recipeRepo.FindDraft(context, authorID, id)
}

/*
SaveDraft validates and persists a draft, creating or updating as needed.

Description: With an empty id a new draft is inserted; otherwise the target
is resolved through the caller's ownership scope before the form rules look
at the payload, so an unreachable draft reports Not Found even when the
submission is invalid. Regardless of what the payload claimed, the saved
record always carries the caller as author, stays unpublished, and has its
HTML flag cleared.

Parameters:
  - context: context.Context
  - authorID: string (The authenticated caller)
  - id: string (UUID of the draft to update, or "" to create)
  - input: DraftInput

Returns:
  - *Recipe: The persisted draft
  - error: apperr.NotFound, validation errors, or storage failures
*/
func (service *Service) SaveDraft(context context.Context, authorID, id string, input DraftInput) (*Recipe, error) {
	if id == "" {
		if err := input.validate(); err != nil {
			return nil, err
		}
		return service.createDraft(context, authorID, input)
	}

	draft, err := service.GetDraft(context, authorID, id)
	if err != nil {
		return nil, err
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	return service.updateDraft(context, authorID, draft, input)
}

// createDraft inserts a brand-new draft for the author.
func (service *Service) createDraft(context context.Context, authorID string, input DraftInput) (*Recipe, error) {
	recipeSlug, err := service.uniqueSlug(context, input.Title)
	if err != nil {
		return nil, err
	}

	draft := &Recipe{
		ID:                  uuidv7.New(),
		AuthorID:            authorID,
		Title:               input.Title,
		Description:         input.Description,
		Slug:                recipeSlug,
		PreparationTime:     input.PreparationTime,
		PreparationTimeUnit: input.PreparationTimeUnit,
		Servings:            input.Servings,
		ServingsUnit:        input.ServingsUnit,
		PreparationSteps:    input.PreparationSteps,
		CoverURL:            input.CoverURL,

		// Server-authoritative state, regardless of the payload.
		PreparationStepIsHTML: false,
		IsPublished:           false,
	}

	if err := service.recipeRepo.Create(context, draft); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_draft_created",
		slog.String("recipe_id", draft.ID),
		slog.String("author_id", authorID),
	)

	return draft, nil
}

// updateDraft applies the input to a draft the ownership scope already
// resolved.
func (service *Service) updateDraft(context context.Context, authorID string, draft *Recipe, input DraftInput) (*Recipe, error) {
	// Regenerate the slug only when the new title derives a different one.
	// A case-only edit keeps the current slug instead of colliding with
	// its own row and picking up a needless suffix.
	if input.Title != draft.Title {
		if base := slug.From(input.Title); base != draft.Slug {
			newSlug, err := service.uniqueSlug(context, input.Title)
			if err != nil {
				return nil, err
			}
			draft.Slug = newSlug
		}
	}

	draft.Title = input.Title
	draft.Description = input.Description
	draft.PreparationTime = input.PreparationTime
	draft.PreparationTimeUnit = input.PreparationTimeUnit
	draft.Servings = input.Servings
	draft.ServingsUnit = input.ServingsUnit
	draft.PreparationSteps = input.PreparationSteps
	draft.CoverURL = input.CoverURL

	// Server-authoritative state, regardless of the payload.
	draft.AuthorID = authorID
	draft.PreparationStepIsHTML = false
	draft.IsPublished = false

	if err := service.recipeRepo.Update(context, draft); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_draft_updated",
		slog.String("recipe_id", draft.ID),
		slog.String("author_id", authorID),
	)

	return draft, nil
}

/*
DeleteDraft removes one of the caller's drafts permanently.

Description: Resolution runs through the same ownership scope as GetDraft,
so published recipes and foreign drafts cannot be deleted and report
Not Found.

Parameters:
  - context: context.Context
  - authorID: string (The authenticated caller)
  - id: string (UUID)

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) DeleteDraft(context context.Context, authorID, id string) error {
	draft, err := service.GetDraft(context, authorID, id)
	if err != nil {
		return err
	}

	if err := service.recipeRepo.Delete(context, draft.ID); err != nil {
		return err
	}

	service.logger.Info("recipe_draft_deleted",
		slog.String("recipe_id", draft.ID),
		slog.String("author_id", authorID),
	)

	return nil
}

// # Slug Generation

// slugAttempts bounds the de-duplication loop; beyond that the collision
// rate indicates something is wrong with the data, not the suffix.
const slugAttempts = 5

// uniqueSlug derives a URL slug from the title, appending a short random
// suffix when the plain form is already taken.
func (service *Service) uniqueSlug(context context.Context, title string) (string, error) {
	base := slug.From(title)

	candidate := base
	for attempt := 0; attempt < slugAttempts; attempt++ {
		taken, err := service.recipeRepo.ExistsBySlug(context, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}

		candidate = base + "-" + randomSlugSuffix()
	}

	return "", fmt.Errorf("recipe_service_slug_exhausted: %q", base)
}

// randomSlugSuffix returns a short lowercase-hex disambiguator taken from
// the random tail of a UUIDv7 (the head is a timestamp and barely varies).
func randomSlugSuffix() string {
	id := strings.ReplaceAll(uuidv7.New(), "-", "")
	return id[len(id)-6:]
}
