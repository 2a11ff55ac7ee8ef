// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package recipe_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelinha/panelinha/internal/core/recipe"
	"github.com/panelinha/panelinha/internal/platform/apperr"
)

// # In-Memory Fake

type fakeRepository struct {
	byID map[string]*recipe.Recipe

	// lookedUp records every id a finder received, so tests can prove
	// which ids never reached storage.
	lookedUp []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[string]*recipe.Recipe)}
}

func (repo *fakeRepository) ListPublished(_ context.Context, filter recipe.Filter, limit, offset int) ([]*recipe.Recipe, int, error) {
	var matches []*recipe.Recipe
	for _, r := range repo.byID {
		if !r.IsPublished {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(r.Title), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(r.Description), strings.ToLower(filter.Search)) {
			continue
		}
		matches = append(matches, r)
	}
	return window(matches, limit, offset), len(matches), nil
}

func (repo *fakeRepository) FindPublishedByID(_ context.Context, id string) (*recipe.Recipe, error) {
	repo.lookedUp = append(repo.lookedUp, id)
	r, ok := repo.byID[id]
	if !ok || !r.IsPublished {
		return nil, apperr.NotFound("Recipe")
	}
	return r, nil
}

func (repo *fakeRepository) ListDrafts(_ context.Context, authorID string, limit, offset int) ([]*recipe.Recipe, int, error) {
	var matches []*recipe.Recipe
	for _, r := range repo.byID {
		if r.AuthorID == authorID && !r.IsPublished {
			matches = append(matches, r)
		}
	}
	return window(matches, limit, offset), len(matches), nil
}

func (repo *fakeRepository) FindDraft(_ context.Context, authorID, id string) (*recipe.Recipe, error) {
	repo.lookedUp = append(repo.lookedUp, id)
	r, ok := repo.byID[id]
	if !ok || r.AuthorID != authorID || r.IsPublished {
		return nil, apperr.NotFound("Recipe")
	}
	return r, nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	repo.lookedUp = append(repo.lookedUp, id)
	r, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Recipe")
	}
	return r, nil
}

func (repo *fakeRepository) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, r := range repo.byID {
		if r.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeRepository) Create(_ context.Context, r *recipe.Recipe) error {
	repo.byID[r.ID] = r
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, r *recipe.Recipe) error {
	if _, ok := repo.byID[r.ID]; !ok {
		return apperr.NotFound("Recipe")
	}
	repo.byID[r.ID] = r
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	delete(repo.byID, id)
	return nil
}

func (repo *fakeRepository) SetPublished(_ context.Context, id string, published bool) error {
	r, ok := repo.byID[id]
	if !ok {
		return apperr.NotFound("Recipe")
	}
	r.IsPublished = published
	return nil
}

func window(items []*recipe.Recipe, limit, offset int) []*recipe.Recipe {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// # Test Scaffolding

func newTestService(t *testing.T) (*recipe.Service, *fakeRepository) {
	t.Helper()

	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return recipe.NewService(repo, logger), repo
}

func validDraftInput() recipe.DraftInput {
	return recipe.DraftInput{
		Title:               "Feijoada Completa",
		Description:         "A rich black bean stew with pork cuts",
		PreparationTime:     90,
		PreparationTimeUnit: "Minutos",
		Servings:            6,
		ServingsUnit:        "Porções",
		PreparationSteps:    "Soak the beans overnight, then simmer with the meats.",
	}
}

const (
	authorAna  = "11111111-1111-7111-8111-111111111111"
	authorBeto = "22222222-2222-7222-8222-222222222222"
)

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

// # Draft Lifecycle Tests

/*
TestSaveDraft_Create verifies a new draft is owned by the caller, stays
unpublished, and has the HTML flag cleared.
*/
func TestSaveDraft_Create(t *testing.T) {
	service, _ := newTestService(t)

	draft, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	assert.Equal(t, authorAna, draft.AuthorID)
	assert.False(t, draft.IsPublished)
	assert.False(t, draft.PreparationStepIsHTML)
	assert.Equal(t, "feijoada-completa", draft.Slug)
	assert.NotEmpty(t, draft.ID)
}

/*
TestSaveDraft_Validation exercises the recipe form rules.
*/
func TestSaveDraft_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*recipe.DraftInput)
		wantField string
	}{
		{"title_too_short", func(i *recipe.DraftInput) { i.Title = "Oops" }, recipe.FieldTitle},
		{"title_too_long", func(i *recipe.DraftInput) { i.Title = strings.Repeat("a", 66) }, recipe.FieldTitle},
		{"missing_description", func(i *recipe.DraftInput) { i.Description = "" }, recipe.FieldDescription},
		{"description_equals_title", func(i *recipe.DraftInput) { i.Description = i.Title }, recipe.FieldDescription},
		{"zero_preparation_time", func(i *recipe.DraftInput) { i.PreparationTime = 0 }, recipe.FieldPreparationTime},
		{"negative_servings", func(i *recipe.DraftInput) { i.Servings = -2 }, recipe.FieldServings},
		{"missing_time_unit", func(i *recipe.DraftInput) { i.PreparationTimeUnit = "" }, recipe.FieldPreparationTimeUnit},
		{"missing_servings_unit", func(i *recipe.DraftInput) { i.ServingsUnit = "" }, recipe.FieldServingsUnit},
		{"missing_steps", func(i *recipe.DraftInput) { i.PreparationSteps = "" }, recipe.FieldPreparationSteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)

			input := validDraftInput()
			tt.mutate(&input)

			_, err := service.SaveDraft(context.Background(), authorAna, "", input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			found := false
			for _, detail := range ae.Details {
				if detail.Field == tt.wantField {
					found = true
				}
			}
			assert.True(t, found, "expected a detail on %q", tt.wantField)

			// Validation failures must not persist anything.
			assert.Empty(t, repo.byID)
		})
	}
}

/*
TestSaveDraft_SlugDeduplication verifies a second draft with the same title
gets a suffixed slug instead of a collision.
*/
func TestSaveDraft_SlugDeduplication(t *testing.T) {
	service, _ := newTestService(t)

	first, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	second, err := service.SaveDraft(context.Background(), authorBeto, "", validDraftInput())
	require.NoError(t, err)

	assert.Equal(t, "feijoada-completa", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "feijoada-completa-"))
}

/*
TestGetDraft_OwnershipScope verifies that foreign drafts, published recipes,
and malformed ids are all the same Not Found.
*/
func TestGetDraft_OwnershipScope(t *testing.T) {
	service, repo := newTestService(t)

	draft, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	t.Run("owner_resolves", func(t *testing.T) {
		got, err := service.GetDraft(context.Background(), authorAna, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, draft.ID, got.ID)
	})

	t.Run("other_author_misses", func(t *testing.T) {
		_, err := service.GetDraft(context.Background(), authorBeto, draft.ID)
		assertNotFound(t, err)
	})

	t.Run("malformed_id_misses", func(t *testing.T) {
		_, err := service.GetDraft(context.Background(), authorAna, "not-a-uuid")
		assertNotFound(t, err)
	})

	t.Run("garbage_id_never_reaches_storage", func(t *testing.T) {
		// Right length, wrong alphabet. The repository must not see it:
		// at the store layer the text-to-uuid cast would blow up into an
		// internal error instead of the required Not Found.
		const garbage = "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"

		_, err := service.GetDraft(context.Background(), authorAna, garbage)
		assertNotFound(t, err)

		_, err = service.GetPublished(context.Background(), garbage)
		assertNotFound(t, err)

		err = service.DeleteDraft(context.Background(), authorAna, garbage)
		assertNotFound(t, err)

		_, err = service.Publish(context.Background(), garbage)
		assertNotFound(t, err)

		assert.NotContains(t, repo.lookedUp, garbage)
	})

	t.Run("published_leaves_editable_set", func(t *testing.T) {
		require.NoError(t, repo.SetPublished(context.Background(), draft.ID, true))
		defer func() { _ = repo.SetPublished(context.Background(), draft.ID, false) }()

		_, err := service.GetDraft(context.Background(), authorAna, draft.ID)
		assertNotFound(t, err)
	})
}

/*
TestSaveDraft_Update verifies updates flow through the ownership scope and
re-force the server-side flags.
*/
func TestSaveDraft_Update(t *testing.T) {
	service, repo := newTestService(t)

	draft, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	// Simulate a trusted pipeline having flipped the HTML flag.
	repo.byID[draft.ID].PreparationStepIsHTML = true

	input := validDraftInput()
	input.Title = "Feijoada Vegetariana"

	updated, err := service.SaveDraft(context.Background(), authorAna, draft.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "Feijoada Vegetariana", updated.Title)
	assert.Equal(t, "feijoada-vegetariana", updated.Slug)
	assert.Equal(t, authorAna, updated.AuthorID)
	assert.False(t, updated.IsPublished)
	assert.False(t, updated.PreparationStepIsHTML)

	t.Run("foreign_draft_not_updatable", func(t *testing.T) {
		_, err := service.SaveDraft(context.Background(), authorBeto, draft.ID, validDraftInput())
		assertNotFound(t, err)
	})
}

/*
TestSaveDraft_ResolutionBeforeValidation verifies the ownership scope runs
before the form rules: a target the caller cannot reach is Not Found even
when the payload is also invalid, never a validation error.
*/
func TestSaveDraft_ResolutionBeforeValidation(t *testing.T) {
	service, repo := newTestService(t)

	draft, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	bad := validDraftInput()
	bad.Title = ""
	bad.PreparationTime = -1

	t.Run("foreign_draft", func(t *testing.T) {
		_, err := service.SaveDraft(context.Background(), authorBeto, draft.ID, bad)
		assertNotFound(t, err)
	})

	t.Run("nonexistent_id", func(t *testing.T) {
		_, err := service.SaveDraft(context.Background(), authorAna, "44444444-4444-7444-8444-444444444444", bad)
		assertNotFound(t, err)
	})

	t.Run("published_recipe", func(t *testing.T) {
		require.NoError(t, repo.SetPublished(context.Background(), draft.ID, true))
		defer func() { _ = repo.SetPublished(context.Background(), draft.ID, false) }()

		_, err := service.SaveDraft(context.Background(), authorAna, draft.ID, bad)
		assertNotFound(t, err)
	})

	t.Run("reachable_draft_still_validates", func(t *testing.T) {
		_, err := service.SaveDraft(context.Background(), authorAna, draft.ID, bad)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestSaveDraft_CaseOnlyTitleEdit verifies a title edit that derives the same
slug keeps it, instead of treating its own row as a collision and picking
up a suffix.
*/
func TestSaveDraft_CaseOnlyTitleEdit(t *testing.T) {
	service, _ := newTestService(t)

	draft, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)
	require.Equal(t, "feijoada-completa", draft.Slug)

	input := validDraftInput()
	input.Title = "FEIJOADA COMPLETA"

	updated, err := service.SaveDraft(context.Background(), authorAna, draft.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "FEIJOADA COMPLETA", updated.Title)
	assert.Equal(t, "feijoada-completa", updated.Slug)
}

/*
TestDeleteDraft verifies deletion respects the ownership scope.
*/
func TestDeleteDraft(t *testing.T) {
	service, repo := newTestService(t)

	draft, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	t.Run("foreign_draft_not_deletable", func(t *testing.T) {
		err := service.DeleteDraft(context.Background(), authorBeto, draft.ID)
		assertNotFound(t, err)
		assert.Contains(t, repo.byID, draft.ID)
	})

	t.Run("owner_deletes", func(t *testing.T) {
		require.NoError(t, service.DeleteDraft(context.Background(), authorAna, draft.ID))
		assert.NotContains(t, repo.byID, draft.ID)
	})

	t.Run("gone_draft_misses", func(t *testing.T) {
		err := service.DeleteDraft(context.Background(), authorAna, draft.ID)
		assertNotFound(t, err)
	})
}

/*
TestListDrafts verifies the dashboard listing only contains the caller's
unpublished recipes.
*/
func TestListDrafts(t *testing.T) {
	service, repo := newTestService(t)

	mine, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	other := validDraftInput()
	other.Title = "Moqueca Baiana"
	_, err = service.SaveDraft(context.Background(), authorBeto, "", other)
	require.NoError(t, err)

	published := validDraftInput()
	published.Title = "Pão de Queijo"
	pub, err := service.SaveDraft(context.Background(), authorAna, "", published)
	require.NoError(t, err)
	require.NoError(t, repo.SetPublished(context.Background(), pub.ID, true))

	drafts, total, err := service.ListDrafts(context.Background(), authorAna, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, drafts, 1)
	assert.Equal(t, mine.ID, drafts[0].ID)
}

// # Public Catalogue Tests

/*
TestPublicReads verifies drafts are invisible to the public side.
*/
func TestPublicReads(t *testing.T) {
	service, repo := newTestService(t)

	draft, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	t.Run("draft_hidden", func(t *testing.T) {
		_, err := service.GetPublished(context.Background(), draft.ID)
		assertNotFound(t, err)

		recipes, total, err := service.ListPublished(context.Background(), recipe.Filter{}, 20, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, recipes)
	})

	t.Run("published_visible", func(t *testing.T) {
		require.NoError(t, repo.SetPublished(context.Background(), draft.ID, true))

		got, err := service.GetPublished(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, draft.ID, got.ID)

		recipes, total, err := service.ListPublished(context.Background(), recipe.Filter{Search: "feijoada"}, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, recipes, 1)
	})
}

// # Moderation Tests

/*
TestModeration verifies publish/unpublish round trips and their effect on
the author's editable set.
*/
func TestModeration(t *testing.T) {
	service, _ := newTestService(t)

	draft, err := service.SaveDraft(context.Background(), authorAna, "", validDraftInput())
	require.NoError(t, err)

	published, err := service.Publish(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	// Publication removes the recipe from the author's hands.
	_, err = service.GetDraft(context.Background(), authorAna, draft.ID)
	assertNotFound(t, err)

	retracted, err := service.Unpublish(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.False(t, retracted.IsPublished)

	// And retraction gives it back.
	_, err = service.GetDraft(context.Background(), authorAna, draft.ID)
	assert.NoError(t, err)

	t.Run("unknown_recipe", func(t *testing.T) {
		_, err := service.Publish(context.Background(), "33333333-3333-7333-8333-333333333333")
		assertNotFound(t, err)
	})
}
