// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

/*
Package recipe (Postgres) implements the storage layer for the recipe domain.

# Schema Table Mapping
  - core.recipe: Recipe metadata, preparation details, and publication state.

All methods translate low-level pgx errors into [apperr.AppError] values via
the dberr bridge to avoid leaking storage implementation details.
*/
package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/panelinha/panelinha/internal/platform/apperr"
	"github.com/panelinha/panelinha/internal/platform/dberr"
)

// recipeColumns is the canonical select list shared by every row scan.
const recipeColumns = `
	id, authorid, title, description, slug,
	preparationtime, preparationtimeunit, servings, servingsunit,
	preparationsteps, preparationstepishtml, ispublished, coverurl,
	createdat, updatedat`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation of the recipe store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Public Catalogue Queries

/*
ListPublished returns the paginated public catalogue, optionally filtered by
a case-insensitive search over the title and description.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Recipe: Published records, newest first
  - int: Total matching count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListPublished(context context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	where := `WHERE ispublished = TRUE`
	args := []any{}

	if filter.Search != "" {
		where += ` AND (title ILIKE $1 OR description ILIKE $1)`
		args = append(args, "%"+filter.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM core.recipe ` + where

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_recipe_repo_count_published_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM core.recipe
		%s
		ORDER BY createdat DESC
		LIMIT $%d OFFSET $%d`,
		recipeColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_recipe_repo_list_published_failed: %w", err)
	}
	defer rows.Close()

	recipes, err := scanRecipes(rows)
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

/*
FindPublishedByID retrieves a single recipe from the public catalogue.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Recipe: The hydrated entity
  - error: apperr.NotFound if missing or still a draft
*/
func (repository *PostgresRepository) FindPublishedByID(context context.Context, id string) (*Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM core.recipe
		WHERE id = $1 AND ispublished = TRUE`, recipeColumns)

	return repository.scanOne(context, query, id)
}

// # Draft Queries

/*
ListDrafts returns one author's unpublished recipes, newest first.

Parameters:
  - context: context.Context
  - authorID: string
  - limit: int
  - offset: int

Returns:
  - []*Recipe: The author's drafts
  - int: Total draft count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListDrafts(context context.Context, authorID string, limit, offset int) ([]*Recipe, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM core.recipe
		WHERE authorid = $1 AND ispublished = FALSE`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, authorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_recipe_repo_count_drafts_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM core.recipe
		WHERE authorid = $1 AND ispublished = FALSE
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`, recipeColumns)

	rows, err := repository.pool.Query(context, listQuery, authorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_recipe_repo_list_drafts_failed: %w", err)
	}
	defer rows.Close()

	recipes, err := scanRecipes(rows)
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

/*
FindDraft resolves a draft strictly inside the author's ownership scope.

Description: The WHERE clause binds the id, the owner, and the unpublished
state in a single predicate. A published recipe, another author's draft,
and a nonexistent id are indistinguishable: all miss the row.

Parameters:
  - context: context.Context
  - authorID: string
  - id: string (UUID)

Returns:
  - *Recipe: The hydrated entity
  - error: apperr.NotFound on any scope mismatch
*/
func (repository *PostgresRepository) FindDraft(context context.Context, authorID, id string) (*Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM core.recipe
		WHERE id = $1 AND authorid = $2 AND ispublished = FALSE`, recipeColumns)

	return repository.scanOne(context, query, id, authorID)
}

// # Moderation Queries

/*
FindByID retrieves a recipe regardless of its publication state.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Recipe: The hydrated entity
  - error: apperr.NotFound if missing
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM core.recipe
		WHERE id = $1`, recipeColumns)

	return repository.scanOne(context, query, id)
}

// # Mutations

/*
ExistsBySlug reports whether a slug is already taken by any recipe.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - bool: True when taken
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ExistsBySlug(context context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM core.recipe WHERE slug = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_recipe_repo_exists_by_slug_failed: %w", err)
	}

	return exists, nil
}

/*
Create persists a brand-new recipe row.

Parameters:
  - context: context.Context
  - recipe: *Recipe

Returns:
  - error: apperr.Conflict on slug collision, or storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, recipe *Recipe) error {
	query := `
		INSERT INTO core.recipe (
			id, authorid, title, description, slug,
			preparationtime, preparationtimeunit, servings, servingsunit,
			preparationsteps, preparationstepishtml, ispublished, coverurl
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		recipe.ID,
		recipe.AuthorID,
		recipe.Title,
		recipe.Description,
		recipe.Slug,
		recipe.PreparationTime,
		recipe.PreparationTimeUnit,
		recipe.Servings,
		recipe.ServingsUnit,
		recipe.PreparationSteps,
		recipe.PreparationStepIsHTML,
		recipe.IsPublished,
		recipe.CoverURL,
	).Scan(&recipe.CreatedAt, &recipe.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err)
	}

	return nil
}

/*
Update persists the mutable fields of an existing recipe.

Parameters:
  - context: context.Context
  - recipe: *Recipe

Returns:
  - error: apperr.NotFound if the row vanished, or storage failures
*/
func (repository *PostgresRepository) Update(context context.Context, recipe *Recipe) error {
	query := `
		UPDATE core.recipe
		SET title = $2, description = $3, slug = $4,
			preparationtime = $5, preparationtimeunit = $6,
			servings = $7, servingsunit = $8,
			preparationsteps = $9, preparationstepishtml = $10,
			ispublished = $11, coverurl = $12, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat`

	err := repository.pool.QueryRow(context, query,
		recipe.ID,
		recipe.Title,
		recipe.Description,
		recipe.Slug,
		recipe.PreparationTime,
		recipe.PreparationTimeUnit,
		recipe.Servings,
		recipe.ServingsUnit,
		recipe.PreparationSteps,
		recipe.PreparationStepIsHTML,
		recipe.IsPublished,
		recipe.CoverURL,
	).Scan(&recipe.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err)
	}

	return nil
}

/*
Delete physically removes a recipe row.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := `DELETE FROM core.recipe WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_recipe_repo_delete_failed: %w", err)
	}

	return nil
}

/*
SetPublished flips the publication flag on a recipe.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - published: bool

Returns:
  - error: apperr.NotFound when the recipe does not exist
*/
func (repository *PostgresRepository) SetPublished(context context.Context, id string, published bool) error {
	query := `
		UPDATE core.recipe
		SET ispublished = $2, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, published)
	if err != nil {
		return fmt.Errorf("postgres_recipe_repo_set_published_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Recipe")
	}

	return nil
}

// # Row Hydration

// scanOne runs a single-row recipe query and hydrates the entity.
func (repository *PostgresRepository) scanOne(context context.Context, query string, args ...any) (*Recipe, error) {
	recipe := &Recipe{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&recipe.ID,
		&recipe.AuthorID,
		&recipe.Title,
		&recipe.Description,
		&recipe.Slug,
		&recipe.PreparationTime,
		&recipe.PreparationTimeUnit,
		&recipe.Servings,
		&recipe.ServingsUnit,
		&recipe.PreparationSteps,
		&recipe.PreparationStepIsHTML,
		&recipe.IsPublished,
		&recipe.CoverURL,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Recipe")
		}
		return nil, fmt.Errorf("postgres_recipe_repo_find_failed: %w", err)
	}

	return recipe, nil
}

// scanRecipes drains a multi-row result set into hydrated entities.
func scanRecipes(rows pgx.Rows) ([]*Recipe, error) {
	var recipes []*Recipe

	for rows.Next() {
		recipe := &Recipe{}
		if err := rows.Scan(
			&recipe.ID,
			&recipe.AuthorID,
			&recipe.Title,
			&recipe.Description,
			&recipe.Slug,
			&recipe.PreparationTime,
			&recipe.PreparationTimeUnit,
			&recipe.Servings,
			&recipe.ServingsUnit,
			&recipe.PreparationSteps,
			&recipe.PreparationStepIsHTML,
			&recipe.IsPublished,
			&recipe.CoverURL,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_recipe_repo_scan_failed: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_recipe_repo_rows_failed: %w", err)
	}

	return recipes, nil
}
