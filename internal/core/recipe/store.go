// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package recipe

import "context"

// # Recipe Data Access

// Repository defines the data access contract for the recipe domain.
//
// The draft methods take the owning authorID as a mandatory scope: a draft
// that exists but belongs to someone else behaves exactly like a missing row.
type Repository interface {
	/*
		ListPublished returns a filtered, paginated slice of published recipes
		and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Optional search criteria)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Recipe: Slice of matching published records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	ListPublished(context context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error)

	/*
		FindPublishedByID returns the published recipe with the given ID.
		Drafts are invisible through this method.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Recipe: The hydrated domain entity
		  - error: apperr.NotFound if missing or unpublished
	*/
	FindPublishedByID(context context.Context, id string) (*Recipe, error)

	/*
		ListDrafts returns the paginated unpublished recipes of one author.

		Parameters:
		  - context: context.Context
		  - authorID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Recipe: Slice of the author's drafts, newest first
		  - int: Total draft count for the author
		  - error: Database retrieval failures
	*/
	ListDrafts(context context.Context, authorID string, limit, offset int) ([]*Recipe, int, error)

	/*
		FindDraft returns the unpublished recipe with the given ID, owned by
		authorID. Published recipes and other authors' drafts do not resolve.

		Parameters:
		  - context: context.Context
		  - authorID: string
		  - id: string (UUID)

		Returns:
		  - *Recipe: The hydrated domain entity
		  - error: apperr.NotFound on any scope mismatch
	*/
	FindDraft(context context.Context, authorID, id string) (*Recipe, error)

	/*
		FindByID returns the recipe with the given ID regardless of its
		publication state. Reserved for moderation.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Recipe: The hydrated domain entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Recipe, error)

	/*
		ExistsBySlug reports whether any recipe already uses the slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - bool: True when the slug is taken
		  - error: Database retrieval failures
	*/
	ExistsBySlug(context context.Context, slug string) (bool, error)

	/*
		Create persists a new recipe to the store.

		Parameters:
		  - context: context.Context
		  - recipe: *Recipe (Metadata and initial state)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, recipe *Recipe) error

	/*
		Update persists changes to an existing recipe's mutable fields.

		Parameters:
		  - context: context.Context
		  - recipe: *Recipe (Target ID and modified attributes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, recipe *Recipe) error

	/*
		Delete physically removes a recipe row.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: Execution failures
	*/
	Delete(context context.Context, id string) error

	/*
		SetPublished flips the publication flag on a recipe.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - published: bool

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	SetPublished(context context.Context, id string, published bool) error
}
