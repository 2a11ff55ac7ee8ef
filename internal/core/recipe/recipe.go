// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

/*
Package recipe defines the core domain entities for the Panelinha kitchen.

It manages the lifecycle of recipes from authored drafts to published
publications, including metadata, preparation details, and ownership.

Core Responsibility:

  - Drafting: Authors create and edit recipes in a private, unpublished state.
  - Publication: Moderators promote finished recipes to the public catalogue.
  - Ownership: Every draft operation is scoped to the authoring account.

This package acts as the source of truth for all recipe-related data models.
*/
package recipe

import "time"

// # Core Entities

// Recipe is the central aggregate of the Panelinha domain.
// It represents a single dish with its preparation instructions.
type Recipe struct {
	ID          string `json:"id"`
	AuthorID    string `json:"author_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"` // URL-safe identifier, unique

	// # Preparation Details
	PreparationTime     int    `json:"preparation_time"`      // Positive quantity
	PreparationTimeUnit string `json:"preparation_time_unit"` // e.g. "Minutos", "Horas"
	Servings            int    `json:"servings"`              // Positive quantity
	ServingsUnit        string `json:"servings_unit"`         // e.g. "Porções", "Pessoas"
	PreparationSteps    string `json:"preparation_steps"`

	// PreparationStepIsHTML marks the steps as pre-rendered HTML. It is
	// forced to false on every author save; only trusted pipelines may
	// flip it.
	PreparationStepIsHTML bool `json:"preparation_step_is_html"`

	// IsPublished gates public visibility. Authors only ever see and edit
	// unpublished recipes; publishing removes the record from their
	// editable set.
	IsPublished bool `json:"is_published"`

	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter describes the optional criteria for public catalogue listings.
type Filter struct {
	// Search matches against the title and description, case-insensitive.
	Search string
}

// # Field Identifiers

// JSON field names used for validation error details.
const (
	FieldTitle               = "title"
	FieldDescription         = "description"
	FieldPreparationTime     = "preparation_time"
	FieldPreparationTimeUnit = "preparation_time_unit"
	FieldServings            = "servings"
	FieldServingsUnit        = "servings_unit"
	FieldPreparationSteps    = "preparation_steps"
	FieldCoverURL            = "cover_url"
	FieldMessage             = "message"
)

// # Validation Bounds

const (
	// TitleMinLength is the minimum accepted title length.
	TitleMinLength = 5
	// TitleMaxLength is the maximum accepted title length.
	TitleMaxLength = 65
)
