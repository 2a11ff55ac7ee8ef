// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/panelinha/panelinha/internal/platform/apperr"
	"github.com/panelinha/panelinha/internal/platform/sec"
	"github.com/panelinha/panelinha/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for author accounts.
//
// It ensures that profile updates, public profile exposure, and session
// security cleanup follow established business constraints.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of an author.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated author profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
GetPublicProfile retrieves the public-facing page data for an author.

Description: Looks up the author by username and maps the result into a
[PublicProfile], stripping the email and security fields.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *PublicProfile: Transport-safe author view
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetPublicProfile(context context.Context, username string) (*PublicProfile, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		JoinedAt:  user.CreatedAt,
	}, nil
}

// UpdateProfileInput defines the mutable subset of author profile fields.
//
// Username and email are deliberately immutable: both participate in login
// and session identity, so changing them is not a profile concern.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
}

/*
UpdateProfile applies a partial set of changes to an author's account metadata.

Description: Fetches the existing account state, overrides provided fields,
and synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated author profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}

	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}

	// Persist changes
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("author_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Session Security

/*
ListSessions provides a list of all active device sessions for the author.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []SessionInfo: List of active devices
  - error: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID string) ([]SessionInfo, error) {
	sessions, err := service.sessionRepository.FindActiveByUserID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	return sessions, nil
}

/*
RevokeSession terminates a specific author session by its ID.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if err := service.sessionRepository.Revoke(context, userID, sessionID); err != nil {
		return fmt.Errorf("account_service_revoke_session_failed: %w", err)
	}

	service.logger.Info("author_session_revoked",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	return nil
}

/*
RevokeOtherSessions terminates all sessions except for the caller's own.

Description: The caller is identified by their refresh token; the matching
session is resolved and kept alive while every other device is signed out.

Parameters:
  - context: context.Context
  - userID: string
  - currentRefreshToken: string

Returns:
  - error: Unauthorized or revocation failures
*/
func (service *Service) RevokeOtherSessions(context context.Context, userID, currentRefreshToken string) error {
	current, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(currentRefreshToken))
	if err != nil {
		return apperr.Unauthorized("Missing active session")
	}

	if err := service.sessionRepository.RevokeOthers(context, userID, current.ID); err != nil {
		return fmt.Errorf("account_service_revoke_others_failed: %w", err)
	}

	service.logger.Info("author_other_sessions_revoked", slog.String("user_id", userID))

	return nil
}
