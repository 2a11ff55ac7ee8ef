// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelinha/panelinha/internal/platform/apperr"
	"github.com/panelinha/panelinha/internal/users/auth"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	byID       map[string]*auth.User
	byEmail    map[string]*auth.User
	byUsername map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:       make(map[string]*auth.User),
		byEmail:    make(map[string]*auth.User),
		byUsername: make(map[string]*auth.User),
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := repo.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := repo.byUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Resource already exists")
	}
	repo.byID[user.ID] = user
	repo.byEmail[user.Email] = user
	repo.byUsername[user.Username] = user
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

type fakeSessionRepository struct {
	byTokenHash map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{byTokenHash: make(map[string]*auth.Session)}
}

func (repo *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repo.byTokenHash[session.TokenHash] = session
	return nil
}

func (repo *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := repo.byTokenHash[tokenHash]
	if !ok || session.IsRevoked || session.ExpiresAt.Before(time.Now()) {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (repo *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	for _, session := range repo.byTokenHash {
		if session.ID == sessionID {
			session.IsRevoked = true
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (repo *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range repo.byTokenHash {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repo *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, session := range repo.byTokenHash {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repo *fakeSessionRepository) DeleteExpired(_ context.Context) error {
	for hash, session := range repo.byTokenHash {
		if session.ExpiresAt.Before(time.Now()) {
			delete(repo.byTokenHash, hash)
		}
	}
	return nil
}

type fakeResetTokenRepository struct {
	tokens map[string]string
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: make(map[string]string)}
}

func (repo *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repo.tokens[token] = userID
	return nil
}

func (repo *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	userID, ok := repo.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	return userID, nil
}

func (repo *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(repo.tokens, token)
	return nil
}

// stubTokenProvider issues predictable tokens without any signing keys.
type stubTokenProvider struct {
	issued int
}

func (provider *stubTokenProvider) GenerateAccessToken(userID, _ string, _ string, _ time.Duration) (string, error) {
	provider.issued++
	return fmt.Sprintf("token-%s-%d", userID, provider.issued), nil
}

// newTestService wires a Service onto in-memory fakes.
func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository, *fakeSessionRepository) {
	t.Helper()

	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	resets := newFakeResetTokenRepository()

	service := auth.NewService(users, sessions, resets, &stubTokenProvider{})
	return service, users, sessions
}

// registerAuthor creates an account through the real registration path.
func registerAuthor(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username:  "maria.clara",
		FirstName: "Maria",
		LastName:  "Clara",
		Email:     "maria@example.com",
		Password:  "Str0ngPass1",
		Password2: "Str0ngPass1",
	})
	require.NoError(t, err)
	return user
}

// # Authentication Tests

/*
TestLogin_AfterRegister verifies a freshly registered author can sign in with
either their email or their username.
*/
func TestLogin_AfterRegister(t *testing.T) {
	service, _, sessions := newTestService(t)
	user := registerAuthor(t, service)

	tests := []struct {
		name  string
		login string
	}{
		{"by_email", "maria@example.com"},
		{"by_username", "maria.clara"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(context.Background(), auth.LoginInput{
				Login:    tt.login,
				Password: "Str0ngPass1",
			})

			require.NoError(t, err)
			assert.NotEmpty(t, session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)
			assert.Equal(t, user.ID, session.User.ID)
		})
	}

	// One tracked session per successful login.
	assert.Len(t, sessions.byTokenHash, 2)
}

/*
TestLogin_InvalidCredentials verifies wrong passwords and unknown accounts
both fail with the same generic message.
*/
func TestLogin_InvalidCredentials(t *testing.T) {
	service, _, _ := newTestService(t)
	registerAuthor(t, service)

	tests := []struct {
		name     string
		login    string
		password string
	}{
		{"wrong_password", "maria@example.com", "WrongPass1"},
		{"unknown_account", "ghost@example.com", "Str0ngPass1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), auth.LoginInput{
				Login:    tt.login,
				Password: tt.password,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UNAUTHORIZED", ae.Code)
			assert.Equal(t, "Invalid login credentials", ae.Message)
		})
	}
}

/*
TestLogout verifies the refresh token is revoked and that a second logout of
the same token is a silent no-op.
*/
func TestLogout(t *testing.T) {
	service, _, _ := newTestService(t)
	registerAuthor(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "maria@example.com",
		Password: "Str0ngPass1",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))

	// The revoked token can no longer rotate the session.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	assert.Error(t, err)

	// Idempotent: logging out twice is not an error.
	assert.NoError(t, service.Logout(context.Background(), session.RefreshToken))
}

/*
TestRefreshSession verifies token rotation: the old refresh token dies the
moment a new one is issued.
*/
func TestRefreshSession(t *testing.T) {
	service, _, _ := newTestService(t)
	registerAuthor(t, service)

	first, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "maria@example.com",
		Password: "Str0ngPass1",
	})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), first.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, rotated.RefreshToken)
	assert.NotEmpty(t, rotated.AccessToken)

	// The consumed token is burned.
	_, err = service.RefreshSession(context.Background(), first.RefreshToken, "test-agent", "127.0.0.1")
	assert.Error(t, err)
}

/*
TestPasswordReset verifies the full recovery round trip and that the reset
token is single-use.
*/
func TestPasswordReset(t *testing.T) {
	service, _, _ := newTestService(t)
	registerAuthor(t, service)

	token, err := service.RequestPasswordReset(context.Background(), "maria@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "NewStr0ngPass2"))

	// Old password is gone, new one works.
	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "maria@example.com",
		Password: "Str0ngPass1",
	})
	assert.Error(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "maria@example.com",
		Password: "NewStr0ngPass2",
	})
	assert.NoError(t, err)

	// Consumed tokens are rejected.
	err = service.ResetPassword(context.Background(), token, "AnotherPass3")
	assert.Error(t, err)
}

/*
TestRequestPasswordReset_UnknownEmail verifies the anti-enumeration behavior:
no error, no token material leaked.
*/
func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	service, _, _ := newTestService(t)

	token, err := service.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

/*
TestResetPassword_WeakPassword verifies the strength policy also guards the
recovery path.
*/
func TestResetPassword_WeakPassword(t *testing.T) {
	service, _, _ := newTestService(t)
	registerAuthor(t, service)

	token, err := service.RequestPasswordReset(context.Background(), "maria@example.com")
	require.NoError(t, err)

	err = service.ResetPassword(context.Background(), token, "weak")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestChangePassword verifies the authenticated password change revokes every
other session while keeping the current one alive.
*/
func TestChangePassword(t *testing.T) {
	service, _, _ := newTestService(t)
	user := registerAuthor(t, service)

	current, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "maria@example.com",
		Password: "Str0ngPass1",
	})
	require.NoError(t, err)

	other, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "maria@example.com",
		Password: "Str0ngPass1",
	})
	require.NoError(t, err)

	err = service.ChangePassword(
		context.Background(),
		user.ID,
		"Str0ngPass1",
		"NewStr0ngPass2",
		current.RefreshToken,
	)
	require.NoError(t, err)

	// The other session is dead, the current one survives.
	_, err = service.RefreshSession(context.Background(), other.RefreshToken, "", "")
	assert.Error(t, err)

	_, err = service.RefreshSession(context.Background(), current.RefreshToken, "", "")
	assert.NoError(t, err)
}

/*
TestChangePassword_WrongCurrent verifies the current password must match.
*/
func TestChangePassword_WrongCurrent(t *testing.T) {
	service, _, _ := newTestService(t)
	user := registerAuthor(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "maria@example.com",
		Password: "Str0ngPass1",
	})
	require.NoError(t, err)

	err = service.ChangePassword(
		context.Background(),
		user.ID,
		"WrongPass1",
		"NewStr0ngPass2",
		session.RefreshToken,
	)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
