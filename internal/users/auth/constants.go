// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32
)

// # Registration Constraints

const (
	// UsernameMinLength is the minimum username length accepted at registration.
	UsernameMinLength = 4

	// UsernameMaxLength is the maximum username length accepted at registration.
	UsernameMaxLength = 150

	// PasswordMinLength is the minimum password length accepted anywhere
	// a password is set (registration, reset, change).
	PasswordMinLength = 8
)
