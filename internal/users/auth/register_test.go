// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelinha/panelinha/internal/platform/apperr"
	"github.com/panelinha/panelinha/internal/users/auth"
)

// validInput returns a registration payload that passes every rule.
// Individual tests break exactly one field at a time.
func validInput() auth.RegisterInput {
	return auth.RegisterInput{
		Username:  "maria.clara",
		FirstName: "Maria",
		LastName:  "Clara",
		Email:     "maria@example.com",
		Password:  "Str0ngPass1",
		Password2: "Str0ngPass1",
	}
}

// fieldMessages collects the validation messages attached to one field.
func fieldMessages(t *testing.T, err error, field string) []string {
	t.Helper()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Equal(t, "VALIDATION_ERROR", ae.Code)

	var messages []string
	for _, detail := range ae.Details {
		if detail.Field == field {
			messages = append(messages, detail.Message)
		}
	}
	return messages
}

/*
TestRegister_Valid verifies a fully valid payload creates an account.
*/
func TestRegister_Valid(t *testing.T) {
	service, users, _ := newTestService(t)

	user, err := service.Register(context.Background(), validInput())

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "maria.clara", user.Username)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "Str0ngPass1", user.PasswordHash)
	assert.Len(t, users.byEmail, 1)
}

/*
TestRegister_EmptyFields verifies every required field reports its own
message when the payload is completely empty.
*/
func TestRegister_EmptyFields(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), auth.RegisterInput{})
	require.Error(t, err)

	assert.Contains(t, fieldMessages(t, err, auth.FieldUsername), "This field must not be empty")
	assert.Contains(t, fieldMessages(t, err, auth.FieldFirstName), "Write your first name")
	assert.Contains(t, fieldMessages(t, err, auth.FieldLastName), "Write your last name")
	assert.Contains(t, fieldMessages(t, err, auth.FieldEmail), "Write your email")
	assert.Contains(t, fieldMessages(t, err, auth.FieldPassword), "Password must not be empty")
	assert.Contains(t, fieldMessages(t, err, auth.FieldPassword2), "Password confirmation must not be empty")
}

/*
TestRegister_UsernameRules exercises the length and alphabet constraints.
*/
func TestRegister_UsernameRules(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantMsg  string
	}{
		{"too_short", "joe", "Username minimum length is 4 characters"},
		{"too_long", strings.Repeat("a", 151), "Username maximum length is 150 characters"},
		{"accented_letter", "joão-silva", "Username may contain only letters, numbers, and @/./+/-/_ characters"},
		{"space", "maria clara", "Username may contain only letters, numbers, and @/./+/-/_ characters"},
		{"exclamation", "maria!", "Username may contain only letters, numbers, and @/./+/-/_ characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			input := validInput()
			input.Username = tt.username

			_, err := service.Register(context.Background(), input)
			require.Error(t, err)
			assert.Contains(t, fieldMessages(t, err, auth.FieldUsername), tt.wantMsg)
		})
	}
}

/*
TestRegister_UsernameBoundaries verifies the inclusive 4 and 150 character
limits and the full special-character alphabet.
*/
func TestRegister_UsernameBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		username string
	}{
		{"min_length", "joao"},
		{"max_length", strings.Repeat("a", 150)},
		{"full_alphabet", "user@name.plus+minus-under_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			input := validInput()
			input.Username = tt.username

			_, err := service.Register(context.Background(), input)
			assert.NoError(t, err)
		})
	}
}

/*
TestRegister_PasswordStrength exercises the composition policy. The weak
message is identical for every failing shape.
*/
func TestRegister_PasswordStrength(t *testing.T) {
	const weakMsg = "Password must have at least one uppercase letter, " +
		"one lowercase letter and one number. The length should be at least 8 characters"

	tests := []struct {
		name     string
		password string
		wantWeak bool
	}{
		{"all_rules_met", "Str0ngPass1", false},
		{"exactly_eight", "Abcdefg1", false},
		{"too_short", "Abc1def", true},
		{"no_uppercase", "abcdefg1", true},
		{"no_lowercase", "ABCDEFG1", true},
		{"no_digit", "Abcdefgh", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			input := validInput()
			input.Password = tt.password
			input.Password2 = tt.password

			_, err := service.Register(context.Background(), input)

			if tt.wantWeak {
				require.Error(t, err)
				assert.Contains(t, fieldMessages(t, err, auth.FieldPassword), weakMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestRegister_ForbiddenWord verifies the case-sensitive substring rejection:
"atencao" anywhere in the password fails, while "Atencao" is accepted.
*/
func TestRegister_ForbiddenWord(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		forbidden bool
	}{
		{"lowercase_word", "atencaoPass1", true},
		{"embedded_word", "Xatencao9z", true},
		{"capitalized_word", "AtencaoPass1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			input := validInput()
			input.Password = tt.password
			input.Password2 = tt.password

			_, err := service.Register(context.Background(), input)

			if tt.forbidden {
				require.Error(t, err)
				assert.Contains(t, fieldMessages(t, err, auth.FieldPassword),
					"Do not type atencao in the password field")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestRegister_PasswordMismatch verifies the cross-field equality rule attaches
to the password field, not the confirmation field.
*/
func TestRegister_PasswordMismatch(t *testing.T) {
	service, _, _ := newTestService(t)

	input := validInput()
	input.Password2 = "Different1A"

	_, err := service.Register(context.Background(), input)
	require.Error(t, err)

	assert.Contains(t, fieldMessages(t, err, auth.FieldPassword),
		"Password and password confirmation must be equal")
	assert.Empty(t, fieldMessages(t, err, auth.FieldPassword2))
}

/*
TestRegister_MismatchSkippedWhenEmpty verifies the equality rule stays silent
when either password field is empty; only the emptiness messages fire.
*/
func TestRegister_MismatchSkippedWhenEmpty(t *testing.T) {
	service, _, _ := newTestService(t)

	input := validInput()
	input.Password2 = ""

	_, err := service.Register(context.Background(), input)
	require.Error(t, err)

	messages := fieldMessages(t, err, auth.FieldPassword)
	assert.NotContains(t, messages, "Password and password confirmation must be equal")
	assert.Contains(t, fieldMessages(t, err, auth.FieldPassword2),
		"Password confirmation must not be empty")
}

/*
TestRegister_EmailRules exercises format validation and duplicate detection.
*/
func TestRegister_EmailRules(t *testing.T) {
	t.Run("invalid_format", func(t *testing.T) {
		service, _, _ := newTestService(t)

		input := validInput()
		input.Email = "not-an-email"

		_, err := service.Register(context.Background(), input)
		require.Error(t, err)
		assert.Contains(t, fieldMessages(t, err, auth.FieldEmail), "The email must be valid")
	})

	t.Run("already_in_use", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.Register(context.Background(), validInput())
		require.NoError(t, err)

		second := validInput()
		second.Username = "other.author"

		_, err = service.Register(context.Background(), second)
		require.Error(t, err)
		assert.Contains(t, fieldMessages(t, err, auth.FieldEmail), "User email is already in use")
	})

	t.Run("duplicate_reported_with_other_errors", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.Register(context.Background(), validInput())
		require.NoError(t, err)

		// Broken username must not suppress the uniqueness probe.
		second := validInput()
		second.Username = "x"

		_, err = service.Register(context.Background(), second)
		require.Error(t, err)
		assert.Contains(t, fieldMessages(t, err, auth.FieldEmail), "User email is already in use")
		assert.Contains(t, fieldMessages(t, err, auth.FieldUsername),
			"Username minimum length is 4 characters")
	})
}

/*
TestRegister_ErrorsAccumulate verifies a single submission reports every
broken field at once instead of stopping at the first failure.
*/
func TestRegister_ErrorsAccumulate(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username:  "x!",
		FirstName: "Maria",
		LastName:  "",
		Email:     "broken",
		Password:  "weak",
		Password2: "weak",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Username collects both the length and the alphabet failure.
	assert.Len(t, fieldMessages(t, err, auth.FieldUsername), 2)
	assert.NotEmpty(t, fieldMessages(t, err, auth.FieldLastName))
	assert.NotEmpty(t, fieldMessages(t, err, auth.FieldEmail))
	assert.NotEmpty(t, fieldMessages(t, err, auth.FieldPassword))
}

/*
TestRegister_Normalization verifies whitespace trimming and email lowercasing,
and that passwords are taken exactly as typed.
*/
func TestRegister_Normalization(t *testing.T) {
	service, _, _ := newTestService(t)

	input := validInput()
	input.Username = "  maria.clara  "
	input.Email = "  Maria@Example.COM "

	user, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "maria.clara", user.Username)
	assert.Equal(t, "maria@example.com", user.Email)
}
