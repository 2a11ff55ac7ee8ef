// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package auth

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/panelinha/panelinha/internal/platform/validate"
)

// # Registration Validation

// Validation messages mirror the wording shown on the registration form.
// Tests assert on these exact strings, so changes here are user-visible.
const (
	msgUsernameRequired  = "This field must not be empty"
	msgUsernameTooShort  = "Username minimum length is 4 characters"
	msgUsernameTooLong   = "Username maximum length is 150 characters"
	msgUsernameCharset   = "Username may contain only letters, numbers, and @/./+/-/_ characters"
	msgFirstNameRequired = "Write your first name"
	msgLastNameRequired  = "Write your last name"
	msgEmailRequired     = "Write your email"
	msgEmailInvalid      = "The email must be valid"
	msgEmailTaken        = "User email is already in use"
	msgPasswordRequired  = "Password must not be empty"
	msgPasswordWeak      = "Password must have at least one uppercase letter, one lowercase letter and one number. The length should be at least 8 characters"
	msgPasswordForbidden = "Do not type atencao in the password field"
	msgPassword2Required = "Password confirmation must not be empty"
	msgPasswordMismatch  = "Password and password confirmation must be equal"
)

// forbiddenPasswordWord is rejected as a case-sensitive substring of the
// password. "Atencao" (capitalized) is allowed; "atencao" is not.
const forbiddenPasswordWord = "atencao"

var (
	// usernameCharset is the accepted username alphabet. The hyphen is
	// escaped so the class reads as literal characters, not a range.
	usernameCharset = regexp.MustCompile(`^[A-Za-z0-9@.+\-_]+$`)

	hasUppercase = regexp.MustCompile(`[A-Z]`)
	hasLowercase = regexp.MustCompile(`[a-z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
)

// RegisterInput holds the data submitted to enroll a new author.
//
// Password2 is the confirmation field; it is compared against Password and
// then discarded — it is never persisted or logged.
type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Password2 string
}

// normalized returns a copy with identity fields trimmed and the email
// lowercased. Passwords are intentionally left untouched: trimming a
// secret would silently change what the user typed.
func (input RegisterInput) normalized() RegisterInput {
	input.Username = strings.TrimSpace(input.Username)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	return input
}

// validateFields runs the per-field rules in form declaration order
// (username, first_name, last_name, email, password, password2).
//
// Fields are validated independently: a failure on one field never
// suppresses the checks on another, so the caller receives every
// applicable message in a single pass.
func (input RegisterInput) validateFields(v *validate.Validator) {

	// Username: required, 4-150 chars, restricted alphabet.
	switch {
	case input.Username == "":
		v.Custom(FieldUsername, true, msgUsernameRequired)
	default:
		v.Custom(FieldUsername, len(input.Username) < UsernameMinLength, msgUsernameTooShort)
		v.Custom(FieldUsername, len(input.Username) > UsernameMaxLength, msgUsernameTooLong)
		v.Matches(FieldUsername, input.Username, usernameCharset, msgUsernameCharset)
	}

	// Names: required only.
	v.Custom(FieldFirstName, input.FirstName == "", msgFirstNameRequired)
	v.Custom(FieldLastName, input.LastName == "", msgLastNameRequired)

	// Email: required and syntactically valid. Uniqueness needs a storage
	// read and is appended by the service after these rules run.
	switch {
	case input.Email == "":
		v.Custom(FieldEmail, true, msgEmailRequired)
	default:
		v.Custom(FieldEmail, !emailSyntaxValid(input.Email), msgEmailInvalid)
	}

	// Password: required, strength policy, forbidden word.
	switch {
	case input.Password == "":
		v.Custom(FieldPassword, true, msgPasswordRequired)
	default:
		v.Custom(FieldPassword, !passwordIsStrong(input.Password), msgPasswordWeak)
		v.Custom(FieldPassword, strings.Contains(input.Password, forbiddenPasswordWord), msgPasswordForbidden)
	}

	// Confirmation: required only; equality is a cross-field rule.
	v.Custom(FieldPassword2, input.Password2 == "", msgPassword2Required)
}

// validateConfirmation runs the cross-field password equality rule.
//
// The mismatch error attaches to the password field — never to password2 —
// and only fires when both fields were filled in, so it never doubles up
// with the "must not be empty" messages.
func (input RegisterInput) validateConfirmation(v *validate.Validator) {
	if input.Password == "" || input.Password2 == "" {
		return
	}
	v.Custom(FieldPassword, input.Password != input.Password2, msgPasswordMismatch)
}

// passwordIsStrong reports whether the password satisfies the strength
// policy: at least 8 characters with one uppercase letter, one lowercase
// letter, and one digit.
func passwordIsStrong(password string) bool {
	return len(password) >= PasswordMinLength &&
		hasUppercase.MatchString(password) &&
		hasLowercase.MatchString(password) &&
		hasDigit.MatchString(password)
}

// emailSyntaxValid reports whether the value parses as an RFC 5322 address.
func emailSyntaxValid(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
