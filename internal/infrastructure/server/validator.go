package server

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator builds the request validator with the custom rules
// registered.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("password", validatePassword)
	v.RegisterValidation("username", validateUsername)
	return &CustomValidator{validator: v}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// validatePassword enforces the account password policy: at least 8
// characters with an upper-case letter, a lower-case letter, a digit, a
// special character, and no whitespace.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}

// validateUsername keeps usernames to letters, digits, dots, underscores
// and dashes.
func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}
