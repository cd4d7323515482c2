// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/credstash/internal/errors"
)

// MaxNameLength bounds credential names so they fit every supported store's key column.
const MaxNameLength = 255

var versionRegex = regexp.MustCompile(`^[0-9]{19}$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoControlChars rejects strings containing control characters such as newlines or NUL.
var NoControlChars = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.IndexFunc(s, unicode.IsControl) < 0
	},
	validation.NewError("validation_no_control_chars", "must not contain control characters"),
)

// Version validates a zero-padded 19-digit credential version.
var Version = validation.NewStringRuleWithError(
	versionRegex.MatchString,
	validation.NewError("validation_version", "must be a 19-digit zero-padded version"),
)

// CredentialName is the rule set every credential name must satisfy.
var CredentialName = []validation.Rule{
	validation.Required,
	validation.RuneLength(1, MaxNameLength),
	NotBlank,
	NoWhitespace,
	NoControlChars,
}

// ValidateName checks a credential name and returns an ErrInvalidInput on failure.
func ValidateName(name string) error {
	if err := validation.Validate(name, CredentialName...); err != nil {
		return WrapValidationError(validation.Errors{"name": err})
	}
	return nil
}

// ValidateVersion checks a credential version and returns an ErrInvalidInput on failure.
func ValidateVersion(version string) error {
	if err := validation.Validate(version, validation.Required, Version); err != nil {
		return WrapValidationError(validation.Errors{"version": err})
	}
	return nil
}
