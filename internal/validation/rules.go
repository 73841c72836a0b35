// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/delegations/internal/errors"
)

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

// NonBlankEntries validates that a string-keyed string map has no blank key or value.
// Used for fingerprint -> ciphertext collections.
var NonBlankEntries = validation.By(func(value interface{}) error {
	m, ok := value.(map[string]string)
	if !ok {
		return validation.NewError("validation_map_type", "must be a map of strings")
	}
	for k, v := range m {
		if strings.TrimSpace(k) == "" {
			return validation.NewError("validation_blank_key", "must not contain blank keys")
		}
		if strings.TrimSpace(v) == "" {
			return validation.NewError("validation_blank_value", "must not contain blank values")
		}
	}
	return nil
})

// NonBlankElements validates that no element of a string slice is blank.
var NonBlankElements = validation.By(func(value interface{}) error {
	xs, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_slice_type", "must be a list of strings")
	}
	for _, x := range xs {
		if strings.TrimSpace(x) == "" {
			return validation.NewError("validation_blank_element", "must not contain blank elements")
		}
	}
	return nil
})
