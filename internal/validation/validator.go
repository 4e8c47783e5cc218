// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package validation provides struct validation using go-playground/validator
// v10. It exposes a thread-safe singleton validator extended with the
// application-specific `wagaraenum` rule, which checks a string against one
// of the pattern attribute enumerations:
//
//	Moods []string `validate:"omitempty,dive,wagaraenum=moods"`
//
// The parameter names an entry in models.Enumerations. Matching is
// case-insensitive, mirroring how attribute lookups behave elsewhere.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hisame-dev/wagarakan/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the struct field name that failed validation.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the tag parameter (e.g. "moods" for "wagaraenum=moods").
func (e *ValidationError) Param() string { return e.param }

// Value returns the offending value.
func (e *ValidationError) Value() interface{} { return e.value }

// Error returns a human-readable message.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError aggregates the validation failures of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []ValidationError { return ve.errors }

// Error implements the error interface.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i, err := range ve.errors {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

// ToAPIError converts the aggregated failures to the API error shape.
// This mirrors models.APIError structurally to avoid an import cycle.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError renders the validation failures with the VALIDATION_ERROR code.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	}

	if len(ve.errors) == 1 {
		err := ve.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.message,
			Details: map[string]interface{}{
				"field": err.field,
				"tag":   err.tag,
				"value": err.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	messages := make([]string, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   err.field,
			"tag":     err.tag,
			"message": err.message,
		}
		messages[i] = fmt.Sprintf("%s: %s", err.field, err.message)
	}

	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the singleton validator instance with the custom
// wagaraenum rule registered. Thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// wagaraenum=<dimension> checks membership of one of the pattern
		// attribute enumerations. Built-in rules cover the rest
		// (required, hexcolor, dive).
		err := validate.RegisterValidation("wagaraenum", func(fl validator.FieldLevel) bool {
			enum, ok := models.Enumerations[fl.Param()]
			if !ok {
				return false
			}
			return models.InEnum(fl.Field().String(), enum)
		})
		if err != nil {
			// RegisterValidation only fails for an empty tag name.
			panic(fmt.Sprintf("validation: register wagaraenum: %v", err))
		}
	})

	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil on success or a *RequestValidationError describing every
// failed field.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// ValidatePattern validates a catalog record. A nil return means the record
// satisfies the invariants: non-empty name, enumerated attribute values,
// hex-formatted palette colors.
func ValidatePattern(rec *models.PatternRecord) *RequestValidationError {
	return ValidateStruct(rec)
}

// translateError produces a readable message for a single field error.
func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "wagaraenum":
		return fmt.Sprintf("%s value %q is not in the %s enumeration", fe.Field(), fe.Value(), fe.Param())
	case "hexcolor":
		return fmt.Sprintf("%s value %q is not a hex color", fe.Field(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
