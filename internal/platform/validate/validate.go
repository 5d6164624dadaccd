// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate checks service inputs before anything reaches storage or a
downstream service.

A [Validator] runs every rule in a chain and reports all failures at once as a
single VALIDATION_ERROR with one detail per broken rule:

	validator := &validate.Validator{}
	validator.Required("title", input.Title).
		MaxLen("title", input.Title, 255)
	if err := validator.Err(); err != nil {
		return nil, err
	}

A Validator is single-use and not safe for concurrent use.
*/
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
)

const failedMessage = "Validation failed"

// ErrInvalidJSON reports a request body that is not the expected JSON object.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates rule failures.
type Validator struct {
	failures []apperr.FieldError
}

// Required rejects empty or blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MinLen counts runes, not bytes.
func (v *Validator) MinLen(field, value string, limit int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) < limit, fmt.Sprintf("Minimum %d characters", limit))
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > limit, fmt.Sprintf("Maximum %d characters", limit))
}

// MaxBytes limits the encoded size, for values with a byte-oriented consumer such as bcrypt.
func (v *Validator) MaxBytes(field, value string, limit int) *Validator {
	return v.Custom(field, len(value) > limit, fmt.Sprintf("Maximum %d bytes", limit))
}

// Positive rejects identifiers below 1.
func (v *Validator) Positive(field string, value int64) *Validator {
	return v.Custom(field, value <= 0, "Must be a positive integer")
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err ends the chain: nil when every rule passed.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(failedMessage, v.failures...)
}

// Invalid builds a one-field validation error outside a chain.
func Invalid(field, message string) *apperr.AppError {
	return apperr.ValidationError(failedMessage, apperr.FieldError{Field: field, Message: message})
}
