// Package validation binds and validates request data.
//
// It uses the `validator` library to enforce rules defined in struct tags
// and converts failures into the errs.HTTPError shape, with one field error
// per failing field.
package validation

import (
	"strings"

	"github.com/google/uuid"
)

// IsValidGUID reports whether s parses as a GUID.
func IsValidGUID(s string) bool {
	return uuid.Validate(s) == nil
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
