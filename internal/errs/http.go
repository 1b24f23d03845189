package errs

import (
	"net/http"
)

// NewHTTPError creates an HTTPError for any status, with the code derived
// from the status text.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// override lets the client show message verbatim.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	err := NewHTTPError(http.StatusUnauthorized, message)
	err.Override = override
	return err
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	err := NewHTTPError(http.StatusForbidden, message)
	err.Override = override
	return err
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code replaces the default "BAD_REQUEST" when not nil. errors and action are
// optional.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	err := NewHTTPError(http.StatusBadRequest, message)
	if code != nil {
		err.Code = *code
	}
	err.Override = override
	err.Errors = errors
	err.Action = action
	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	err := NewHTTPError(http.StatusNotFound, message)
	if code != nil {
		err.Code = *code
	}
	err.Override = override
	return err
}

// NewNotAcceptableError creates a 406 for an unsupported media type version.
func NewNotAcceptableError(message string) *HTTPError {
	return NewHTTPError(http.StatusNotAcceptable, message)
}

// NewInternalServerError creates a 500 with the generic status text so
// internals never leak to clients.
func NewInternalServerError() *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// ValidationError converts a validation failure into a 400 Bad Request.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil).WithCause(err)
}
