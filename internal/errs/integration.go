package errs

import (
	"errors"
	"net/http"
)

// IntegrationErrorsMediaType is the content type of every integration error
// response.
const IntegrationErrorsMediaType = "application/vnd.hedtech.integration.errors.v2+json"

// Integration error codes.
const (
	CodeGlobalInternal          = "Global.Internal.Error"
	CodeValidation              = "Validation.Exception"
	CodeGUIDNotFound            = "GUID.Not.Found"
	CodeAccessDenied            = "Access.Denied"
	CodeMissingRequestID        = "Missing.Request.ID"
	CodeMissingRequestBody      = "Missing.Request.Body"
	CodeMissingRequiredProperty = "Missing.Required.Property"
)

var codeDescriptions = map[string]string{
	CodeGlobalInternal:          "Unspecified Error on the system which prevented execution.",
	CodeValidation:              "An error occurred attempting to validate data.",
	CodeGUIDNotFound:            "GUID not found.",
	CodeAccessDenied:            "The authenticated user does not have permission to access the resource.",
	CodeMissingRequestID:        "The request is missing an ID.",
	CodeMissingRequestBody:      "The request body is missing.",
	CodeMissingRequiredProperty: "A required property is missing.",
}

// IntegrationError is one entry of an integration error response.
type IntegrationError struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Message     string `json:"message"`
	GUID        string `json:"guid,omitempty"`
	ID          string `json:"id,omitempty"`
}

// IntegrationAPIError is the error returned by integration endpoints. It
// serialises as {"errors": [...]}; Status is the HTTP status to answer with.
type IntegrationAPIError struct {
	Status int                `json:"-"`
	Errors []IntegrationError `json:"errors"`

	cause error
}

// NewIntegrationAPIError returns an error with a single entry. A zero status
// means 400.
func NewIntegrationAPIError(status int, code, message string) *IntegrationAPIError {
	if status == 0 {
		status = http.StatusBadRequest
	}
	e := &IntegrationAPIError{Status: status}
	return e.AddError(code, message)
}

// AddError appends an entry, filling the description from the code.
func (e *IntegrationAPIError) AddError(code, message string) *IntegrationAPIError {
	if code == "" {
		code = CodeGlobalInternal
	}
	e.Errors = append(e.Errors, IntegrationError{
		Code:        code,
		Description: codeDescriptions[code],
		Message:     message,
	})
	return e
}

// WithCause remembers the error this one was translated from.
func (e *IntegrationAPIError) WithCause(err error) *IntegrationAPIError {
	e.cause = err
	return e
}

func (e *IntegrationAPIError) Error() string {
	if len(e.Errors) == 0 {
		return "integration API error"
	}
	return e.Errors[0].Message
}

func (e *IntegrationAPIError) Unwrap() error {
	return e.cause
}

// NewNotSupportedError is returned by the mutation stubs of read-only
// integration resources.
func NewNotSupportedError() *IntegrationAPIError {
	e := &IntegrationAPIError{Status: http.StatusMethodNotAllowed}
	e.Errors = append(e.Errors, IntegrationError{
		Code:        CodeGlobalInternal,
		Description: "Unsupported",
		Message:     "The requested operation is not supported by this resource.",
	})
	return e
}

// NewMissingGUIDError is returned when a GUID path parameter is blank.
func NewMissingGUIDError() *IntegrationAPIError {
	return NewIntegrationAPIError(http.StatusBadRequest, CodeMissingRequestID, "The GUID must be specified in the request URL.")
}

// ToIntegrationError translates err into an integration error. An
// *IntegrationAPIError is returned unchanged; other errors map in order:
//
//	ErrNotFound         -> 404 GUID.Not.Found
//	ErrPermission       -> permissionStatus Access.Denied
//	ErrInvalidArgument  -> 400 Validation.Exception
//	ErrRepository       -> 400 Global.Internal.Error
//	anything else       -> 500 Global.Internal.Error
func ToIntegrationError(err error, permissionStatus int) *IntegrationAPIError {
	if permissionStatus == 0 {
		permissionStatus = http.StatusUnauthorized
	}

	var (
		status  int
		code    string
		message = Message(err)
	)

	var integrationErr *IntegrationAPIError
	if errors.As(err, &integrationErr) {
		return integrationErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		status, code = http.StatusNotFound, CodeGUIDNotFound
	case errors.Is(err, ErrPermission):
		status, code = permissionStatus, CodeAccessDenied
	case errors.Is(err, ErrInvalidArgument):
		status, code = http.StatusBadRequest, CodeValidation
	case errors.Is(err, ErrRepository):
		status, code = http.StatusBadRequest, CodeGlobalInternal
	default:
		status, code = http.StatusInternalServerError, CodeGlobalInternal
		message = "An unexpected error occurred."
	}

	if message == "" {
		message = err.Error()
	}

	return NewIntegrationAPIError(status, code, message).WithCause(err)
}
