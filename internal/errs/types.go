package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "amount", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client to redirect to Action.Value.
	ActionTypeRedirect ActionType = "redirect"

	// ActionTypeReauthenticate tells the client its session is gone.
	ActionTypeReauthenticate ActionType = "reauthenticate"
)

// Action is an optional instruction for the client, e.g. sign in again after
// the session expired.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the response body of self-service endpoints.
//
// Fields:
//   - Code: machine-friendly code (e.g. "NOT_FOUND").
//   - Message: the fixed, endpoint specific message.
//   - Status: HTTP status code.
//   - Override: whether the client may show Message verbatim.
//   - Errors: field-level validation errors.
//   - Action: client instruction (optional).
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`

	// cause is the error the handler translated. It is logged, never sent.
	cause error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the translated error to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is also an *HTTPError, regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithCause returns a copy of e remembering the error it was built from.
func (e *HTTPError) WithCause(err error) *HTTPError {
	cp := *e
	cp.cause = err
	return &cp
}

// WithAction returns a copy of e carrying a client instruction.
func (e *HTTPError) WithAction(action *Action) *HTTPError {
	cp := *e
	cp.Action = action
	return &cp
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
