package validation

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate may return validator.ValidationErrors or CustomValidationErrors,
// which become a 400 with field errors, or any other error (for example an
// *errs.HTTPError with an endpoint specific message), which is returned as is.
type Validatable interface {
	Validate() error
}

// BodyRequired is implemented by requests whose JSON body must be present.
// RequiredBodyMessage is the 400 message sent when it is missing or null.
type BodyRequired interface {
	RequiredBodyMessage() string
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the validator tags of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds path params, query params and the JSON body into
// payload, then validates it.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if br, ok := payload.(BodyRequired); ok {
		empty, err := bodyIsEmpty(c.Request())
		if err != nil {
			return errs.NewBadRequestError("Unable to read the request body.", false, nil, nil, nil).WithCause(err)
		}
		if empty {
			return errs.NewBadRequestError(br.RequiredBodyMessage(), true, nil, nil, nil)
		}
	}

	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors, ok := extractValidationError(err)
		if !ok {
			return err
		}
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil).WithCause(err)
	}

	return nil
}

// bodyIsEmpty reports whether the body is absent, blank or the JSON null.
// The body is restored for binding.
func bodyIsEmpty(r *http.Request) (bool, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return true, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return false, errors.WithStack(err)
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(strings.NewReader(string(raw)))
	r.ContentLength = int64(len(raw))

	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null", nil
}

func bindError(err error) error {
	message := "Invalid request payload."

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok && m != "" {
			message = m
		}
	}

	return errs.NewBadRequestError(message, false, nil, nil, nil).WithCause(err)
}

func extractValidationError(err error) (string, []errs.FieldError, bool) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors, true
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil, false
	}

	for _, err := range validationErrors {
		field := lowerFirst(err.Field())
		var msg string

		switch err.Tag() {
		case "required", "required_without":
			msg = "is required"

		case "min":
			switch err.Type().Kind() {
			case reflect.String:
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			case reflect.Slice, reflect.Array, reflect.Map:
				msg = fmt.Sprintf("must contain at least %s items", err.Param())
			default:
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			switch err.Type().Kind() {
			case reflect.String:
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			case reflect.Slice, reflect.Array, reflect.Map:
				msg = fmt.Sprintf("must not contain more than %s items", err.Param())
			default:
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "uuid":
			msg = "must be a valid GUID"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors, true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
