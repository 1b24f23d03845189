package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/colleague-finance-api/internal/config"
	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func newTestGlobal() *GlobalMiddlewares {
	logger := zerolog.Nop()
	return NewGlobalMiddlewares(&server.Server{Config: config.Default(), Logger: &logger})
}

// versionedContext is a context whose response already carries the media
// type of a versioned route.
func versionedContext() (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/vendors", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	h := c.Response().Header()
	h.Set(HeaderMediaType, "application/vnd.hedtech.integration.v11.1.0+json")
	h.Set(echo.HeaderContentType, "application/vnd.hedtech.integration.v11.1.0+json")
	return c, rec
}

func TestGlobalErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		status      int
		contentType string
	}{
		{
			name:        "integration error",
			err:         errs.NewIntegrationAPIError(http.StatusNotFound, errs.CodeGUIDNotFound, "No vendors was found for GUID 'x'."),
			status:      http.StatusNotFound,
			contentType: errs.IntegrationErrorsMediaType,
		},
		{
			name:        "wrapped integration error",
			err:         errors.Wrap(errs.NewNotSupportedError(), "vendors"),
			status:      http.StatusMethodNotAllowed,
			contentType: errs.IntegrationErrorsMediaType,
		},
		{
			name:        "http error",
			err:         errs.NewBadRequestError("A Voucher ID must be specified.", true, nil, nil, nil),
			status:      http.StatusBadRequest,
			contentType: echo.MIMEApplicationJSON,
		},
		{
			name:        "echo error",
			err:         echo.NewHTTPError(http.StatusNotFound),
			status:      http.StatusNotFound,
			contentType: echo.MIMEApplicationJSON,
		},
		{
			name:        "unclassified error",
			err:         errors.New("boom"),
			status:      http.StatusInternalServerError,
			contentType: echo.MIMEApplicationJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, rec := versionedContext()
			newTestGlobal().GlobalErrorHandler(tt.err, c)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get(echo.HeaderContentType); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if mt := rec.Header().Get(HeaderMediaType); mt != "" {
				t.Errorf("%s = %q on an error response", HeaderMediaType, mt)
			}
			if !json.Valid(rec.Body.Bytes()) {
				t.Errorf("body is not JSON: %s", rec.Body.String())
			}
		})
	}
}

func TestGlobalErrorHandlerIntegrationBody(t *testing.T) {
	t.Parallel()

	c, rec := versionedContext()
	newTestGlobal().GlobalErrorHandler(errs.NewMissingGUIDError(), c)

	var body struct {
		Errors []errs.IntegrationError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Code != errs.CodeMissingRequestID {
		t.Errorf("errors = %+v", body.Errors)
	}
	if body.Errors[0].Description == "" {
		t.Error("description is empty")
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated"},
		{name: "propagated", incoming: "req-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			var seen string
			e.Use(RequestID())
			e.GET("/", func(c echo.Context) error {
				seen = GetRequestID(c)
				return c.NoContent(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("response id %q, context id %q", got, seen)
			}
			if tt.incoming != "" && got != tt.incoming {
				t.Errorf("id = %q, want %q", got, tt.incoming)
			}
		})
	}
}

func TestGlobalErrorHandlerEmptyIntegrationError(t *testing.T) {
	t.Parallel()

	c, rec := versionedContext()
	newTestGlobal().GlobalErrorHandler(&errs.IntegrationAPIError{}, c)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != errs.IntegrationErrorsMediaType {
		t.Errorf("Content-Type = %q", ct)
	}
	if !json.Valid(rec.Body.Bytes()) {
		t.Errorf("body is not JSON: %s", rec.Body.String())
	}
}
