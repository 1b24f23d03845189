package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/deppfellow/colleague-finance-api/internal/config"
	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/handler"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// stubResource answers list and get with fixed bodies.
type stubResource struct {
	name string
}

func (r stubResource) Name() string { return r.name }

func (r stubResource) List() echo.HandlerFunc {
	return func(c echo.Context) error { return c.String(http.StatusOK, "list") }
}

func (r stubResource) Get() echo.HandlerFunc {
	return func(c echo.Context) error { return c.String(http.StatusOK, "get "+c.Param("id")) }
}

func testHandlers(resources ...handler.EEDMResource) *handler.Handlers {
	logger := zerolog.Nop()
	s := &server.Server{Config: config.Default(), Logger: &logger}
	return &handler.Handlers{
		EEDM:         resources,
		AccountFunds: handler.NewAccountFundsHandler(s, nil),
		Accounting:   handler.NewAccountingStringHandler(s, nil),
	}
}

func TestEEDMVersionsParse(t *testing.T) {
	t.Parallel()

	for name, versions := range eedmVersions {
		if len(versions) == 0 {
			t.Errorf("%s has no versions", name)
		}
		for _, v := range versions {
			if _, err := semver.NewVersion(v); err != nil {
				t.Errorf("%s: version %q: %v", name, v, err)
			}
		}
	}
}

func TestRegisterEEDMRoutes(t *testing.T) {
	t.Parallel()

	e, g := newTestEcho()
	registerEEDMRoutes(g, NewDispatcher(g), testHandlers(stubResource{name: "vendors"}))

	rec := get(e, "/vendors", "application/vnd.hedtech.integration.v8+json")
	if rec.Code != http.StatusOK || rec.Body.String() != "list" {
		t.Fatalf("list v8 = %d %q", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Media-Type"); got != "application/vnd.hedtech.integration.v8+json" {
		t.Errorf("X-Media-Type = %q", got)
	}

	rec = get(e, "/vendors/5a0c6e2d-7d4e-4d0a-9a8e-1f2b3c4d5e6f", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "get 5a0c6e2d-7d4e-4d0a-9a8e-1f2b3c4d5e6f" {
		t.Fatalf("get = %d %q", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Media-Type"); got != "application/vnd.hedtech.integration.v11.1.0+json" {
		t.Errorf("default X-Media-Type = %q", got)
	}

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/vendors"},
		{http.MethodPut, "/vendors/5a0c6e2d-7d4e-4d0a-9a8e-1f2b3c4d5e6f"},
		{http.MethodDelete, "/vendors/5a0c6e2d-7d4e-4d0a-9a8e-1f2b3c4d5e6f"},
		{http.MethodPost, "/account-funds-available"},
		{http.MethodPost, "/accounting-strings"},
		{http.MethodGet, "/accounting-strings/5a0c6e2d-7d4e-4d0a-9a8e-1f2b3c4d5e6f"},
		{http.MethodDelete, "/accounting-strings/5a0c6e2d-7d4e-4d0a-9a8e-1f2b3c4d5e6f"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s = %d, want 405", tc.method, tc.path, rec.Code)
		}
		if ct := rec.Header().Get(echo.HeaderContentType); ct != errs.IntegrationErrorsMediaType {
			t.Errorf("%s %s Content-Type = %q", tc.method, tc.path, ct)
		}
	}
}

func TestRegisterEEDMRoutesRequiresVersions(t *testing.T) {
	t.Parallel()

	_, g := newTestEcho()
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a resource without versions")
		}
	}()
	registerEEDMRoutes(g, NewDispatcher(g), testHandlers(stubResource{name: "unknown-things"}))
}
