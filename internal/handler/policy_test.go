package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func newTestContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestErrorPolicyTranslate(t *testing.T) {
	t.Parallel()

	policy := newPolicy("Unable to get the GL account.",
		ruleInvalidConfiguration,
		onInvalidArgument("Invalid argument."),
		onPermission(""),
		ruleSessionExpired,
	)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "configuration",
			err:     errs.New(errs.ErrConfiguration, "Missing gl-fiscal-year configuration."),
			status:  http.StatusNotFound,
			message: "Invalid configuration.",
		},
		{
			name:    "missing argument matches its parent kind",
			err:     errs.New(errs.ErrMissingArgument, "id is required"),
			status:  http.StatusBadRequest,
			message: "Invalid argument.",
		},
		{
			name:    "empty rule message uses the error message",
			err:     errs.New(errs.ErrPermission, "User '0000894' does not have permission to view GL accounts."),
			status:  http.StatusForbidden,
			message: "User '0000894' does not have permission to view GL accounts.",
		},
		{
			name:    "wrapped kind",
			err:     errors.Wrap(errs.New(errs.ErrConfiguration, "missing"), "loading"),
			status:  http.StatusNotFound,
			message: "Invalid configuration.",
		},
		{
			name:    "unmatched kind falls back",
			err:     errs.New(errs.ErrNotFound, "Record not found."),
			status:  http.StatusBadRequest,
			message: "Unable to get the GL account.",
		},
		{
			name:    "plain error falls back",
			err:     errors.New("connection reset"),
			status:  http.StatusBadRequest,
			message: "Unable to get the GL account.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := policy.Translate(newTestContext(), tt.err)

			var httpErr *errs.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("err = %T, want *errs.HTTPError", err)
			}
			if httpErr.Status != tt.status {
				t.Errorf("status = %d, want %d", httpErr.Status, tt.status)
			}
			if httpErr.Message != tt.message {
				t.Errorf("message = %q, want %q", httpErr.Message, tt.message)
			}
		})
	}
}

func TestErrorPolicySessionExpiredAsksToReauthenticate(t *testing.T) {
	t.Parallel()

	policy := newPolicy("Unable to get cost centers", ruleSessionInvalid)

	err := policy.Translate(newTestContext(), errs.New(errs.ErrSessionExpired, service.SessionExpiredMessage))

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", httpErr.Status)
	}
	if httpErr.Action == nil || httpErr.Action.Type != errs.ActionTypeReauthenticate {
		t.Errorf("action = %+v, want reauthenticate", httpErr.Action)
	}
}

func TestErrorPolicyIntegrationRule(t *testing.T) {
	t.Parallel()

	policy := newPolicy("Could not retrieve financial statement definition.",
		ErrorRule{Kind: errs.ErrPermission, Status: http.StatusForbidden, Integration: true})

	err := policy.Translate(newTestContext(), errs.New(errs.ErrPermission, "User does not have permission to view financial statement definitions."))

	var integrationErr *errs.IntegrationAPIError
	if !errors.As(err, &integrationErr) {
		t.Fatalf("err = %T, want *errs.IntegrationAPIError", err)
	}
	if integrationErr.Status != http.StatusForbidden || integrationErr.Errors[0].Code != errs.CodeAccessDenied {
		t.Errorf("err = %+v", integrationErr)
	}
}

func TestErrorPolicyPassesResponseErrorsThrough(t *testing.T) {
	t.Parallel()

	policy := newPolicy("fallback", onPermission("denied"))

	for _, in := range []error{
		badRequest("A Voucher ID must be specified."),
		errs.NewMissingGUIDError(),
	} {
		if out := policy.Translate(newTestContext(), in); out != in {
			t.Errorf("Translate(%v) = %v, want the same error", in, out)
		}
	}
}

func TestApproveBudgetAdjustmentPolicyConflict(t *testing.T) {
	t.Parallel()

	err := approveBudgetAdjustmentPolicy.Translate(newTestContext(), errs.New(errs.ErrConcurrentUpdate, "budget-adjustment B000101 was changed by another request."))

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v (%T), want *errs.HTTPError", err, err)
	}
	if httpErr.Status != http.StatusConflict {
		t.Errorf("status = %d, want 409", httpErr.Status)
	}
	if httpErr.Message != "The budget adjustment was changed by another request. Please try again." {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestTaxFormPolicyInvalidArgument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		form    string
		message string
	}{
		{form: model.TaxFormT4A, message: "Invalid tax form."},
		{form: model.TaxForm1099NEC, message: "Invalid tax form."},
		{form: model.TaxForm1099MI, message: "Unable to get 1099-MISC statements"},
	}

	for _, tt := range tests {
		t.Run(tt.form, func(t *testing.T) {
			t.Parallel()

			err := taxFormPolicies[tt.form].Translate(newTestContext(), errs.New(errs.ErrInvalidArgument, "bad tax form"))

			var httpErr *errs.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("err = %T, want *errs.HTTPError", err)
			}
			if httpErr.Status != http.StatusBadRequest || httpErr.Message != tt.message {
				t.Errorf("got %d %q, want 400 %q", httpErr.Status, httpErr.Message, tt.message)
			}
		})
	}
}
