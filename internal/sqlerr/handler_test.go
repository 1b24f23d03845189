package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapCode(t *testing.T) {
	t.Parallel()

	tests := map[string]Code{
		"23502": NotNullViolation,
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23514": CheckViolation,
		"22P02": InvalidText,
		"08006": ConnectionFailure,
		"57014": QueryCanceled,
		"42P01": Other,
	}
	for in, want := range tests {
		if got := MapCode(in); got != want {
			t.Errorf("MapCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{
			name:    "no rows",
			err:     fmt.Errorf("query buyer: %w", pgx.ErrNoRows),
			kind:    errs.ErrNotFound,
			message: "Buyer not found",
		},
		{
			name: "unique violation",
			err: &pgconn.PgError{
				Code:           "23505",
				Severity:       "ERROR",
				TableName:      "budget_adjustments",
				ConstraintName: "budget_adjustments_number_key",
			},
			kind:    errs.ErrInvalidArgument,
			message: "A Budget Adjustment with this Number already exists",
		},
		{
			name:    "foreign key",
			err:     &pgconn.PgError{Code: "23503", TableName: "finance_documents", ColumnName: "vendor_id"},
			kind:    errs.ErrInvalidArgument,
			message: "The referenced Vendor does not exist",
		},
		{
			name: "connection failure",
			err:  &pgconn.PgError{Code: "08006"},
			kind: errs.ErrRepository,
		},
		{
			name: "unknown",
			err:  errors.New("conn busy"),
			kind: errs.ErrRepository,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Translate(tt.err, "buyer")
			if !errors.Is(got, tt.kind) {
				t.Fatalf("Translate() = %v, want kind %v", got, tt.kind)
			}
			if tt.message != "" && errs.Message(got) != tt.message {
				t.Errorf("message = %q, want %q", errs.Message(got), tt.message)
			}
		})
	}
}

func TestTranslateKeepsClassifiedErrors(t *testing.T) {
	t.Parallel()

	in := errs.New(errs.ErrPermission, "VIEW.GRANTS")
	if got := Translate(in, "grant"); got != in {
		t.Fatalf("Translate reclassified %v into %v", in, got)
	}
	if Translate(nil, "grant") != nil {
		t.Fatal("Translate(nil) must be nil")
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not null", &pgconn.PgError{Code: "23502", TableName: "vendors", ColumnName: "name"}, http.StatusBadRequest, "VENDOR_REQUIRED"},
		{"no rows", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"permission kind", errs.New(errs.ErrPermission, "x"), http.StatusForbidden, "FORBIDDEN"},
		{"session kind", errs.New(errs.ErrSessionExpired, "x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var httpErr *errs.HTTPError
			if !errors.As(HandleError(tt.err), &httpErr) {
				t.Fatal("expected *errs.HTTPError")
			}
			if httpErr.Status != tt.status || httpErr.Code != tt.code {
				t.Errorf("got %d %s, want %d %s", httpErr.Status, httpErr.Code, tt.status, tt.code)
			}
		})
	}
}
