package service

import (
	"context"
	"testing"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/pkg/errors"
)

func TestAccessRequire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ctx     context.Context
		access  Access
		wantErr error
	}{
		{"no session", context.Background(), Access{}, errs.ErrSessionExpired},
		{"not enforced", userCtx("0001"), Access{}, nil},
		{"missing permission", userCtx("0001"), Access{Enforce: true}, errs.ErrPermission},
		{"has permission", userCtx("0001", "VIEW.VOUCHER"), Access{Enforce: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.access.Require(tt.ctx, "VIEW.VOUCHER", "view vouchers")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionExpiredMessage(t *testing.T) {
	t.Parallel()

	_, err := Access{}.User(context.Background())
	if errs.Message(err) != SessionExpiredMessage {
		t.Fatalf("message = %q", errs.Message(err))
	}
}
