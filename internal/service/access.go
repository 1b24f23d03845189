package service

import (
	"context"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
)

// SessionExpiredMessage is returned when a self-service call carries no
// authenticated user.
const SessionExpiredMessage = "Your previous session has expired and is no longer valid."

// Access checks callers against permission codes. With Enforce off every
// authenticated caller holds every permission.
type Access struct {
	Enforce bool
}

// User returns the caller or an ErrSessionExpired error.
func (a Access) User(ctx context.Context) (identity.User, error) {
	user, ok := identity.FromContext(ctx)
	if !ok {
		return identity.User{}, errs.New(errs.ErrSessionExpired, SessionExpiredMessage)
	}
	return user, nil
}

// Has reports whether user holds code. An empty code is always held.
func (a Access) Has(user identity.User, code string) bool {
	return code == "" || !a.Enforce || user.HasPermission(code)
}

// Require returns the caller when it holds code. A missing caller is
// ErrSessionExpired; a missing permission is ErrPermission.
func (a Access) Require(ctx context.Context, code, action string) (identity.User, error) {
	user, err := a.User(ctx)
	if err != nil {
		return user, err
	}
	if !a.Has(user, code) {
		return user, errs.Newf(errs.ErrPermission, "User '%s' does not have permission to %s.", user.ID, action)
	}
	return user, nil
}

// RequireIntegration checks an integration resource permission. Without a
// caller it is a permission error rather than an expired session.
func (a Access) RequireIntegration(ctx context.Context, code, resource string) error {
	if code == "" || !a.Enforce {
		return nil
	}
	user, ok := identity.FromContext(ctx)
	if !ok || !user.HasPermission(code) {
		return errs.Newf(errs.ErrPermission, "User does not have permission to view %s.", resource)
	}
	return nil
}
