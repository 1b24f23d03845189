// Package identity carries the authenticated caller through context.Context
// so services can check permissions without depending on the HTTP layer.
package identity

import (
	"context"
	"slices"
)

type contextKey struct{}

// User is the caller resolved from the session token.
type User struct {
	ID          string
	Role        string
	Email       string
	Permissions []string
}

// HasPermission reports whether the user holds the permission code.
func (u User) HasPermission(code string) bool {
	return slices.Contains(u.Permissions, code)
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the user stored in ctx.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(contextKey{}).(User)
	return u, ok && u.ID != ""
}
