package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/colleague-finance-api/internal/server"
)

// AuthService configures Clerk and the permission policy derived from it.
type AuthService struct {
	server *server.Server
	Access Access
}

// NewAuthService registers the Clerk secret key used by the session
// middleware.
func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
		Access: Access{Enforce: s.Config.Auth.EnforcePermissions},
	}
}
