package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware authenticates requests with Clerk session tokens.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{server: s}
}

// RequireAuth rejects requests without a valid Clerk bearer token and
// records the caller as an identity.User in the request context, where the
// service layer reads permissions from.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized)),
		),
	)(func(c echo.Context) error {
		claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
		if !ok {
			GetLogger(c).Warn().Msg("could not get session claims from context")
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		user := identity.User{
			ID:          claims.Subject,
			Role:        claims.ActiveOrganizationRole,
			Permissions: claims.Claims.ActiveOrganizationPermissions,
		}
		return next(Authenticate(c, user))
	})
}

// Authenticate records user on c: Echo context keys, the request context
// and the request logger.
func Authenticate(c echo.Context, user identity.User) echo.Context {
	c.Set(UserIDKey, user.ID)
	c.Set(UserRoleKey, user.Role)

	ctx := identity.WithUser(c.Request().Context(), user)
	c.SetRequest(c.Request().WithContext(ctx))

	l := GetLogger(c).With().Str("user_id", user.ID).Str("user_role", user.Role).Logger()
	SetLogger(c, &l)

	return c
}

func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	body := errs.NewUnauthorizedError("Unauthorized", false)

	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		LoggerFromContext(r.Context()).Error().Err(err).Msg("failed to write unauthorized response")
		return
	}
	LoggerFromContext(r.Context()).Warn().Str("path", r.URL.Path).Msg("rejected unauthenticated request")
}
