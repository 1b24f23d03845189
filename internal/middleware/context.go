package middleware

import (
	"context"

	"github.com/deppfellow/colleague-finance-api/internal/logger"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey and UserRoleKey hold the authenticated caller in Echo context.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	// LoggerKey holds the request-scoped logger in Echo context.
	LoggerKey = "logger"
)

type loggerCtxKey struct{}

// ContextEnhancer builds the request-scoped logger.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext stores a logger carrying request_id, method, path, ip and
// New Relic trace ids in both Echo context and the request context.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			SetLogger(c, &contextLogger)
			return next(c)
		}
	}
}

// SetLogger replaces the request-scoped logger.
func SetLogger(c echo.Context, l *zerolog.Logger) {
	c.Set(LoggerKey, l)
	ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, l)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetUserID returns the authenticated user id, or "".
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from Echo context. It falls
// back to a no-op logger when EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	l := zerolog.Nop()
	return &l
}

// LoggerFromContext is GetLogger for code that only sees context.Context.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*zerolog.Logger); ok {
		return l
	}
	l := zerolog.Nop()
	return &l
}
