// Package router builds the Echo instance: global middleware, the error
// handler, system routes and the versioned API routes.
package router

import (
	"github.com/deppfellow/colleague-finance-api/internal/handler"
	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewRouter wires every route. System routes are public; the API routes
// require a Clerk session.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true
	r.Debug = s.Config.IsLocal()

	r.Binder = validation.NewBinder()
	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	r.Use(
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.RateLimit.Limit(),
	)

	registerSystemRoutes(r, h)

	api := r.Group("", m.Auth.RequireAuth)
	registerAPIRoutes(api, h)

	return r
}

// registerAPIRoutes adds the integration and self-service routes to g.
func registerAPIRoutes(g *echo.Group, h *handler.Handlers) {
	d := NewDispatcher(g)
	registerEEDMRoutes(g, d, h)
	registerSelfServiceRoutes(d, h)
}
