package router

import (
	"github.com/deppfellow/colleague-finance-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes adds the unauthenticated routes: health, API docs
// and their static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
