package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StaticDir holds openapi.html and openapi.json.
const StaticDir = "static"

// OpenAPIHandler serves the API reference UI.
type OpenAPIHandler struct {
	Handler
	dir string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		dir:     StaticDir,
	}
}

// ServeOpenAPIUI writes openapi.html uncached so documentation changes show
// up on reload.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")

	page, err := os.ReadFile(filepath.Join(h.dir, "openapi.html"))
	if err != nil {
		return errors.Wrap(err, "failed to read OpenAPI UI template")
	}

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return errors.Wrap(err, "failed to write HTML response")
	}
	return nil
}
