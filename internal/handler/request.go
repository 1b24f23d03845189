package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// bypassCache reports whether the request's Cache-Control header carries a
// no-cache directive.
func bypassCache(c echo.Context) bool {
	for _, value := range c.Request().Header.Values(echo.HeaderCacheControl) {
		for _, directive := range strings.Split(value, ",") {
			if strings.EqualFold(strings.TrimSpace(directive), "no-cache") {
				return true
			}
		}
	}
	return false
}

// emptyRequest is bound by endpoints that take no input.
type emptyRequest struct{}

func (r *emptyRequest) Validate() error {
	return nil
}

// requireValue returns a 400 with message when value is blank.
func requireValue(value, message string) error {
	if strings.TrimSpace(value) == "" {
		return badRequest(message)
	}
	return nil
}
