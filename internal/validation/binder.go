package validation

import (
	"mime"
	"strings"

	"github.com/labstack/echo/v4"
)

// Binder is echo's DefaultBinder extended to vendor JSON content types such
// as application/vnd.ellucian.v1+json.
type Binder struct {
	echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i any, c echo.Context) error {
	req := c.Request()
	if IsVendorJSON(req.Header.Get(echo.HeaderContentType)) {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return b.DefaultBinder.Bind(i, c)
}

// IsVendorJSON reports whether contentType is application/vnd.*+json.
func IsVendorJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "application/vnd.") && strings.HasSuffix(mediaType, "+json")
}
