package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// HeaderMediaType names the media type a versioned route answered with.
const HeaderMediaType = "X-Media-Type"

// GlobalMiddlewares groups the middleware installed on every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

// CORS allows the configured origins and exposes the paging and media type
// headers to browsers.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		ExposeHeaders: []string{
			"X-Total-Count",
			"X-Max-Page-Size",
			HeaderMediaType,
			"X-Content-Restricted",
			"Link",
			RequestIDHeader,
		},
	})
}

// errorStatus returns the status a handler error will be answered with.
func errorStatus(err error, fallback int) int {
	var (
		integrationErr *errs.IntegrationAPIError
		httpErr        *errs.HTTPError
		echoErr        *echo.HTTPError
	)
	switch {
	case errors.As(err, &integrationErr):
		return integrationErr.Status
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	}
	return fallback
}

// RequestLogger writes one "API" line per request, at a level derived from
// the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet when a
			// handler returns an error.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = errorStatus(v.Error, http.StatusInternalServerError)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("accept", c.Request().Header.Get(echo.HeaderAccept)).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler renders every error returned by handlers.
//
// Integration errors are written as the errors.v2 media type unchanged.
// Everything else is rendered as an errs.HTTPError; errors that reach this
// point unclassified go through sqlerr.HandleError.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	logger := GetLogger(c)

	var integrationErr *errs.IntegrationAPIError
	if errors.As(err, &integrationErr) {
		var code string
		if len(integrationErr.Errors) > 0 {
			code = integrationErr.Errors[0].Code
		}
		if integrationErr.Status == 0 {
			integrationErr.Status = http.StatusBadRequest
		}
		logger.Error().Stack().
			Err(originalErr).
			Int("status", integrationErr.Status).
			Str("error_code", code).
			Msg(integrationErr.Error())

		writeIntegrationError(c, integrationErr)
		return
	}

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			httpErr = fromEchoError(echoErr)
		} else {
			_ = errors.As(sqlerr.HandleError(err), &httpErr)
		}
	}
	if httpErr == nil {
		httpErr = errs.NewInternalServerError()
	}

	e := logger.Error()
	if httpErr.Status < http.StatusInternalServerError {
		e = logger.Warn()
	}
	e.Stack().
		Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if !c.Response().Committed {
		h := c.Response().Header()
		h.Del(HeaderMediaType)
		h.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if err := c.JSON(httpErr.Status, httpErr); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}

func fromEchoError(echoErr *echo.HTTPError) *errs.HTTPError {
	switch echoErr.Code {
	case http.StatusNotFound:
		return errs.NewNotFoundError("Route not found", false, nil)
	case http.StatusMethodNotAllowed:
		return errs.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
	}

	message, ok := echoErr.Message.(string)
	if !ok {
		message = http.StatusText(echoErr.Code)
	}
	return errs.NewHTTPError(echoErr.Code, message)
}

func writeIntegrationError(c echo.Context, e *errs.IntegrationAPIError) {
	if c.Response().Committed {
		return
	}

	body, err := json.Marshal(e)
	if err != nil {
		GetLogger(c).Error().Err(err).Msg("failed to encode integration error")
		body = []byte(`{"errors":[]}`)
	}

	// The served media type set by version routing no longer applies.
	h := c.Response().Header()
	h.Del(HeaderMediaType)
	h.Set(echo.HeaderContentType, errs.IntegrationErrorsMediaType)

	if err := c.Blob(e.Status, errs.IntegrationErrorsMediaType, body); err != nil {
		GetLogger(c).Error().Err(err).Msg("failed to write error response")
	}
}
