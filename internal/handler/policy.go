package handler

import (
	"net/http"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorRule answers errors of Kind with Status and Message. An empty Message
// sends the error's own message.
type ErrorRule struct {
	Kind    error
	Status  int
	Message string

	// Integration answers with the integration error body instead of an
	// errs.HTTPError.
	Integration bool
}

// ErrorPolicy is the error contract of one self-service endpoint: the first
// matching rule wins, anything else is a 400 with Fallback.
type ErrorPolicy struct {
	Rules    []ErrorRule
	Fallback string
}

func newPolicy(fallback string, rules ...ErrorRule) ErrorPolicy {
	return ErrorPolicy{Rules: rules, Fallback: fallback}
}

func onPermission(message string) ErrorRule {
	return ErrorRule{Kind: errs.ErrPermission, Status: http.StatusForbidden, Message: message}
}

func onNotFound(message string) ErrorRule {
	return ErrorRule{Kind: errs.ErrNotFound, Status: http.StatusNotFound, Message: message}
}

func onConfiguration(status int, message string) ErrorRule {
	return ErrorRule{Kind: errs.ErrConfiguration, Status: status, Message: message}
}

func onInvalidArgument(message string) ErrorRule {
	return ErrorRule{Kind: errs.ErrInvalidArgument, Status: http.StatusBadRequest, Message: message}
}

func onMissingArgument(message string) ErrorRule {
	return ErrorRule{Kind: errs.ErrMissingArgument, Status: http.StatusBadRequest, Message: message}
}

func onOutOfRange(message string) ErrorRule {
	return ErrorRule{Kind: errs.ErrOutOfRange, Status: http.StatusBadRequest, Message: message}
}

func onApplication(message string) ErrorRule {
	return ErrorRule{Kind: errs.ErrApplication, Status: http.StatusBadRequest, Message: message}
}

func onSessionExpired(message string) ErrorRule {
	return ErrorRule{Kind: errs.ErrSessionExpired, Status: http.StatusUnauthorized, Message: message}
}

var (
	// Frequent rules.
	ruleInvalidConfiguration = onConfiguration(http.StatusNotFound, "Invalid configuration.")
	ruleInvalidArgument      = onMissingArgument("Invalid argument.")
	ruleRecordNotFound       = onNotFound("Record not found.")
	ruleSessionExpired       = onSessionExpired("")
	ruleSessionInvalid       = onSessionExpired(service.SessionExpiredMessage)
)

// Translate converts a service error into the endpoint's response error and
// logs the original.
func (p ErrorPolicy) Translate(c echo.Context, err error) error {
	var httpErr *errs.HTTPError
	var integrationErr *errs.IntegrationAPIError
	if errors.As(err, &httpErr) || errors.As(err, &integrationErr) {
		return err
	}

	for _, rule := range p.Rules {
		if !errors.Is(err, rule.Kind) {
			continue
		}

		message := rule.Message
		if message == "" {
			message = errs.Message(err)
		}
		if message == "" {
			message = p.Fallback
		}

		middleware.GetLogger(c).Error().Err(err).Int("status", rule.Status).Msg(message)

		if rule.Integration {
			return errs.ToIntegrationError(err, rule.Status)
		}

		out := errs.NewHTTPError(rule.Status, message).WithCause(err)
		if errors.Is(err, errs.ErrSessionExpired) {
			out = out.WithAction(&errs.Action{
				Type:    errs.ActionTypeReauthenticate,
				Message: service.SessionExpiredMessage,
			})
		}
		return out
	}

	middleware.GetLogger(c).Error().Err(err).Msg(p.Fallback)
	return errs.NewBadRequestError(p.Fallback, true, nil, nil, nil).WithCause(err)
}

// badRequest is the 400 answered when a self-service request is incomplete.
func badRequest(message string) *errs.HTTPError {
	return errs.NewBadRequestError(message, true, nil, nil, nil)
}
