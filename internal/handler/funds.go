package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountFundsHandler serves account-funds-available.
type AccountFundsHandler struct {
	Handler
	funds *service.AccountFundsService
}

func NewAccountFundsHandler(s *server.Server, funds *service.AccountFundsService) *AccountFundsHandler {
	return &AccountFundsHandler{
		Handler: NewHandler(s),
		funds:   funds,
	}
}

type fundsAvailableRequest struct {
	Criteria             *string `query:"criteria"`
	AccountSpecification *string `query:"accountSpecification"`
}

func (r *fundsAvailableRequest) Validate() error {
	if r.Criteria == nil && r.AccountSpecification == nil {
		return errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeGlobalInternal,
			"Both the accountingString and amount must be specified in the request URL when a GET operation is requested.")
	}
	return nil
}

// fundsQuery is the merged criteria / accountSpecification filter.
type fundsQuery struct {
	accountingString string
	amount           string
	balanceOn        string
	submittedBy      string
}

var balanceOnLayouts = []string{time.RFC3339, "2006-01-02", "01/02/2006"}

// GetAccountFundsAvailable reports whether an accounting string has budget
// left for an amount.
func (h *AccountFundsHandler) GetAccountFundsAvailable(c echo.Context, req *fundsAvailableRequest) (*model.AccountFundsAvailable, error) {
	q := fundsQuery{}
	for _, raw := range []*string{req.Criteria, req.AccountSpecification} {
		if raw == nil {
			continue
		}
		if err := q.merge(*raw); err != nil {
			return nil, err
		}
	}

	amount, balanceOn, submittedBy, err := q.validate()
	if err != nil {
		middleware.GetLogger(c).Warn().Err(err).Msg("invalid account funds available query")
		return nil, err
	}

	result, err := h.funds.CheckFunds(c.Request().Context(), q.accountingString, amount, balanceOn)
	if err != nil {
		out := errs.ToIntegrationError(err, http.StatusForbidden)
		if out.Status == http.StatusInternalServerError {
			out.Status = http.StatusBadRequest
		}
		middleware.GetLogger(c).Error().Err(err).Int("status", out.Status).Msg("unable to check funds available")
		return nil, out
	}

	if submittedBy != "" {
		result.SubmittedBy = model.NewGUIDObject(submittedBy)
	}
	return result, nil
}

func (q *fundsQuery) merge(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" || trimmed == "{}" {
		return errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeGlobalInternal,
			"Null or empty arguments are not allowed in the request URL when a GET operation is requested.")
	}

	var f model.AccountFundsAvailableFilter
	if err := json.Unmarshal([]byte(trimmed), &f); err != nil {
		return errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeValidation,
			"The filter is not a valid account funds available filter.").WithCause(err)
	}

	if f.AccountingString != "" {
		q.accountingString = f.AccountingString
	}
	if amount := strings.Trim(string(f.Amount), `"`); amount != "" && amount != "null" {
		q.amount = amount
	}
	if f.BalanceOn != "" {
		q.balanceOn = f.BalanceOn
	}
	if f.SubmittedBy != nil && f.SubmittedBy.ID != "" {
		q.submittedBy = f.SubmittedBy.ID
	}
	return nil
}

func (q fundsQuery) validate() (decimal.Decimal, *time.Time, string, error) {
	invalid := func(message string) error {
		return errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeGlobalInternal, message)
	}

	if q.accountingString == "" {
		return decimal.Zero, nil, "", invalid("Accounting string is required when a GET operation is requested.")
	}
	if q.amount == "" {
		return decimal.Zero, nil, "", invalid("Amount is required when a GET operation is requested.")
	}

	var balanceOn *time.Time
	if q.balanceOn != "" {
		on, ok := parseDate(q.balanceOn)
		if !ok {
			return decimal.Zero, nil, "", invalid("The value provided for balanceOn filter could not be converted into a date.")
		}
		balanceOn = &on
	}

	amount, err := decimal.NewFromString(q.amount)
	if err != nil {
		return decimal.Zero, nil, "", invalid("The value provided for amount filter could not be converted into a number.")
	}

	if q.submittedBy != "" {
		id, err := uuid.Parse(q.submittedBy)
		if err != nil {
			return decimal.Zero, nil, "", invalid("The value provided for submittedBy filter could not be converted into a guid.")
		}
		if id == uuid.Nil {
			return decimal.Zero, nil, "", invalid("The empty guid is not a valid search criteria parameter.")
		}
		return amount, balanceOn, id.String(), nil
	}

	return amount, balanceOn, "", nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range balanceOnLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AccountingStringHandler serves accounting-strings.
type AccountingStringHandler struct {
	Handler
	accounting *service.AccountingStringService
}

func NewAccountingStringHandler(s *server.Server, accounting *service.AccountingStringService) *AccountingStringHandler {
	return &AccountingStringHandler{
		Handler:    NewHandler(s),
		accounting: accounting,
	}
}

type accountingStringRequest struct {
	AccountingString string `query:"accountingString"`
	ValidOn          string `query:"validOn"`
}

func (r *accountingStringRequest) Validate() error {
	if strings.TrimSpace(r.AccountingString) == "" {
		return errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeGlobalInternal,
			"The accountingString must be specified in the request URL.")
	}
	return nil
}

// GetAccountingString confirms that an accounting string exists and, with
// validOn, that it is open on that date.
func (h *AccountingStringHandler) GetAccountingString(c echo.Context, req *accountingStringRequest) (*model.AccountingString, error) {
	if err := checkQueryNames(c.QueryParams(), []string{"accountingString", "validOn"}); err != nil {
		return nil, err
	}

	var validOn *time.Time
	if req.ValidOn != "" {
		on, ok := parseDate(req.ValidOn)
		if !ok {
			return nil, errs.NewIntegrationAPIError(http.StatusBadRequest, errs.CodeValidation,
				"The value provided for validOn filter could not be converted into a date")
		}
		validOn = &on
	}

	result, err := h.accounting.GetByFilter(c.Request().Context(), req.AccountingString, validOn)
	if err != nil {
		out := errs.ToIntegrationError(err, http.StatusForbidden)
		middleware.GetLogger(c).Error().Err(err).Int("status", out.Status).Msg("unable to get accounting string")
		return nil, out
	}
	return result, nil
}
