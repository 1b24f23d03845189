package handler

import (
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// GeneralLedgerHandler serves the self-service general ledger endpoints:
// configuration, fiscal years, cost centers and GL accounts.
type GeneralLedgerHandler struct {
	Handler
	config      *service.GeneralLedgerConfigurationService
	costCenters *service.CostCenterService
	accounts    *service.GeneralLedgerAccountService
}

func NewGeneralLedgerHandler(
	s *server.Server,
	config *service.GeneralLedgerConfigurationService,
	costCenters *service.CostCenterService,
	accounts *service.GeneralLedgerAccountService,
) *GeneralLedgerHandler {
	return &GeneralLedgerHandler{
		Handler:     NewHandler(s),
		config:      config,
		costCenters: costCenters,
		accounts:    accounts,
	}
}

var (
	getGeneralLedgerConfigurationPolicy = newPolicy("Unable to get the General Ledger configuration.",
		ruleInvalidConfiguration)
	getBudgetAdjustmentConfigurationPolicy = newPolicy("Unable to get the budget adjustment configuration.",
		ruleInvalidConfiguration, ruleInvalidArgument)
	getBudgetAdjustmentEnabledPolicy = newPolicy("Unable to get the budget adjustment configuration.",
		ruleInvalidConfiguration)
	getGlFiscalYearConfigurationPolicy = newPolicy("Unable to get the gl fiscal year configuration.",
		ruleInvalidConfiguration, ruleInvalidArgument)
	getFiscalYearsPolicy = newPolicy("Unable to get the available fiscal years.",
		ruleInvalidConfiguration)
	getTodaysFiscalYearPolicy = newPolicy("Unable to get the fiscal year for today's date.",
		ruleInvalidConfiguration)

	getCostCentersPolicy = newPolicy("Unable to get cost centers.")
	getCostCenterPolicy  = newPolicy("Unable to get the cost center.")

	queryCostCentersPolicy = newPolicy("Unable to get cost centers",
		ruleInvalidArgument,
		onSessionExpired("Session expired - unable to get cost centers."))

	getGlAccountsPolicy = newPolicy("Unable to get the GL accounts.",
		ruleInvalidConfiguration, onInvalidArgument("Invalid argument."))
	getGlAccountPolicy = newPolicy("Unable to get the GL account.",
		ruleInvalidConfiguration, onInvalidArgument("Invalid argument."), ruleSessionExpired)
	validateGlAccountPolicy = newPolicy("Unable to validate the GL account.",
		ruleInvalidConfiguration, onInvalidArgument("Invalid argument."), ruleSessionExpired)
)

func (h *GeneralLedgerHandler) GetGeneralLedgerConfiguration(c echo.Context, _ *emptyRequest) (*model.GeneralLedgerConfiguration, error) {
	cfg, err := h.config.GetGeneralLedgerConfiguration(c.Request().Context())
	if err != nil {
		return nil, getGeneralLedgerConfigurationPolicy.Translate(c, err)
	}
	return cfg, nil
}

func (h *GeneralLedgerHandler) GetBudgetAdjustmentAccountRestrictions(c echo.Context, _ *emptyRequest) (*model.BudgetAdjustmentAccountRestrictions, error) {
	restrictions, err := h.config.GetBudgetAdjustmentAccountRestrictions(c.Request().Context())
	if err != nil {
		return nil, getBudgetAdjustmentConfigurationPolicy.Translate(c, err)
	}
	return restrictions, nil
}

func (h *GeneralLedgerHandler) GetBudgetAdjustmentEnabled(c echo.Context, _ *emptyRequest) (*model.BudgetAdjustmentsEnabled, error) {
	enabled, err := h.config.GetBudgetAdjustmentEnabled(c.Request().Context())
	if err != nil {
		return nil, getBudgetAdjustmentEnabledPolicy.Translate(c, err)
	}
	return enabled, nil
}

func (h *GeneralLedgerHandler) GetGlFiscalYearConfiguration(c echo.Context, _ *emptyRequest) (*model.GlFiscalYearConfiguration, error) {
	cfg, err := h.config.GetGlFiscalYearConfiguration(c.Request().Context())
	if err != nil {
		return nil, getGlFiscalYearConfigurationPolicy.Translate(c, err)
	}
	return cfg, nil
}

func (h *GeneralLedgerHandler) GetFiscalYears(c echo.Context, _ *emptyRequest) ([]string, error) {
	years, err := h.config.GetFiscalYears(c.Request().Context())
	if err != nil {
		return nil, getFiscalYearsPolicy.Translate(c, err)
	}
	return years, nil
}

func (h *GeneralLedgerHandler) GetTodaysFiscalYear(c echo.Context, _ *emptyRequest) (string, error) {
	year, err := h.config.GetTodaysFiscalYear(c.Request().Context())
	if err != nil {
		return "", getTodaysFiscalYearPolicy.Translate(c, err)
	}
	return year, nil
}

type getCostCentersRequest struct {
	FiscalYear string `query:"fiscalYear"`
}

func (r *getCostCentersRequest) Validate() error {
	return nil
}

func (h *GeneralLedgerHandler) GetCostCenters(c echo.Context, req *getCostCentersRequest) ([]model.CostCenter, error) {
	costCenters, err := h.costCenters.GetCostCenters(c.Request().Context(), req.FiscalYear)
	if err != nil {
		return nil, getCostCentersPolicy.Translate(c, err)
	}
	return costCenters, nil
}

type getCostCenterRequest struct {
	ID         string `param:"id"`
	FiscalYear string `query:"fiscalYear"`
}

func (r *getCostCenterRequest) Validate() error {
	return nil
}

func (h *GeneralLedgerHandler) GetCostCenter(c echo.Context, req *getCostCenterRequest) (*model.CostCenter, error) {
	costCenter, err := h.costCenters.GetCostCenter(c.Request().Context(), req.ID, req.FiscalYear)
	if err != nil {
		return nil, getCostCenterPolicy.Translate(c, err)
	}
	return costCenter, nil
}

type queryCostCentersRequest struct {
	model.CostCenterQueryCriteria
}

func (r *queryCostCentersRequest) RequiredBodyMessage() string {
	return "Invalid argument."
}

func (r *queryCostCentersRequest) Validate() error {
	return nil
}

func (h *GeneralLedgerHandler) QueryCostCenters(c echo.Context, req *queryCostCentersRequest) ([]model.CostCenter, error) {
	costCenters, err := h.costCenters.QueryCostCenters(c.Request().Context(), req.CostCenterQueryCriteria)
	if err != nil {
		return nil, queryCostCentersPolicy.Translate(c, err)
	}
	return costCenters, nil
}

type getGlAccountsRequest struct {
	GlClass string `query:"glClass"`
}

func (r *getGlAccountsRequest) Validate() error {
	return nil
}

func (h *GeneralLedgerHandler) GetGlAccounts(c echo.Context, req *getGlAccountsRequest) ([]model.GeneralLedgerAccount, error) {
	accounts, err := h.accounts.GetAccounts(c.Request().Context(), req.GlClass)
	if err != nil {
		return nil, getGlAccountsPolicy.Translate(c, err)
	}
	return accounts, nil
}

type getGlAccountRequest struct {
	ID string `param:"id"`
}

func (r *getGlAccountRequest) Validate() error {
	return nil
}

func (h *GeneralLedgerHandler) GetGlAccount(c echo.Context, req *getGlAccountRequest) (*model.GeneralLedgerAccount, error) {
	account, err := h.accounts.GetAccount(c.Request().Context(), req.ID)
	if err != nil {
		return nil, getGlAccountPolicy.Translate(c, err)
	}
	return account, nil
}

type validateGlAccountRequest struct {
	ID         string `param:"id"`
	FiscalYear string `query:"fiscalYear"`
}

func (r *validateGlAccountRequest) Validate() error {
	return nil
}

func (h *GeneralLedgerHandler) ValidateGlAccount(c echo.Context, req *validateGlAccountRequest) (*model.GlAccountValidationResponse, error) {
	resp, err := h.accounts.Validate(c.Request().Context(), req.ID, req.FiscalYear)
	if err != nil {
		return nil, validateGlAccountPolicy.Translate(c, err)
	}
	return resp, nil
}
