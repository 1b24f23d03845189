package model

import (
	"github.com/shopspring/decimal"
)

// CostCenter aggregates the GL accounts a user may see for one fiscal year.
type CostCenter struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	UnitID            string                `json:"unitId,omitempty"`
	FiscalYear        string                `json:"fiscalYear"`
	TotalBudget       decimal.Decimal       `json:"totalBudget"`
	TotalActuals      decimal.Decimal       `json:"totalActuals"`
	TotalEncumbrances decimal.Decimal       `json:"totalEncumbrances"`
	Subtotals         []CostCenterSubtotal  `json:"costCenterSubtotals,omitempty"`
	GlAccounts        []CostCenterGlAccount `json:"glAccounts,omitempty"`
}

type CostCenterSubtotal struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	GlClass           string          `json:"glClass"`
	TotalBudget       decimal.Decimal `json:"totalBudget"`
	TotalActuals      decimal.Decimal `json:"totalActuals"`
	TotalEncumbrances decimal.Decimal `json:"totalEncumbrances"`
}

type CostCenterGlAccount struct {
	GlAccountNumber    string          `json:"glAccountNumber"`
	FormattedGlAccount string          `json:"formattedGlAccount"`
	Description        string          `json:"description"`
	Budget             decimal.Decimal `json:"budget"`
	Actuals            decimal.Decimal `json:"actuals"`
	Encumbrances       decimal.Decimal `json:"encumbrances"`
}

// CostCenterQueryCriteria filters POST /qapi/cost-centers.
type CostCenterQueryCriteria struct {
	FiscalYear                          string                             `json:"fiscalYear"`
	IDs                                 []string                           `json:"ids,omitempty"`
	ComponentCriteria                   []CostCenterComponentQueryCriteria `json:"componentCriteria,omitempty"`
	IncludeActiveAccountsWithNoActivity bool                               `json:"includeActiveAccountsWithNoActivity"`
}

type CostCenterComponentQueryCriteria struct {
	ComponentName    string   `json:"componentName"`
	IndividualValues []string `json:"individualValues,omitempty"`
}

type GeneralLedgerAccount struct {
	ID          string `json:"id"`
	FormattedID string `json:"formattedId"`
	Description string `json:"description"`
	GlClass     string `json:"glClass,omitempty"`
}

// Validation statuses returned by GlAccountValidationResponse.
const (
	GlAccountValid   = "success"
	GlAccountInvalid = "failure"
)

type GlAccountValidationResponse struct {
	ID               string          `json:"id"`
	FormattedID      string          `json:"formattedId,omitempty"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	ErrorMessage     string          `json:"errorMessage,omitempty"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

type GeneralLedgerComponent struct {
	ComponentName   string `json:"componentName"`
	StartPosition   int    `json:"startPosition"`
	ComponentLength int    `json:"componentLength"`
}

type GeneralLedgerConfiguration struct {
	AccountStructure string                   `json:"accountStructure"`
	MajorComponents  []GeneralLedgerComponent `json:"majorComponents"`
	Delimiter        string                   `json:"delimiter"`
}

type BudgetAdjustmentAccountRestrictions struct {
	SameCostCenterRequired   bool     `json:"sameCostCenterRequired"`
	SameCostCenterComponents []string `json:"sameCostCenterComponents,omitempty"`
	ApprovalRequired         bool     `json:"approvalRequired"`
}

type BudgetAdjustmentsEnabled struct {
	Enabled bool `json:"enabled"`
}

// GlFiscalYearConfiguration names fiscal years by the calendar year they end
// in; StartMonth is 1-12.
type GlFiscalYearConfiguration struct {
	StartMonth        int      `json:"startMonth"`
	CurrentFiscalYear string   `json:"currentFiscalYear"`
	OpenFiscalYears   []string `json:"openFiscalYears,omitempty"`
}
