package service

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// GL classes accepted by the GL account filter.
var glClasses = []string{"Asset", "Liability", "FundBalance", "Revenue", "Expense"}

// glAccountRecord is a stored GL account with its balances per fiscal year.
type glAccountRecord struct {
	model.GeneralLedgerAccount
	Balances map[string]glBalance `json:"balances"`
}

type glBalance struct {
	Budget       decimal.Decimal `json:"budget"`
	Actuals      decimal.Decimal `json:"actuals"`
	Encumbrances decimal.Decimal `json:"encumbrances"`
}

// Available is the budget not yet spent or committed.
func (b glBalance) Available() decimal.Decimal {
	return b.Budget.Sub(b.Actuals.Add(b.Encumbrances))
}

// NormalizeGlNumber strips delimiters and any project suffix ("*proj")
// from an accounting string.
func NormalizeGlNumber(accountingString string) string {
	if i := strings.IndexByte(accountingString, '*'); i >= 0 {
		accountingString = accountingString[:i]
	}
	return strings.NewReplacer("-", "", "_", "", ".", "", " ", "").Replace(accountingString)
}

// FiscalYearFor names the fiscal year containing t. Fiscal years are named
// by the calendar year they end in.
func FiscalYearFor(t time.Time, startMonth int) string {
	year := t.Year()
	if startMonth > 1 && int(t.Month()) >= startMonth {
		year++
	}
	return strconv.Itoa(year)
}

// GeneralLedgerConfigurationService reads GL and budget adjustment
// configuration.
type GeneralLedgerConfigurationService struct {
	docs   DocumentStore
	access Access
	now    func() time.Time
}

func NewGeneralLedgerConfigurationService(docs DocumentStore, access Access) *GeneralLedgerConfigurationService {
	return &GeneralLedgerConfigurationService{docs: docs, access: access, now: time.Now}
}

func (s *GeneralLedgerConfigurationService) GetGeneralLedgerConfiguration(ctx context.Context) (*model.GeneralLedgerConfiguration, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	return getConfiguration[model.GeneralLedgerConfiguration](ctx, s.docs, ConfigGeneralLedger)
}

func (s *GeneralLedgerConfigurationService) GetBudgetAdjustmentAccountRestrictions(ctx context.Context) (*model.BudgetAdjustmentAccountRestrictions, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	return getConfiguration[model.BudgetAdjustmentAccountRestrictions](ctx, s.docs, ConfigBudgetAdjustmentValidation)
}

// GetBudgetAdjustmentEnabled reports whether budget adjustments are turned
// on. Missing configuration means off.
func (s *GeneralLedgerConfigurationService) GetBudgetAdjustmentEnabled(ctx context.Context) (*model.BudgetAdjustmentsEnabled, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	enabled, err := getDocument[model.BudgetAdjustmentsEnabled](ctx, s.docs, KindConfiguration, ConfigBudgetAdjustmentEnabled)
	if errors.Is(err, errs.ErrNotFound) {
		return &model.BudgetAdjustmentsEnabled{Enabled: false}, nil
	}
	return enabled, err
}

func (s *GeneralLedgerConfigurationService) GetGlFiscalYearConfiguration(ctx context.Context) (*model.GlFiscalYearConfiguration, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	cfg, err := getConfiguration[model.GlFiscalYearConfiguration](ctx, s.docs, ConfigGlFiscalYear)
	if err != nil {
		return nil, err
	}
	if cfg.StartMonth < 1 || cfg.StartMonth > 12 {
		return nil, errs.Newf(errs.ErrConfiguration, "Fiscal year start month %d is invalid.", cfg.StartMonth)
	}
	return cfg, nil
}

// GetFiscalYears returns the open fiscal years, most recent first.
func (s *GeneralLedgerConfigurationService) GetFiscalYears(ctx context.Context) ([]string, error) {
	cfg, err := s.GetGlFiscalYearConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	years := slices.Clone(cfg.OpenFiscalYears)
	if len(years) == 0 {
		years = []string{FiscalYearFor(s.now(), cfg.StartMonth)}
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years, nil
}

// GetTodaysFiscalYear returns the fiscal year containing today's date.
func (s *GeneralLedgerConfigurationService) GetTodaysFiscalYear(ctx context.Context) (string, error) {
	cfg, err := s.GetGlFiscalYearConfiguration(ctx)
	if err != nil {
		return "", err
	}
	return FiscalYearFor(s.now(), cfg.StartMonth), nil
}

// CostCenterService reads cost centers.
type CostCenterService struct {
	docs   DocumentStore
	fiscal *GeneralLedgerConfigurationService
	access Access
}

func NewCostCenterService(docs DocumentStore, fiscal *GeneralLedgerConfigurationService, access Access) *CostCenterService {
	return &CostCenterService{docs: docs, fiscal: fiscal, access: access}
}

func (s *CostCenterService) fiscalYear(ctx context.Context, fiscalYear string) (string, error) {
	if fiscalYear != "" {
		return fiscalYear, nil
	}
	return s.fiscal.GetTodaysFiscalYear(ctx)
}

func (s *CostCenterService) list(ctx context.Context, filter map[string]any) ([]model.CostCenter, error) {
	criteria, err := contains(filter)
	if err != nil {
		return nil, err
	}
	return listDocuments[model.CostCenter](ctx, s.docs, repository.DocumentQuery{Kind: KindCostCenter, Contains: criteria})
}

// GetCostCenters returns the cost centers of fiscalYear, defaulting to
// today's fiscal year.
func (s *CostCenterService) GetCostCenters(ctx context.Context, fiscalYear string) ([]model.CostCenter, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	fy, err := s.fiscalYear(ctx, fiscalYear)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, map[string]any{"fiscalYear": fy})
}

func (s *CostCenterService) GetCostCenter(ctx context.Context, costCenterID, fiscalYear string) (*model.CostCenter, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	if costCenterID == "" {
		return nil, errs.New(errs.ErrMissingArgument, "A cost center ID must be specified.")
	}
	fy, err := s.fiscalYear(ctx, fiscalYear)
	if err != nil {
		return nil, err
	}

	centers, err := s.list(ctx, map[string]any{"fiscalYear": fy, "id": costCenterID})
	if err != nil {
		return nil, err
	}
	if len(centers) == 0 {
		return nil, errs.Newf(errs.ErrNotFound, "Cost center %s not found for fiscal year %s.", costCenterID, fy)
	}
	return &centers[0], nil
}

// QueryCostCenters filters cost centers by id and component values. A
// component criterion matches when any of its values occurs in the cost
// center id, which concatenates the cost center's component values.
func (s *CostCenterService) QueryCostCenters(ctx context.Context, criteria model.CostCenterQueryCriteria) ([]model.CostCenter, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	if len(criteria.IDs) > 1 {
		return nil, errs.New(errs.ErrInvalidArgument, "Only one cost center ID may be specified.")
	}

	fy, err := s.fiscalYear(ctx, criteria.FiscalYear)
	if err != nil {
		return nil, err
	}

	filter := map[string]any{"fiscalYear": fy}
	if len(criteria.IDs) == 1 {
		filter["id"] = criteria.IDs[0]
	}

	centers, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := centers[:0]
	for _, cc := range centers {
		if !matchesComponents(cc.ID, criteria.ComponentCriteria) {
			continue
		}
		if !criteria.IncludeActiveAccountsWithNoActivity {
			cc.GlAccounts = slices.DeleteFunc(cc.GlAccounts, func(a model.CostCenterGlAccount) bool {
				return a.Budget.IsZero() && a.Actuals.IsZero() && a.Encumbrances.IsZero()
			})
		}
		out = append(out, cc)
	}
	return out, nil
}

func matchesComponents(id string, criteria []model.CostCenterComponentQueryCriteria) bool {
	for _, c := range criteria {
		if len(c.IndividualValues) == 0 {
			continue
		}
		if !slices.ContainsFunc(c.IndividualValues, func(v string) bool { return strings.Contains(id, v) }) {
			return false
		}
	}
	return true
}

// GeneralLedgerAccountService reads and validates GL accounts.
type GeneralLedgerAccountService struct {
	docs   DocumentStore
	fiscal *GeneralLedgerConfigurationService
	access Access
}

func NewGeneralLedgerAccountService(docs DocumentStore, fiscal *GeneralLedgerConfigurationService, access Access) *GeneralLedgerAccountService {
	return &GeneralLedgerAccountService{docs: docs, fiscal: fiscal, access: access}
}

// GetAccounts returns the GL accounts, optionally of one GL class.
func (s *GeneralLedgerAccountService) GetAccounts(ctx context.Context, glClass string) ([]model.GeneralLedgerAccount, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}

	q := repository.DocumentQuery{Kind: KindGlAccount}
	if glClass != "" {
		i := slices.IndexFunc(glClasses, func(c string) bool { return strings.EqualFold(c, glClass) })
		if i < 0 {
			return nil, errs.Newf(errs.ErrInvalidArgument, "%s is not a valid GL class.", glClass)
		}
		criteria, err := contains(map[string]any{"glClass": glClasses[i]})
		if err != nil {
			return nil, err
		}
		q.Contains = criteria
	}

	records, err := listDocuments[glAccountRecord](ctx, s.docs, q)
	if err != nil {
		return nil, err
	}

	accounts := make([]model.GeneralLedgerAccount, 0, len(records))
	for _, r := range records {
		accounts = append(accounts, r.GeneralLedgerAccount)
	}
	return accounts, nil
}

func (s *GeneralLedgerAccountService) record(ctx context.Context, id string) (*glAccountRecord, error) {
	if id == "" {
		return nil, errs.New(errs.ErrMissingArgument, "A GL account must be specified.")
	}
	return getDocument[glAccountRecord](ctx, s.docs, KindGlAccount, NormalizeGlNumber(id))
}

func (s *GeneralLedgerAccountService) GetAccount(ctx context.Context, id string) (*model.GeneralLedgerAccount, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	r, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	return &r.GeneralLedgerAccount, nil
}

// Validate checks that the GL account exists and is open in fiscalYear.
func (s *GeneralLedgerAccountService) Validate(ctx context.Context, id, fiscalYear string) (*model.GlAccountValidationResponse, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	if fiscalYear == "" {
		fy, err := s.fiscal.GetTodaysFiscalYear(ctx)
		if err != nil {
			return nil, err
		}
		fiscalYear = fy
	}

	resp := &model.GlAccountValidationResponse{ID: id, Status: model.GlAccountInvalid}

	r, err := s.record(ctx, id)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		resp.ErrorMessage = "The GL account does not exist."
		return resp, nil
	case err != nil:
		return nil, err
	}

	resp.FormattedID = r.FormattedID
	resp.Description = r.Description

	balance, ok := r.Balances[fiscalYear]
	if !ok {
		resp.ErrorMessage = "The GL account is not valid for fiscal year " + fiscalYear + "."
		return resp, nil
	}

	resp.Status = model.GlAccountValid
	resp.RemainingBalance = balance.Available()
	return resp, nil
}

// AccountFundsService answers account-funds-available.
type AccountFundsService struct {
	docs   DocumentStore
	fiscal *GeneralLedgerConfigurationService
}

func NewAccountFundsService(docs DocumentStore, fiscal *GeneralLedgerConfigurationService) *AccountFundsService {
	return &AccountFundsService{docs: docs, fiscal: fiscal}
}

// CheckFunds reports whether the account behind accountingString can absorb
// amount in the fiscal year containing balanceOn (today when nil).
func (s *AccountFundsService) CheckFunds(ctx context.Context, accountingString string, amount decimal.Decimal, balanceOn *time.Time) (*model.AccountFundsAvailable, error) {
	record, err := getDocument[glAccountRecord](ctx, s.docs, KindGlAccount, NormalizeGlNumber(accountingString))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Wrap(errs.ErrNotFound, err, "The accounting string "+accountingString+" does not exist.")
		}
		return nil, err
	}

	cfg, err := getConfiguration[model.GlFiscalYearConfiguration](ctx, s.fiscal.docs, ConfigGlFiscalYear)
	if err != nil {
		return nil, err
	}

	on := s.fiscal.now()
	if balanceOn != nil {
		on = *balanceOn
	}

	result := &model.AccountFundsAvailable{
		AccountingString: accountingString,
		Amount:           amount,
		BalanceOn:        balanceOn,
		FundsAvailable:   model.FundsNotAvailable,
	}

	balance, ok := record.Balances[FiscalYearFor(on, cfg.StartMonth)]
	if ok && balance.Available().GreaterThanOrEqual(amount) {
		result.FundsAvailable = model.FundsAvailable
	}
	return result, nil
}

// AccountingStringService answers accounting-strings lookups.
type AccountingStringService struct {
	docs   DocumentStore
	fiscal *GeneralLedgerConfigurationService
	access Access
}

func NewAccountingStringService(docs DocumentStore, fiscal *GeneralLedgerConfigurationService, access Access) *AccountingStringService {
	return &AccountingStringService{docs: docs, fiscal: fiscal, access: access}
}

// GetByFilter confirms that accountingString names an existing GL account.
// With validOn set the account must also be open in the fiscal year
// containing that date.
func (s *AccountingStringService) GetByFilter(ctx context.Context, accountingString string, validOn *time.Time) (*model.AccountingString, error) {
	if err := s.access.RequireIntegration(ctx, PermissionViewAccountingStrings, "accounting-strings"); err != nil {
		return nil, err
	}

	record, err := getDocument[glAccountRecord](ctx, s.docs, KindGlAccount, NormalizeGlNumber(accountingString))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Wrap(errs.ErrNotFound, err, "The accounting string "+accountingString+" does not exist.")
		}
		return nil, err
	}

	if validOn != nil {
		cfg, err := getConfiguration[model.GlFiscalYearConfiguration](ctx, s.fiscal.docs, ConfigGlFiscalYear)
		if err != nil {
			return nil, err
		}
		if _, ok := record.Balances[FiscalYearFor(*validOn, cfg.StartMonth)]; !ok {
			return nil, errs.Newf(errs.ErrNotFound, "The accounting string %s is not valid on %s.", accountingString, validOn.Format(time.DateOnly))
		}
	}

	return &model.AccountingString{
		AccountingString: accountingString,
		Description:      record.Description,
	}, nil
}
