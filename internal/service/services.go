// Package service contains the business logic.
//
// It sits between the handler and repository layers. Integration resources
// are served by the generic Resource over the EEDM record store; the
// self-service services work on typed documents in finance_documents.
// Every service reads the caller from context via Access.
package service

import (
	"github.com/deppfellow/colleague-finance-api/internal/lib/job"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/deppfellow/colleague-finance-api/internal/server"
)

type Services struct {
	Auth   *AuthService
	Job    *job.JobService
	Access Access

	EEDM         *EEDMServices
	Ethos        *EthosService
	AccountFunds *AccountFundsService
	Accounting   *AccountingStringService
	GLConfig     *GeneralLedgerConfigurationService
	CostCenters  *CostCenterService
	GLAccounts   *GeneralLedgerAccountService
	Budget       *BudgetAdjustmentService
	Drafts       *DraftBudgetAdjustmentService
	Approvers    *ApproverService
	Initiators   *InitiatorService
	Approvals    *DocumentApprovalService
	Statements   *FinancialStatementDefinitionService
	TaxForms     *TaxFormStatementService
	Procurement  *ProcurementDocumentService
	Vendors      *VendorService
	Reference    *ReferenceService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)
	access := authService.Access

	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	glConfig := NewGeneralLedgerConfigurationService(repos.Documents, access)

	services := &Services{
		Auth:         authService,
		Job:          s.Job,
		Access:       access,
		EEDM:         NewEEDMServices(repos.EEDM, s.Cache, access),
		Ethos:        NewEthosService(repos.Ethos, s.Cache),
		AccountFunds: NewAccountFundsService(repos.Documents, glConfig),
		Accounting:   NewAccountingStringService(repos.Documents, glConfig, access),
		GLConfig:     glConfig,
		CostCenters:  NewCostCenterService(repos.Documents, glConfig, access),
		GLAccounts:   NewGeneralLedgerAccountService(repos.Documents, glConfig, access),
		Budget:       NewBudgetAdjustmentService(repos.Documents, access, notifier),
		Drafts:       NewDraftBudgetAdjustmentService(repos.Documents, access),
		Approvers:    NewApproverService(repos.Documents, access),
		Initiators:   NewInitiatorService(repos.Documents, access),
		Approvals:    NewDocumentApprovalService(repos.Documents, access),
		Statements:   NewFinancialStatementDefinitionService(repos.Documents, access),
		TaxForms:     NewTaxFormStatementService(repos.Documents, access),
		Procurement:  NewProcurementDocumentService(repos.Documents, access),
		Vendors:      NewVendorService(repos.Documents, access),
		Reference:    NewReferenceService(repos.Documents, s.Cache, access),
	}

	if s.Job != nil {
		s.Job.RegisterWarmers(append(services.EEDM.Warmers(), services.Reference)...)
	}

	return services, nil
}
