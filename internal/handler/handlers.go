package handler

import (
	"net/http"

	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one object.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler

	// EEDM holds one handler per integration resource, in route order.
	EEDM          []EEDMResource
	AccountFunds  *AccountFundsHandler
	Accounting    *AccountingStringHandler
	GeneralLedger *GeneralLedgerHandler
	Budget        *BudgetAdjustmentHandler
	Approval      *ApprovalHandler
	Statements    *StatementHandler
	Procurement   *ProcurementHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
		EEDM:          newEEDMHandlers(s, services.EEDM, services.Ethos),
		AccountFunds:  NewAccountFundsHandler(s, services.AccountFunds),
		Accounting:    NewAccountingStringHandler(s, services.Accounting),
		GeneralLedger: NewGeneralLedgerHandler(s, services.GLConfig, services.CostCenters, services.GLAccounts),
		Budget:        NewBudgetAdjustmentHandler(s, services.Budget, services.Drafts),
		Approval:      NewApprovalHandler(s, services.Approvers, services.Initiators, services.Approvals),
		Statements:    NewStatementHandler(s, services.Statements, services.TaxForms),
		Procurement:   NewProcurementHandler(s, services.Procurement, services.Vendors, services.Reference),
	}
}

// protected answers permission failures with 403 and accepts filters.
func protected(filters ...string) EEDMOptions {
	return EEDMOptions{PermissionStatus: http.StatusForbidden, Filters: filters}
}

func filtered(filters ...string) EEDMOptions {
	return EEDMOptions{Filters: filters}
}

func newEEDMHandlers(s *server.Server, e *service.EEDMServices, ethos *service.EthosService) []EEDMResource {
	return []EEDMResource{
		NewEEDMHandler(s, ethos, e.AccountingStringComponents, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.AccountingStringComponentValues, EEDMOptions{
			PermissionStatus: http.StatusForbidden,
			Filters:          []string{"component", "transactionStatus", "type", "typeAccount", "typeFund"},
			NamedQueries:     []string{"effectiveOn"},
		}),
		NewEEDMHandler(s, ethos, e.AccountingStringFormats, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.AccountingStringSubcomponents, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.AccountingStringSubcomponentValues, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.AccountsPayableInvoices, protected("invoiceNumber", "vendor")),
		NewEEDMHandler(s, ethos, e.AccountsPayableSources, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.Buyers, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.CommodityCodes, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.CommodityUnitTypes, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.FinancialDocumentTypes, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.FiscalPeriods, filtered("fiscalYear")),
		NewEEDMHandler(s, ethos, e.FiscalYears, filtered("reportingSegment")),
		NewEEDMHandler(s, ethos, e.FixedAssetCategories, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.FixedAssetDesignations, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.FixedAssetTypes, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.FixedAssets, protected()),
		NewEEDMHandler(s, ethos, e.FreeOnBoardTypes, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.GeneralLedgerTransactions, protected()),
		NewEEDMHandler(s, ethos, e.Grants, EEDMOptions{
			PermissionStatus: http.StatusForbidden,
			Filters:          []string{"reportingSegment"},
			NamedQueries:     []string{"fiscalYear"},
		}),
		NewEEDMHandler(s, ethos, e.LedgerActivities, EEDMOptions{
			PermissionStatus: http.StatusForbidden,
			Filters:          []string{"fiscalYear", "fiscalPeriod", "period", "reportingSegment", "transactionDate"},
			NamedQueries:     []string{"fiscalYear"},
		}),
		NewEEDMHandler(s, ethos, e.PaymentTransactions, EEDMOptions{
			PermissionStatus: http.StatusForbidden,
			Filters:          []string{"document", "payee"},
			NamedQueries:     []string{"document"},
		}),
		NewEEDMHandler(s, ethos, e.ProcurementReceipts, protected("purchaseOrder")),
		NewEEDMHandler(s, ethos, e.PurchaseClassifications, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.PurchaseOrders, protected("orderNumber")),
		NewEEDMHandler(s, ethos, e.Requisitions, protected("requisitionNumber")),
		NewEEDMHandler(s, ethos, e.ShipToDestinations, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.ShippingMethods, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.VendorAddressUsages, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.VendorClassifications, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.VendorContacts, protected("vendor")),
		NewEEDMHandler(s, ethos, e.VendorHoldReasons, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.VendorPaymentTerms, EEDMOptions{}),
		NewEEDMHandler(s, ethos, e.Vendors, EEDMOptions{
			PermissionStatus: http.StatusForbidden,
			Filters:          []string{"vendorDetail", "classifications", "statuses", "relatedReference"},
			NamedQueries:     []string{"vendorDetail"},
		}),
	}
}
