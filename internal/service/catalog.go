package service

import (
	"github.com/deppfellow/colleague-finance-api/internal/lib/cache"
	"github.com/deppfellow/colleague-finance-api/internal/lib/job"
	"github.com/deppfellow/colleague-finance-api/internal/model"
)

// Permission codes of the protected integration resources.
const (
	PermissionViewAccountingStrings   = "VIEW.ACCOUNTING.STRINGS"
	PermissionViewAPInvoices          = "VIEW.AP.INVOICES"
	PermissionViewFixedAssets         = "VIEW.FIXED.ASSETS"
	PermissionViewGLTransactions      = "VIEW.GL.TRANSACTIONS"
	PermissionViewGrants              = "VIEW.GRANTS"
	PermissionViewLedgerActivities    = "VIEW.LEDGER.ACTIVITIES"
	PermissionViewPaymentTransactions = "VIEW.PAYMENT.TRANSACTIONS"
	PermissionViewProcurementReceipts = "VIEW.PROCUREMENT.RECEIPTS"
	PermissionViewPurchaseOrders      = "VIEW.PURCHASE.ORDERS"
	PermissionViewRequisitions        = "VIEW.REQUISITIONS"
	PermissionViewVendorContacts      = "VIEW.VENDOR.CONTACTS"
	PermissionViewVendors             = "VIEW.VENDORS"
)

// EEDMServices holds one Resource per integration resource.
type EEDMServices struct {
	AccountingStringComponents         *Resource[model.AccountingStringComponent]
	AccountingStringComponentValues    *Resource[model.AccountingStringComponentValue]
	AccountingStringFormats            *Resource[model.AccountingStringFormat]
	AccountingStringSubcomponents      *Resource[model.AccountingStringSubcomponent]
	AccountingStringSubcomponentValues *Resource[model.AccountingStringSubcomponentValue]
	AccountsPayableInvoices            *Resource[model.AccountsPayableInvoice]
	AccountsPayableSources             *Resource[model.AccountsPayableSource]
	Buyers                             *Resource[model.Buyer]
	CommodityCodes                     *Resource[model.CommodityCode]
	CommodityUnitTypes                 *Resource[model.CommodityUnitType]
	FinancialDocumentTypes             *Resource[model.FinancialDocumentType]
	FiscalPeriods                      *Resource[model.FiscalPeriod]
	FiscalYears                        *Resource[model.FiscalYear]
	FixedAssetCategories               *Resource[model.FixedAssetCategory]
	FixedAssetDesignations             *Resource[model.FixedAssetDesignation]
	FixedAssetTypes                    *Resource[model.FixedAssetType]
	FixedAssets                        *Resource[model.FixedAsset]
	FreeOnBoardTypes                   *Resource[model.FreeOnBoardType]
	GeneralLedgerTransactions          *Resource[model.GeneralLedgerTransaction]
	Grants                             *Resource[model.Grant]
	LedgerActivities                   *Resource[model.LedgerActivity]
	PaymentTransactions                *Resource[model.PaymentTransaction]
	ProcurementReceipts                *Resource[model.ProcurementReceipt]
	PurchaseClassifications            *Resource[model.PurchaseClassification]
	PurchaseOrders                     *Resource[model.PurchaseOrder]
	Requisitions                       *Resource[model.Requisition]
	ShipToDestinations                 *Resource[model.ShipToDestination]
	ShippingMethods                    *Resource[model.ShippingMethod]
	VendorAddressUsages                *Resource[model.VendorAddressUsage]
	VendorClassifications              *Resource[model.VendorClassification]
	VendorContacts                     *Resource[model.VendorContact]
	VendorHoldReasons                  *Resource[model.VendorHoldReason]
	VendorPaymentTerms                 *Resource[model.VendorPaymentTerm]
	Vendors                            *Resource[model.Vendor]
}

// NewEEDMServices builds every integration resource over store.
func NewEEDMServices(store EEDMStore, c *cache.Cache, access Access) *EEDMServices {
	return &EEDMServices{
		AccountingStringComponents:         NewResource[model.AccountingStringComponent](ResourceSpec{Name: "accounting-string-components"}, store, c, access),
		AccountingStringComponentValues:    NewResource[model.AccountingStringComponentValue](ResourceSpec{Name: "accounting-string-component-values", Permission: PermissionViewAccountingStrings, Paged: true, PageSize: 200}, store, c, access),
		AccountingStringFormats:            NewResource[model.AccountingStringFormat](ResourceSpec{Name: "accounting-string-formats"}, store, c, access),
		AccountingStringSubcomponents:      NewResource[model.AccountingStringSubcomponent](ResourceSpec{Name: "accounting-string-subcomponents"}, store, c, access),
		AccountingStringSubcomponentValues: NewResource[model.AccountingStringSubcomponentValue](ResourceSpec{Name: "accounting-string-subcomponent-values", Paged: true, PageSize: 200}, store, c, access),
		AccountsPayableInvoices:            NewResource[model.AccountsPayableInvoice](ResourceSpec{Name: "accounts-payable-invoices", Permission: PermissionViewAPInvoices, Paged: true}, store, c, access),
		AccountsPayableSources:             NewResource[model.AccountsPayableSource](ResourceSpec{Name: "accounts-payable-sources"}, store, c, access),
		Buyers:                             NewResource[model.Buyer](ResourceSpec{Name: "buyers", Paged: true}, store, c, access),
		CommodityCodes:                     NewResource[model.CommodityCode](ResourceSpec{Name: "commodity-codes"}, store, c, access),
		CommodityUnitTypes:                 NewResource[model.CommodityUnitType](ResourceSpec{Name: "commodity-unit-types"}, store, c, access),
		FinancialDocumentTypes:             NewResource[model.FinancialDocumentType](ResourceSpec{Name: "financial-document-types"}, store, c, access),
		FiscalPeriods:                      NewResource[model.FiscalPeriod](ResourceSpec{Name: "fiscal-periods"}, store, c, access),
		FiscalYears:                        NewResource[model.FiscalYear](ResourceSpec{Name: "fiscal-years"}, store, c, access),
		FixedAssetCategories:               NewResource[model.FixedAssetCategory](ResourceSpec{Name: "fixed-asset-categories"}, store, c, access),
		FixedAssetDesignations:             NewResource[model.FixedAssetDesignation](ResourceSpec{Name: "fixed-asset-designations"}, store, c, access),
		FixedAssetTypes:                    NewResource[model.FixedAssetType](ResourceSpec{Name: "fixed-asset-types"}, store, c, access),
		FixedAssets:                        NewResource[model.FixedAsset](ResourceSpec{Name: "fixed-assets", Permission: PermissionViewFixedAssets, Paged: true}, store, c, access),
		FreeOnBoardTypes:                   NewResource[model.FreeOnBoardType](ResourceSpec{Name: "free-on-board-types"}, store, c, access),
		GeneralLedgerTransactions:          NewResource[model.GeneralLedgerTransaction](ResourceSpec{Name: "general-ledger-transactions", Permission: PermissionViewGLTransactions, Paged: true}, store, c, access),
		Grants:                             NewResource[model.Grant](ResourceSpec{Name: "grants", Permission: PermissionViewGrants, Paged: true}, store, c, access),
		LedgerActivities:                   NewResource[model.LedgerActivity](ResourceSpec{Name: "ledger-activities", Permission: PermissionViewLedgerActivities, Paged: true}, store, c, access),
		PaymentTransactions:                NewResource[model.PaymentTransaction](ResourceSpec{Name: "payment-transactions", Permission: PermissionViewPaymentTransactions, Paged: true}, store, c, access),
		ProcurementReceipts:                NewResource[model.ProcurementReceipt](ResourceSpec{Name: "procurement-receipts", Permission: PermissionViewProcurementReceipts, Paged: true}, store, c, access),
		PurchaseClassifications:            NewResource[model.PurchaseClassification](ResourceSpec{Name: "purchase-classifications"}, store, c, access),
		PurchaseOrders:                     NewResource[model.PurchaseOrder](ResourceSpec{Name: "purchase-orders", Permission: PermissionViewPurchaseOrders, Paged: true}, store, c, access),
		Requisitions:                       NewResource[model.Requisition](ResourceSpec{Name: "requisitions", Permission: PermissionViewRequisitions, Paged: true}, store, c, access),
		ShipToDestinations:                 NewResource[model.ShipToDestination](ResourceSpec{Name: "ship-to-destinations"}, store, c, access),
		ShippingMethods:                    NewResource[model.ShippingMethod](ResourceSpec{Name: "shipping-methods"}, store, c, access),
		VendorAddressUsages:                NewResource[model.VendorAddressUsage](ResourceSpec{Name: "vendor-address-usages"}, store, c, access),
		VendorClassifications:              NewResource[model.VendorClassification](ResourceSpec{Name: "vendor-classifications"}, store, c, access),
		VendorContacts:                     NewResource[model.VendorContact](ResourceSpec{Name: "vendor-contacts", Permission: PermissionViewVendorContacts, Paged: true}, store, c, access),
		VendorHoldReasons:                  NewResource[model.VendorHoldReason](ResourceSpec{Name: "vendor-hold-reasons"}, store, c, access),
		VendorPaymentTerms:                 NewResource[model.VendorPaymentTerm](ResourceSpec{Name: "vendor-payment-terms"}, store, c, access),
		Vendors:                            NewResource[model.Vendor](ResourceSpec{Name: "vendors", Permission: PermissionViewVendors, Paged: true}, store, c, access),
	}
}

// Warmers returns the unpaged resources, whose lists are cached.
func (e *EEDMServices) Warmers() []job.CacheWarmer {
	return []job.CacheWarmer{
		e.AccountingStringComponents,
		e.AccountingStringFormats,
		e.AccountingStringSubcomponents,
		e.AccountsPayableSources,
		e.CommodityCodes,
		e.CommodityUnitTypes,
		e.FinancialDocumentTypes,
		e.FiscalPeriods,
		e.FiscalYears,
		e.FixedAssetCategories,
		e.FixedAssetDesignations,
		e.FixedAssetTypes,
		e.FreeOnBoardTypes,
		e.PurchaseClassifications,
		e.ShipToDestinations,
		e.ShippingMethods,
		e.VendorAddressUsages,
		e.VendorClassifications,
		e.VendorHoldReasons,
		e.VendorPaymentTerms,
	}
}
