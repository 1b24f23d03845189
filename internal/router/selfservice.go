package router

import (
	"net/http"

	"github.com/deppfellow/colleague-finance-api/internal/handler"
	"github.com/deppfellow/colleague-finance-api/internal/model"
)

var (
	// v1 is the self-service version of routes whose path is shared with an
	// integration default.
	v1 = SelfService("1")
	// ss is the self-service version of routes served without a vendor
	// media type.
	ss = v1.Default()
)

func registerSelfServiceRoutes(d *Dispatcher, h *handler.Handlers) {
	registerGeneralLedgerRoutes(d, h.GeneralLedger)
	registerBudgetRoutes(d, h.Budget)
	registerApprovalRoutes(d, h.Approval)
	registerStatementRoutes(d, h.Statements)
	registerProcurementRoutes(d, h.Procurement)
}

func registerGeneralLedgerRoutes(d *Dispatcher, h *handler.GeneralLedgerHandler) {
	d.GET("/configuration/general-ledger", ss, handler.Handle(h.Handler, h.GetGeneralLedgerConfiguration, http.StatusOK))
	d.GET("/configuration/budget-adjustment-validation", ss, handler.Handle(h.Handler, h.GetBudgetAdjustmentAccountRestrictions, http.StatusOK))
	d.GET("/configuration/budget-adjustment-enabled", ss, handler.Handle(h.Handler, h.GetBudgetAdjustmentEnabled, http.StatusOK))
	d.GET("/configuration/gl-fiscal-year-configuration", ss, handler.Handle(h.Handler, h.GetGlFiscalYearConfiguration, http.StatusOK))

	d.GET("/fiscal-years", v1, handler.Handle(h.Handler, h.GetFiscalYears, http.StatusOK))
	d.GET("/fiscal-years/today", ss, handler.Handle(h.Handler, h.GetTodaysFiscalYear, http.StatusOK))

	d.GET("/cost-centers", ss, handler.Handle(h.Handler, h.GetCostCenters, http.StatusOK))
	d.GET("/cost-centers/:id", ss, handler.Handle(h.Handler, h.GetCostCenter, http.StatusOK))
	d.POST("/qapi/cost-centers", ss, handler.Handle(h.Handler, h.QueryCostCenters, http.StatusOK))

	d.GET("/general-ledger-accounts", ss, handler.Handle(h.Handler, h.GetGlAccounts, http.StatusOK))
	d.GET("/general-ledger-accounts/:id", ss, handler.Handle(h.Handler, h.GetGlAccount, http.StatusOK))
	d.GET("/general-ledger-account-validation/:id", ss, handler.Handle(h.Handler, h.ValidateGlAccount, http.StatusOK))
}

func registerBudgetRoutes(d *Dispatcher, h *handler.BudgetAdjustmentHandler) {
	d.POST("/budget-adjustments", ss, handler.Handle(h.Handler, h.CreateBudgetAdjustment, http.StatusOK))
	d.PUT("/budget-adjustments/:id", ss, handler.Handle(h.Handler, h.UpdateBudgetAdjustment, http.StatusOK))
	d.GET("/budget-adjustments/:id", ss, handler.Handle(h.Handler, h.GetBudgetAdjustment, http.StatusOK))
	d.POST("/budget-adjustments/:id/approvals", ss, handler.Handle(h.Handler, h.ApproveBudgetAdjustment, http.StatusOK))
	d.GET("/budget-adjustments-pending-approval-detail/:id", ss, handler.Handle(h.Handler, h.GetPendingApprovalDetail, http.StatusOK))
	d.GET("/budget-adjustments-summary", ss, handler.Handle(h.Handler, h.GetSummary, http.StatusOK))
	d.GET("/budget-adjustments-pending-approval-summary", ss, handler.Handle(h.Handler, h.GetPendingApprovalSummary, http.StatusOK))

	d.POST("/draft-budget-adjustments", ss, handler.Handle(h.Handler, h.CreateDraft, http.StatusOK))
	d.PUT("/draft-budget-adjustments/:id", ss, handler.Handle(h.Handler, h.UpdateDraft, http.StatusOK))
	d.GET("/draft-budget-adjustments/:id", ss, handler.Handle(h.Handler, h.GetDraft, http.StatusOK))
	d.DELETE("/draft-budget-adjustments/:id", ss, handler.HandleNoContent(h.Handler, h.DeleteDraft, http.StatusNoContent))
}

func registerApprovalRoutes(d *Dispatcher, h *handler.ApprovalHandler) {
	d.GET("/next-approvers/:id", ss, handler.Handle(h.Handler, h.ValidateNextApprover, http.StatusOK))
	d.GET("/next-approvers-search/:keyword", ss, handler.Handle(h.Handler, h.SearchApprovers, http.StatusOK))
	d.POST("/qapi/next-approvers-search", ss, handler.Handle(h.Handler, h.QuerySearchApprovers, http.StatusOK))
	d.GET("/initiator/:keyword", ss, handler.Handle(h.Handler, h.SearchInitiators, http.StatusOK))
	d.POST("/qapi/initiator", ss, handler.Handle(h.Handler, h.QuerySearchInitiators, http.StatusOK))

	d.GET("/document-approval", ss, handler.Handle(h.Handler, h.GetDocumentApproval, http.StatusOK))
	d.POST("/document-approval", ss, handler.Handle(h.Handler, h.UpdateDocumentApproval, http.StatusOK))
	d.POST("/qapi/approved-documents", ss, handler.Handle(h.Handler, h.QueryApprovedDocuments, http.StatusOK))
}

func registerStatementRoutes(d *Dispatcher, h *handler.StatementHandler) {
	fsd := Integration("1.0.0").Default()
	d.GET("/financial-statement-definitions/:preferenceType", fsd, handler.Handle(h.Handler, h.GetFinancialStatementDefinition, http.StatusOK))
	d.PUT("/financial-statement-definitions/:preferenceType", fsd, handler.Handle(h.Handler, h.UpdateFinancialStatementDefinition, http.StatusOK))
	d.DELETE("/financial-statement-definitions/:preferenceType", fsd, handler.HandleNoContent(h.Handler, h.DeleteFinancialStatementDefinition, http.StatusNoContent))

	taxForms := []struct {
		form     string
		versions []string
	}{
		{model.TaxFormT4A, []string{"2", "1"}},
		{model.TaxForm1099MI, []string{"2", "1"}},
		{model.TaxForm1099NEC, []string{"1"}},
	}
	for _, tf := range taxForms {
		statements := handler.Handle(h.Handler, h.TaxFormStatements(tf.form), http.StatusOK)
		for i, raw := range tf.versions {
			v := SelfService(raw)
			if i == 0 {
				v = v.Default()
			}
			d.GET("/tax-form-statements/:personId/"+tf.form, v, statements)
		}
	}
}

func registerProcurementRoutes(d *Dispatcher, h *handler.ProcurementHandler) {
	d.GET("/requisitions/:id", v1, handler.Handle(h.Handler, h.GetRequisition, http.StatusOK))
	d.GET("/requisitions-summary/:personId", ss, handler.Handle(h.Handler, h.GetRequisitionSummaries, http.StatusOK))
	d.POST("/qapi/requisition-summaries", ss, handler.Handle(h.Handler, h.QueryRequisitionSummaries, http.StatusOK))

	d.GET("/purchase-orders/:id", v1, handler.Handle(h.Handler, h.GetPurchaseOrder, http.StatusOK))
	d.GET("/purchase-orders-summary/:personId", ss, handler.Handle(h.Handler, h.GetPurchaseOrderSummaries, http.StatusOK))
	d.POST("/qapi/purchase-order-summaries", ss, handler.Handle(h.Handler, h.QueryPurchaseOrderSummaries, http.StatusOK))

	voucher := handler.Handle(h.Handler, h.GetVoucher, http.StatusOK)
	d.GET("/vouchers/:id", SelfService("2").Default(), voucher)
	d.GET("/vouchers/:id", v1, voucher)
	d.GET("/vouchers", ss, handler.Handle(h.Handler, h.GetVouchersByVendorAndInvoice, http.StatusOK))
	d.GET("/voucher-summaries", ss, handler.Handle(h.Handler, h.GetVoucherSummaries, http.StatusOK))
	d.POST("/qapi/voucher-summaries", ss, handler.Handle(h.Handler, h.QueryVoucherSummaries, http.StatusOK))

	d.GET("/receive-procurements/:personId", ss, handler.Handle(h.Handler, h.GetReceiveProcurements, http.StatusOK))

	d.POST("/qapi/vendors", ss, handler.Handle(h.Handler, h.SearchVendors, http.StatusOK))
	d.POST("/qapi/vendors-voucher", ss, handler.Handle(h.Handler, h.SearchVendorsForVoucher, http.StatusOK))
	d.GET("/vendors/:id/default-taxform-info", ss, handler.Handle(h.Handler, h.GetVendorDefaultTaxFormInfo, http.StatusOK))

	d.GET("/commodity-codes", v1, handler.Handle(h.Handler, h.GetCommodityCodes, http.StatusOK))
	d.GET("/commodity-codes/:id", v1, handler.Handle(h.Handler, h.GetCommodityCode, http.StatusOK))
	d.GET("/commodity-unit-types", v1, handler.Handle(h.Handler, h.GetCommodityUnitTypes, http.StatusOK))
	d.GET("/ship-to-codes", ss, handler.Handle(h.Handler, h.GetShipToCodes, http.StatusOK))
	d.GET("/ship-via-codes", ss, handler.Handle(h.Handler, h.GetShipViaCodes, http.StatusOK))
	d.GET("/fixed-asset-transfer-flags", ss, handler.Handle(h.Handler, h.GetFixedAssetTransferFlags, http.StatusOK))
}
