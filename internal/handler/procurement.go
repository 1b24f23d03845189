package handler

import (
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// ProcurementHandler serves the self-service procurement documents, vendor
// lookups and the procurement reference lists.
type ProcurementHandler struct {
	Handler
	documents *service.ProcurementDocumentService
	vendors   *service.VendorService
	reference *service.ReferenceService
}

func NewProcurementHandler(
	s *server.Server,
	documents *service.ProcurementDocumentService,
	vendors *service.VendorService,
	reference *service.ReferenceService,
) *ProcurementHandler {
	return &ProcurementHandler{
		Handler:   NewHandler(s),
		documents: documents,
		vendors:   vendors,
		reference: reference,
	}
}

const (
	personIDRequired       = "person Id must be specified."
	searchCriteriaRequired = "Request body must contain a valid search criteria."
	vendorCriteriaRequired = "Vendor search criteria must be specified."
)

var (
	getRequisitionPolicy = newPolicy("Unable to get the requisition.",
		onPermission("Insufficient permissions to get the requisition."),
		ruleInvalidArgument, ruleRecordNotFound, ruleSessionExpired)
	getRequisitionSummaryPolicy = newPolicy("Unable to get the requisition summary.",
		onPermission("Insufficient permissions to get the requisition summary."),
		ruleInvalidArgument, ruleRecordNotFound)
	queryRequisitionSummaryPolicy = newPolicy("Unable to search the requisition.",
		onPermission("Insufficient permissions to search requisitions."),
		onMissingArgument("Invalid argument to search requisitions."),
		onNotFound("Record not found to search requisitions."),
		ruleSessionExpired)

	getPurchaseOrderPolicy = newPolicy("Unable to get the purchase order.",
		onPermission("Insufficient permissions to get the purchase order."),
		ruleInvalidArgument, ruleRecordNotFound, ruleSessionExpired)
	getPurchaseOrderSummaryPolicy = newPolicy("Unable to get the purchase order.",
		onPermission("Insufficient permissions to get the purchase order."),
		ruleInvalidArgument, ruleRecordNotFound)
	queryPurchaseOrderSummaryPolicy = newPolicy("Unable to search purchase order.",
		onPermission("Insufficient permissions to search purchase order."),
		onMissingArgument("Invalid argument to search purchase order."),
		onNotFound("Record not found to search purchase order."),
		ruleSessionExpired)

	getVoucherPolicy = newPolicy("Unable to get the voucher.",
		onPermission("Insufficient permissions to get the voucher."),
		ruleInvalidArgument, ruleRecordNotFound,
		onApplication("Invalid data in record."),
		ruleSessionExpired)
	getVoucherSummaryPolicy = newPolicy("Unable to get the Voucher summary.",
		onPermission("Insufficient permissions to get the Voucher summary."),
		ruleInvalidArgument, ruleRecordNotFound)
	queryVoucherSummaryPolicy = newPolicy("Unable to search vouchers.",
		onPermission("Insufficient permissions to search vouchers."),
		onMissingArgument("Invalid argument to search vouchers."),
		onNotFound("Record not found to search vouchers."),
		ruleSessionExpired)
	getVouchersByInvoicePolicy = newPolicy("Unable to get vouchers.",
		onPermission(""),
		onMissingArgument("Invalid argument to query the voucher."),
		ruleSessionExpired)

	getReceiveProcurementsPolicy = newPolicy("Unable to get the purchase order for receiving items.",
		onPermission("Insufficient permissions to get the purchase order for receiving items."),
		ruleInvalidArgument, ruleRecordNotFound, ruleSessionInvalid)

	searchVendorsPolicy = newPolicy("Unable to search vendors",
		ruleInvalidArgument, ruleRecordNotFound)
	searchVendorsForVoucherPolicy = newPolicy("Unable to find vendors.",
		ruleInvalidArgument, ruleRecordNotFound)
	getVendorTaxFormInfoPolicy = newPolicy("Unable to populate vendor default tax form info.",
		ruleInvalidArgument,
		onPermission("Insufficient permissions to get the vendor default tax form info."),
		ruleRecordNotFound)

	getCommodityCodesPolicy = newPolicy("Unable to get Commodity Codes.")
	getCommodityCodePolicy  = newPolicy("Unable to get Commodity Code.",
		ruleInvalidArgument, ruleRecordNotFound)
	getCommodityUnitTypesPolicy     = newPolicy("Unable to get Unit typess.")
	getShipToCodesPolicy            = newPolicy("Unable to get Ship to Codes.")
	getShipViaCodesPolicy           = newPolicy("Unable to get Ship Via Codes.")
	getFixedAssetTransferFlagPolicy = newPolicy("Unable to get Fixed asset transfer flags.")
)

type documentIDRequest struct {
	ID string `param:"id"`
}

func (r *documentIDRequest) Validate() error {
	return nil
}

func (h *ProcurementHandler) GetRequisition(c echo.Context, req *documentIDRequest) (*model.RequisitionDocument, error) {
	if err := requireValue(req.ID, "A Requisition ID must be specified."); err != nil {
		return nil, err
	}
	doc, err := h.documents.GetRequisition(c.Request().Context(), req.ID)
	if err != nil {
		return nil, getRequisitionPolicy.Translate(c, err)
	}
	return doc, nil
}

func (h *ProcurementHandler) GetPurchaseOrder(c echo.Context, req *documentIDRequest) (*model.PurchaseOrderDocument, error) {
	if err := requireValue(req.ID, "A Purchase Order ID must be specified."); err != nil {
		return nil, err
	}
	doc, err := h.documents.GetPurchaseOrder(c.Request().Context(), req.ID)
	if err != nil {
		return nil, getPurchaseOrderPolicy.Translate(c, err)
	}
	return doc, nil
}

func (h *ProcurementHandler) GetVoucher(c echo.Context, req *documentIDRequest) (*model.Voucher, error) {
	if err := requireValue(req.ID, "A Voucher ID must be specified."); err != nil {
		return nil, err
	}
	voucher, err := h.documents.GetVoucher(c.Request().Context(), req.ID)
	if err != nil {
		return nil, getVoucherPolicy.Translate(c, err)
	}
	return voucher, nil
}

type personPathRequest struct {
	PersonID string `param:"personId"`
}

func (r *personPathRequest) Validate() error {
	return requireValue(r.PersonID, personIDRequired)
}

type personQueryRequest struct {
	PersonID string `query:"personId"`
}

func (r *personQueryRequest) Validate() error {
	return requireValue(r.PersonID, personIDRequired)
}

type summaryCriteriaRequest struct {
	model.ProcurementDocumentFilterCriteria
}

func (r *summaryCriteriaRequest) RequiredBodyMessage() string {
	return searchCriteriaRequired
}

func (r *summaryCriteriaRequest) Validate() error {
	return nil
}

func (h *ProcurementHandler) GetRequisitionSummaries(c echo.Context, req *personPathRequest) ([]model.ProcurementDocumentSummary, error) {
	summaries, err := h.documents.GetRequisitionSummaries(c.Request().Context(), req.PersonID)
	if err != nil {
		return nil, getRequisitionSummaryPolicy.Translate(c, err)
	}
	return summaries, nil
}

func (h *ProcurementHandler) QueryRequisitionSummaries(c echo.Context, req *summaryCriteriaRequest) ([]model.ProcurementDocumentSummary, error) {
	summaries, err := h.documents.QueryRequisitionSummaries(c.Request().Context(), req.ProcurementDocumentFilterCriteria)
	if err != nil {
		return nil, queryRequisitionSummaryPolicy.Translate(c, err)
	}
	return summaries, nil
}

func (h *ProcurementHandler) GetPurchaseOrderSummaries(c echo.Context, req *personPathRequest) ([]model.ProcurementDocumentSummary, error) {
	summaries, err := h.documents.GetPurchaseOrderSummaries(c.Request().Context(), req.PersonID)
	if err != nil {
		return nil, getPurchaseOrderSummaryPolicy.Translate(c, err)
	}
	return summaries, nil
}

func (h *ProcurementHandler) QueryPurchaseOrderSummaries(c echo.Context, req *summaryCriteriaRequest) ([]model.ProcurementDocumentSummary, error) {
	summaries, err := h.documents.QueryPurchaseOrderSummaries(c.Request().Context(), req.ProcurementDocumentFilterCriteria)
	if err != nil {
		return nil, queryPurchaseOrderSummaryPolicy.Translate(c, err)
	}
	return summaries, nil
}

func (h *ProcurementHandler) GetVoucherSummaries(c echo.Context, req *personQueryRequest) ([]model.ProcurementDocumentSummary, error) {
	summaries, err := h.documents.GetVoucherSummaries(c.Request().Context(), req.PersonID)
	if err != nil {
		return nil, getVoucherSummaryPolicy.Translate(c, err)
	}
	return summaries, nil
}

func (h *ProcurementHandler) QueryVoucherSummaries(c echo.Context, req *summaryCriteriaRequest) ([]model.ProcurementDocumentSummary, error) {
	summaries, err := h.documents.QueryVoucherSummaries(c.Request().Context(), req.ProcurementDocumentFilterCriteria)
	if err != nil {
		return nil, queryVoucherSummaryPolicy.Translate(c, err)
	}
	return summaries, nil
}

type vouchersByInvoiceRequest struct {
	VendorID  string `query:"vendorId"`
	InvoiceNo string `query:"invoiceNo"`
}

func (r *vouchersByInvoiceRequest) Validate() error {
	if err := requireValue(r.VendorID, "vendor Id must be specified."); err != nil {
		return err
	}
	return requireValue(r.InvoiceNo, "invoice number must be specified.")
}

func (h *ProcurementHandler) GetVouchersByVendorAndInvoice(c echo.Context, req *vouchersByInvoiceRequest) ([]model.Voucher, error) {
	vouchers, err := h.documents.GetVouchersByVendorAndInvoice(c.Request().Context(), req.VendorID, req.InvoiceNo)
	if err != nil {
		return nil, getVouchersByInvoicePolicy.Translate(c, err)
	}
	return vouchers, nil
}

func (h *ProcurementHandler) GetReceiveProcurements(c echo.Context, req *personPathRequest) ([]model.ReceiveProcurementSummary, error) {
	summaries, err := h.documents.GetReceiveProcurements(c.Request().Context(), req.PersonID)
	if err != nil {
		return nil, getReceiveProcurementsPolicy.Translate(c, err)
	}
	return summaries, nil
}

type vendorSearchRequest struct {
	model.VendorSearchCriteria
}

func (r *vendorSearchRequest) RequiredBodyMessage() string {
	return vendorCriteriaRequired
}

func (r *vendorSearchRequest) Validate() error {
	return requireValue(r.QueryKeyword, keywordRequired)
}

func (h *ProcurementHandler) SearchVendors(c echo.Context, req *vendorSearchRequest) ([]model.VendorSearchResult, error) {
	vendors, err := h.vendors.Search(c.Request().Context(), req.VendorSearchCriteria)
	if err != nil {
		return nil, searchVendorsPolicy.Translate(c, err)
	}
	return vendors, nil
}

func (h *ProcurementHandler) SearchVendorsForVoucher(c echo.Context, req *vendorSearchRequest) ([]model.VendorsVoucherSearchResult, error) {
	vendors, err := h.vendors.SearchForVoucher(c.Request().Context(), req.VendorSearchCriteria)
	if err != nil {
		return nil, searchVendorsForVoucherPolicy.Translate(c, err)
	}
	return vendors, nil
}

type vendorTaxFormRequest struct {
	VendorID string `param:"id"`
}

func (r *vendorTaxFormRequest) Validate() error {
	return requireValue(r.VendorID, "vendor id must be specified.")
}

func (h *ProcurementHandler) GetVendorDefaultTaxFormInfo(c echo.Context, req *vendorTaxFormRequest) (*model.VendorDefaultTaxFormInfo, error) {
	info, err := h.vendors.GetDefaultTaxFormInfo(c.Request().Context(), req.VendorID)
	if err != nil {
		return nil, getVendorTaxFormInfoPolicy.Translate(c, err)
	}
	return info, nil
}

func (h *ProcurementHandler) GetCommodityCodes(c echo.Context, _ *emptyRequest) ([]model.ProcurementCommodityCode, error) {
	codes, err := h.reference.GetCommodityCodes(c.Request().Context(), bypassCache(c))
	if err != nil {
		return nil, getCommodityCodesPolicy.Translate(c, err)
	}
	return codes, nil
}

type commodityCodeRequest struct {
	Code string `param:"id"`
}

func (r *commodityCodeRequest) Validate() error {
	return requireValue(r.Code, "commodityCode must be specified.")
}

func (h *ProcurementHandler) GetCommodityCode(c echo.Context, req *commodityCodeRequest) (*model.ProcurementCommodityCode, error) {
	code, err := h.reference.GetCommodityCode(c.Request().Context(), req.Code)
	if err != nil {
		return nil, getCommodityCodePolicy.Translate(c, err)
	}
	return code, nil
}

func (h *ProcurementHandler) GetCommodityUnitTypes(c echo.Context, _ *emptyRequest) ([]model.CodeDescription, error) {
	types, err := h.reference.GetCommodityUnitTypes(c.Request().Context(), bypassCache(c))
	if err != nil {
		return nil, getCommodityUnitTypesPolicy.Translate(c, err)
	}
	return types, nil
}

func (h *ProcurementHandler) GetShipToCodes(c echo.Context, _ *emptyRequest) ([]model.CodeDescription, error) {
	codes, err := h.reference.GetShipToCodes(c.Request().Context(), bypassCache(c))
	if err != nil {
		return nil, getShipToCodesPolicy.Translate(c, err)
	}
	return codes, nil
}

func (h *ProcurementHandler) GetShipViaCodes(c echo.Context, _ *emptyRequest) ([]model.CodeDescription, error) {
	codes, err := h.reference.GetShipViaCodes(c.Request().Context(), bypassCache(c))
	if err != nil {
		return nil, getShipViaCodesPolicy.Translate(c, err)
	}
	return codes, nil
}

func (h *ProcurementHandler) GetFixedAssetTransferFlags(c echo.Context, _ *emptyRequest) ([]model.CodeDescription, error) {
	flags, err := h.reference.GetFixedAssetTransferFlags(c.Request().Context(), bypassCache(c))
	if err != nil {
		return nil, getFixedAssetTransferFlagPolicy.Translate(c, err)
	}
	return flags, nil
}
