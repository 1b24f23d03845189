package service

import (
	"context"
	"slices"
	"strings"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
)

// Procurement permission codes.
const (
	PermissionViewRequisition           = "VIEW.REQUISITION"
	PermissionCreateUpdateRequisition   = "CREATE.UPDATE.REQUISITION"
	PermissionViewPurchaseOrder         = "VIEW.PURCHASE.ORDER"
	PermissionCreateUpdatePurchaseOrder = "CREATE.UPDATE.PURCHASE.ORDER"
	PermissionViewVoucher               = "VIEW.VOUCHER"
	PermissionCreateUpdateVoucher       = "CREATE.UPDATE.VOUCHER"
	PermissionUpdateReceiving           = "UPDATE.RECEIVING"
	PermissionViewVendor                = "VIEW.VENDOR"
)

const notOwnedFormat = "User '%s' cannot view %s of person %s."

// procurementKind describes one procurement document family.
type procurementKind struct {
	kind   string
	noun   string
	view   string
	update string
}

var (
	requisitions   = procurementKind{kind: KindRequisition, noun: "requisitions", view: PermissionViewRequisition, update: PermissionCreateUpdateRequisition}
	purchaseOrders = procurementKind{kind: KindPurchaseOrder, noun: "purchase orders", view: PermissionViewPurchaseOrder, update: PermissionCreateUpdatePurchaseOrder}
	vouchers       = procurementKind{kind: KindVoucher, noun: "vouchers", view: PermissionViewVoucher, update: PermissionCreateUpdateVoucher}
)

// ProcurementDocumentService reads requisitions, purchase orders, vouchers
// and the purchase orders waiting to be received.
type ProcurementDocumentService struct {
	docs   DocumentStore
	access Access
}

func NewProcurementDocumentService(docs DocumentStore, access Access) *ProcurementDocumentService {
	return &ProcurementDocumentService{docs: docs, access: access}
}

func (s *ProcurementDocumentService) require(ctx context.Context, pk procurementKind) (identity.User, error) {
	user, err := s.access.User(ctx)
	if err != nil {
		return user, err
	}
	if !s.access.Has(user, pk.view) && !s.access.Has(user, pk.update) {
		return user, errs.Newf(errs.ErrPermission, "User '%s' does not have permission to view %s.", user.ID, pk.noun)
	}
	return user, nil
}

func getProcurement[T any](ctx context.Context, s *ProcurementDocumentService, pk procurementKind, id string) (*T, error) {
	if _, err := s.require(ctx, pk); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errs.Newf(errs.ErrMissingArgument, "An id is required to get %s.", pk.noun)
	}
	return getDocument[T](ctx, s.docs, pk.kind, id)
}

func (s *ProcurementDocumentService) GetRequisition(ctx context.Context, id string) (*model.RequisitionDocument, error) {
	return getProcurement[model.RequisitionDocument](ctx, s, requisitions, id)
}

func (s *ProcurementDocumentService) GetPurchaseOrder(ctx context.Context, id string) (*model.PurchaseOrderDocument, error) {
	return getProcurement[model.PurchaseOrderDocument](ctx, s, purchaseOrders, id)
}

func (s *ProcurementDocumentService) GetVoucher(ctx context.Context, id string) (*model.Voucher, error) {
	return getProcurement[model.Voucher](ctx, s, vouchers, id)
}

// summaries lists the documents a person initiated or requested, filtered
// by criteria. Callers may only list their own documents.
func (s *ProcurementDocumentService) summaries(ctx context.Context, pk procurementKind, criteria model.ProcurementDocumentFilterCriteria) ([]model.ProcurementDocumentSummary, error) {
	user, err := s.require(ctx, pk)
	if err != nil {
		return nil, err
	}
	if criteria.PersonID == "" {
		return nil, errs.New(errs.ErrMissingArgument, "A person id must be specified.")
	}
	if criteria.PersonID != user.ID {
		return nil, errs.Newf(errs.ErrPermission, notOwnedFormat, user.ID, pk.noun, criteria.PersonID)
	}

	documents, err := listDocuments[model.ProcurementDocument](ctx, s.docs, repository.DocumentQuery{Kind: pk.kind, OwnerID: criteria.PersonID})
	if err != nil {
		return nil, err
	}

	out := make([]model.ProcurementDocumentSummary, 0, len(documents))
	for _, d := range documents {
		if !matchesProcurementFilter(d, criteria) {
			continue
		}
		out = append(out, model.ProcurementDocumentSummary{
			ID:            d.ID,
			Number:        d.Number,
			Status:        d.Status,
			Date:          d.Date,
			VendorID:      d.VendorID,
			VendorName:    d.VendorName,
			InitiatorName: d.InitiatorName,
			RequestorName: d.RequestorName,
			Amount:        d.Amount,
		})
	}

	slices.SortFunc(out, func(a, b model.ProcurementDocumentSummary) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}

func matchesProcurementFilter(d model.ProcurementDocument, f model.ProcurementDocumentFilterCriteria) bool {
	if len(f.VendorIDs) > 0 && !slices.Contains(f.VendorIDs, d.VendorID) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.ContainsFunc(f.Statuses, func(s string) bool { return strings.EqualFold(s, d.Status) }) {
		return false
	}
	if !inRange(&d.Date, f.DateFrom, f.DateTo) {
		return false
	}
	if f.AmountFrom != nil && d.Amount.LessThan(*f.AmountFrom) {
		return false
	}
	if f.AmountTo != nil && d.Amount.GreaterThan(*f.AmountTo) {
		return false
	}
	return true
}

func (s *ProcurementDocumentService) GetRequisitionSummaries(ctx context.Context, personID string) ([]model.ProcurementDocumentSummary, error) {
	return s.summaries(ctx, requisitions, model.ProcurementDocumentFilterCriteria{PersonID: personID})
}

func (s *ProcurementDocumentService) QueryRequisitionSummaries(ctx context.Context, criteria model.ProcurementDocumentFilterCriteria) ([]model.ProcurementDocumentSummary, error) {
	return s.summaries(ctx, requisitions, criteria)
}

func (s *ProcurementDocumentService) GetPurchaseOrderSummaries(ctx context.Context, personID string) ([]model.ProcurementDocumentSummary, error) {
	return s.summaries(ctx, purchaseOrders, model.ProcurementDocumentFilterCriteria{PersonID: personID})
}

func (s *ProcurementDocumentService) QueryPurchaseOrderSummaries(ctx context.Context, criteria model.ProcurementDocumentFilterCriteria) ([]model.ProcurementDocumentSummary, error) {
	return s.summaries(ctx, purchaseOrders, criteria)
}

func (s *ProcurementDocumentService) GetVoucherSummaries(ctx context.Context, personID string) ([]model.ProcurementDocumentSummary, error) {
	return s.summaries(ctx, vouchers, model.ProcurementDocumentFilterCriteria{PersonID: personID})
}

func (s *ProcurementDocumentService) QueryVoucherSummaries(ctx context.Context, criteria model.ProcurementDocumentFilterCriteria) ([]model.ProcurementDocumentSummary, error) {
	return s.summaries(ctx, vouchers, criteria)
}

// GetVouchersByVendorAndInvoice finds vouchers of a vendor carrying an
// invoice number. Both are required.
func (s *ProcurementDocumentService) GetVouchersByVendorAndInvoice(ctx context.Context, vendorID, invoiceNo string) ([]model.Voucher, error) {
	if _, err := s.require(ctx, vouchers); err != nil {
		return nil, err
	}
	if vendorID == "" || invoiceNo == "" {
		return nil, errs.New(errs.ErrMissingArgument, "Both a vendor id and an invoice number must be specified.")
	}

	criteria, err := contains(map[string]string{"vendorId": vendorID, "invoiceNumber": invoiceNo})
	if err != nil {
		return nil, err
	}
	return listDocuments[model.Voucher](ctx, s.docs, repository.DocumentQuery{Kind: KindVoucher, Contains: criteria})
}

// GetReceiveProcurements lists the purchase orders a person can receive
// items against.
func (s *ProcurementDocumentService) GetReceiveProcurements(ctx context.Context, personID string) ([]model.ReceiveProcurementSummary, error) {
	user, err := s.access.Require(ctx, PermissionUpdateReceiving, "receive procurement items")
	if err != nil {
		return nil, err
	}
	if personID == "" {
		return nil, errs.New(errs.ErrMissingArgument, "A person id must be specified.")
	}
	if personID != user.ID {
		return nil, errs.Newf(errs.ErrPermission, notOwnedFormat, user.ID, "receivable purchase orders", personID)
	}
	return listDocuments[model.ReceiveProcurementSummary](ctx, s.docs, repository.DocumentQuery{Kind: KindReceiveProcurement, OwnerID: personID})
}
