package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/pkg/errors"
)

// DocumentStore persists self-service documents.
type DocumentStore interface {
	Get(ctx context.Context, kind, id string) (*repository.Document, error)
	List(ctx context.Context, q repository.DocumentQuery) ([]repository.Document, error)
	Insert(ctx context.Context, doc repository.Document) error
	Update(ctx context.Context, doc repository.Document) error
	Upsert(ctx context.Context, doc repository.Document) error
	Delete(ctx context.Context, kind, id string) error
	NextID(ctx context.Context) (int64, error)
}

// Document kinds in finance_documents.
const (
	KindConfiguration                = "configuration"
	KindCostCenter                   = "cost-center"
	KindGlAccount                    = "gl-account"
	KindBudgetAdjustment             = "budget-adjustment"
	KindDraftBudgetAdjustment        = "draft-budget-adjustment"
	KindApprover                     = "approver"
	KindInitiator                    = "initiator"
	KindApprovalDocument             = "approval-document"
	KindApprovedDocument             = "approved-document"
	KindFinancialStatementDefinition = "financial-statement-definition"
	KindTaxFormStatement             = "tax-form-statement"
	KindRequisition                  = "requisition"
	KindPurchaseOrder                = "purchase-order"
	KindVoucher                      = "voucher"
	KindReceiveProcurement           = "receive-procurement"
	KindVendor                       = "vendor"
	KindCommodityCode                = "commodity-code"
	KindCommodityUnitType            = "commodity-unit-type"
	KindShipToCode                   = "ship-to-code"
	KindShipViaCode                  = "ship-via-code"
	KindFixedAssetTransferFlag       = "fixed-asset-transfer-flag"
)

// Configuration document ids.
const (
	ConfigGeneralLedger              = "general-ledger"
	ConfigBudgetAdjustmentValidation = "budget-adjustment-validation"
	ConfigBudgetAdjustmentEnabled    = "budget-adjustment-enabled"
	ConfigGlFiscalYear               = "gl-fiscal-year"
	ConfigDocumentApproval           = "document-approval"
)

func getDocument[T any](ctx context.Context, store DocumentStore, kind, id string) (*T, error) {
	doc, err := store.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return repository.Decode[T](doc)
}

func listDocuments[T any](ctx context.Context, store DocumentStore, q repository.DocumentQuery) ([]T, error) {
	docs, err := store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return repository.DecodeAll[T](docs)
}

// getConfiguration reads a configuration document. A missing document is a
// configuration error.
func getConfiguration[T any](ctx context.Context, store DocumentStore, id string) (*T, error) {
	cfg, err := getDocument[T](ctx, store, KindConfiguration, id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.Wrap(errs.ErrConfiguration, err, "Missing "+id+" configuration.")
	}
	return cfg, err
}

// contains builds a jsonb containment filter.
func contains(v any) (json.RawMessage, error) {
	return repository.Encode(v)
}

func saveDocument(ctx context.Context, store DocumentStore, insert bool, kind, id, owner string, v any) error {
	body, err := repository.Encode(v)
	if err != nil {
		return err
	}
	doc := repository.Document{Kind: kind, ID: id, OwnerID: owner, Body: body}
	if insert {
		return store.Insert(ctx, doc)
	}
	return store.Update(ctx, doc)
}

// updateDocument replaces a document read at readAt. It fails with
// errs.ErrConcurrentUpdate when the stored document changed since.
func updateDocument(ctx context.Context, store DocumentStore, kind, id, owner string, v any, readAt time.Time) error {
	body, err := repository.Encode(v)
	if err != nil {
		return err
	}
	return store.Update(ctx, repository.Document{Kind: kind, ID: id, OwnerID: owner, Body: body, UpdatedAt: readAt})
}
