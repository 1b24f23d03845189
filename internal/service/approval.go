package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/pkg/errors"
)

const PermissionViewDocumentApproval = "VIEW.DOCUMENT.APPROVAL"

// Document types that go through document approval.
var approvalDocumentTypes = []string{"REQ", "PO", "BPO", "VOU", "JE", "BUD"}

// Approval statuses reported back per document.
const (
	ApprovalStatusApproved = "Approved"
	ApprovalStatusPending  = "Pending"
	ApprovalStatusReturned = "Returned"
)

type documentApprovalSettings struct {
	CanOverrideFundsAvailability bool `json:"canOverrideFundsAvailability"`
	FundsConfirmationEnabled     bool `json:"fundsConfirmationEnabled"`
}

// DocumentApprovalService lists and approves documents waiting on the
// caller.
type DocumentApprovalService struct {
	docs   DocumentStore
	access Access
	now    func() time.Time
}

func NewDocumentApprovalService(docs DocumentStore, access Access) *DocumentApprovalService {
	return &DocumentApprovalService{docs: docs, access: access, now: time.Now}
}

func approvalDocumentID(documentType, documentID string) string {
	return documentType + ":" + documentID
}

func (s *DocumentApprovalService) Get(ctx context.Context) (*model.DocumentApproval, error) {
	user, err := s.access.Require(ctx, PermissionViewDocumentApproval, "view document approvals")
	if err != nil {
		return nil, err
	}

	settings, err := getDocument[documentApprovalSettings](ctx, s.docs, KindConfiguration, ConfigDocumentApproval)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		settings = &documentApprovalSettings{}
	case err != nil:
		return nil, err
	}

	documents, err := s.pending(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.DocumentApproval{
		CanOverrideFundsAvailability: settings.CanOverrideFundsAvailability,
		FundsConfirmationEnabled:     settings.FundsConfirmationEnabled,
		ApprovalDocuments:            documents,
	}, nil
}

func (s *DocumentApprovalService) pending(ctx context.Context, user identity.User) ([]model.ApprovalDocument, error) {
	criteria, err := contains(map[string]any{
		"nextApprovers": []map[string]string{{"nextApproverId": user.ID}},
	})
	if err != nil {
		return nil, err
	}
	return listDocuments[model.ApprovalDocument](ctx, s.docs, repository.DocumentQuery{Kind: KindApprovalDocument, Contains: criteria})
}

// Update applies each approval request independently. Requests that cannot
// be applied are reported in NotUpdatedApprovalDocumentResponses.
func (s *DocumentApprovalService) Update(ctx context.Context, req model.DocumentApprovalRequest) (*model.DocumentApprovalResponse, error) {
	user, err := s.access.Require(ctx, PermissionViewDocumentApproval, "update document approvals")
	if err != nil {
		return nil, err
	}
	if len(req.ApprovalDocumentRequests) == 0 {
		return nil, errs.New(errs.ErrMissingArgument, "Request body must have documents to approve.")
	}

	resp := &model.DocumentApprovalResponse{
		UpdatedApprovalDocumentResponses:    []model.ApprovalDocumentResponse{},
		NotUpdatedApprovalDocumentResponses: []model.ApprovalDocumentResponse{},
	}

	for _, r := range req.ApprovalDocumentRequests {
		result := model.ApprovalDocumentResponse{
			DocumentType:   r.DocumentType,
			DocumentID:     r.DocumentID,
			DocumentNumber: r.DocumentNumber,
		}

		status, message, err := s.apply(ctx, user, r)
		if err != nil {
			return nil, err
		}
		if message != "" {
			result.ErrorMessages = []string{message}
			resp.NotUpdatedApprovalDocumentResponses = append(resp.NotUpdatedApprovalDocumentResponses, result)
			continue
		}
		result.DocumentStatus = status
		resp.UpdatedApprovalDocumentResponses = append(resp.UpdatedApprovalDocumentResponses, result)
	}
	return resp, nil
}

// apply returns the new status, or a message explaining why the document
// was left alone.
func (s *DocumentApprovalService) apply(ctx context.Context, user identity.User, r model.ApprovalDocumentRequest) (string, string, error) {
	if !slices.Contains(approvalDocumentTypes, r.DocumentType) {
		return "", fmt.Sprintf("%s is not a valid document type.", r.DocumentType), nil
	}
	if r.DocumentID == "" {
		return "", "A document ID is required.", nil
	}

	id := approvalDocumentID(r.DocumentType, r.DocumentID)
	doc, err := getDocument[model.ApprovalDocument](ctx, s.docs, KindApprovalDocument, id)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return "", "The document is no longer waiting for approval.", nil
	case err != nil:
		return "", "", err
	}

	if !isNextApprover(doc.NextApprovers, user.ID) {
		return "", "You are not an approver for this document.", nil
	}
	if (r.ChangeDate != "" && r.ChangeDate != doc.ChangeDate) || (r.ChangeTime != "" && r.ChangeTime != doc.ChangeTime) {
		return "", "The document has been changed since it was retrieved.", nil
	}

	now := s.now()
	if !r.Approve {
		if err := s.docs.Delete(ctx, KindApprovalDocument, id); err != nil {
			return "", "", err
		}
		return ApprovalStatusReturned, "", nil
	}

	doc.NextApprovers = slices.DeleteFunc(doc.NextApprovers, func(n model.NextApprover) bool {
		return n.NextApproverID == user.ID
	})
	doc.ChangeDate = now.Format(time.DateOnly)
	doc.ChangeTime = now.Format(time.TimeOnly)

	status := ApprovalStatusApproved
	if len(doc.NextApprovers) > 0 {
		status = ApprovalStatusPending
		if err := saveDocument(ctx, s.docs, false, KindApprovalDocument, id, "", doc); err != nil {
			return "", "", err
		}
	} else if err := s.docs.Delete(ctx, KindApprovalDocument, id); err != nil {
		return "", "", err
	}

	approved := model.ApprovedDocument{
		ID:           doc.ID,
		Number:       doc.Number,
		DocumentType: doc.DocumentType,
		Date:         doc.Date,
		VendorName:   doc.VendorName,
		NetAmount:    doc.NetAmount,
		ApprovalDate: &now,
		Status:       status,
	}
	body, err := repository.Encode(approved)
	if err != nil {
		return "", "", err
	}
	err = s.docs.Upsert(ctx, repository.Document{
		Kind:    KindApprovedDocument,
		ID:      user.ID + ":" + id,
		OwnerID: user.ID,
		Body:    body,
	})
	if err != nil {
		return "", "", err
	}
	return status, "", nil
}

// QueryApprovedDocuments lists the documents the caller approved.
func (s *DocumentApprovalService) QueryApprovedDocuments(ctx context.Context, filter model.ApprovedDocumentFilterCriteria) ([]model.ApprovedDocument, error) {
	user, err := s.access.Require(ctx, PermissionViewDocumentApproval, "view approved documents")
	if err != nil {
		return nil, err
	}

	documents, err := listDocuments[model.ApprovedDocument](ctx, s.docs, repository.DocumentQuery{Kind: KindApprovedDocument, OwnerID: user.ID})
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(documents, func(d model.ApprovedDocument) bool {
		return !matchesApprovedFilter(d, filter)
	}), nil
}

func matchesApprovedFilter(d model.ApprovedDocument, f model.ApprovedDocumentFilterCriteria) bool {
	if len(f.DocumentType) > 0 && !slices.Contains(f.DocumentType, d.DocumentType) {
		return false
	}
	if len(f.VendorIDs) > 0 && !slices.Contains(f.VendorIDs, d.VendorID) {
		return false
	}
	if !inRange(&d.Date, f.DocumentDateFrom, f.DocumentDateTo) {
		return false
	}
	if (f.ApprovalDateFrom != nil || f.ApprovalDateTo != nil) && !inRange(d.ApprovalDate, f.ApprovalDateFrom, f.ApprovalDateTo) {
		return false
	}
	return true
}

// inRange compares calendar dates. Nil bounds are open.
func inRange(t, from, to *time.Time) bool {
	if t == nil {
		return from == nil && to == nil
	}
	day := t.Format(time.DateOnly)
	if from != nil && day < from.Format(time.DateOnly) {
		return false
	}
	if to != nil && day > to.Format(time.DateOnly) {
		return false
	}
	return true
}
