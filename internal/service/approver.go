package service

import (
	"context"
	"strings"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/pkg/errors"
)

// approverRecord is a staff member who may approve documents.
type approverRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Active bool   `json:"active"`
}

// ApproverService validates and searches next approvers.
type ApproverService struct {
	docs   DocumentStore
	access Access
}

func NewApproverService(docs DocumentStore, access Access) *ApproverService {
	return &ApproverService{docs: docs, access: access}
}

// ValidateNextApprover reports whether id is an active approver. An unknown
// id is an invalid answer, not an error.
func (s *ApproverService) ValidateNextApprover(ctx context.Context, id string) (*model.NextApproverValidationResponse, error) {
	if _, err := s.access.Require(ctx, PermissionCreateUpdateBudgetAdjustment, "validate the next approver"); err != nil {
		return nil, err
	}

	id = strings.TrimSpace(id)
	resp := &model.NextApproverValidationResponse{ID: id}
	if id == "" {
		resp.ErrorOccurred = true
		resp.Message = "A next approver ID is required."
		return resp, nil
	}

	r, err := getDocument[approverRecord](ctx, s.docs, KindApprover, id)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		resp.Message = "The next approver ID is not valid."
	case err != nil:
		return nil, err
	case !r.Active:
		resp.NextApproverName = r.Name
		resp.Message = "The next approver is not active."
	default:
		resp.NextApproverName = r.Name
		resp.IsValid = true
	}
	return resp, nil
}

// Search returns the active approvers whose id or name matches keyword.
func (s *ApproverService) Search(ctx context.Context, keyword string) ([]model.NextApprover, error) {
	if _, err := s.access.Require(ctx, PermissionCreateUpdateBudgetAdjustment, "search approvers"); err != nil {
		return nil, err
	}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errs.New(errs.ErrMissingArgument, "query keyword is required to query.")
	}

	records, err := listDocuments[approverRecord](ctx, s.docs, repository.DocumentQuery{Kind: KindApprover, Keyword: keyword})
	if err != nil {
		return nil, err
	}

	out := make([]model.NextApprover, 0, len(records))
	for _, r := range records {
		if r.Active {
			out = append(out, model.NextApprover{NextApproverID: r.ID, NextApproverName: r.Name})
		}
	}
	return out, nil
}

// InitiatorService searches document initiators.
type InitiatorService struct {
	docs   DocumentStore
	access Access
}

func NewInitiatorService(docs DocumentStore, access Access) *InitiatorService {
	return &InitiatorService{docs: docs, access: access}
}

func (s *InitiatorService) Search(ctx context.Context, keyword string) ([]model.Initiator, error) {
	if _, err := s.access.User(ctx); err != nil {
		return nil, err
	}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errs.New(errs.ErrMissingArgument, "query keyword is required to query.")
	}
	return listDocuments[model.Initiator](ctx, s.docs, repository.DocumentQuery{Kind: KindInitiator, Keyword: keyword})
}
