package service

import (
	"context"
	"strconv"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/pkg/errors"
)

// DraftBudgetAdjustmentService keeps unfinished budget adjustments. Drafts
// are private to the user who created them.
type DraftBudgetAdjustmentService struct {
	docs   DocumentStore
	access Access
}

func NewDraftBudgetAdjustmentService(docs DocumentStore, access Access) *DraftBudgetAdjustmentService {
	return &DraftBudgetAdjustmentService{docs: docs, access: access}
}

func (s *DraftBudgetAdjustmentService) Create(ctx context.Context, draft model.DraftBudgetAdjustment) (*model.DraftBudgetAdjustment, error) {
	user, err := s.access.Require(ctx, PermissionCreateUpdateBudgetAdjustment, "create a draft budget adjustment")
	if err != nil {
		return nil, err
	}

	enabled, err := getDocument[model.BudgetAdjustmentsEnabled](ctx, s.docs, KindConfiguration, ConfigBudgetAdjustmentEnabled)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if enabled == nil || !enabled.Enabled {
		return nil, errs.New(errs.ErrConfiguration, "Budget adjustments are not enabled.")
	}

	n, err := s.docs.NextID(ctx)
	if err != nil {
		return nil, err
	}
	draft.ID = strconv.FormatInt(n, 10)
	draft.PersonID = user.ID

	if err := saveDocument(ctx, s.docs, true, KindDraftBudgetAdjustment, draft.ID, user.ID, draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *DraftBudgetAdjustmentService) Update(ctx context.Context, id string, draft model.DraftBudgetAdjustment) (*model.DraftBudgetAdjustment, error) {
	user, err := s.access.Require(ctx, PermissionCreateUpdateBudgetAdjustment, "update the draft budget adjustment")
	if err != nil {
		return nil, err
	}
	if draft.ID != "" && draft.ID != id {
		return nil, errs.New(errs.ErrApplication, "The draft budget adjustment id in the request body does not match the URL.")
	}
	if _, err := s.owned(ctx, user, id); err != nil {
		return nil, err
	}

	draft.ID = id
	draft.PersonID = user.ID
	if err := saveDocument(ctx, s.docs, false, KindDraftBudgetAdjustment, id, user.ID, draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *DraftBudgetAdjustmentService) Get(ctx context.Context, id string) (*model.DraftBudgetAdjustment, error) {
	user, err := s.access.Require(ctx, PermissionCreateUpdateBudgetAdjustment, "view the draft budget adjustment")
	if err != nil {
		return nil, err
	}
	return s.owned(ctx, user, id)
}

func (s *DraftBudgetAdjustmentService) Delete(ctx context.Context, id string) error {
	user, err := s.access.Require(ctx, PermissionDeleteBudgetAdjustment, "delete the draft budget adjustment")
	if err != nil {
		return err
	}
	if _, err := s.owned(ctx, user, id); err != nil {
		return err
	}
	return s.docs.Delete(ctx, KindDraftBudgetAdjustment, id)
}

func (s *DraftBudgetAdjustmentService) owned(ctx context.Context, user identity.User, id string) (*model.DraftBudgetAdjustment, error) {
	if id == "" {
		return nil, errs.New(errs.ErrMissingArgument, "A draft budget adjustment ID is required.")
	}
	doc, err := s.docs.Get(ctx, KindDraftBudgetAdjustment, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != user.ID {
		return nil, errs.Newf(errs.ErrPermission, "User '%s' does not own draft budget adjustment %s.", user.ID, id)
	}
	return repository.Decode[model.DraftBudgetAdjustment](doc)
}
