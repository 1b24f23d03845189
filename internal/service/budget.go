package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/lib/identity"
	"github.com/deppfellow/colleague-finance-api/internal/lib/job"
	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Budget adjustment permission codes.
const (
	PermissionCreateUpdateBudgetAdjustment = "CREATE.UPDATE.BUDGET.ADJUSTMENT"
	PermissionViewBudgetAdjustment         = "VIEW.BUDGET.ADJUSTMENT"
	PermissionDeleteBudgetAdjustment       = "DELETE.BUDGET.ADJUSTMENT"
	PermissionViewBudgetAdjustmentApproval = "VIEW.BUD.ADJ.PENDING.APPR"
)

// Notifier queues approval notifications.
type Notifier interface {
	EnqueueApprovalNotification(ctx context.Context, p job.ApprovalNotificationPayload) error
}

// BudgetAdjustmentService creates, reads and approves budget adjustments.
type BudgetAdjustmentService struct {
	docs     DocumentStore
	access   Access
	notifier Notifier
	now      func() time.Time
}

func NewBudgetAdjustmentService(docs DocumentStore, access Access, notifier Notifier) *BudgetAdjustmentService {
	return &BudgetAdjustmentService{docs: docs, access: access, notifier: notifier, now: time.Now}
}

type storedBudgetAdjustment struct {
	model.BudgetAdjustment
	ownerID   string
	updatedAt time.Time
}

func (s *BudgetAdjustmentService) load(ctx context.Context, id string) (*storedBudgetAdjustment, error) {
	if id == "" {
		return nil, errs.New(errs.ErrMissingArgument, "A budget adjustment number must be specified.")
	}
	doc, err := s.docs.Get(ctx, KindBudgetAdjustment, id)
	if err != nil {
		return nil, err
	}
	ba, err := repository.Decode[model.BudgetAdjustment](doc)
	if err != nil {
		return nil, err
	}
	return &storedBudgetAdjustment{BudgetAdjustment: *ba, ownerID: doc.OwnerID, updatedAt: doc.UpdatedAt}, nil
}

func (s *BudgetAdjustmentService) enabled(ctx context.Context) error {
	enabled, err := getDocument[model.BudgetAdjustmentsEnabled](ctx, s.docs, KindConfiguration, ConfigBudgetAdjustmentEnabled)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if enabled == nil || !enabled.Enabled {
		return errs.New(errs.ErrConfiguration, "Budget adjustments are not enabled.")
	}
	return nil
}

// Create validates and stores a new budget adjustment. Validation failures
// come back in ErrorMessages and nothing is stored.
func (s *BudgetAdjustmentService) Create(ctx context.Context, ba model.BudgetAdjustment) (*model.BudgetAdjustment, error) {
	user, err := s.access.Require(ctx, PermissionCreateUpdateBudgetAdjustment, "create a budget adjustment")
	if err != nil {
		return nil, err
	}
	if err := s.enabled(ctx); err != nil {
		return nil, err
	}

	if err := s.prepare(ctx, user, &ba); err != nil {
		return nil, err
	}
	if len(ba.ErrorMessages) > 0 {
		return &ba, nil
	}

	n, err := s.docs.NextID(ctx)
	if err != nil {
		return nil, err
	}
	ba.ID = fmt.Sprintf("B%06d", n)

	if err := saveDocument(ctx, s.docs, true, KindBudgetAdjustment, ba.ID, user.ID, ba); err != nil {
		return nil, err
	}

	if ba.DraftBudgetAdjustmentID != "" {
		if err := s.docs.Delete(ctx, KindDraftBudgetAdjustment, ba.DraftBudgetAdjustmentID); err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	s.notify(ctx, &ba, "", ba.Status == model.BudgetAdjustmentComplete, user.ID)
	return &ba, nil
}

// Update replaces a budget adjustment owned by the caller. Prior approvals
// are discarded.
func (s *BudgetAdjustmentService) Update(ctx context.Context, id string, ba model.BudgetAdjustment) (*model.BudgetAdjustment, error) {
	user, err := s.access.Require(ctx, PermissionCreateUpdateBudgetAdjustment, "update the budget adjustment")
	if err != nil {
		return nil, err
	}
	if err := s.enabled(ctx); err != nil {
		return nil, err
	}

	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.ownerID != user.ID {
		return nil, errs.Newf(errs.ErrPermission, "User '%s' does not own budget adjustment %s.", user.ID, id)
	}
	if existing.Status == model.BudgetAdjustmentComplete {
		return nil, errs.Newf(errs.ErrApplication, "Budget adjustment %s is complete and cannot be changed.", id)
	}

	ba.ID = id
	ba.Approvers = nil
	if err := s.prepare(ctx, user, &ba); err != nil {
		return nil, err
	}
	if len(ba.ErrorMessages) > 0 {
		return &ba, nil
	}

	if err := saveDocument(ctx, s.docs, false, KindBudgetAdjustment, id, user.ID, ba); err != nil {
		return nil, err
	}

	s.notify(ctx, &ba, "", ba.Status == model.BudgetAdjustmentComplete, user.ID)
	return &ba, nil
}

// prepare fills derived fields and collects validation messages.
func (s *BudgetAdjustmentService) prepare(ctx context.Context, user identity.User, ba *model.BudgetAdjustment) error {
	ba.PersonID = user.ID
	ba.ErrorMessages = nil
	if ba.TransactionDate.IsZero() {
		ba.TransactionDate = s.now()
	}

	messages, err := s.validateLines(ctx, ba.AdjustmentLines)
	if err != nil {
		return err
	}

	restrictions, err := getDocument[model.BudgetAdjustmentAccountRestrictions](ctx, s.docs, KindConfiguration, ConfigBudgetAdjustmentValidation)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		restrictions = &model.BudgetAdjustmentAccountRestrictions{}
	case err != nil:
		return err
	}

	if restrictions.SameCostCenterRequired {
		same, err := s.sameCostCenter(ctx, restrictions.SameCostCenterComponents, ba.AdjustmentLines)
		if err != nil {
			return err
		}
		if !same {
			messages = append(messages, "All GL accounts must be in the same cost center.")
		}
	}

	for i, next := range ba.NextApprovers {
		approver, err := getDocument[approverRecord](ctx, s.docs, KindApprover, next.NextApproverID)
		switch {
		case errors.Is(err, errs.ErrNotFound) || (err == nil && !approver.Active):
			messages = append(messages, fmt.Sprintf("%s is not a valid approver.", next.NextApproverID))
		case err != nil:
			return err
		case next.NextApproverID == user.ID:
			messages = append(messages, "You cannot be a next approver of your own budget adjustment.")
		default:
			ba.NextApprovers[i].NextApproverName = approver.Name
		}
	}

	switch {
	case len(ba.NextApprovers) > 0:
		ba.Status = model.BudgetAdjustmentNotApproved
	case restrictions.ApprovalRequired:
		messages = append(messages, "At least one next approver is required.")
	default:
		ba.Status = model.BudgetAdjustmentComplete
	}

	ba.ErrorMessages = messages
	return nil
}

func (s *BudgetAdjustmentService) validateLines(ctx context.Context, lines []model.AdjustmentLine) ([]string, error) {
	var messages []string
	if len(lines) < 2 {
		messages = append(messages, "A budget adjustment must have at least two adjustment lines.")
	}

	from, to := decimal.Zero, decimal.Zero
	for _, line := range lines {
		switch {
		case line.FromAmount.IsNegative() || line.ToAmount.IsNegative():
			messages = append(messages, fmt.Sprintf("GL account %s cannot have a negative amount.", line.GlNumber))
		case line.FromAmount.IsPositive() == line.ToAmount.IsPositive():
			messages = append(messages, fmt.Sprintf("GL account %s must have either a from amount or a to amount.", line.GlNumber))
		}
		from = from.Add(line.FromAmount)
		to = to.Add(line.ToAmount)

		_, err := s.docs.Get(ctx, KindGlAccount, NormalizeGlNumber(line.GlNumber))
		switch {
		case errors.Is(err, errs.ErrNotFound):
			messages = append(messages, fmt.Sprintf("GL account %s is not valid.", line.GlNumber))
		case err != nil:
			return nil, err
		}
	}

	if !from.Equal(to) {
		messages = append(messages, "The total from amount must equal the total to amount.")
	}
	return messages, nil
}

// sameCostCenter compares the named GL components of every line. With no
// names every major component is compared.
func (s *BudgetAdjustmentService) sameCostCenter(ctx context.Context, names []string, lines []model.AdjustmentLine) (bool, error) {
	cfg, err := getConfiguration[model.GeneralLedgerConfiguration](ctx, s.docs, ConfigGeneralLedger)
	if err != nil {
		return false, err
	}

	components := cfg.MajorComponents
	if len(names) > 0 {
		components = slices.DeleteFunc(slices.Clone(components), func(c model.GeneralLedgerComponent) bool {
			return !slices.Contains(names, c.ComponentName)
		})
	}

	key := func(gl string) string {
		gl = NormalizeGlNumber(gl)
		var out string
		for _, c := range components {
			start := c.StartPosition - 1
			end := start + c.ComponentLength
			if start < 0 || end > len(gl) {
				return gl
			}
			out += gl[start:end] + "|"
		}
		return out
	}

	for _, line := range lines[min(1, len(lines)):] {
		if key(line.GlNumber) != key(lines[0].GlNumber) {
			return false, nil
		}
	}
	return true, nil
}

// Get returns a budget adjustment the caller initiated or approves.
func (s *BudgetAdjustmentService) Get(ctx context.Context, id string) (*model.BudgetAdjustment, error) {
	user, err := s.access.Require(ctx, PermissionViewBudgetAdjustment, "view the budget adjustment")
	if err != nil {
		return nil, err
	}

	ba, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ba.ownerID != user.ID && !isNextApprover(ba.NextApprovers, user.ID) && !hasApproved(ba.Approvers, user.ID) {
		return nil, errs.Newf(errs.ErrPermission, "User '%s' cannot view budget adjustment %s.", user.ID, id)
	}
	return &ba.BudgetAdjustment, nil
}

// GetPendingApprovalDetail returns a budget adjustment waiting on the caller.
func (s *BudgetAdjustmentService) GetPendingApprovalDetail(ctx context.Context, id string) (*model.BudgetAdjustment, error) {
	user, err := s.access.Require(ctx, PermissionViewBudgetAdjustmentApproval, "view the budget adjustment")
	if err != nil {
		return nil, err
	}

	ba, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isNextApprover(ba.NextApprovers, user.ID) {
		return nil, errs.Newf(errs.ErrPermission, "User '%s' is not a next approver of budget adjustment %s.", user.ID, id)
	}
	return &ba.BudgetAdjustment, nil
}

// approveAttempts bounds how often an approval is reapplied after another
// request changed the adjustment.
const approveAttempts = 3

// Approve records the caller's approval. The adjustment completes once no
// next approvers remain.
func (s *BudgetAdjustmentService) Approve(ctx context.Context, id string, approval model.BudgetAdjustmentApproval) (*model.BudgetAdjustmentApproval, error) {
	user, err := s.access.Require(ctx, PermissionViewBudgetAdjustmentApproval, "approve the budget adjustment")
	if err != nil {
		return nil, err
	}
	if approval.BudgetAdjustmentNumber != "" && approval.BudgetAdjustmentNumber != id {
		return nil, errs.New(errs.ErrInvalidArgument, "The budget adjustment number in the request body does not match the URL.")
	}

	for attempt := 1; ; attempt++ {
		out, err := s.approve(ctx, id, user.ID, approval)
		if errors.Is(err, errs.ErrConcurrentUpdate) && attempt < approveAttempts {
			continue
		}
		return out, err
	}
}

// approve applies one approval to the stored adjustment. The write fails
// with errs.ErrConcurrentUpdate when the adjustment changed after it was
// read.
func (s *BudgetAdjustmentService) approve(ctx context.Context, id, userID string, approval model.BudgetAdjustmentApproval) (*model.BudgetAdjustmentApproval, error) {
	ba, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if hasApproved(ba.Approvers, userID) {
		return nil, errs.Newf(errs.ErrAlreadyApproved, "User '%s' already approved budget adjustment %s.", userID, id)
	}
	if ba.Status != model.BudgetAdjustmentNotApproved {
		return nil, errs.Newf(errs.ErrNotApprovedStatus, "Budget adjustment %s has status %s.", id, ba.Status)
	}
	if !isNextApprover(ba.NextApprovers, userID) {
		return nil, errs.Newf(errs.ErrPermission, "User '%s' is not a next approver of budget adjustment %s.", userID, id)
	}

	now := s.now()
	var name string
	ba.NextApprovers = slices.DeleteFunc(ba.NextApprovers, func(n model.NextApprover) bool {
		if n.NextApproverID == userID {
			name = n.NextApproverName
			return true
		}
		return false
	})
	ba.Approvers = append(ba.Approvers, model.Approver{ApproverID: userID, ApprovalName: name, ApprovalDate: &now})
	if len(ba.NextApprovers) == 0 {
		ba.Status = model.BudgetAdjustmentComplete
	}
	if approval.Comments != "" {
		if ba.Comments != "" {
			ba.Comments += "\n"
		}
		ba.Comments += approval.Comments
	}

	if err := updateDocument(ctx, s.docs, KindBudgetAdjustment, id, ba.ownerID, ba.BudgetAdjustment, ba.updatedAt); err != nil {
		return nil, err
	}

	s.notify(ctx, &ba.BudgetAdjustment, name, ba.Status == model.BudgetAdjustmentComplete, ba.ownerID)

	approval.BudgetAdjustmentNumber = id
	approval.ApprovalDate = &now
	return &approval, nil
}

// GetSummary lists the caller's budget adjustments and drafts.
func (s *BudgetAdjustmentService) GetSummary(ctx context.Context) ([]model.BudgetAdjustmentSummary, error) {
	user, err := s.access.Require(ctx, PermissionViewBudgetAdjustment, "view budget adjustments")
	if err != nil {
		return nil, err
	}

	adjustments, err := listDocuments[model.BudgetAdjustment](ctx, s.docs, repository.DocumentQuery{Kind: KindBudgetAdjustment, OwnerID: user.ID})
	if err != nil {
		return nil, err
	}
	drafts, err := listDocuments[model.DraftBudgetAdjustment](ctx, s.docs, repository.DocumentQuery{Kind: KindDraftBudgetAdjustment, OwnerID: user.ID})
	if err != nil {
		return nil, err
	}

	out := make([]model.BudgetAdjustmentSummary, 0, len(adjustments)+len(drafts))
	for _, ba := range adjustments {
		out = append(out, model.BudgetAdjustmentSummary{
			BudgetAdjustmentNumber: ba.ID,
			Reason:                 ba.Reason,
			Status:                 ba.Status,
			TransactionDate:        ba.TransactionDate,
			InitiatorName:          ba.Initiator,
			ToAmount:               toAmount(ba.AdjustmentLines),
		})
	}
	for _, d := range drafts {
		summary := model.BudgetAdjustmentSummary{
			DraftBudgetAdjustmentID: d.ID,
			Reason:                  d.Reason,
			Status:                  model.BudgetAdjustmentUnfinished,
			InitiatorName:           d.Initiator,
			ToAmount:                toAmount(d.AdjustmentLines),
		}
		if d.TransactionDate != nil {
			summary.TransactionDate = *d.TransactionDate
		}
		out = append(out, summary)
	}
	return out, nil
}

// GetPendingApprovalSummary lists the budget adjustments waiting on the
// caller.
func (s *BudgetAdjustmentService) GetPendingApprovalSummary(ctx context.Context) ([]model.BudgetAdjustmentPendingApprovalSummary, error) {
	user, err := s.access.Require(ctx, PermissionViewBudgetAdjustmentApproval, "view budget adjustments pending approval")
	if err != nil {
		return nil, err
	}

	criteria, err := contains(map[string]any{
		"status":        model.BudgetAdjustmentNotApproved,
		"nextApprovers": []map[string]string{{"nextApproverId": user.ID}},
	})
	if err != nil {
		return nil, err
	}

	adjustments, err := listDocuments[model.BudgetAdjustment](ctx, s.docs, repository.DocumentQuery{Kind: KindBudgetAdjustment, Contains: criteria})
	if err != nil {
		return nil, err
	}

	out := make([]model.BudgetAdjustmentPendingApprovalSummary, 0, len(adjustments))
	for _, ba := range adjustments {
		out = append(out, model.BudgetAdjustmentPendingApprovalSummary{
			BudgetAdjustmentNumber: ba.ID,
			Reason:                 ba.Reason,
			Status:                 ba.Status,
			TransactionDate:        ba.TransactionDate,
			InitiatorName:          ba.Initiator,
			ToAmount:               toAmount(ba.AdjustmentLines),
		})
	}
	return out, nil
}

// notify queues an email to the next approvers, or to the initiator once
// the adjustment is complete. Failures are logged and never fail the
// request.
func (s *BudgetAdjustmentService) notify(ctx context.Context, ba *model.BudgetAdjustment, approverName string, complete bool, ownerID string) {
	if s.notifier == nil {
		return
	}

	ids := []string{ownerID}
	if !complete {
		ids = ids[:0]
		for _, n := range ba.NextApprovers {
			ids = append(ids, n.NextApproverID)
		}
	}

	recipients := s.emails(ctx, ids)
	if len(recipients) == 0 {
		return
	}

	err := s.notifier.EnqueueApprovalNotification(ctx, job.ApprovalNotificationPayload{
		BudgetAdjustmentID: ba.ID,
		Reason:             ba.Reason,
		ApproverName:       approverName,
		Recipients:         recipients,
		Complete:           complete,
	})
	if err != nil {
		middleware.LoggerFromContext(ctx).Error().Err(err).
			Str("budget_adjustment_id", ba.ID).
			Msg("failed to enqueue approval notification")
	}
}

func (s *BudgetAdjustmentService) emails(ctx context.Context, ids []string) []string {
	var out []string
	for _, id := range ids {
		r, err := getDocument[approverRecord](ctx, s.docs, KindApprover, id)
		if err == nil && r.Email != "" {
			out = append(out, r.Email)
		}
	}
	return out
}

func isNextApprover(next []model.NextApprover, id string) bool {
	return slices.ContainsFunc(next, func(n model.NextApprover) bool { return n.NextApproverID == id })
}

func hasApproved(approvers []model.Approver, id string) bool {
	return slices.ContainsFunc(approvers, func(a model.Approver) bool { return a.ApproverID == id })
}

func toAmount(lines []model.AdjustmentLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.ToAmount)
	}
	return total
}
