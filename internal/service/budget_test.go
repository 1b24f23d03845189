package service

import (
	"context"
	"sync"
	"testing"

	"github.com/deppfellow/colleague-finance-api/internal/errs"
	"github.com/deppfellow/colleague-finance-api/internal/model"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func budgetDocs(t *testing.T) *memDocs {
	t.Helper()
	docs := newMemDocs()
	docs.put(t, KindConfiguration, ConfigBudgetAdjustmentEnabled, "", model.BudgetAdjustmentsEnabled{Enabled: true})
	for _, gl := range []string{"110001002060151000", "110001002060152000"} {
		docs.put(t, KindGlAccount, gl, "", glAccountRecord{GeneralLedgerAccount: model.GeneralLedgerAccount{ID: gl}})
	}
	docs.put(t, KindApprover, "0001", "", approverRecord{ID: "0001", Name: "Initiator", Email: "initiator@example.edu", Active: true})
	docs.put(t, KindApprover, "0002", "", approverRecord{ID: "0002", Name: "First Approver", Email: "first@example.edu", Active: true})
	docs.put(t, KindApprover, "0003", "", approverRecord{ID: "0003", Name: "Second Approver", Email: "second@example.edu", Active: true})
	docs.put(t, KindApprover, "0009", "", approverRecord{ID: "0009", Name: "Retired", Active: false})
	return docs
}

func balancedAdjustment(nextApprovers ...string) model.BudgetAdjustment {
	ba := model.BudgetAdjustment{
		Reason: "Move supplies budget",
		AdjustmentLines: []model.AdjustmentLine{
			{GlNumber: "11-00-01-00-20601-51000", FromAmount: decimal.NewFromInt(100)},
			{GlNumber: "11-00-01-00-20601-52000", ToAmount: decimal.NewFromInt(100)},
		},
	}
	for _, id := range nextApprovers {
		ba.NextApprovers = append(ba.NextApprovers, model.NextApprover{NextApproverID: id})
	}
	return ba
}

func TestBudgetAdjustmentApprovalFlow(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	notifier := &recordingNotifier{}
	svc := NewBudgetAdjustmentService(docs, Access{}, notifier)

	created, err := svc.Create(userCtx("0001"), balancedAdjustment("0002", "0003"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.ErrorMessages) > 0 {
		t.Fatalf("unexpected validation messages: %v", created.ErrorMessages)
	}
	if created.ID != "B001001" || created.Status != model.BudgetAdjustmentNotApproved {
		t.Fatalf("created = %s %s", created.ID, created.Status)
	}
	if created.NextApprovers[0].NextApproverName != "First Approver" {
		t.Fatalf("next approver name not filled: %+v", created.NextApprovers)
	}
	if len(notifier.payloads) != 1 || len(notifier.payloads[0].Recipients) != 2 || notifier.payloads[0].Complete {
		t.Fatalf("create notification = %+v", notifier.payloads)
	}

	pending, err := svc.GetPendingApprovalSummary(userCtx("0003"))
	if err != nil {
		t.Fatalf("GetPendingApprovalSummary: %v", err)
	}
	if len(pending) != 1 || !pending[0].ToAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("pending = %+v", pending)
	}

	if _, err := svc.Approve(userCtx("0002"), created.ID, model.BudgetAdjustmentApproval{}); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	if _, err := svc.Approve(userCtx("0002"), created.ID, model.BudgetAdjustmentApproval{}); !errors.Is(err, errs.ErrAlreadyApproved) {
		t.Fatalf("repeat approval err = %v, want ErrAlreadyApproved", err)
	}
	if _, err := svc.Approve(userCtx("0004"), created.ID, model.BudgetAdjustmentApproval{}); !errors.Is(err, errs.ErrPermission) {
		t.Fatalf("stranger approval err = %v, want ErrPermission", err)
	}

	approval, err := svc.Approve(userCtx("0003"), created.ID, model.BudgetAdjustmentApproval{Comments: "ok"})
	if err != nil {
		t.Fatalf("second approval: %v", err)
	}
	if approval.ApprovalDate == nil || approval.BudgetAdjustmentNumber != created.ID {
		t.Fatalf("approval = %+v", approval)
	}

	got, err := svc.Get(userCtx("0001"), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != model.BudgetAdjustmentComplete || len(got.Approvers) != 2 || len(got.NextApprovers) != 0 {
		t.Fatalf("final = %+v", got)
	}

	last := notifier.payloads[len(notifier.payloads)-1]
	if !last.Complete || len(last.Recipients) != 1 || last.Recipients[0] != "initiator@example.edu" {
		t.Fatalf("completion notification = %+v", last)
	}

	if _, err := svc.Approve(userCtx("0005"), created.ID, model.BudgetAdjustmentApproval{}); !errors.Is(err, errs.ErrNotApprovedStatus) {
		t.Fatalf("approval of complete adjustment err = %v, want ErrNotApprovedStatus", err)
	}
	if _, err := svc.Get(userCtx("0005"), created.ID); !errors.Is(err, errs.ErrPermission) {
		t.Fatalf("stranger get err = %v, want ErrPermission", err)
	}
}

func TestBudgetAdjustmentValidationMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*model.BudgetAdjustment)
	}{
		{"unbalanced", func(ba *model.BudgetAdjustment) { ba.AdjustmentLines[1].ToAmount = decimal.NewFromInt(50) }},
		{"both amounts on one line", func(ba *model.BudgetAdjustment) { ba.AdjustmentLines[0].ToAmount = decimal.NewFromInt(1) }},
		{"unknown gl account", func(ba *model.BudgetAdjustment) { ba.AdjustmentLines[0].GlNumber = "99" }},
		{"inactive approver", func(ba *model.BudgetAdjustment) {
			ba.NextApprovers = []model.NextApprover{{NextApproverID: "0009"}}
		}},
		{"self approval", func(ba *model.BudgetAdjustment) {
			ba.NextApprovers = []model.NextApprover{{NextApproverID: "0001"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			docs := budgetDocs(t)
			svc := NewBudgetAdjustmentService(docs, Access{}, nil)
			ba := balancedAdjustment()
			tt.mutate(&ba)

			got, err := svc.Create(userCtx("0001"), ba)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if len(got.ErrorMessages) == 0 {
				t.Fatal("expected validation messages")
			}
			stored, _ := docs.List(context.Background(), repositoryQuery(KindBudgetAdjustment))
			if len(stored) != 0 {
				t.Fatalf("invalid adjustment was stored")
			}
		})
	}
}

func TestBudgetAdjustmentWithoutApproversCompletes(t *testing.T) {
	t.Parallel()

	svc := NewBudgetAdjustmentService(budgetDocs(t), Access{}, nil)
	got, err := svc.Create(userCtx("0001"), balancedAdjustment())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Status != model.BudgetAdjustmentComplete {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestBudgetAdjustmentApprovalRequired(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	docs.put(t, KindConfiguration, ConfigBudgetAdjustmentValidation, "", model.BudgetAdjustmentAccountRestrictions{ApprovalRequired: true})
	svc := NewBudgetAdjustmentService(docs, Access{}, nil)

	got, err := svc.Create(userCtx("0001"), balancedAdjustment())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(got.ErrorMessages) != 1 {
		t.Fatalf("messages = %v", got.ErrorMessages)
	}
}

func TestBudgetAdjustmentSameCostCenter(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	docs.put(t, KindConfiguration, ConfigBudgetAdjustmentValidation, "", model.BudgetAdjustmentAccountRestrictions{SameCostCenterRequired: true})
	docs.put(t, KindConfiguration, ConfigGeneralLedger, "", model.GeneralLedgerConfiguration{
		MajorComponents: []model.GeneralLedgerComponent{
			{ComponentName: "FUND", StartPosition: 1, ComponentLength: 2},
			{ComponentName: "OBJECT", StartPosition: 14, ComponentLength: 5},
		},
	})
	svc := NewBudgetAdjustmentService(docs, Access{}, nil)

	got, err := svc.Create(userCtx("0001"), balancedAdjustment())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(got.ErrorMessages) != 1 {
		t.Fatalf("different objects should fail the cost center rule: %v", got.ErrorMessages)
	}
}

func TestBudgetAdjustmentDisabled(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	docs.put(t, KindConfiguration, ConfigBudgetAdjustmentEnabled, "", model.BudgetAdjustmentsEnabled{Enabled: false})
	svc := NewBudgetAdjustmentService(docs, Access{}, nil)

	_, err := svc.Create(userCtx("0001"), balancedAdjustment())
	if !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestBudgetAdjustmentPermissions(t *testing.T) {
	t.Parallel()

	svc := NewBudgetAdjustmentService(budgetDocs(t), Access{Enforce: true}, nil)

	if _, err := svc.Create(userCtx("0001"), balancedAdjustment()); !errors.Is(err, errs.ErrPermission) {
		t.Fatalf("err = %v, want ErrPermission", err)
	}
	if _, err := svc.Create(context.Background(), balancedAdjustment()); !errors.Is(err, errs.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if _, err := svc.Create(userCtx("0001", PermissionCreateUpdateBudgetAdjustment), balancedAdjustment()); err != nil {
		t.Fatalf("permitted create: %v", err)
	}
}

func TestCreateFromDraftRemovesDraft(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	drafts := NewDraftBudgetAdjustmentService(docs, Access{})
	draft, err := drafts.Create(userCtx("0001"), model.DraftBudgetAdjustment{Reason: "later"})
	if err != nil {
		t.Fatalf("draft Create: %v", err)
	}

	svc := NewBudgetAdjustmentService(docs, Access{}, nil)
	ba := balancedAdjustment()
	ba.DraftBudgetAdjustmentID = draft.ID
	if _, err := svc.Create(userCtx("0001"), ba); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := drafts.Get(userCtx("0001"), draft.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("draft still present: %v", err)
	}
}

func TestDraftOwnership(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	svc := NewDraftBudgetAdjustmentService(docs, Access{})

	draft, err := svc.Create(userCtx("0001"), model.DraftBudgetAdjustment{Reason: "draft"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(userCtx("0002"), draft.ID); !errors.Is(err, errs.ErrPermission) {
		t.Fatalf("other user get err = %v", err)
	}
	if err := svc.Delete(userCtx("0002"), draft.ID); !errors.Is(err, errs.ErrPermission) {
		t.Fatalf("other user delete err = %v", err)
	}

	updated, err := svc.Update(userCtx("0001"), draft.ID, model.DraftBudgetAdjustment{Reason: "changed"})
	if err != nil || updated.Reason != "changed" {
		t.Fatalf("Update = %+v, %v", updated, err)
	}
	if _, err := svc.Update(userCtx("0001"), draft.ID, model.DraftBudgetAdjustment{ID: "other"}); !errors.Is(err, errs.ErrApplication) {
		t.Fatalf("mismatched id err = %v", err)
	}

	if err := svc.Delete(userCtx("0001"), draft.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(userCtx("0001"), draft.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestBudgetSummaryIncludesDrafts(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	if _, err := NewDraftBudgetAdjustmentService(docs, Access{}).Create(userCtx("0001"), model.DraftBudgetAdjustment{Reason: "draft"}); err != nil {
		t.Fatalf("draft: %v", err)
	}
	svc := NewBudgetAdjustmentService(docs, Access{}, nil)
	if _, err := svc.Create(userCtx("0001"), balancedAdjustment()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	summary, err := svc.GetSummary(userCtx("0001"))
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("summary = %+v", summary)
	}
}

// readBarrierDocs holds the first two reads of one kind until both have
// happened, so both callers work from the same snapshot.
type readBarrierDocs struct {
	*memDocs
	kind    string
	mu      sync.Mutex
	reads   int
	release chan struct{}
}

func (b *readBarrierDocs) Get(ctx context.Context, kind, id string) (*repository.Document, error) {
	doc, err := b.memDocs.Get(ctx, kind, id)
	if kind != b.kind {
		return doc, err
	}

	b.mu.Lock()
	b.reads++
	n := b.reads
	if n == 2 {
		close(b.release)
	}
	b.mu.Unlock()

	if n <= 2 {
		<-b.release
	}
	return doc, err
}

func TestBudgetAdjustmentConcurrentApprovals(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	created, err := NewBudgetAdjustmentService(docs, Access{}, nil).Create(userCtx("0001"), balancedAdjustment("0002", "0003"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	barrier := &readBarrierDocs{memDocs: docs, kind: KindBudgetAdjustment, release: make(chan struct{})}
	svc := NewBudgetAdjustmentService(barrier, Access{}, nil)

	approvers := []string{"0002", "0003"}
	results := make([]error, len(approvers))
	var wg sync.WaitGroup
	for i, id := range approvers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = svc.Approve(userCtx(id), created.ID, model.BudgetAdjustmentApproval{})
		}()
	}
	wg.Wait()

	for i, err := range results {
		if err != nil {
			t.Fatalf("approval by %s: %v", approvers[i], err)
		}
	}

	doc, err := docs.Get(context.Background(), KindBudgetAdjustment, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got, err := repository.Decode[model.BudgetAdjustment](doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Status != model.BudgetAdjustmentComplete || len(got.Approvers) != 2 || len(got.NextApprovers) != 0 {
		t.Fatalf("status = %s, approvers = %d, next approvers = %d", got.Status, len(got.Approvers), len(got.NextApprovers))
	}
}

// conflictingDocs rejects every update as changed by another request.
type conflictingDocs struct {
	*memDocs
	updates int
}

func (c *conflictingDocs) Update(context.Context, repository.Document) error {
	c.updates++
	return errs.New(errs.ErrConcurrentUpdate, "changed by another request")
}

func TestBudgetAdjustmentApprovalGivesUpAfterConflicts(t *testing.T) {
	t.Parallel()

	docs := budgetDocs(t)
	created, err := NewBudgetAdjustmentService(docs, Access{}, nil).Create(userCtx("0001"), balancedAdjustment("0002"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	conflicts := &conflictingDocs{memDocs: docs}
	_, err = NewBudgetAdjustmentService(conflicts, Access{}, nil).Approve(userCtx("0002"), created.ID, model.BudgetAdjustmentApproval{})
	if !errors.Is(err, errs.ErrConcurrentUpdate) {
		t.Fatalf("err = %v, want ErrConcurrentUpdate", err)
	}
	if conflicts.updates != approveAttempts {
		t.Errorf("updates = %d, want %d", conflicts.updates, approveAttempts)
	}
}
