package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/colleague-finance-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type fakeMailer struct {
	requests  [][]string
	completes [][]string
	err       error
}

func (m *fakeMailer) SendApprovalRequest(to []string, _ email.BudgetAdjustment) error {
	m.requests = append(m.requests, to)
	return m.err
}

func (m *fakeMailer) SendApprovalComplete(to []string, _ email.BudgetAdjustment) error {
	m.completes = append(m.completes, to)
	return m.err
}

type warmerFunc func(context.Context) error

func (f warmerFunc) WarmCache(ctx context.Context) error { return f(ctx) }

func newTestService(m Mailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{mailer: m, logger: &logger}
}

func TestApprovalNotificationTask(t *testing.T) {
	t.Parallel()

	task, err := NewApprovalNotificationTask(ApprovalNotificationPayload{
		BudgetAdjustmentID: "B0001042",
		Recipients:         []string{"approver@example.edu"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if task.Type() != TaskApprovalNotification {
		t.Fatalf("type = %q", task.Type())
	}

	var p ApprovalNotificationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatal(err)
	}
	if p.BudgetAdjustmentID != "B0001042" {
		t.Fatalf("payload = %+v", p)
	}
}

func TestHandleApprovalNotification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		payload       ApprovalNotificationPayload
		wantRequests  int
		wantCompletes int
	}{
		{
			name:         "next approvers",
			payload:      ApprovalNotificationPayload{BudgetAdjustmentID: "B1", Recipients: []string{"a@example.edu"}},
			wantRequests: 1,
		},
		{
			name:          "complete",
			payload:       ApprovalNotificationPayload{BudgetAdjustmentID: "B1", Recipients: []string{"i@example.edu"}, Complete: true},
			wantCompletes: 1,
		},
		{
			name:    "no recipients",
			payload: ApprovalNotificationPayload{BudgetAdjustmentID: "B1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &fakeMailer{}
			j := newTestService(m)
			task, err := NewApprovalNotificationTask(tt.payload)
			if err != nil {
				t.Fatal(err)
			}

			if err := j.handleApprovalNotificationTask(context.Background(), task); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if len(m.requests) != tt.wantRequests || len(m.completes) != tt.wantCompletes {
				t.Fatalf("requests=%d completes=%d", len(m.requests), len(m.completes))
			}
		})
	}
}

func TestHandleApprovalNotificationErrors(t *testing.T) {
	t.Parallel()

	j := newTestService(&fakeMailer{err: errors.New("resend down")})
	task, _ := NewApprovalNotificationTask(ApprovalNotificationPayload{Recipients: []string{"a@example.edu"}})
	if err := j.handleApprovalNotificationTask(context.Background(), task); err == nil {
		t.Fatal("mailer failure must fail the task so it is retried")
	}

	bad := asynq.NewTask(TaskApprovalNotification, []byte("{"))
	err := j.handleApprovalNotificationTask(context.Background(), bad)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload err = %v, want SkipRetry", err)
	}
}

func TestHandleCacheWarmup(t *testing.T) {
	t.Parallel()

	j := newTestService(&fakeMailer{})
	calls := 0
	j.RegisterWarmers(
		warmerFunc(func(context.Context) error { calls++; return nil }),
		warmerFunc(func(context.Context) error { calls++; return errors.New("redis down") }),
	)

	err := j.handleCacheWarmupTask(context.Background(), NewCacheWarmupTask())
	if err == nil {
		t.Fatal("expected error when a warmer fails")
	}
	if calls != 2 {
		t.Fatalf("warmers called %d times, want every warmer to run", calls)
	}
}
