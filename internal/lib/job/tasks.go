package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

// Task type names stored in Redis.
const (
	TaskApprovalNotification = "email:budget_adjustment_approval"
	TaskCacheWarmup          = "cache:warmup"
)

// Queue names and their worker weights.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ApprovalNotificationPayload describes one budget adjustment approval event.
// Complete is true once no next approvers remain, in which case the
// initiator is notified instead of the next approvers.
type ApprovalNotificationPayload struct {
	BudgetAdjustmentID string   `json:"budget_adjustment_id"`
	Reason             string   `json:"reason"`
	ApproverName       string   `json:"approver_name,omitempty"`
	Recipients         []string `json:"recipients"`
	Complete           bool     `json:"complete"`
}

// NewApprovalNotificationTask builds the task. The task id makes repeated
// enqueues for the same approval step idempotent.
func NewApprovalNotificationTask(p ApprovalNotificationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal approval notification payload")
	}

	return asynq.NewTask(
		TaskApprovalNotification,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueCritical),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewCacheWarmupTask builds the periodic reference data warm-up task.
func NewCacheWarmupTask() *asynq.Task {
	return asynq.NewTask(
		TaskCacheWarmup,
		nil,
		asynq.MaxRetry(1),
		asynq.Queue(QueueLow),
		asynq.Timeout(2*time.Minute),
		asynq.Unique(time.Minute),
	)
}
