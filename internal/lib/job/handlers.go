package job

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/colleague-finance-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

// Mailer sends the budget adjustment notifications.
type Mailer interface {
	SendApprovalRequest(to []string, ba email.BudgetAdjustment) error
	SendApprovalComplete(to []string, ba email.BudgetAdjustment) error
}

// CacheWarmer reloads cached reference data.
type CacheWarmer interface {
	WarmCache(ctx context.Context) error
}

func (j *JobService) handleApprovalNotificationTask(ctx context.Context, t *asynq.Task) error {
	var p ApprovalNotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload never succeeds, so do not retry it.
		return errors.Wrapf(asynq.SkipRetry, "failed to unmarshal approval notification payload: %v", err)
	}

	log := j.logger.With().
		Str("type", TaskApprovalNotification).
		Str("budget_adjustment_id", p.BudgetAdjustmentID).
		Bool("complete", p.Complete).
		Logger()

	if len(p.Recipients) == 0 {
		log.Info().Msg("no recipients for approval notification, skipping")
		return nil
	}

	ba := email.BudgetAdjustment{
		Number:       p.BudgetAdjustmentID,
		Reason:       p.Reason,
		ApproverName: p.ApproverName,
	}

	var err error
	if p.Complete {
		err = j.mailer.SendApprovalComplete(p.Recipients, ba)
	} else {
		err = j.mailer.SendApprovalRequest(p.Recipients, ba)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to send approval notification")
		return err
	}

	log.Info().Int("recipients", len(p.Recipients)).Msg("sent approval notification")
	return nil
}

func (j *JobService) handleCacheWarmupTask(ctx context.Context, _ *asynq.Task) error {
	var failed int
	for _, w := range j.warmers {
		if err := w.WarmCache(ctx); err != nil {
			failed++
			j.logger.Warn().Err(err).Msg("cache warm-up failed")
		}
	}

	if failed > 0 {
		return errors.Errorf("%d of %d cache warmers failed", failed, len(j.warmers))
	}

	j.logger.Debug().Int("warmers", len(j.warmers)).Msg("cache warm-up complete")
	return nil
}
