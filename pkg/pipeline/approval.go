package pipeline

import (
	"context"

	"github.com/kaljuvee/postwave/pkg/events"
	"github.com/kaljuvee/postwave/pkg/log"
	"github.com/kaljuvee/postwave/pkg/models"
)

// Decide resumes a run suspended at the approval gate. The gate resolves
// exactly once: a second decision fails with ErrAlreadyDecided and never
// republishes. On approval every pending post transitions to approved and the
// publish stage runs before Decide returns. On rejection the run terminates
// with its posts left in pending_approval for inspection.
func (e *Engine) Decide(ctx context.Context, runID string, approve bool) (*models.RunState, error) {
	run, err := e.store.Get(runID)
	if err != nil {
		return nil, err
	}

	logger := log.WithRun(e.logger, run.ID)

	e.mu.Lock()

	if run.Status.Decided() {
		e.mu.Unlock()

		return run, ErrAlreadyDecided
	}

	if run.Status != models.RunStatusAwaitingApproval {
		e.mu.Unlock()

		return run, ErrNotAwaitingApproval
	}

	now := e.now().UTC()

	if e.approvalTTL > 0 && run.AwaitingSince != nil && now.Sub(*run.AwaitingSince) > e.approvalTTL {
		stageErr := &StageError{Stage: StageApproval, Err: ErrApprovalExpired}
		run.AppendError(stageErr.Error())
		run.Status = models.RunStatusRejected
		run.DecidedAt = &now

		e.mu.Unlock()

		logger.WarnContext(ctx, "Decision arrived after approval window", "awaiting_since", run.AwaitingSince)
		e.finish(ctx, run, logger)

		return run, ErrApprovalExpired
	}

	run.DecidedAt = &now

	e.emit(ctx, run.ID, events.RunDecided{
		BaseEvent: events.NewBaseEvent(events.RunDecidedEvent, run.ID),
		Approved:  approve,
	})

	if !approve {
		run.Status = models.RunStatusRejected

		e.mu.Unlock()

		logger.InfoContext(ctx, "Run rejected, nothing published")
		e.finish(ctx, run, logger)

		return run, nil
	}

	run.Status = models.RunStatusApproved

	for _, post := range run.PostsWithStatus(models.PostStatusPendingApproval) {
		post.Status = models.PostStatusApproved
	}

	e.mu.Unlock()

	logger.InfoContext(ctx, "Run approved", "approved_posts", len(run.PostsWithStatus(models.PostStatusApproved)))
	e.advance(ctx, run, StagePublish, logger)

	return run, nil
}

// Cancel aborts a run suspended at the approval gate. Posts remain in
// pending_approval, leaving the run observably in its last error-free stage.
func (e *Engine) Cancel(ctx context.Context, runID string) (*models.RunState, error) {
	run, err := e.store.Get(runID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()

	if run.Status != models.RunStatusAwaitingApproval {
		e.mu.Unlock()

		return run, ErrNotAwaitingApproval
	}

	now := e.now().UTC()
	run.Status = models.RunStatusCancelled
	run.DecidedAt = &now

	e.mu.Unlock()

	logger := log.WithRun(e.logger, run.ID)
	logger.InfoContext(ctx, "Run cancelled at approval gate")
	e.finish(ctx, run, logger)

	return run, nil
}
