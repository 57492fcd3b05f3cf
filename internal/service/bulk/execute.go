package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/pkg/ctxutil"
)

// Execute applies a PENDING preview. The preview is claimed, the snapshot is
// re-checked against the current matches under row locks and the action is
// applied to the surviving snapshot rows, all in one transaction.
func (s *Service) Execute(ctx context.Context, token string) (ExecutionResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ExecutionResult{}, domain.ErrUnauthorized
	}

	started := time.Now()

	rec, err := s.loadPending(ctx, token)
	if err != nil {
		return ExecutionResult{}, err
	}

	var (
		historyID = uuid.New()
		now       = s.now()
		claimed   bool
		missing   []uuid.UUID
		changes   []domain.CourseChange
	)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.previews.Transition(txCtx, token, domain.PreviewStatePending, domain.PreviewStateExecuted, now); err != nil {
			return fmt.Errorf("claim preview: %w", err)
		}
		claimed = true

		current, err := s.courses.MatchIDs(txCtx, rec.Criteria, domain.MatchOptions{
			Limit:     s.cfg.MaxMatched + 1,
			ForUpdate: true,
		})
		if err != nil {
			return fmt.Errorf("match courses: %w", err)
		}

		var (
			targets []uuid.UUID
			added   []uuid.UUID
		)
		targets, missing, added = diffSnapshot(rec.MatchedIDs, current)
		if s.isStale(missing, added) {
			return &domain.StalePreviewError{Token: token, Missing: missing, Added: added}
		}

		if rec.Action.Field == domain.BulkFieldStatus {
			if err := s.checkTransitions(txCtx, targets, rec.Action); err != nil {
				return err
			}
		}

		for start := 0; start < len(targets); start += s.subBatchSize() {
			end := min(start+s.subBatchSize(), len(targets))
			batch, err := s.courses.ApplyChange(txCtx, targets[start:end], rec.Action, now)
			if err != nil {
				return fmt.Errorf("apply change: %w", err)
			}
			changes = append(changes, batch...)
		}

		if len(changes) > 0 {
			if err := s.audit.LogBatch(txCtx, courseAuditRecords(userID, token, historyID, changes)); err != nil {
				return fmt.Errorf("audit log: %w", err)
			}
		}

		if err := s.history.Record(txCtx, domain.HistoryRecord{
			ID:            historyID,
			PreviewToken:  token,
			TemplateID:    rec.TemplateID,
			Action:        rec.Action,
			Criteria:      rec.Criteria,
			MatchedCount:  rec.MatchedCount(),
			AffectedCount: len(changes),
			PerformedBy:   userID,
			PerformedAt:   now,
			Outcome:       domain.BulkOutcomeSuccess,
		}); err != nil {
			return fmt.Errorf("record history: %w", err)
		}

		return nil
	})
	if err != nil {
		return ExecutionResult{}, s.executionFailed(ctx, rec, userID, claimed, err, started)
	}

	for _, n := range buildNotifications(userID, historyID, rec.Action, changes, now) {
		s.notify.Enqueue(n)
	}
	s.metrics.ExecutionFinished(domain.BulkOutcomeSuccess, len(changes), time.Since(started))

	s.log.InfoContext(ctx, "bulk execution succeeded",
		slog.String("user_id", userID.String()),
		slog.String("preview_id", token),
		slog.String("history_id", historyID.String()),
		slog.String("field", rec.Action.Field.String()),
		slog.Int("matched", rec.MatchedCount()),
		slog.Int("affected", len(changes)),
		slog.Int("skipped", len(missing)),
		slog.Duration("elapsed", time.Since(started)),
	)

	return ExecutionResult{
		HistoryID:     historyID,
		MatchedCount:  rec.MatchedCount(),
		AffectedCount: len(changes),
		Skipped:       len(missing),
		Outcome:       domain.BulkOutcomeSuccess,
	}, nil
}

// loadPending returns the preview if it can still be executed.
func (s *Service) loadPending(ctx context.Context, token string) (*domain.PreviewRecord, error) {
	rec, err := s.previews.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get preview: %w", err)
	}

	switch rec.State {
	case domain.PreviewStateExecuted, domain.PreviewStateCancelled:
		return nil, fmt.Errorf("preview is %s: %w", rec.State, domain.ErrConflict)
	case domain.PreviewStateExpired:
		return nil, fmt.Errorf("preview expired: %w", domain.ErrGone)
	}

	now := s.now()
	if rec.IsExpired(now) {
		if err := s.markExpired(ctx, token, now); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("preview expired at %s: %w", rec.ExpiresAt.Format(time.RFC3339), domain.ErrGone)
	}

	return rec, nil
}

// executionFailed handles an aborted execution transaction. Stale snapshots,
// lost claim races and vanished previews are returned unchanged; any other
// failure is recorded as a FAILED history entry.
func (s *Service) executionFailed(
	ctx context.Context,
	rec *domain.PreviewRecord,
	userID uuid.UUID,
	claimed bool,
	cause error,
	started time.Time,
) error {
	// The rollback may outlive a cancelled request.
	ctx = context.WithoutCancel(ctx)

	if claimed && !s.storeIsTransactional() {
		err := s.previews.Transition(ctx, rec.Token, domain.PreviewStateExecuted, domain.PreviewStatePending, s.now())
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			s.log.ErrorContext(ctx, "revert preview claim",
				slog.String("preview_id", rec.Token),
				slog.String("error", err.Error()),
			)
		}
	}

	var stale *domain.StalePreviewError
	switch {
	case errors.As(cause, &stale):
		s.log.WarnContext(ctx, "bulk execution rejected: stale preview",
			slog.String("preview_id", rec.Token),
			slog.Int("missing", len(stale.Missing)),
			slog.Int("added", len(stale.Added)),
		)
		return cause
	case !claimed && (errors.Is(cause, domain.ErrConflict) || errors.Is(cause, domain.ErrNotFound)):
		return cause
	}

	msg := cause.Error()
	historyID := uuid.New()
	err := s.history.Record(ctx, domain.HistoryRecord{
		ID:           historyID,
		PreviewToken: rec.Token,
		TemplateID:   rec.TemplateID,
		Action:       rec.Action,
		Criteria:     rec.Criteria,
		MatchedCount: rec.MatchedCount(),
		PerformedBy:  userID,
		PerformedAt:  s.now(),
		Outcome:      domain.BulkOutcomeFailed,
		ErrorMessage: &msg,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "record failed bulk execution",
			slog.String("preview_id", rec.Token),
			slog.String("error", err.Error()),
		)
		historyID = uuid.Nil
	}

	s.metrics.ExecutionFinished(domain.BulkOutcomeFailed, 0, time.Since(started))
	s.log.ErrorContext(ctx, "bulk execution failed",
		slog.String("user_id", userID.String()),
		slog.String("preview_id", rec.Token),
		slog.String("history_id", historyID.String()),
		slog.String("error", msg),
	)

	return &domain.ExecutionFailedError{HistoryID: historyID, Cause: cause}
}

// diffSnapshot compares the preview snapshot with the current matches.
// targets keeps snapshot order and holds only rows present in both sets.
func diffSnapshot(snapshot, current []uuid.UUID) (targets, missing, added []uuid.UUID) {
	cur := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	snap := make(map[uuid.UUID]struct{}, len(snapshot))
	for _, id := range snapshot {
		snap[id] = struct{}{}
		if _, ok := cur[id]; ok {
			targets = append(targets, id)
		} else {
			missing = append(missing, id)
		}
	}
	for _, id := range current {
		if _, ok := snap[id]; !ok {
			added = append(added, id)
		}
	}
	return targets, missing, added
}

func (s *Service) isStale(missing, added []uuid.UUID) bool {
	drift := len(missing)
	if s.cfg.StrictSnapshot {
		drift += len(added)
	}
	return drift > s.cfg.StaleTolerance
}

func (s *Service) subBatchSize() int {
	if s.cfg.SubBatchSize <= 0 {
		return DefaultConfig().SubBatchSize
	}
	return s.cfg.SubBatchSize
}

// checkTransitions rejects the whole batch if any course may not move to the
// target status.
func (s *Service) checkTransitions(ctx context.Context, ids []uuid.UUID, action domain.Action) error {
	if len(ids) == 0 || action.Value == nil {
		return nil
	}
	to := domain.CourseStatus(*action.Value)

	courses, err := s.courses.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load courses: %w", err)
	}
	byID := make(map[uuid.UUID]domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		if !c.Status.CanTransitionTo(to) {
			return &domain.TransitionError{CourseID: c.ID, From: c.Status, To: to}
		}
	}
	return nil
}

func courseAuditRecords(userID uuid.UUID, token string, historyID uuid.UUID, changes []domain.CourseChange) []domain.AuditRecord {
	records := make([]domain.AuditRecord, 0, len(changes))
	for _, ch := range changes {
		courseID := ch.CourseID
		records = append(records, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeCourse,
			EntityID:   &courseID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				string(ch.Field): map[string]any{"old": ch.OldValue, "new": ch.NewValue},
				"bulk": map[string]any{
					"preview_id": token,
					"history_id": historyID.String(),
				},
			},
		})
	}
	return records
}
