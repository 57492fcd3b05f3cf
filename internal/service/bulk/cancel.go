package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/pkg/ctxutil"
)

// Cancel withdraws a PENDING preview. Only its creator or an admin may
// cancel it. Cancelling a terminal preview is a no-op that reports the
// existing state; a lapsed preview is marked EXPIRED.
func (s *Service) Cancel(ctx context.Context, token string) (CancelResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return CancelResult{}, domain.ErrUnauthorized
	}

	rec, err := s.previews.Get(ctx, token)
	if err != nil {
		return CancelResult{}, fmt.Errorf("get preview: %w", err)
	}
	if rec.CreatedBy != userID && !ctxutil.IsAdminCtx(ctx) {
		return CancelResult{}, domain.ErrForbidden
	}

	if rec.State.IsTerminal() {
		s.metrics.Cancellation(cancelResultAlreadyTerminal)
		return CancelResult{Token: token, State: rec.State, AlreadyTerminal: true}, nil
	}

	now := s.now()
	if rec.IsExpired(now) {
		if err := s.markExpired(ctx, token, now); err != nil {
			return CancelResult{}, err
		}
		s.metrics.Cancellation(cancelResultExpired)
		return s.currentState(ctx, token)
	}

	transitioned := false
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.previews.Transition(txCtx, token, domain.PreviewStatePending, domain.PreviewStateCancelled, now); err != nil {
			return fmt.Errorf("cancel preview: %w", err)
		}
		transitioned = true
		if err := s.history.Record(txCtx, domain.HistoryRecord{
			ID:           uuid.New(),
			PreviewToken: token,
			TemplateID:   rec.TemplateID,
			Action:       rec.Action,
			Criteria:     rec.Criteria,
			MatchedCount: rec.MatchedCount(),
			PerformedBy:  userID,
			PerformedAt:  now,
			Outcome:      domain.BulkOutcomeCancelled,
		}); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return nil
	})
	if err != nil && transitioned {
		s.revertCancel(ctx, token)
	}
	if errors.Is(err, domain.ErrConflict) && !transitioned {
		// Executed or cancelled concurrently.
		s.metrics.Cancellation(cancelResultAlreadyTerminal)
		return s.currentState(ctx, token)
	}
	if err != nil {
		return CancelResult{}, err
	}

	s.metrics.Cancellation(cancelResultCancelled)
	s.log.InfoContext(ctx, "bulk preview cancelled",
		slog.String("user_id", userID.String()),
		slog.String("preview_id", token),
	)

	return CancelResult{Token: token, State: domain.PreviewStateCancelled}, nil
}

// revertCancel puts a cancelled preview back to PENDING after the history
// write failed. Stores that join the transaction were already rolled back.
func (s *Service) revertCancel(ctx context.Context, token string) {
	if s.storeIsTransactional() {
		return
	}
	ctx = context.WithoutCancel(ctx)
	err := s.previews.Transition(ctx, token, domain.PreviewStateCancelled, domain.PreviewStatePending, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "revert preview cancel",
			slog.String("preview_id", token),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) currentState(ctx context.Context, token string) (CancelResult, error) {
	rec, err := s.previews.Get(ctx, token)
	if err != nil {
		return CancelResult{}, fmt.Errorf("get preview: %w", err)
	}
	return CancelResult{Token: token, State: rec.State, AlreadyTerminal: true}, nil
}
