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

// Preview validates the input, resolves the matching courses and stores a
// PENDING preview. No course is modified.
func (s *Service) Preview(ctx context.Context, input BulkInput) (PreviewResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return PreviewResult{}, domain.ErrUnauthorized
	}

	cr, action, err := input.Validate()
	if err != nil {
		return PreviewResult{}, err
	}

	return s.preview(ctx, userID, cr, action, nil)
}

func (s *Service) preview(
	ctx context.Context,
	userID uuid.UUID,
	cr domain.Criteria,
	action domain.Action,
	templateID *uuid.UUID,
) (PreviewResult, error) {
	if err := s.checkAssignee(ctx, action); err != nil {
		return PreviewResult{}, err
	}

	ids, err := s.courses.MatchIDs(ctx, cr, domain.MatchOptions{Limit: s.cfg.MaxMatched + 1})
	if err != nil {
		return PreviewResult{}, fmt.Errorf("match courses: %w", err)
	}
	if len(ids) > s.cfg.MaxMatched {
		return PreviewResult{}, domain.NewValidationError("criteria",
			fmt.Sprintf("matches more than %d courses", s.cfg.MaxMatched))
	}

	samples, err := s.sampleDiffs(ctx, ids, action)
	if err != nil {
		return PreviewResult{}, err
	}

	token, err := s.newToken()
	if err != nil {
		return PreviewResult{}, fmt.Errorf("generate preview token: %w", err)
	}

	now := s.now()
	rec := &domain.PreviewRecord{
		Token:      token,
		Criteria:   cr,
		Action:     action,
		MatchedIDs: ids,
		TemplateID: templateID,
		CreatedBy:  userID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.PreviewTTL),
		State:      domain.PreviewStatePending,
		UpdatedAt:  now,
	}
	if err := s.previews.Create(ctx, rec); err != nil {
		return PreviewResult{}, fmt.Errorf("store preview: %w", err)
	}

	s.metrics.PreviewCreated()
	s.log.InfoContext(ctx, "bulk preview created",
		slog.String("user_id", userID.String()),
		slog.String("preview_id", token),
		slog.String("field", action.Field.String()),
		slog.Int("matched", len(ids)),
	)

	return PreviewResult{
		Token:        token,
		MatchedCount: len(ids),
		SampleDiffs:  samples,
		ExpiresAt:    rec.ExpiresAt,
		TemplateID:   templateID,
	}, nil
}

// checkAssignee rejects an assignee action pointing at an unknown user.
func (s *Service) checkAssignee(ctx context.Context, action domain.Action) error {
	if action.Field != domain.BulkFieldAssignee || action.Value == nil {
		return nil
	}
	id, err := uuid.Parse(*action.Value)
	if err != nil {
		return domain.NewValidationError("action.value", "must be a user UUID or null")
	}
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check assignee: %w", err)
	}
	if !exists {
		return domain.NewValidationError("action.value", "user does not exist")
	}
	return nil
}

// sampleDiffs builds diffs for the first SampleSize matched courses, in match order.
func (s *Service) sampleDiffs(ctx context.Context, ids []uuid.UUID, action domain.Action) ([]domain.SampleDiff, error) {
	n := min(len(ids), s.cfg.SampleSize)
	if n <= 0 {
		return []domain.SampleDiff{}, nil
	}

	courses, err := s.courses.GetByIDs(ctx, ids[:n])
	if err != nil {
		return nil, fmt.Errorf("load sample courses: %w", err)
	}
	byID := make(map[uuid.UUID]domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	diffs := make([]domain.SampleDiff, 0, n)
	for _, id := range ids[:n] {
		c, ok := byID[id]
		if !ok {
			// Deleted between match and load.
			continue
		}
		diffs = append(diffs, domain.SampleDiff{
			CourseID: c.ID,
			Title:    c.Title,
			Field:    action.Field,
			From:     c.FieldValue(action.Field),
			To:       action.Value,
		})
	}
	return diffs, nil
}

// GetPreview returns the state of a preview. A PENDING preview past its
// expiry is marked EXPIRED on read.
func (s *Service) GetPreview(ctx context.Context, token string) (PreviewStatus, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return PreviewStatus{}, domain.ErrUnauthorized
	}

	rec, err := s.previews.Get(ctx, token)
	if err != nil {
		return PreviewStatus{}, fmt.Errorf("get preview: %w", err)
	}

	now := s.now()
	if rec.State == domain.PreviewStatePending && rec.IsExpired(now) {
		if err := s.markExpired(ctx, token, now); err != nil {
			return PreviewStatus{}, err
		}
		// Re-read: another request may have won the transition.
		if rec, err = s.previews.Get(ctx, token); err != nil {
			return PreviewStatus{}, fmt.Errorf("get preview: %w", err)
		}
	}

	return statusOf(rec), nil
}

// markExpired moves a lapsed PENDING preview to EXPIRED. Losing the race to
// another transition is not an error.
func (s *Service) markExpired(ctx context.Context, token string, now time.Time) error {
	err := s.previews.Transition(ctx, token, domain.PreviewStatePending, domain.PreviewStateExpired, now)
	switch {
	case err == nil:
		s.metrics.PreviewsExpired(1)
		return nil
	case errors.Is(err, domain.ErrConflict):
		return nil
	default:
		return fmt.Errorf("expire preview: %w", err)
	}
}
