package bulk

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/pkg/ctxutil"
)

const defaultHistoryLimit = 50

// ListHistory returns one page of bulk history, newest first.
func (s *Service) ListHistory(ctx context.Context, input HistoryInput) (HistoryPage, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return HistoryPage{}, domain.ErrUnauthorized
	}

	filter, err := input.Validate()
	if err != nil {
		return HistoryPage{}, err
	}
	if filter.Limit == 0 {
		filter.Limit = defaultHistoryLimit
	}

	records, total, err := s.history.List(ctx, filter)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("list history: %w", err)
	}

	return HistoryPage{
		Records: records,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// GetHistory returns a single history entry.
func (s *Service) GetHistory(ctx context.Context, id uuid.UUID) (domain.HistoryRecord, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.HistoryRecord{}, domain.ErrUnauthorized
	}

	rec, err := s.history.GetByID(ctx, id)
	if err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("get history: %w", err)
	}
	return *rec, nil
}
