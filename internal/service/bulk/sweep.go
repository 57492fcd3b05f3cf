package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SweepPreviews marks lapsed PENDING previews EXPIRED and purges terminal
// previews older than the retention window.
func (s *Service) SweepPreviews(ctx context.Context) (SweepResult, error) {
	now := s.now()

	expired, err := s.previews.ExpireBefore(ctx, now)
	if err != nil {
		return SweepResult{}, fmt.Errorf("expire previews: %w", err)
	}
	if expired > 0 {
		s.metrics.PreviewsExpired(expired)
	}

	purged, err := s.previews.PurgeBefore(ctx, now.Add(-s.cfg.PreviewRetention))
	if err != nil {
		return SweepResult{Expired: expired}, fmt.Errorf("purge previews: %w", err)
	}

	if expired > 0 || purged > 0 {
		s.log.InfoContext(ctx, "bulk previews swept",
			slog.Int("expired", expired),
			slog.Int("purged", purged),
		)
	}

	return SweepResult{Expired: expired, Purged: purged}, nil
}

// RunSweeper calls SweepPreviews every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.SweepPreviews(ctx); err != nil && ctx.Err() == nil {
				s.log.ErrorContext(ctx, "sweep previews", slog.String("error", err.Error()))
			}
		}
	}
}
