// Package feed serves the signed-in user's own notifications and activity.
package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/pkg/ctxutil"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type notificationRepo interface {
	ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

type activityRepo interface {
	GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

// Service reads per-user feeds.
type Service struct {
	log           *slog.Logger
	notifications notificationRepo
	activity      activityRepo
}

// NewService creates a feed Service.
func NewService(logger *slog.Logger, notifications notificationRepo, activity activityRepo) *Service {
	return &Service{
		log:           logger.With("service", "feed"),
		notifications: notifications,
		activity:      activity,
	}
}

// Notifications returns the caller's unread notifications, newest first.
func (s *Service) Notifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	out, err := s.notifications.ListUnread(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if out == nil {
		out = []domain.Notification{}
	}
	return out, nil
}

// Activity returns the activity log entries written by the caller.
func (s *Service) Activity(ctx context.Context, limit, offset int) ([]domain.AuditRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must be >= 0")
	}

	out, err := s.activity.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	if out == nil {
		out = []domain.AuditRecord{}
	}
	return out, nil
}

func normalizeLimit(limit int) (int, error) {
	switch {
	case limit < 0 || limit > maxLimit:
		return 0, domain.NewValidationError("limit", fmt.Sprintf("must be between 0 and %d", maxLimit))
	case limit == 0:
		return defaultLimit, nil
	}
	return limit, nil
}
