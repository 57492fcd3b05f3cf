package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

type feedService interface {
	Notifications(ctx context.Context, limit int) ([]domain.Notification, error)
	Activity(ctx context.Context, limit, offset int) ([]domain.AuditRecord, error)
}

// FeedHandler serves the caller's own notifications and activity. Any
// authenticated role may use it.
type FeedHandler struct {
	svc feedService
	log *slog.Logger
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(svc feedService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{svc: svc, log: logger.With("handler", "feed")}
}

type notificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	Kind      string         `json:"kind"`
	Title     string         `json:"title"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

type userActivityResponse struct {
	ID         uuid.UUID          `json:"id"`
	EntityType domain.EntityType  `json:"entityType"`
	EntityID   *uuid.UUID         `json:"entityId"`
	Action     domain.AuditAction `json:"action"`
	Changes    map[string]any     `json:"changes"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// Notifications handles GET /me/notifications?limit=.
func (h *FeedHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	limit, _, err := parsePaging(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	list, err := h.svc.Notifications(r.Context(), limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		payload := n.Payload
		if payload == nil {
			payload = map[string]any{}
		}
		out = append(out, notificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Title:     n.Title,
			Payload:   payload,
			CreatedAt: n.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Activity handles GET /me/activity?limit=&offset=.
func (h *FeedHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePaging(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	records, err := h.svc.Activity(r.Context(), limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]userActivityResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, userActivityResponse{
			ID:         rec.ID,
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			Action:     rec.Action,
			Changes:    rec.Changes,
			CreatedAt:  rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
