package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/internal/service/bulk"
)

type courseLister interface {
	ListCourses(ctx context.Context, input bulk.CourseListInput) (bulk.CoursePage, error)
	CourseActivity(ctx context.Context, courseID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

// CourseHandler serves the read-only course endpoints.
type CourseHandler struct {
	svc courseLister
	log *slog.Logger
}

// NewCourseHandler creates a CourseHandler.
func NewCourseHandler(svc courseLister, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{svc: svc, log: logger.With("handler", "course")}
}

type courseResponse struct {
	ID         uuid.UUID             `json:"id"`
	Title      string                `json:"title"`
	Status     domain.CourseStatus   `json:"status"`
	Priority   domain.CoursePriority `json:"priority"`
	OwnerID    uuid.UUID             `json:"ownerId"`
	AssigneeID *uuid.UUID            `json:"assigneeId"`
	DueDate    *time.Time            `json:"dueDate"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

type courseListResponse struct {
	Items  []courseResponse `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type activityResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"userId"`
	Action    domain.AuditAction `json:"action"`
	Changes   map[string]any     `json:"changes"`
	CreatedAt time.Time          `json:"createdAt"`
}

// List handles GET /courses?status=&priority=&ownerId=&dateField=&from=&to=&limit=&offset=.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePaging(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	page, err := h.svc.ListCourses(r.Context(), bulk.CourseListInput{
		Status:    queryParam(r, "status"),
		Priority:  queryParam(r, "priority"),
		OwnerID:   queryParam(r, "ownerId"),
		DateField: queryParam(r, "dateField"),
		From:      queryParam(r, "from"),
		To:        queryParam(r, "to"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]courseResponse, 0, len(page.Courses))
	for _, c := range page.Courses {
		items = append(items, courseResponse{
			ID:         c.ID,
			Title:      c.Title,
			Status:     c.Status,
			Priority:   c.Priority,
			OwnerID:    c.OwnerID,
			AssigneeID: c.AssigneeID,
			DueDate:    c.DueDate,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, courseListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// Activity handles GET /courses/{id}/activity?limit=.
func (h *CourseHandler) Activity(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var limit int
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			handleError(w, r, h.log, domain.NewValidationError("limit", "must be an integer"))
			return
		}
	}

	records, err := h.svc.CourseActivity(r.Context(), id, limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]activityResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, activityResponse{
			ID:        rec.ID,
			UserID:    rec.UserID,
			Action:    rec.Action,
			Changes:   rec.Changes,
			CreatedAt: rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
