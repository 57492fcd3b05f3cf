package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/internal/service/bulk"
)

type bulkService interface {
	Validate(ctx context.Context, input bulk.BulkInput) (bulk.ValidationResult, error)
	Preview(ctx context.Context, input bulk.BulkInput) (bulk.PreviewResult, error)
	GetPreview(ctx context.Context, token string) (bulk.PreviewStatus, error)
	Execute(ctx context.Context, token string) (bulk.ExecutionResult, error)
	Cancel(ctx context.Context, token string) (bulk.CancelResult, error)
	ListHistory(ctx context.Context, input bulk.HistoryInput) (bulk.HistoryPage, error)
	GetHistory(ctx context.Context, id uuid.UUID) (domain.HistoryRecord, error)
	CreateTemplate(ctx context.Context, input bulk.CreateTemplateInput) (domain.BulkTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*domain.BulkTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.BulkTemplate, error)
	UpdateTemplate(ctx context.Context, input bulk.UpdateTemplateInput) (domain.BulkTemplate, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
	ApplyTemplate(ctx context.Context, id uuid.UUID) (bulk.PreviewResult, error)
}

// BulkHandler serves the /bulk REST endpoints.
type BulkHandler struct {
	svc bulkService
	log *slog.Logger
}

// NewBulkHandler creates a BulkHandler.
func NewBulkHandler(svc bulkService, logger *slog.Logger) *BulkHandler {
	return &BulkHandler{svc: svc, log: logger.With("handler", "bulk")}
}

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type validateResponse struct {
	Criteria domain.Criteria `json:"criteria"`
	Action   domain.Action   `json:"action"`
}

type previewResponse struct {
	PreviewID    string              `json:"previewId"`
	MatchedCount int                 `json:"matchedCount"`
	SampleDiffs  []domain.SampleDiff `json:"sampleDiffs"`
	ExpiresAt    time.Time           `json:"expiresAt"`
	TemplateID   *uuid.UUID          `json:"templateId,omitempty"`
}

type previewStatusResponse struct {
	PreviewID    string              `json:"previewId"`
	State        domain.PreviewState `json:"state"`
	MatchedCount int                 `json:"matchedCount"`
	Criteria     domain.Criteria     `json:"criteria"`
	Action       domain.Action       `json:"action"`
	CreatedBy    uuid.UUID           `json:"createdBy"`
	CreatedAt    time.Time           `json:"createdAt"`
	ExpiresAt    time.Time           `json:"expiresAt"`
}

type executeRequest struct {
	PreviewID string `json:"previewId"`
}

type executeResponse struct {
	PreviewID     string             `json:"previewId"`
	HistoryID     uuid.UUID          `json:"historyId"`
	MatchedCount  int                `json:"matchedCount"`
	AffectedCount int                `json:"affectedCount"`
	Skipped       int                `json:"skipped"`
	Outcome       domain.BulkOutcome `json:"outcome"`
}

type cancelResponse struct {
	PreviewID       string              `json:"previewId"`
	State           domain.PreviewState `json:"state"`
	AlreadyTerminal bool                `json:"alreadyTerminal"`
}

type historyItem struct {
	ID            uuid.UUID          `json:"id"`
	PreviewID     string             `json:"previewId"`
	TemplateID    *uuid.UUID         `json:"templateId,omitempty"`
	Criteria      domain.Criteria    `json:"criteria"`
	Action        domain.Action      `json:"action"`
	MatchedCount  int                `json:"matchedCount"`
	AffectedCount int                `json:"affectedCount"`
	PerformedBy   uuid.UUID          `json:"performedBy"`
	PerformedAt   time.Time          `json:"performedAt"`
	Outcome       domain.BulkOutcome `json:"outcome"`
	Error         *string            `json:"error,omitempty"`
}

type historyResponse struct {
	Items  []historyItem `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type templateResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Criteria    domain.Criteria `json:"criteria"`
	Action      domain.Action   `json:"action"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Validate handles POST /bulk/validate.
func (h *BulkHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var in bulk.BulkInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Validate(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{Criteria: res.Criteria, Action: res.Action})
}

// Preview handles POST /bulk/preview.
func (h *BulkHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var in bulk.BulkInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Preview(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPreviewResponse(res))
}

// GetPreview handles GET /bulk/preview/{previewId}.
func (h *BulkHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.GetPreview(r.Context(), chi.URLParam(r, "previewId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, previewStatusResponse{
		PreviewID:    st.Token,
		State:        st.State,
		MatchedCount: st.MatchedCount,
		Criteria:     st.Criteria,
		Action:       st.Action,
		CreatedBy:    st.CreatedBy,
		CreatedAt:    st.CreatedAt,
		ExpiresAt:    st.ExpiresAt,
	})
}

// Execute handles POST /bulk/execute.
func (h *BulkHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if req.PreviewID == "" {
		handleError(w, r, h.log, domain.NewValidationError("previewId", "required"))
		return
	}

	res, err := h.svc.Execute(r.Context(), req.PreviewID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{
		PreviewID:     req.PreviewID,
		HistoryID:     res.HistoryID,
		MatchedCount:  res.MatchedCount,
		AffectedCount: res.AffectedCount,
		Skipped:       res.Skipped,
		Outcome:       res.Outcome,
	})
}

// Cancel handles DELETE /bulk/cancel/{previewId}.
func (h *BulkHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "previewId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, cancelResponse{
		PreviewID:       res.Token,
		State:           res.State,
		AlreadyTerminal: res.AlreadyTerminal,
	})
}

// History handles GET /bulk/history?actor=&from=&to=&outcome=&limit=&offset=.
func (h *BulkHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePaging(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	page, err := h.svc.ListHistory(r.Context(), bulk.HistoryInput{
		Actor:   queryParam(r, "actor"),
		From:    queryParam(r, "from"),
		To:      queryParam(r, "to"),
		Outcome: queryParam(r, "outcome"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]historyItem, 0, len(page.Records))
	for _, rec := range page.Records {
		items = append(items, toHistoryItem(rec))
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetHistoryEntry handles GET /bulk/history/{id}.
func (h *BulkHandler) GetHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.GetHistory(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toHistoryItem(rec))
}

// ListTemplates handles GET /bulk/templates.
func (h *BulkHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	tpls, err := h.svc.ListTemplates(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]templateResponse, 0, len(tpls))
	for _, tpl := range tpls {
		out = append(out, toTemplateResponse(tpl))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateTemplate handles POST /bulk/templates.
func (h *BulkHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var in bulk.CreateTemplateInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	tpl, err := h.svc.CreateTemplate(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTemplateResponse(tpl))
}

// GetTemplate handles GET /bulk/templates/{id}.
func (h *BulkHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	tpl, err := h.svc.GetTemplate(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTemplateResponse(*tpl))
}

// UpdateTemplate handles PUT /bulk/templates/{id}.
func (h *BulkHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var in bulk.UpdateTemplateInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	in.TemplateID = id

	tpl, err := h.svc.UpdateTemplate(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTemplateResponse(tpl))
}

// DeleteTemplate handles DELETE /bulk/templates/{id}.
func (h *BulkHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteTemplate(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApplyTemplate handles POST /bulk/template/{templateId}. It produces a new
// preview from the stored criteria and action.
func (h *BulkHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "templateId")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.ApplyTemplate(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPreviewResponse(res))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func toPreviewResponse(res bulk.PreviewResult) previewResponse {
	diffs := res.SampleDiffs
	if diffs == nil {
		diffs = []domain.SampleDiff{}
	}
	return previewResponse{
		PreviewID:    res.Token,
		MatchedCount: res.MatchedCount,
		SampleDiffs:  diffs,
		ExpiresAt:    res.ExpiresAt,
		TemplateID:   res.TemplateID,
	}
}

func toHistoryItem(rec domain.HistoryRecord) historyItem {
	return historyItem{
		ID:            rec.ID,
		PreviewID:     rec.PreviewToken,
		TemplateID:    rec.TemplateID,
		Criteria:      rec.Criteria,
		Action:        rec.Action,
		MatchedCount:  rec.MatchedCount,
		AffectedCount: rec.AffectedCount,
		PerformedBy:   rec.PerformedBy,
		PerformedAt:   rec.PerformedAt,
		Outcome:       rec.Outcome,
		Error:         rec.ErrorMessage,
	}
}

func toTemplateResponse(tpl domain.BulkTemplate) templateResponse {
	return templateResponse{
		ID:          tpl.ID,
		Name:        tpl.Name,
		Description: tpl.Description,
		Criteria:    tpl.Criteria,
		Action:      tpl.Action,
		CreatedBy:   tpl.CreatedBy,
		CreatedAt:   tpl.CreatedAt,
		UpdatedAt:   tpl.UpdatedAt,
	}
}

// queryParam returns the named query parameter, or nil when it is absent or
// empty.
func queryParam(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func parsePaging(r *http.Request) (limit, offset int, err error) {
	var errs []domain.FieldError
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
		}
	}
	if len(errs) > 0 {
		return 0, 0, domain.NewValidationErrors(errs)
	}
	return limit, offset, nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}
