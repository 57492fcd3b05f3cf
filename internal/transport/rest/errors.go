package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/pkg/ctxutil"
)

// maxBodyBytes caps JSON request bodies. A criteria object with the maximum
// number of IDs stays well below it.
const maxBodyBytes = 1 << 20

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error     string              `json:"error"`
	Code      string              `json:"code"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
	HistoryID *uuid.UUID          `json:"historyId,omitempty"`
	Missing   *int                `json:"missing,omitempty"`
	Added     *int                `json:"added,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// decodeJSON reads a JSON request body into dst. Decoding failures are
// reported as validation errors on the "body" field.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON body")
	}
	return nil
}

// handleError maps domain errors to HTTP responses. Unexpected errors are
// logged and reported as 500 without details.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var failed *domain.ExecutionFailedError
	if errors.As(err, &failed) {
		resp := errorResponse{Code: "EXECUTION_FAILED", Error: "bulk execution failed"}
		if failed.HistoryID != uuid.Nil {
			resp.HistoryID = &failed.HistoryID
		}
		status := http.StatusInternalServerError
		switch {
		case errors.Is(failed.Cause, domain.ErrConflict),
			errors.Is(failed.Cause, domain.ErrValidation),
			errors.Is(failed.Cause, domain.ErrNotFound):
			status = http.StatusConflict
			resp.Error = failed.Cause.Error()
		default:
			log.ErrorContext(r.Context(), "bulk execution failed",
				slog.String("error", err.Error()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			)
		}
		writeJSON(w, status, resp)
		return
	}

	var stale *domain.StalePreviewError
	if errors.As(err, &stale) {
		missing, added := len(stale.Missing), len(stale.Added)
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:   "preview is stale; request a new preview",
			Code:    "STALE_PREVIEW",
			Missing: &missing,
			Added:   &added,
		})
		return
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Code:   "VALIDATION",
			Fields: ve.Errors,
		})
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, domain.ErrGone):
		writeError(w, http.StatusGone, "GONE", "preview has expired")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "ALREADY_EXISTS", "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
