package bulk

import (
	"time"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// ValidationResult is returned by Validate for well-formed input.
type ValidationResult struct {
	Criteria domain.Criteria
	Action   domain.Action
}

// PreviewResult describes a freshly computed preview.
type PreviewResult struct {
	Token        string
	MatchedCount int
	SampleDiffs  []domain.SampleDiff
	ExpiresAt    time.Time
	TemplateID   *uuid.UUID
}

// PreviewStatus is the externally visible state of a preview.
type PreviewStatus struct {
	Token        string
	State        domain.PreviewState
	MatchedCount int
	Criteria     domain.Criteria
	Action       domain.Action
	CreatedBy    uuid.UUID
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// ExecutionResult describes a successful execution.
type ExecutionResult struct {
	HistoryID     uuid.UUID
	MatchedCount  int
	AffectedCount int
	// Skipped counts snapshot rows that no longer matched and were left untouched.
	Skipped int
	Outcome domain.BulkOutcome
}

// CancelResult describes the state of a preview after a cancel request.
type CancelResult struct {
	Token           string
	State           domain.PreviewState
	AlreadyTerminal bool
}

// HistoryPage is one page of bulk history.
type HistoryPage struct {
	Records []domain.HistoryRecord
	Total   int
	Limit   int
	Offset  int
}

// SweepResult reports what one preview sweep did.
type SweepResult struct {
	Expired int
	Purged  int
}

func statusOf(rec *domain.PreviewRecord) PreviewStatus {
	return PreviewStatus{
		Token:        rec.Token,
		State:        rec.State,
		MatchedCount: rec.MatchedCount(),
		Criteria:     rec.Criteria,
		Action:       rec.Action,
		CreatedBy:    rec.CreatedBy,
		CreatedAt:    rec.CreatedAt,
		ExpiresAt:    rec.ExpiresAt,
	}
}
