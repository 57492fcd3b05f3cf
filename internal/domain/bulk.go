package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxCriteriaIDs bounds the explicit ID list of a criteria object.
const MaxCriteriaIDs = 1000

// Criteria selects a set of courses. Every non-nil predicate is ANDed.
type Criteria struct {
	Status    *CourseStatus   `json:"status,omitempty"`
	Priority  *CoursePriority `json:"priority,omitempty"`
	OwnerID   *uuid.UUID      `json:"ownerId,omitempty"`
	IDs       []uuid.UUID     `json:"ids,omitempty"`
	DateRange *DateRange      `json:"dateRange,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (c Criteria) IsEmpty() bool {
	return c.Status == nil && c.Priority == nil && c.OwnerID == nil &&
		len(c.IDs) == 0 && c.DateRange == nil
}

// DateRange restricts a course timestamp to [From, To]. Either bound may be open.
type DateRange struct {
	Field DateField  `json:"field"`
	From  *time.Time `json:"from,omitempty"`
	To    *time.Time `json:"to,omitempty"`
}

// Action is the mutation a bulk operation applies to every selected course.
// Value is nil only for clearing the assignee.
type Action struct {
	Field BulkField `json:"field"`
	Value *string   `json:"value"`
}

// PreviewRecord is a computed, not yet applied, bulk operation.
type PreviewRecord struct {
	Token      string
	Criteria   Criteria
	Action     Action
	MatchedIDs []uuid.UUID
	TemplateID *uuid.UUID
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
	ExpiresAt  time.Time
	State      PreviewState
	UpdatedAt  time.Time
}

// IsExpired reports whether the preview's TTL has elapsed at now.
func (p *PreviewRecord) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// MatchedCount is the size of the snapshot taken at preview time.
func (p *PreviewRecord) MatchedCount() int {
	return len(p.MatchedIDs)
}

// SampleDiff shows the effect of an action on one course.
type SampleDiff struct {
	CourseID uuid.UUID `json:"courseId"`
	Title    string    `json:"title"`
	Field    BulkField `json:"field"`
	From     *string   `json:"from"`
	To       *string   `json:"to"`
}

// HistoryRecord is an immutable audit entry for a finished bulk operation.
type HistoryRecord struct {
	ID            uuid.UUID
	PreviewToken  string
	TemplateID    *uuid.UUID
	Action        Action
	Criteria      Criteria
	MatchedCount  int
	AffectedCount int
	PerformedBy   uuid.UUID
	PerformedAt   time.Time
	Outcome       BulkOutcome
	ErrorMessage  *string
}

// HistoryFilter narrows a history listing.
type HistoryFilter struct {
	PerformedBy *uuid.UUID
	From        *time.Time
	To          *time.Time
	Outcome     *BulkOutcome
	Limit       int
	Offset      int
}

// BulkTemplate is a named, reusable criteria and action pair.
type BulkTemplate struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Criteria    Criteria
	Action      Action
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BulkTemplateUpdateParams holds optional template changes; nil leaves a field as is.
type BulkTemplateUpdateParams struct {
	Name        *string
	Description *string
	Criteria    *Criteria
	Action      *Action
}
