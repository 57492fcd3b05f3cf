package domain

import (
	"time"

	"github.com/google/uuid"
)

// Course is a training course moving through the production workflow.
type Course struct {
	ID         uuid.UUID
	Title      string
	Status     CourseStatus
	Priority   CoursePriority
	OwnerID    uuid.UUID
	AssigneeID *uuid.UUID
	DueDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FieldValue returns the current value of a bulk-editable field in its
// textual form. A nil result means the field is unset.
func (c Course) FieldValue(f BulkField) *string {
	var v string
	switch f {
	case BulkFieldStatus:
		v = string(c.Status)
	case BulkFieldPriority:
		v = string(c.Priority)
	case BulkFieldAssignee:
		if c.AssigneeID == nil {
			return nil
		}
		v = c.AssigneeID.String()
	default:
		return nil
	}
	return &v
}

// CourseChange is one row changed by a bulk update.
type CourseChange struct {
	CourseID uuid.UUID
	OwnerID  uuid.UUID
	Field    BulkField
	OldValue *string
	NewValue *string
}

// CourseListFilter parameterizes the course listing. It reuses Criteria so
// the listing and bulk selection cannot drift apart.
type CourseListFilter struct {
	Criteria Criteria
	Limit    int
	Offset   int
}

// MatchOptions controls how matching courses are selected for a bulk operation.
type MatchOptions struct {
	// Limit caps the number of returned IDs. Zero means no cap.
	Limit int
	// ForUpdate locks the matched rows until the surrounding transaction ends.
	ForUpdate bool
}
