package domain

// CourseStatus is a workflow state of a course in production.
type CourseStatus string

const (
	CourseStatusPreDevelopment CourseStatus = "pre_development"
	CourseStatusOutline        CourseStatus = "outline"
	CourseStatusStoryboard     CourseStatus = "storyboard"
	CourseStatusDevelopment    CourseStatus = "development"
	CourseStatusInProgress     CourseStatus = "in_progress"
	CourseStatusReview         CourseStatus = "review"
	CourseStatusSMEReview      CourseStatus = "sme_review"
	CourseStatusFinalRevision  CourseStatus = "final_revision"
	CourseStatusOnHold         CourseStatus = "on_hold"
	CourseStatusCompleted      CourseStatus = "completed"
	CourseStatusCancelled      CourseStatus = "cancelled"
)

func (s CourseStatus) String() string { return string(s) }

func (s CourseStatus) IsValid() bool {
	switch s {
	case CourseStatusPreDevelopment, CourseStatusOutline, CourseStatusStoryboard,
		CourseStatusDevelopment, CourseStatusInProgress, CourseStatusReview,
		CourseStatusSMEReview, CourseStatusFinalRevision, CourseStatusOnHold,
		CourseStatusCompleted, CourseStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a course in status s may be moved to next.
// Cancelled courses are frozen; completed courses can only be reopened.
func (s CourseStatus) CanTransitionTo(next CourseStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case CourseStatusCancelled:
		return false
	case CourseStatusCompleted:
		return next == CourseStatusInProgress
	}
	return true
}

// CoursePriority ranks a course relative to others in the pipeline.
type CoursePriority string

const (
	CoursePriorityLow      CoursePriority = "low"
	CoursePriorityMedium   CoursePriority = "medium"
	CoursePriorityHigh     CoursePriority = "high"
	CoursePriorityCritical CoursePriority = "critical"
)

func (p CoursePriority) String() string { return string(p) }

func (p CoursePriority) IsValid() bool {
	switch p {
	case CoursePriorityLow, CoursePriorityMedium, CoursePriorityHigh, CoursePriorityCritical:
		return true
	}
	return false
}

// BulkField is a course field a bulk action may change.
type BulkField string

const (
	BulkFieldStatus   BulkField = "status"
	BulkFieldPriority BulkField = "priority"
	BulkFieldAssignee BulkField = "assignee"
)

func (f BulkField) String() string { return string(f) }

func (f BulkField) IsValid() bool {
	switch f {
	case BulkFieldStatus, BulkFieldPriority, BulkFieldAssignee:
		return true
	}
	return false
}

// DateField selects which course timestamp a date-range predicate applies to.
type DateField string

const (
	DateFieldCreatedAt DateField = "created_at"
	DateFieldDueDate   DateField = "due_date"
)

func (f DateField) String() string { return string(f) }

func (f DateField) IsValid() bool {
	switch f {
	case DateFieldCreatedAt, DateFieldDueDate:
		return true
	}
	return false
}

// PreviewState is the lifecycle state of a bulk preview.
type PreviewState string

const (
	PreviewStatePending   PreviewState = "PENDING"
	PreviewStateExecuted  PreviewState = "EXECUTED"
	PreviewStateCancelled PreviewState = "CANCELLED"
	PreviewStateExpired   PreviewState = "EXPIRED"
)

func (s PreviewState) String() string { return string(s) }

func (s PreviewState) IsValid() bool {
	switch s {
	case PreviewStatePending, PreviewStateExecuted, PreviewStateCancelled, PreviewStateExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s PreviewState) IsTerminal() bool {
	return s == PreviewStateExecuted || s == PreviewStateCancelled || s == PreviewStateExpired
}

// BulkOutcome is the final result recorded in bulk history.
// PARTIAL is accepted for storage compatibility; execution is atomic and
// never produces it.
type BulkOutcome string

const (
	BulkOutcomeSuccess   BulkOutcome = "SUCCESS"
	BulkOutcomePartial   BulkOutcome = "PARTIAL"
	BulkOutcomeFailed    BulkOutcome = "FAILED"
	BulkOutcomeCancelled BulkOutcome = "CANCELLED"
)

func (o BulkOutcome) String() string { return string(o) }

func (o BulkOutcome) IsValid() bool {
	switch o {
	case BulkOutcomeSuccess, BulkOutcomePartial, BulkOutcomeFailed, BulkOutcomeCancelled:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in activity logs).
type EntityType string

const (
	EntityTypeCourse       EntityType = "COURSE"
	EntityTypeBulkTemplate EntityType = "BULK_TEMPLATE"
	EntityTypeBulkPreview  EntityType = "BULK_PREVIEW"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeCourse, EntityTypeBulkTemplate, EntityTypeBulkPreview:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the activity log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleManager  UserRole = "manager"
	UserRoleDesigner UserRole = "designer"
	UserRoleReviewer UserRole = "reviewer"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleDesigner, UserRoleReviewer:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
