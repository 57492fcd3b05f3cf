package bulk

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

const (
	maxTemplateName        = 100
	maxTemplateDescription = 500
	maxHistoryLimit        = 200
	maxCourseListLimit     = 200
)

// RawDateRange is an unvalidated date-range predicate.
type RawDateRange struct {
	Field string  `json:"field"`
	From  *string `json:"from"`
	To    *string `json:"to"`
}

// RawCriteria is a selection criteria object as received from a client.
type RawCriteria struct {
	Status    *string       `json:"status"`
	Priority  *string       `json:"priority"`
	OwnerID   *string       `json:"ownerId"`
	IDs       []string      `json:"ids"`
	DateRange *RawDateRange `json:"dateRange"`
}

// RawAction is an action payload as received from a client.
type RawAction struct {
	Field string  `json:"field"`
	Value *string `json:"value"`
}

// BulkInput is a criteria and action pair submitted for validation or preview.
type BulkInput struct {
	Criteria RawCriteria `json:"criteria"`
	Action   RawAction   `json:"action"`
}

// Validate checks every field, collects all errors and returns the
// normalized criteria and action.
func (i BulkInput) Validate() (domain.Criteria, domain.Action, error) {
	var errs []domain.FieldError

	cr, cErrs := parseCriteria(i.Criteria, "criteria")
	errs = append(errs, cErrs...)

	action, aErrs := parseAction(i.Action, "action")
	errs = append(errs, aErrs...)

	if len(errs) > 0 {
		return domain.Criteria{}, domain.Action{}, &domain.ValidationError{Errors: errs}
	}
	return cr, action, nil
}

func parseCriteria(raw RawCriteria, prefix string) (domain.Criteria, []domain.FieldError) {
	cr, errs, given := parsePredicates(raw, prefix)
	if !given {
		errs = append(errs, domain.FieldError{Field: prefix, Message: "at least one predicate is required"})
	}
	return cr, errs
}

// parsePredicates parses every predicate present in raw and reports whether
// any was given.
func parsePredicates(raw RawCriteria, prefix string) (domain.Criteria, []domain.FieldError, bool) {
	var (
		cr    domain.Criteria
		errs  []domain.FieldError
		given bool
	)

	if raw.Status != nil {
		given = true
		st := domain.CourseStatus(strings.TrimSpace(*raw.Status))
		if st.IsValid() {
			cr.Status = &st
		} else {
			errs = append(errs, domain.FieldError{Field: prefix + ".status", Message: fmt.Sprintf("unknown status %q", *raw.Status)})
		}
	}

	if raw.Priority != nil {
		given = true
		p := domain.CoursePriority(strings.TrimSpace(*raw.Priority))
		if p.IsValid() {
			cr.Priority = &p
		} else {
			errs = append(errs, domain.FieldError{Field: prefix + ".priority", Message: fmt.Sprintf("unknown priority %q", *raw.Priority)})
		}
	}

	if raw.OwnerID != nil {
		given = true
		id, err := uuid.Parse(strings.TrimSpace(*raw.OwnerID))
		if err == nil {
			cr.OwnerID = &id
		} else {
			errs = append(errs, domain.FieldError{Field: prefix + ".ownerId", Message: "must be a UUID"})
		}
	}

	if raw.IDs != nil {
		given = true
		ids, idErrs := parseIDs(raw.IDs, prefix+".ids")
		cr.IDs = ids
		errs = append(errs, idErrs...)
	}

	if raw.DateRange != nil {
		given = true
		dr, drErrs := parseDateRange(*raw.DateRange, prefix+".dateRange")
		if len(drErrs) == 0 {
			cr.DateRange = &dr
		}
		errs = append(errs, drErrs...)
	}

	return cr, errs, given
}

func parseIDs(raw []string, field string) ([]uuid.UUID, []domain.FieldError) {
	switch {
	case len(raw) == 0:
		return nil, []domain.FieldError{{Field: field, Message: "must contain at least one id"}}
	case len(raw) > domain.MaxCriteriaIDs:
		return nil, []domain.FieldError{{Field: field, Message: fmt.Sprintf("max %d ids", domain.MaxCriteriaIDs)}}
	}

	var errs []domain.FieldError
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("%s[%d]", field, i), Message: "must be a UUID"})
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, errs
}

func parseDateRange(raw RawDateRange, prefix string) (domain.DateRange, []domain.FieldError) {
	var (
		dr   domain.DateRange
		errs []domain.FieldError
	)

	dr.Field = domain.DateField(strings.TrimSpace(raw.Field))
	if !dr.Field.IsValid() {
		errs = append(errs, domain.FieldError{Field: prefix + ".field", Message: "must be one of created_at, due_date"})
	}

	if raw.From == nil && raw.To == nil {
		errs = append(errs, domain.FieldError{Field: prefix, Message: "from or to is required"})
	}
	if raw.From != nil {
		t, err := parseTime(*raw.From)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: prefix + ".from", Message: "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		} else {
			dr.From = &t
		}
	}
	if raw.To != nil {
		t, err := parseUpperBound(*raw.To)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: prefix + ".to", Message: "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		} else {
			dr.To = &t
		}
	}
	if dr.From != nil && dr.To != nil && dr.From.After(*dr.To) {
		errs = append(errs, domain.FieldError{Field: prefix, Message: "from must not be after to"})
	}

	return dr, errs
}

// parseTime accepts RFC 3339 timestamps and plain dates (midnight UTC).
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}

// endOfDay is the last instant Postgres can store before the next midnight.
const endOfDay = 24*time.Hour - time.Microsecond

// parseUpperBound parses an inclusive "to" bound. A plain date covers the
// whole day, so it resolves to the end of that day rather than its midnight.
func parseUpperBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(endOfDay), nil
}

func parseAction(raw RawAction, prefix string) (domain.Action, []domain.FieldError) {
	field := domain.BulkField(strings.TrimSpace(raw.Field))
	if field == "" {
		return domain.Action{}, []domain.FieldError{{Field: prefix + ".field", Message: "required"}}
	}
	if !field.IsValid() {
		return domain.Action{}, []domain.FieldError{{Field: prefix + ".field", Message: fmt.Sprintf("field %q is not bulk-editable", raw.Field)}}
	}

	action := domain.Action{Field: field}
	valueField := prefix + ".value"

	switch field {
	case domain.BulkFieldStatus:
		if raw.Value == nil {
			return action, []domain.FieldError{{Field: valueField, Message: "required"}}
		}
		st := domain.CourseStatus(strings.TrimSpace(*raw.Value))
		if !st.IsValid() {
			return action, []domain.FieldError{{Field: valueField, Message: fmt.Sprintf("unknown status %q", *raw.Value)}}
		}
		v := string(st)
		action.Value = &v

	case domain.BulkFieldPriority:
		if raw.Value == nil {
			return action, []domain.FieldError{{Field: valueField, Message: "required"}}
		}
		p := domain.CoursePriority(strings.TrimSpace(*raw.Value))
		if !p.IsValid() {
			return action, []domain.FieldError{{Field: valueField, Message: fmt.Sprintf("unknown priority %q", *raw.Value)}}
		}
		v := string(p)
		action.Value = &v

	case domain.BulkFieldAssignee:
		// null unassigns.
		if raw.Value == nil {
			return action, nil
		}
		id, err := uuid.Parse(strings.TrimSpace(*raw.Value))
		if err != nil {
			return action, []domain.FieldError{{Field: valueField, Message: "must be a user UUID or null"}}
		}
		v := id.String()
		action.Value = &v
	}

	return action, nil
}

// CreateTemplateInput holds the parameters for creating a bulk template.
type CreateTemplateInput struct {
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Criteria    RawCriteria `json:"criteria"`
	Action      RawAction   `json:"action"`
}

// Validate checks all fields and collects all errors.
func (i CreateTemplateInput) Validate() (domain.Criteria, domain.Action, error) {
	var errs []domain.FieldError

	errs = append(errs, validateTemplateName(i.Name)...)
	errs = append(errs, validateTemplateDescription(i.Description)...)

	cr, cErrs := parseCriteria(i.Criteria, "criteria")
	errs = append(errs, cErrs...)
	action, aErrs := parseAction(i.Action, "action")
	errs = append(errs, aErrs...)

	if len(errs) > 0 {
		return domain.Criteria{}, domain.Action{}, &domain.ValidationError{Errors: errs}
	}
	return cr, action, nil
}

// UpdateTemplateInput holds the parameters for updating a bulk template.
// Nil fields are left unchanged.
type UpdateTemplateInput struct {
	TemplateID  uuid.UUID    `json:"-"`
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Criteria    *RawCriteria `json:"criteria"`
	Action      *RawAction   `json:"action"`
}

// Validate checks all fields and converts them into update params.
func (i UpdateTemplateInput) Validate() (domain.BulkTemplateUpdateParams, error) {
	var (
		params domain.BulkTemplateUpdateParams
		errs   []domain.FieldError
	)

	if i.TemplateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "template_id", Message: "required"})
	}
	if i.Name == nil && i.Description == nil && i.Criteria == nil && i.Action == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = append(errs, validateTemplateName(*i.Name)...)
		name := strings.TrimSpace(*i.Name)
		params.Name = &name
	}
	if i.Description != nil {
		errs = append(errs, validateTemplateDescription(i.Description)...)
		desc := strings.TrimSpace(*i.Description)
		params.Description = &desc
	}
	if i.Criteria != nil {
		cr, cErrs := parseCriteria(*i.Criteria, "criteria")
		errs = append(errs, cErrs...)
		params.Criteria = &cr
	}
	if i.Action != nil {
		action, aErrs := parseAction(*i.Action, "action")
		errs = append(errs, aErrs...)
		params.Action = &action
	}

	if len(errs) > 0 {
		return domain.BulkTemplateUpdateParams{}, &domain.ValidationError{Errors: errs}
	}
	return params, nil
}

func validateTemplateName(raw string) []domain.FieldError {
	name := strings.TrimSpace(raw)
	if name == "" {
		return []domain.FieldError{{Field: "name", Message: "required"}}
	}
	if len([]rune(name)) > maxTemplateName {
		return []domain.FieldError{{Field: "name", Message: fmt.Sprintf("max %d characters", maxTemplateName)}}
	}
	return nil
}

func validateTemplateDescription(raw *string) []domain.FieldError {
	if raw != nil && len([]rune(strings.TrimSpace(*raw))) > maxTemplateDescription {
		return []domain.FieldError{{Field: "description", Message: fmt.Sprintf("max %d characters", maxTemplateDescription)}}
	}
	return nil
}

// HistoryInput holds history listing filters as received from a client.
type HistoryInput struct {
	Actor   *string
	From    *string
	To      *string
	Outcome *string
	Limit   int
	Offset  int
}

// Validate checks all fields and converts them into a history filter.
func (i HistoryInput) Validate() (domain.HistoryFilter, error) {
	var (
		f    domain.HistoryFilter
		errs []domain.FieldError
	)

	if i.Actor != nil {
		id, err := uuid.Parse(strings.TrimSpace(*i.Actor))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "actor", Message: "must be a UUID"})
		} else {
			f.PerformedBy = &id
		}
	}
	if i.From != nil {
		t, err := parseTime(*i.From)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "from", Message: "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		} else {
			f.From = &t
		}
	}
	if i.To != nil {
		t, err := parseUpperBound(*i.To)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "to", Message: "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		} else {
			f.To = &t
		}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must not be after to"})
	}
	if i.Outcome != nil {
		o := domain.BulkOutcome(strings.ToUpper(strings.TrimSpace(*i.Outcome)))
		if !o.IsValid() {
			errs = append(errs, domain.FieldError{Field: "outcome", Message: fmt.Sprintf("unknown outcome %q", *i.Outcome)})
		} else {
			f.Outcome = &o
		}
	}
	if i.Limit < 0 || i.Limit > maxHistoryLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxHistoryLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.HistoryFilter{}, &domain.ValidationError{Errors: errs}
	}
	f.Limit = i.Limit
	f.Offset = i.Offset
	return f, nil
}

// CourseListInput holds course listing filters as received from a client.
// Unlike bulk criteria, every predicate is optional.
type CourseListInput struct {
	Status    *string
	Priority  *string
	OwnerID   *string
	DateField *string
	From      *string
	To        *string
	Limit     int
	Offset    int
}

// Validate checks all fields and converts them into a course list filter.
func (i CourseListInput) Validate() (domain.CourseListFilter, error) {
	raw := RawCriteria{Status: i.Status, Priority: i.Priority, OwnerID: i.OwnerID}
	if i.DateField != nil || i.From != nil || i.To != nil {
		raw.DateRange = &RawDateRange{From: i.From, To: i.To}
		if i.DateField != nil {
			raw.DateRange.Field = *i.DateField
		} else {
			raw.DateRange.Field = string(domain.DateFieldCreatedAt)
		}
	}

	cr, errs, _ := parsePredicates(raw, "filter")
	if i.Limit < 0 || i.Limit > maxCourseListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxCourseListLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.CourseListFilter{}, &domain.ValidationError{Errors: errs}
	}
	return domain.CourseListFilter{Criteria: cr, Limit: i.Limit, Offset: i.Offset}, nil
}
