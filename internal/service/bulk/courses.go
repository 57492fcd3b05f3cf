package bulk

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

const (
	defaultCourseListLimit = 50

	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// CoursePage is one page of the course listing.
type CoursePage struct {
	Courses []domain.Course
	Total   int
	Limit   int
	Offset  int
}

// ListCourses returns courses matching the optional filters. The filters
// share the predicate builder used to resolve bulk criteria, so a listing
// shows exactly what a preview with the same predicates would select.
func (s *Service) ListCourses(ctx context.Context, input CourseListInput) (CoursePage, error) {
	filter, err := input.Validate()
	if err != nil {
		return CoursePage{}, err
	}
	if filter.Limit == 0 {
		filter.Limit = defaultCourseListLimit
	}

	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		return CoursePage{}, fmt.Errorf("list courses: %w", err)
	}
	if courses == nil {
		courses = []domain.Course{}
	}

	return CoursePage{
		Courses: courses,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// CourseActivity returns the newest activity log entries for one course,
// bulk changes included.
func (s *Service) CourseActivity(ctx context.Context, courseID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	switch {
	case limit < 0 || limit > maxActivityLimit:
		return nil, domain.NewValidationError("limit", fmt.Sprintf("must be between 0 and %d", maxActivityLimit))
	case limit == 0:
		limit = defaultActivityLimit
	}

	found, err := s.courses.GetByIDs(ctx, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("course %s: %w", courseID, domain.ErrNotFound)
	}

	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeCourse, courseID, limit)
	if err != nil {
		return nil, fmt.Errorf("course activity: %w", err)
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}
	return records, nil
}
