package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a designer user.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return SeedUserWithRole(t, pool, domain.UserRoleDesigner)
}

// SeedUserWithRole creates a user with the given role.
func SeedUserWithRole(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "user-" + suffix + "@example.com",
		Name:      "Test User " + suffix,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// CourseOption customizes a seeded course.
type CourseOption func(c *domain.Course)

// WithStatus sets the seeded course's status.
func WithStatus(s domain.CourseStatus) CourseOption {
	return func(c *domain.Course) { c.Status = s }
}

// WithPriority sets the seeded course's priority.
func WithPriority(p domain.CoursePriority) CourseOption {
	return func(c *domain.Course) { c.Priority = p }
}

// WithAssignee sets the seeded course's assignee.
func WithAssignee(id uuid.UUID) CourseOption {
	return func(c *domain.Course) { c.AssigneeID = &id }
}

// WithDueDate sets the seeded course's due date.
func WithDueDate(d time.Time) CourseOption {
	return func(c *domain.Course) {
		d = d.UTC().Truncate(time.Microsecond)
		c.DueDate = &d
	}
}

// WithCreatedAt sets the seeded course's creation time.
func WithCreatedAt(ts time.Time) CourseOption {
	return func(c *domain.Course) { c.CreatedAt = ts.UTC().Truncate(time.Microsecond) }
}

// WithTitle sets the seeded course's title.
func WithTitle(title string) CourseOption {
	return func(c *domain.Course) { c.Title = title }
}

// SeedCourse creates a course owned by ownerID. Defaults: pre_development,
// medium priority, no assignee.
func SeedCourse(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, opts ...CourseOption) domain.Course {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	course := domain.Course{
		ID:        uuid.New(),
		Title:     "Course " + uniqueSuffix(),
		Status:    domain.CourseStatusPreDevelopment,
		Priority:  domain.CoursePriorityMedium,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&course)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO courses (id, title, status, priority, owner_id, assignee_id, due_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		course.ID, course.Title, string(course.Status), string(course.Priority), course.OwnerID,
		course.AssigneeID, course.DueDate, course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCourse insert: %v", err)
	}

	return course
}

// SeedCourses creates n courses owned by ownerID with the same options.
func SeedCourses(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, n int, opts ...CourseOption) []domain.Course {
	t.Helper()

	courses := make([]domain.Course, n)
	for i := range courses {
		courses[i] = SeedCourse(t, pool, ownerID, opts...)
	}
	return courses
}

// CourseStatusOf reads a course's current status directly.
func CourseStatusOf(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) domain.CourseStatus {
	t.Helper()

	var status string
	if err := pool.QueryRow(context.Background(), `SELECT status FROM courses WHERE id = $1`, id).Scan(&status); err != nil {
		t.Fatalf("testhelper: CourseStatusOf: %v", err)
	}
	return domain.CourseStatus(status)
}
