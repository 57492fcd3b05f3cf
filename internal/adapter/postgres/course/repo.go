// Package course implements the Course repository using PostgreSQL.
package course

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	postgres "github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

var courseColumns = []string{
	"c.id", "c.title", "c.status", "c.priority", "c.owner_id",
	"c.assignee_id", "c.due_date", "c.created_at", "c.updated_at",
}

// updatableColumns maps bulk fields to their column and SQL cast.
var updatableColumns = map[domain.BulkField]struct{ column, cast string }{
	domain.BulkFieldStatus:   {"status", "text"},
	domain.BulkFieldPriority: {"priority", "text"},
	domain.BulkFieldAssignee: {"assignee_id", "text::uuid"},
}

// Repo provides course persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new course repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns a page of courses matching the filter's criteria, newest
// first, together with the total number of matching courses.
func (r *Repo) List(ctx context.Context, filter domain.CourseListFilter) ([]domain.Course, int, error) {
	limit := normalizeLimit(filter.Limit)
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	listSQL, listArgs, err := whereCriteria(builder.Select(courseColumns...).From("courses c"), filter.Criteria).
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list courses query: %w", err)
	}

	countSQL, countArgs, err := whereCriteria(builder.Select("count(*)").From("courses c"), filter.Criteria).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count courses query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		rows  []courseRow
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	// A transaction owns a single connection.
	if postgres.InTx(ctx) {
		g.SetLimit(1)
	}
	g.Go(func() error {
		if err := pgxscan.Select(gctx, q, &rows, listSQL, listArgs...); err != nil {
			return fmt.Errorf("list courses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := q.QueryRow(gctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count courses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return toDomainCourses(rows), total, nil
}

// MatchIDs returns the IDs of courses matching the criteria ordered by
// creation time, then ID. With ForUpdate the rows stay locked for the rest of
// the transaction carried by ctx; the stable order keeps concurrent lockers
// from deadlocking.
func (r *Repo) MatchIDs(ctx context.Context, cr domain.Criteria, opts domain.MatchOptions) ([]uuid.UUID, error) {
	if cr.IsEmpty() {
		return nil, domain.NewValidationError("criteria", "at least one predicate is required")
	}

	qb := whereCriteria(builder.Select("c.id").From("courses c"), cr).OrderBy("c.created_at", "c.id")
	if opts.Limit > 0 {
		qb = qb.Limit(uint64(opts.Limit))
	}
	if opts.ForUpdate {
		qb = qb.Suffix("FOR UPDATE")
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build match courses query: %w", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &ids, sql, args...); err != nil {
		return nil, postgres.MapError(err, "course match", "")
	}

	return ids, nil
}

// GetByIDs returns the courses with the given IDs ordered by ID. Unknown IDs
// are silently skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}

	sql, args, err := builder.Select(courseColumns...).
		From("courses c").
		Where("c.id = ANY(?::uuid[])", ids).
		OrderBy("c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get courses query: %w", err)
	}

	var rows []courseRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get courses by ids: %w", err)
	}

	return toDomainCourses(rows), nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// ApplyChange sets one bulk-editable field on every course in ids and
// returns the per-row old and new values. It is expected to run inside a
// transaction that already holds the row locks.
func (r *Repo) ApplyChange(ctx context.Context, ids []uuid.UUID, action domain.Action, at time.Time) ([]domain.CourseChange, error) {
	if len(ids) == 0 {
		return []domain.CourseChange{}, nil
	}

	col, ok := updatableColumns[action.Field]
	if !ok {
		return nil, domain.NewValidationError("action.field", fmt.Sprintf("field %q is not bulk-editable", action.Field))
	}

	// col comes from a fixed allow-list.
	sql := fmt.Sprintf(`
WITH prev AS (
    SELECT id, %[1]s::text AS old_value
    FROM courses
    WHERE id = ANY($1::uuid[])
    FOR UPDATE
)
UPDATE courses c
SET %[1]s = $2::%[2]s, updated_at = $3
FROM prev
WHERE c.id = prev.id
RETURNING c.id AS course_id, c.owner_id, prev.old_value, c.%[1]s::text AS new_value`,
		col.column, col.cast)

	var rows []changeRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, ids, action.Value, at)
	if err != nil {
		return nil, postgres.MapError(err, "course bulk update", action.Field)
	}

	changes := make([]domain.CourseChange, len(rows))
	for i, row := range rows {
		changes[i] = domain.CourseChange{
			CourseID: row.CourseID,
			OwnerID:  row.OwnerID,
			Field:    action.Field,
			OldValue: row.OldValue,
			NewValue: row.NewValue,
		}
	}

	return changes, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type courseRow struct {
	ID         uuid.UUID  `db:"id"`
	Title      string     `db:"title"`
	Status     string     `db:"status"`
	Priority   string     `db:"priority"`
	OwnerID    uuid.UUID  `db:"owner_id"`
	AssigneeID *uuid.UUID `db:"assignee_id"`
	DueDate    *time.Time `db:"due_date"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

type changeRow struct {
	CourseID uuid.UUID `db:"course_id"`
	OwnerID  uuid.UUID `db:"owner_id"`
	OldValue *string   `db:"old_value"`
	NewValue *string   `db:"new_value"`
}

func toDomainCourses(rows []courseRow) []domain.Course {
	courses := make([]domain.Course, len(rows))
	for i, row := range rows {
		courses[i] = domain.Course{
			ID:         row.ID,
			Title:      row.Title,
			Status:     domain.CourseStatus(row.Status),
			Priority:   domain.CoursePriority(row.Priority),
			OwnerID:    row.OwnerID,
			AssigneeID: row.AssigneeID,
			DueDate:    row.DueDate,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		}
	}
	return courses
}
