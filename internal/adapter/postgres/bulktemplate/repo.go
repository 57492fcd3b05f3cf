// Package bulktemplate implements the bulk template repository using PostgreSQL.
package bulktemplate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var templateColumns = []string{
	"id", "name", "description", "criteria", "action", "created_by", "created_at", "updated_at",
}

// Repo provides bulk template persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bulk template repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a template. A duplicate name yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, tpl domain.BulkTemplate) (domain.BulkTemplate, error) {
	criteria, action, err := marshalPair(tpl.Criteria, tpl.Action)
	if err != nil {
		return domain.BulkTemplate{}, err
	}

	sql, args, err := builder.Insert("bulk_templates").
		Columns(templateColumns...).
		Values(tpl.ID, tpl.Name, tpl.Description, criteria, action, tpl.CreatedBy, tpl.CreatedAt, tpl.UpdatedAt).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return domain.BulkTemplate{}, fmt.Errorf("build insert bulk_template: %w", err)
	}

	var row templateRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, sql, args...); err != nil {
		return domain.BulkTemplate{}, postgres.MapError(err, "bulk_template", tpl.Name)
	}
	return row.toDomain()
}

// GetByID returns a template by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BulkTemplate, error) {
	sql, args, err := builder.Select(templateColumns...).
		From("bulk_templates").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get bulk_template: %w", err)
	}

	var row templateRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "bulk_template", id)
	}

	tpl, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// List returns every template ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.BulkTemplate, error) {
	sql, args, err := builder.Select(templateColumns...).
		From("bulk_templates").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bulk_templates: %w", err)
	}

	var rows []templateRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list bulk_templates: %w", err)
	}

	templates := make([]domain.BulkTemplate, len(rows))
	for i, row := range rows {
		tpl, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		templates[i] = tpl
	}
	return templates, nil
}

// Update applies the non-nil fields of params and returns the updated template.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.BulkTemplateUpdateParams, at time.Time) (domain.BulkTemplate, error) {
	q := builder.Update("bulk_templates").
		Set("updated_at", at).
		Where("id = ?", id).
		Suffix("RETURNING " + joinColumns())

	if params.Name != nil {
		q = q.Set("name", *params.Name)
	}
	if params.Description != nil {
		// An empty description clears the column.
		if *params.Description == "" {
			q = q.Set("description", nil)
		} else {
			q = q.Set("description", *params.Description)
		}
	}
	if params.Criteria != nil {
		data, err := json.Marshal(params.Criteria)
		if err != nil {
			return domain.BulkTemplate{}, fmt.Errorf("bulk_template marshal criteria: %w", err)
		}
		q = q.Set("criteria", data)
	}
	if params.Action != nil {
		data, err := json.Marshal(params.Action)
		if err != nil {
			return domain.BulkTemplate{}, fmt.Errorf("bulk_template marshal action: %w", err)
		}
		q = q.Set("action", data)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.BulkTemplate{}, fmt.Errorf("build update bulk_template: %w", err)
	}

	var row templateRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, sql, args...); err != nil {
		return domain.BulkTemplate{}, postgres.MapError(err, "bulk_template", id)
	}
	return row.toDomain()
}

// Delete removes a template.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM bulk_templates WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "bulk_template", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bulk_template %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func joinColumns() string {
	return strings.Join(templateColumns, ", ")
}

func marshalPair(cr domain.Criteria, action domain.Action) ([]byte, []byte, error) {
	criteria, err := json.Marshal(cr)
	if err != nil {
		return nil, nil, fmt.Errorf("bulk_template marshal criteria: %w", err)
	}
	act, err := json.Marshal(action)
	if err != nil {
		return nil, nil, fmt.Errorf("bulk_template marshal action: %w", err)
	}
	return criteria, act, nil
}

type templateRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Criteria    []byte    `db:"criteria"`
	Action      []byte    `db:"action"`
	CreatedBy   uuid.UUID `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row templateRow) toDomain() (domain.BulkTemplate, error) {
	tpl := domain.BulkTemplate{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := json.Unmarshal(row.Criteria, &tpl.Criteria); err != nil {
		return domain.BulkTemplate{}, fmt.Errorf("bulk_template %s unmarshal criteria: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Action, &tpl.Action); err != nil {
		return domain.BulkTemplate{}, fmt.Errorf("bulk_template %s unmarshal action: %w", row.ID, err)
	}
	return tpl, nil
}
