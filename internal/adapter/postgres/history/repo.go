// Package history implements the append-only bulk history store using PostgreSQL.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	postgres "github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var historyColumns = []string{
	"id", "preview_token", "template_id", "action", "criteria", "matched_count",
	"affected_count", "performed_by", "performed_at", "outcome", "error_message",
}

// Repo provides bulk history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Record appends a history entry. Entries cannot be changed afterwards; the
// table rejects UPDATE and DELETE.
func (r *Repo) Record(ctx context.Context, rec domain.HistoryRecord) error {
	action, err := json.Marshal(rec.Action)
	if err != nil {
		return fmt.Errorf("bulk_history marshal action: %w", err)
	}
	criteria, err := json.Marshal(rec.Criteria)
	if err != nil {
		return fmt.Errorf("bulk_history marshal criteria: %w", err)
	}

	sql, args, err := builder.Insert("bulk_history").
		Columns(historyColumns...).
		Values(rec.ID, rec.PreviewToken, rec.TemplateID, action, criteria, rec.MatchedCount,
			rec.AffectedCount, rec.PerformedBy, rec.PerformedAt, string(rec.Outcome), rec.ErrorMessage).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert bulk_history: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "bulk_history", rec.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a single history entry.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	sql, args, err := builder.Select(historyColumns...).
		From("bulk_history").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get bulk_history: %w", err)
	}

	var row historyRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "bulk_history", id)
	}

	rec, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns history entries matching the filter, newest first, and the
// total number of matching entries. The page and the count are fetched
// concurrently.
func (r *Repo) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryRecord, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := max(filter.Offset, 0)

	preds := predicates(filter)

	listQ := builder.Select(historyColumns...).From("bulk_history")
	countQ := builder.Select("count(*)").From("bulk_history")
	if len(preds) > 0 {
		listQ = listQ.Where(preds)
		countQ = countQ.Where(preds)
	}

	listSQL, listArgs, err := listQ.
		OrderBy("performed_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bulk_history: %w", err)
	}
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count bulk_history: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		rows  []historyRow
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	if postgres.InTx(ctx) {
		g.SetLimit(1)
	}
	g.Go(func() error {
		if err := pgxscan.Select(gctx, q, &rows, listSQL, listArgs...); err != nil {
			return fmt.Errorf("list bulk_history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := q.QueryRow(gctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count bulk_history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	records := make([]domain.HistoryRecord, len(rows))
	for i, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		records[i] = rec
	}

	return records, total, nil
}

func predicates(f domain.HistoryFilter) squirrel.And {
	var preds squirrel.And
	if f.PerformedBy != nil {
		preds = append(preds, squirrel.Expr("performed_by = ?", *f.PerformedBy))
	}
	if f.From != nil {
		preds = append(preds, squirrel.GtOrEq{"performed_at": *f.From})
	}
	if f.To != nil {
		preds = append(preds, squirrel.LtOrEq{"performed_at": *f.To})
	}
	if f.Outcome != nil {
		preds = append(preds, squirrel.Eq{"outcome": string(*f.Outcome)})
	}
	return preds
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type historyRow struct {
	ID            uuid.UUID  `db:"id"`
	PreviewToken  string     `db:"preview_token"`
	TemplateID    *uuid.UUID `db:"template_id"`
	Action        []byte     `db:"action"`
	Criteria      []byte     `db:"criteria"`
	MatchedCount  int        `db:"matched_count"`
	AffectedCount int        `db:"affected_count"`
	PerformedBy   uuid.UUID  `db:"performed_by"`
	PerformedAt   time.Time  `db:"performed_at"`
	Outcome       string     `db:"outcome"`
	ErrorMessage  *string    `db:"error_message"`
}

func (row historyRow) toDomain() (domain.HistoryRecord, error) {
	rec := domain.HistoryRecord{
		ID:            row.ID,
		PreviewToken:  row.PreviewToken,
		TemplateID:    row.TemplateID,
		MatchedCount:  row.MatchedCount,
		AffectedCount: row.AffectedCount,
		PerformedBy:   row.PerformedBy,
		PerformedAt:   row.PerformedAt,
		Outcome:       domain.BulkOutcome(row.Outcome),
		ErrorMessage:  row.ErrorMessage,
	}
	if err := json.Unmarshal(row.Action, &rec.Action); err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("bulk_history %s unmarshal action: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Criteria, &rec.Criteria); err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("bulk_history %s unmarshal criteria: %w", row.ID, err)
	}
	return rec, nil
}
