// Package preview implements the bulk preview store using PostgreSQL.
// Previews written through a transactional context take part in that
// transaction, which lets the claim on a preview commit or roll back
// together with the course updates it authorizes.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// Repo provides preview persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new preview repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectPreview = `
SELECT token, criteria, action, matched_ids, template_id, created_by,
       created_at, expires_at, state, updated_at
FROM bulk_previews
WHERE token = $1`

// Create persists a new preview.
func (r *Repo) Create(ctx context.Context, rec *domain.PreviewRecord) error {
	criteria, err := json.Marshal(rec.Criteria)
	if err != nil {
		return fmt.Errorf("preview marshal criteria: %w", err)
	}
	action, err := json.Marshal(rec.Action)
	if err != nil {
		return fmt.Errorf("preview marshal action: %w", err)
	}

	matched := rec.MatchedIDs
	if matched == nil {
		matched = []uuid.UUID{}
	}

	_, err = postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `
INSERT INTO bulk_previews (token, criteria, action, matched_ids, template_id, created_by,
                           created_at, expires_at, state, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.Token, criteria, action, matched, rec.TemplateID, rec.CreatedBy,
		rec.CreatedAt, rec.ExpiresAt, string(rec.State), rec.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "preview", rec.Token)
	}

	return nil
}

// Get returns the preview stored under token.
func (r *Repo) Get(ctx context.Context, token string) (*domain.PreviewRecord, error) {
	var row previewRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, selectPreview, token); err != nil {
		return nil, postgres.MapError(err, "preview", token)
	}

	return row.toDomain()
}

// Transition moves a preview from one state to another. It fails with
// domain.ErrNotFound for an unknown token and domain.ErrConflict when the
// preview is no longer in the from state.
func (r *Repo) Transition(ctx context.Context, token string, from, to domain.PreviewState, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE bulk_previews SET state = $3, updated_at = $4 WHERE token = $1 AND state = $2`,
		token, string(from), string(to), at,
	)
	if err != nil {
		return postgres.MapError(err, "preview", token)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var state string
	err = q.QueryRow(ctx, `SELECT state FROM bulk_previews WHERE token = $1`, token).Scan(&state)
	if err != nil {
		return postgres.MapError(err, "preview", token)
	}

	return fmt.Errorf("preview %s is %s, not %s: %w", token, state, from, domain.ErrConflict)
}

// ExpireBefore marks every pending preview whose TTL elapsed by now as EXPIRED.
func (r *Repo) ExpireBefore(ctx context.Context, now time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE bulk_previews SET state = 'EXPIRED', updated_at = $1
		 WHERE state = 'PENDING' AND expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("expire previews: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// PurgeBefore deletes terminal previews last touched before cutoff.
func (r *Repo) PurgeBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`DELETE FROM bulk_previews WHERE state <> 'PENDING' AND updated_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("purge previews: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

type previewRow struct {
	Token      string      `db:"token"`
	Criteria   []byte      `db:"criteria"`
	Action     []byte      `db:"action"`
	MatchedIDs []uuid.UUID `db:"matched_ids"`
	TemplateID *uuid.UUID  `db:"template_id"`
	CreatedBy  uuid.UUID   `db:"created_by"`
	CreatedAt  time.Time   `db:"created_at"`
	ExpiresAt  time.Time   `db:"expires_at"`
	State      string      `db:"state"`
	UpdatedAt  time.Time   `db:"updated_at"`
}

func (row previewRow) toDomain() (*domain.PreviewRecord, error) {
	rec := &domain.PreviewRecord{
		Token:      row.Token,
		MatchedIDs: row.MatchedIDs,
		TemplateID: row.TemplateID,
		CreatedBy:  row.CreatedBy,
		CreatedAt:  row.CreatedAt,
		ExpiresAt:  row.ExpiresAt,
		State:      domain.PreviewState(row.State),
		UpdatedAt:  row.UpdatedAt,
	}
	if err := json.Unmarshal(row.Criteria, &rec.Criteria); err != nil {
		return nil, fmt.Errorf("preview %s unmarshal criteria: %w", row.Token, err)
	}
	if err := json.Unmarshal(row.Action, &rec.Action); err != nil {
		return nil, fmt.Errorf("preview %s unmarshal action: %w", row.Token, err)
	}
	if !rec.State.IsValid() {
		return nil, errors.New("preview " + row.Token + ": unknown state " + row.State)
	}
	return rec, nil
}

// Transactional reports that writes made through a transactional context
// commit or roll back with that transaction.
func (r *Repo) Transactional() bool { return true }
