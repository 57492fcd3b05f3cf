// Package audit implements the activity log repository using PostgreSQL.
// It provides append-only operations for audit records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

const insertRecord = `
INSERT INTO activity_log (id, user_id, entity_type, entity_id, action, changes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const selectRecords = `
SELECT id, user_id, entity_type, entity_id, action, changes, created_at
FROM activity_log`

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Log appends a single audit record.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	changes, err := marshalChanges(record.Changes)
	if err != nil {
		return err
	}

	_, err = postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertRecord,
		record.ID, record.UserID, string(record.EntityType), record.EntityID,
		string(record.Action), changes, record.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "audit_record", record.ID)
	}
	return nil
}

// LogBatch appends many audit records in one round trip. Inside a
// transaction the records commit or roll back with it.
func (r *Repo) LogBatch(ctx context.Context, records []domain.AuditRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, record := range records {
		changes, err := marshalChanges(record.Changes)
		if err != nil {
			return err
		}
		batch.Queue(insertRecord,
			record.ID, record.UserID, string(record.EntityType), record.EntityID,
			string(record.Action), changes, record.CreatedAt,
		)
	}

	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	for _, record := range records {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return postgres.MapError(err, "audit_record", record.ID)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("audit batch close: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByEntity returns the change history for a specific entity, newest
// first, limited to limit records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	var rows []auditRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		selectRecords+` WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC, id DESC LIMIT $3`,
		string(entityType), entityID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}
	return toDomainRecords(rows)
}

// GetByUser returns audit records written by a user, newest first, with pagination.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	var rows []auditRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		selectRecords+` WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("get audit_records by user: %w", err)
	}
	return toDomainRecords(rows)
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type auditRow struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	EntityType string     `db:"entity_type"`
	EntityID   *uuid.UUID `db:"entity_id"`
	Action     string     `db:"action"`
	Changes    []byte     `db:"changes"`
	CreatedAt  time.Time  `db:"created_at"`
}

func marshalChanges(changes map[string]any) ([]byte, error) {
	if changes == nil {
		changes = map[string]any{}
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("audit_record marshal changes: %w", err)
	}
	return data, nil
}

func toDomainRecords(rows []auditRow) ([]domain.AuditRecord, error) {
	records := make([]domain.AuditRecord, len(rows))
	for i, row := range rows {
		rec := domain.AuditRecord{
			ID:         row.ID,
			UserID:     row.UserID,
			EntityType: domain.EntityType(row.EntityType),
			EntityID:   row.EntityID,
			Action:     domain.AuditAction(row.Action),
			CreatedAt:  row.CreatedAt,
		}
		if err := json.Unmarshal(row.Changes, &rec.Changes); err != nil {
			return nil, fmt.Errorf("audit_record %s unmarshal changes: %w", row.ID, err)
		}
		records[i] = rec
	}
	return records, nil
}
