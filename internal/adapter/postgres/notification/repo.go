// Package notification stores user notifications in PostgreSQL.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Send stores a notification for its recipient.
func (r *Repo) Send(ctx context.Context, n domain.Notification) error {
	payload := n.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notification marshal payload: %w", err)
	}

	_, err = postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`INSERT INTO notifications (id, user_id, kind, title, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.Kind, n.Title, data, n.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "notification", n.ID)
	}
	return nil
}

// ListUnread returns a user's unread notifications, newest first.
func (r *Repo) ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	var rows []notificationRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		`SELECT id, user_id, kind, title, payload, created_at
		 FROM notifications
		 WHERE user_id = $1 AND read_at IS NULL
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]domain.Notification, len(rows))
	for i, row := range rows {
		n := domain.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Kind:      row.Kind,
			Title:     row.Title,
			CreatedAt: row.CreatedAt,
		}
		if err := json.Unmarshal(row.Payload, &n.Payload); err != nil {
			return nil, fmt.Errorf("notification %s unmarshal payload: %w", row.ID, err)
		}
		out[i] = n
	}
	return out, nil
}

type notificationRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Kind      string    `db:"kind"`
	Title     string    `db:"title"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}
