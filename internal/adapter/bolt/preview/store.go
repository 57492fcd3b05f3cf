// Package preview implements the bulk preview store on an embedded bbolt
// file, for single-instance deployments that want previews to survive a
// restart without a Redis dependency.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

var bucketPreviews = []byte("bulk_previews")

// Store keeps previews in a bbolt bucket keyed by token.
type Store struct {
	db *bolt.DB
}

// New creates the preview bucket if needed and returns a store on db.
func New(db *bolt.DB) (*Store, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreviews)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create preview bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Create(_ context.Context, rec *domain.PreviewRecord) error {
	data, err := json.Marshal(fromDomain(rec))
	if err != nil {
		return fmt.Errorf("preview marshal: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreviews)
		if b.Get([]byte(rec.Token)) != nil {
			return fmt.Errorf("preview %s: %w", rec.Token, domain.ErrAlreadyExists)
		}
		return b.Put([]byte(rec.Token), data)
	})
}

func (s *Store) Get(_ context.Context, token string) (*domain.PreviewRecord, error) {
	var rec *domain.PreviewRecord

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketPreviews).Get([]byte(token))
		if data == nil {
			return fmt.Errorf("preview %s: %w", token, domain.ErrNotFound)
		}
		var err error
		rec, err = decode(data)
		return err
	})

	return rec, err
}

func (s *Store) Transition(_ context.Context, token string, from, to domain.PreviewState, at time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreviews)
		data := b.Get([]byte(token))
		if data == nil {
			return fmt.Errorf("preview %s: %w", token, domain.ErrNotFound)
		}

		rec, err := decode(data)
		if err != nil {
			return err
		}
		if rec.State != from {
			return fmt.Errorf("preview %s is %s, not %s: %w", token, rec.State, from, domain.ErrConflict)
		}

		rec.State = to
		rec.UpdatedAt = at
		return put(b, rec)
	})
}

func (s *Store) ExpireBefore(_ context.Context, now time.Time) (int, error) {
	n := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreviews)

		var expired []*domain.PreviewRecord
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			rec, err := decode(v)
			if err != nil {
				continue
			}
			if rec.State == domain.PreviewStatePending && rec.IsExpired(now) {
				expired = append(expired, rec)
			}
		}

		for _, rec := range expired {
			rec.State = domain.PreviewStateExpired
			rec.UpdatedAt = now
			if err := put(b, rec); err != nil {
				return err
			}
		}
		n = len(expired)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("expire previews: %w", err)
	}
	return n, nil
}

func (s *Store) PurgeBefore(_ context.Context, cutoff time.Time) (int, error) {
	n := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreviews)

		var stale [][]byte
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			rec, err := decode(v)
			if err != nil {
				continue
			}
			if rec.State.IsTerminal() && rec.UpdatedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		n = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purge previews: %w", err)
	}
	return n, nil
}

func put(b *bolt.Bucket, rec *domain.PreviewRecord) error {
	data, err := json.Marshal(fromDomain(rec))
	if err != nil {
		return fmt.Errorf("preview marshal: %w", err)
	}
	return b.Put([]byte(rec.Token), data)
}

type record struct {
	Token      string          `json:"token"`
	Criteria   domain.Criteria `json:"criteria"`
	Action     domain.Action   `json:"action"`
	MatchedIDs []uuid.UUID     `json:"matchedIds"`
	TemplateID *uuid.UUID      `json:"templateId,omitempty"`
	CreatedBy  uuid.UUID       `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
	ExpiresAt  time.Time       `json:"expiresAt"`
	State      string          `json:"state"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func fromDomain(rec *domain.PreviewRecord) record {
	return record{
		Token:      rec.Token,
		Criteria:   rec.Criteria,
		Action:     rec.Action,
		MatchedIDs: rec.MatchedIDs,
		TemplateID: rec.TemplateID,
		CreatedBy:  rec.CreatedBy,
		CreatedAt:  rec.CreatedAt,
		ExpiresAt:  rec.ExpiresAt,
		State:      string(rec.State),
		UpdatedAt:  rec.UpdatedAt,
	}
}

func decode(data []byte) (*domain.PreviewRecord, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("preview unmarshal: %w", err)
	}
	return &domain.PreviewRecord{
		Token:      r.Token,
		Criteria:   r.Criteria,
		Action:     r.Action,
		MatchedIDs: r.MatchedIDs,
		TemplateID: r.TemplateID,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
		ExpiresAt:  r.ExpiresAt,
		State:      domain.PreviewState(r.State),
		UpdatedAt:  r.UpdatedAt,
	}, nil
}
