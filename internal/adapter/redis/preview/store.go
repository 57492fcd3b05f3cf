// Package preview implements the bulk preview store on Redis so several API
// instances can share previews. Each preview is a JSON value; two sorted sets
// index pending previews by expiry and terminal previews by last update.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// maxTxRetries bounds optimistic-lock retries on a contended preview.
const maxTxRetries = 16

// minKeyTTL keeps a just-written key from vanishing before it is read back.
const minKeyTTL = time.Minute

// Store keeps previews in Redis.
type Store struct {
	rdb       redis.UniversalClient
	prefix    string
	retention time.Duration
}

// New creates a store. Keys live under prefix; terminal previews are kept
// for retention before Redis drops them on its own.
func New(rdb redis.UniversalClient, prefix string, retention time.Duration) *Store {
	return &Store{rdb: rdb, prefix: prefix, retention: retention}
}

func (s *Store) key(token string) string { return s.prefix + ":preview:" + token }
func (s *Store) pendingKey() string      { return s.prefix + ":previews:pending" }
func (s *Store) terminalKey() string     { return s.prefix + ":previews:terminal" }

func (s *Store) Create(ctx context.Context, rec *domain.PreviewRecord) error {
	data, err := json.Marshal(fromDomain(rec))
	if err != nil {
		return fmt.Errorf("preview marshal: %w", err)
	}

	key := s.key(rec.Token)
	return s.watch(ctx, key, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("preview %s: %w", rec.Token, domain.ErrAlreadyExists)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl(rec))
			s.index(ctx, pipe, rec)
			return nil
		})
		return err
	})
}

func (s *Store) Get(ctx context.Context, token string) (*domain.PreviewRecord, error) {
	data, err := s.rdb.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("preview %s: %w", token, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("preview %s: get: %w", token, err)
	}
	return decode(data)
}

func (s *Store) Transition(ctx context.Context, token string, from, to domain.PreviewState, at time.Time) error {
	key := s.key(token)
	return s.watch(ctx, key, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("preview %s: %w", token, domain.ErrNotFound)
		}
		if err != nil {
			return err
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
		updated, err := json.Marshal(fromDomain(rec))
		if err != nil {
			return fmt.Errorf("preview marshal: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, s.ttl(rec))
			s.index(ctx, pipe, rec)
			return nil
		})
		return err
	})
}

func (s *Store) ExpireBefore(ctx context.Context, now time.Time) (int, error) {
	tokens, err := s.rdb.ZRangeByScore(ctx, s.pendingKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("expire previews: scan pending: %w", err)
	}

	n := 0
	for _, token := range tokens {
		err := s.Transition(ctx, token, domain.PreviewStatePending, domain.PreviewStateExpired, now)
		switch {
		case err == nil:
			n++
		case errors.Is(err, domain.ErrNotFound):
			s.rdb.ZRem(ctx, s.pendingKey(), token)
		case errors.Is(err, domain.ErrConflict):
			// Claimed by an execute or cancel in the meantime.
		default:
			return n, fmt.Errorf("expire previews: %w", err)
		}
	}
	return n, nil
}

func (s *Store) PurgeBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tokens, err := s.rdb.ZRangeByScore(ctx, s.terminalKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("purge previews: scan terminal: %w", err)
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	keys := make([]string, len(tokens))
	members := make([]any, len(tokens))
	for i, token := range tokens {
		keys[i] = s.key(token)
		members[i] = token
	}

	var del *redis.IntCmd
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, s.terminalKey(), members...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purge previews: %w", err)
	}
	return int(del.Val()), nil
}

// watch runs fn under WATCH on key and retries when another client modified
// the key between the read and the commit.
func (s *Store) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for range maxTxRetries {
		err := s.rdb.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("preview %s: too much contention: %w", key, domain.ErrConflict)
}

func (s *Store) index(ctx context.Context, pipe redis.Pipeliner, rec *domain.PreviewRecord) {
	if rec.State == domain.PreviewStatePending {
		pipe.ZRem(ctx, s.terminalKey(), rec.Token)
		pipe.ZAdd(ctx, s.pendingKey(), redis.Z{Score: float64(rec.ExpiresAt.UnixMilli()), Member: rec.Token})
		return
	}
	pipe.ZRem(ctx, s.pendingKey(), rec.Token)
	pipe.ZAdd(ctx, s.terminalKey(), redis.Z{Score: float64(rec.UpdatedAt.UnixMilli()), Member: rec.Token})
}

func (s *Store) ttl(rec *domain.PreviewRecord) time.Duration {
	anchor := rec.ExpiresAt
	if rec.State.IsTerminal() && rec.UpdatedAt.After(anchor) {
		anchor = rec.UpdatedAt
	}
	ttl := time.Until(anchor.Add(s.retention))
	if ttl < minKeyTTL {
		return minKeyTTL
	}
	return ttl
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
