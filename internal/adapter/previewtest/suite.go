// Package previewtest holds a behavioural test suite shared by every bulk
// preview store implementation.
package previewtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// Store is the contract exercised by Run.
type Store interface {
	Create(ctx context.Context, rec *domain.PreviewRecord) error
	Get(ctx context.Context, token string) (*domain.PreviewRecord, error)
	Transition(ctx context.Context, token string, from, to domain.PreviewState, at time.Time) error
	ExpireBefore(ctx context.Context, now time.Time) (int, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// NewRecord builds a pending preview created at createdAt with a ten minute TTL.
func NewRecord(createdAt time.Time) *domain.PreviewRecord {
	status := domain.CourseStatusReview
	value := string(domain.CourseStatusInProgress)
	createdAt = createdAt.UTC().Truncate(time.Microsecond)

	return &domain.PreviewRecord{
		Token:      uuid.NewString(),
		Criteria:   domain.Criteria{Status: &status},
		Action:     domain.Action{Field: domain.BulkFieldStatus, Value: &value},
		MatchedIDs: []uuid.UUID{uuid.New(), uuid.New()},
		CreatedBy:  uuid.New(),
		CreatedAt:  createdAt,
		ExpiresAt:  createdAt.Add(10 * time.Minute),
		State:      domain.PreviewStatePending,
		UpdatedAt:  createdAt,
	}
}

// Run executes the suite against a store built by newStore. Subtests run
// sequentially because sweeps act on every record in the store.
func Run(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("CreateGet", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		rec := NewRecord(time.Now())
		tpl := uuid.New()
		rec.TemplateID = &tpl
		owner := uuid.New()
		rec.Criteria.OwnerID = &owner

		require.NoError(t, store.Create(ctx, rec))

		got, err := store.Get(ctx, rec.Token)
		require.NoError(t, err)
		assert.Equal(t, rec.Token, got.Token)
		assert.Equal(t, rec.Criteria, got.Criteria)
		assert.Equal(t, rec.Action, got.Action)
		assert.Equal(t, rec.MatchedIDs, got.MatchedIDs)
		require.NotNil(t, got.TemplateID)
		assert.Equal(t, tpl, *got.TemplateID)
		assert.Equal(t, rec.CreatedBy, got.CreatedBy)
		assert.True(t, rec.ExpiresAt.Equal(got.ExpiresAt), "expiresAt: got %v want %v", got.ExpiresAt, rec.ExpiresAt)
		assert.Equal(t, domain.PreviewStatePending, got.State)
	})

	t.Run("NilAssigneeValueRoundTrips", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		rec := NewRecord(time.Now())
		rec.Action = domain.Action{Field: domain.BulkFieldAssignee, Value: nil}
		require.NoError(t, store.Create(ctx, rec))

		got, err := store.Get(ctx, rec.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.BulkFieldAssignee, got.Action.Field)
		assert.Nil(t, got.Action.Value)
	})

	t.Run("GetUnknown", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Get(context.Background(), "missing-"+uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("CreateDuplicate", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		rec := NewRecord(time.Now())
		require.NoError(t, store.Create(ctx, rec))
		assert.ErrorIs(t, store.Create(ctx, rec), domain.ErrAlreadyExists)
	})

	t.Run("TransitionOnce", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		rec := NewRecord(time.Now())
		require.NoError(t, store.Create(ctx, rec))

		at := time.Now().UTC()
		require.NoError(t, store.Transition(ctx, rec.Token, domain.PreviewStatePending, domain.PreviewStateExecuted, at))

		err := store.Transition(ctx, rec.Token, domain.PreviewStatePending, domain.PreviewStateCancelled, at)
		assert.ErrorIs(t, err, domain.ErrConflict)

		got, err := store.Get(ctx, rec.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.PreviewStateExecuted, got.State)
	})

	t.Run("TransitionRevert", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		rec := NewRecord(time.Now())
		require.NoError(t, store.Create(ctx, rec))

		at := time.Now().UTC()
		require.NoError(t, store.Transition(ctx, rec.Token, domain.PreviewStatePending, domain.PreviewStateExecuted, at))
		require.NoError(t, store.Transition(ctx, rec.Token, domain.PreviewStateExecuted, domain.PreviewStatePending, at))

		got, err := store.Get(ctx, rec.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.PreviewStatePending, got.State)
	})

	t.Run("TransitionUnknown", func(t *testing.T) {
		store := newStore(t)

		err := store.Transition(context.Background(), "missing-"+uuid.NewString(),
			domain.PreviewStatePending, domain.PreviewStateExecuted, time.Now())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ConcurrentTransitionSingleWinner", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		rec := NewRecord(time.Now())
		require.NoError(t, store.Create(ctx, rec))

		const workers = 8
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			wins     int
			conflict int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.Transition(ctx, rec.Token, domain.PreviewStatePending, domain.PreviewStateExecuted, time.Now())
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					wins++
				case assert.ErrorIs(t, err, domain.ErrConflict):
					conflict++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
		assert.Equal(t, workers-1, conflict)
	})

	t.Run("ExpireBefore", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-2 * time.Hour)
		elapsed := NewRecord(base)
		live := NewRecord(base.Add(2 * time.Hour))
		done := NewRecord(base)
		for _, rec := range []*domain.PreviewRecord{elapsed, live, done} {
			require.NoError(t, store.Create(ctx, rec))
		}
		require.NoError(t, store.Transition(ctx, done.Token, domain.PreviewStatePending, domain.PreviewStateCancelled, base))

		n, err := store.ExpireBefore(ctx, base.Add(time.Hour))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)

		got, err := store.Get(ctx, elapsed.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.PreviewStateExpired, got.State)

		got, err = store.Get(ctx, live.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.PreviewStatePending, got.State)

		got, err = store.Get(ctx, done.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.PreviewStateCancelled, got.State)
	})

	t.Run("PurgeBefore", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		old := time.Now().UTC().Add(-48 * time.Hour)
		terminal := NewRecord(old)
		pending := NewRecord(old)
		for _, rec := range []*domain.PreviewRecord{terminal, pending} {
			require.NoError(t, store.Create(ctx, rec))
		}
		require.NoError(t, store.Transition(ctx, terminal.Token, domain.PreviewStatePending, domain.PreviewStateExecuted, old))

		n, err := store.PurgeBefore(ctx, old.Add(time.Hour))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)

		_, err = store.Get(ctx, terminal.Token)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = store.Get(ctx, pending.Token)
		assert.NoError(t, err)
	})
}
