package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	bolt "go.etcd.io/bbolt"

	boltpreview "github.com/freeup86/trainingpulse-sub004/internal/adapter/bolt/preview"
	memorypreview "github.com/freeup86/trainingpulse-sub004/internal/adapter/memory/preview"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/audit"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/bulktemplate"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/course"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/history"
	pgpreview "github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/preview"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/user"
	redispreview "github.com/freeup86/trainingpulse-sub004/internal/adapter/redis/preview"
	"github.com/freeup86/trainingpulse-sub004/internal/config"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/internal/service/bulk"
)

// PreviewStore is the storage contract every preview backend satisfies.
type PreviewStore interface {
	Create(ctx context.Context, rec *domain.PreviewRecord) error
	Get(ctx context.Context, token string) (*domain.PreviewRecord, error)
	Transition(ctx context.Context, token string, from, to domain.PreviewState, at time.Time) error
	ExpireBefore(ctx context.Context, now time.Time) (int, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int, error)
}

var (
	_ PreviewStore = (*pgpreview.Repo)(nil)
	_ PreviewStore = (*redispreview.Store)(nil)
	_ PreviewStore = (*boltpreview.Store)(nil)
	_ PreviewStore = (*memorypreview.Store)(nil)
)

// PreviewBackend is an opened preview store with the resources behind it.
type PreviewBackend struct {
	Store PreviewStore
	// Ping probes the backend's own server; nil when the backend has none
	// beyond the database.
	Ping  func(ctx context.Context) error
	close func() error
}

// Close releases the backend's resources.
func (b PreviewBackend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenPreviewStore opens the backend selected by bulk.preview_backend.
func OpenPreviewStore(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (PreviewBackend, error) {
	switch cfg.Bulk.PreviewBackend {
	case config.PreviewBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close() //nolint:errcheck
			return PreviewBackend{}, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		return PreviewBackend{
			Store: redispreview.New(rdb, cfg.Redis.KeyPrefix, cfg.Bulk.PreviewRetention),
			Ping:  func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			close: rdb.Close,
		}, nil

	case config.PreviewBackendBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.Bolt.Path), 0o750); err != nil {
			return PreviewBackend{}, fmt.Errorf("create bolt directory: %w", err)
		}
		db, err := bolt.Open(cfg.Bolt.Path, 0o600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			return PreviewBackend{}, fmt.Errorf("open bolt %s: %w", cfg.Bolt.Path, err)
		}
		store, err := boltpreview.New(db)
		if err != nil {
			db.Close() //nolint:errcheck
			return PreviewBackend{}, err
		}
		return PreviewBackend{Store: store, close: db.Close}, nil

	case config.PreviewBackendMemory:
		return PreviewBackend{Store: memorypreview.New()}, nil

	default:
		return PreviewBackend{Store: pgpreview.New(pool)}, nil
	}
}

// BulkConfig converts the bulk config section into engine settings.
func BulkConfig(c config.BulkConfig) bulk.Config {
	return bulk.Config{
		PreviewTTL:       c.PreviewTTL,
		PreviewRetention: c.PreviewRetention,
		SampleSize:       c.SampleSize,
		MaxMatched:       c.MaxMatched,
		SubBatchSize:     c.SubBatchSize,
		StaleTolerance:   c.StaleTolerance,
		StrictSnapshot:   c.StrictSnapshot,
	}
}

// NewBulkService wires the bulk engine to the Postgres repositories and the
// given preview store.
func NewBulkService(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool, previews PreviewStore, opts ...bulk.Option) *bulk.Service {
	txm := postgres.NewTxManager(pool, postgres.WithLockTimeout(cfg.Bulk.LockTimeout))

	return bulk.NewService(
		logger,
		BulkConfig(cfg.Bulk),
		course.New(pool),
		user.New(pool),
		previews,
		history.New(pool),
		bulktemplate.New(pool),
		audit.New(pool),
		txm,
		opts...,
	)
}
