// Package bulk implements the two-phase bulk operations engine: criteria
// validation, non-committing previews, snapshot-checked execution,
// cancellation, reusable templates and the bulk history log.
package bulk

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

type courseRepo interface {
	List(ctx context.Context, filter domain.CourseListFilter) ([]domain.Course, int, error)
	MatchIDs(ctx context.Context, cr domain.Criteria, opts domain.MatchOptions) ([]uuid.UUID, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Course, error)
	ApplyChange(ctx context.Context, ids []uuid.UUID, action domain.Action, at time.Time) ([]domain.CourseChange, error)
}

type userRepo interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type previewStore interface {
	Create(ctx context.Context, rec *domain.PreviewRecord) error
	Get(ctx context.Context, token string) (*domain.PreviewRecord, error)
	Transition(ctx context.Context, token string, from, to domain.PreviewState, at time.Time) error
	ExpireBefore(ctx context.Context, now time.Time) (int, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// transactionalStore is implemented by preview stores whose writes join the
// transaction carried by ctx. A claim made through such a store rolls back
// with the transaction and must not be reverted by hand.
type transactionalStore interface {
	Transactional() bool
}

type historyRepo interface {
	Record(ctx context.Context, rec domain.HistoryRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error)
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryRecord, int, error)
}

type templateRepo interface {
	Create(ctx context.Context, tpl domain.BulkTemplate) (domain.BulkTemplate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BulkTemplate, error)
	List(ctx context.Context) ([]domain.BulkTemplate, error)
	Update(ctx context.Context, id uuid.UUID, params domain.BulkTemplateUpdateParams, at time.Time) (domain.BulkTemplate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
	LogBatch(ctx context.Context, records []domain.AuditRecord) error
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Enqueue(n domain.Notification) bool
}

type metricsRecorder interface {
	PreviewCreated()
	ExecutionFinished(outcome domain.BulkOutcome, affected int, elapsed time.Duration)
	Cancellation(result string)
	PreviewsExpired(n int)
}

// Cancellation results reported to metrics.
const (
	cancelResultCancelled       = "cancelled"
	cancelResultAlreadyTerminal = "already_terminal"
	cancelResultExpired         = "expired"
)

// Config holds the engine's tunables.
type Config struct {
	PreviewTTL       time.Duration
	PreviewRetention time.Duration
	SampleSize       int
	MaxMatched       int
	SubBatchSize     int
	StaleTolerance   int
	StrictSnapshot   bool
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		PreviewTTL:       10 * time.Minute,
		PreviewRetention: 24 * time.Hour,
		SampleSize:       50,
		MaxMatched:       5000,
		SubBatchSize:     500,
	}
}

// Service provides bulk operations.
type Service struct {
	cfg       Config
	courses   courseRepo
	users     userRepo
	previews  previewStore
	history   historyRepo
	templates templateRepo
	audit     auditLogger
	tx        txManager
	notify    notifier
	metrics   metricsRecorder
	log       *slog.Logger

	now      func() time.Time
	newToken func() (string, error)
}

// Option customizes a Service.
type Option func(*Service)

// WithNotifier sets the notification sink used after successful executions.
func WithNotifier(n notifier) Option {
	return func(s *Service) { s.notify = n }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new bulk operations service.
func NewService(
	log *slog.Logger,
	cfg Config,
	courses courseRepo,
	users userRepo,
	previews previewStore,
	history historyRepo,
	templates templateRepo,
	audit auditLogger,
	tx txManager,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:       cfg,
		courses:   courses,
		users:     users,
		previews:  previews,
		history:   history,
		templates: templates,
		audit:     audit,
		tx:        tx,
		notify:    noopNotifier{},
		metrics:   noopMetrics{},
		log:       log.With("service", "bulk"),
		now:       func() time.Time { return time.Now().UTC() },
		newToken:  newPreviewToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newPreviewToken returns 128 random bits, base64url-encoded without padding.
func newPreviewToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *Service) storeIsTransactional() bool {
	ts, ok := s.previews.(transactionalStore)
	return ok && ts.Transactional()
}

type noopNotifier struct{}

func (noopNotifier) Enqueue(domain.Notification) bool { return true }

type noopMetrics struct{}

func (noopMetrics) PreviewCreated() {}
func (noopMetrics) ExecutionFinished(domain.BulkOutcome, int, time.Duration) {}
func (noopMetrics) Cancellation(string) {}
func (noopMetrics) PreviewsExpired(int) {}
