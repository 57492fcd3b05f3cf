//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/audit"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/notification"
	pgpreview "github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/preview"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/testhelper"
	"github.com/freeup86/trainingpulse-sub004/internal/app"
	authpkg "github.com/freeup86/trainingpulse-sub004/internal/auth"
	"github.com/freeup86/trainingpulse-sub004/internal/config"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
	"github.com/freeup86/trainingpulse-sub004/internal/metrics"
	"github.com/freeup86/trainingpulse-sub004/internal/notify"
	"github.com/freeup86/trainingpulse-sub004/internal/service/bulk"
	"github.com/freeup86/trainingpulse-sub004/internal/service/feed"
	"github.com/freeup86/trainingpulse-sub004/internal/transport/middleware"
	"github.com/freeup86/trainingpulse-sub004/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack backed by a real
// PostgreSQL container (shared via testhelper). The notification dispatcher
// runs until the test ends.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	jwtSecret := "test-secret-at-least-32-chars-long!!"
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      jwtSecret,
			JWTIssuer:      "test-issuer",
			AccessTokenTTL: 15 * time.Minute,
			BulkRoles:      "admin,manager",
		},
		Bulk: config.BulkConfig{
			PreviewTTL:       10 * time.Minute,
			PreviewRetention: time.Hour,
			SampleSize:       5,
			MaxMatched:       100,
			SubBatchSize:     2,
			LockTimeout:      5 * time.Second,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
	}

	m := metrics.New()
	notifications := notification.New(pool)
	dispatcher := notify.NewDispatcher(logger, notifications, notify.Config{
		Workers:   1,
		QueueSize: 64,
	}, notify.WithDropRecorder(m))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = dispatcher.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	svc := app.NewBulkService(logger, cfg, pool, pgpreview.New(pool),
		bulk.WithNotifier(dispatcher),
		bulk.WithMetrics(m),
	)

	jwtMgr := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	handler := rest.NewRouter(rest.RouterDeps{
		Log:         logger,
		Health:      rest.NewHealthHandler(pool, "test-version"),
		Bulk:        rest.NewBulkHandler(svc, logger),
		Courses:     rest.NewCourseHandler(svc, logger),
		Feed:        rest.NewFeedHandler(feed.NewService(logger, notifications, audit.New(pool)), logger),
		Auth:        middleware.Auth(jwtMgr),
		BulkRoles:   cfg.Auth.AllowedBulkRoles(),
		CORS:        cfg.CORS,
		Metrics:     m,
		MetricsPath: "/metrics",
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// seedUserToken inserts a user with the given role and returns a signed
// access token for it.
func (ts *testServer) seedUserToken(t *testing.T, role domain.UserRole) (string, domain.User) {
	t.Helper()

	user := testhelper.SeedUserWithRole(t, ts.Pool, role)
	tok, err := ts.jwt.GenerateAccessToken(user.ID, string(role))
	require.NoError(t, err)
	return tok, user
}

// do sends a JSON request and returns the status code and raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// doJSON is do plus decoding the body into a map.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	status, raw := ts.do(t, method, path, body, token)
	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return status, out
}

// preview creates a preview and returns its token.
func (ts *testServer) preview(t *testing.T, token string, criteria, action map[string]any) (string, map[string]any) {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/bulk/preview", map[string]any{
		"criteria": criteria,
		"action":   action,
	}, token)
	require.Equal(t, http.StatusOK, status, "preview: %v", body)

	id, ok := body["previewId"].(string)
	require.True(t, ok, "previewId missing: %v", body)
	return id, body
}

// ownerIDs returns criteria that scope a test to its own courses.
func ownerCriteria(owner uuid.UUID, extra map[string]any) map[string]any {
	cr := map[string]any{"ownerId": owner.String()}
	for k, v := range extra {
		cr[k] = v
	}
	return cr
}

func countRows(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}
