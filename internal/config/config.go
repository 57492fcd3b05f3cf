package config

import (
	"time"
)

// Preview store backends accepted by BulkConfig.PreviewBackend.
const (
	PreviewBackendPostgres = "postgres"
	PreviewBackendRedis    = "redis"
	PreviewBackendBolt     = "bolt"
	PreviewBackendMemory   = "memory"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Bulk      BulkConfig      `yaml:"bulk"`
	Redis     RedisConfig     `yaml:"redis"`
	Bolt      BoltConfig      `yaml:"bolt"`
	Notify    NotifyConfig    `yaml:"notify"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds access token validation settings. Tokens are issued
// elsewhere; this service only verifies them.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"trainingpulse"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
	// BulkRoles is a comma-separated list of roles allowed on /bulk routes.
	BulkRoles string `yaml:"bulk_roles" env:"AUTH_BULK_ROLES" env-default:"admin,manager"`
}

// BulkConfig holds bulk operation engine settings.
type BulkConfig struct {
	PreviewTTL       time.Duration `yaml:"preview_ttl"       env:"BULK_PREVIEW_TTL"       env-default:"10m"`
	PreviewRetention time.Duration `yaml:"preview_retention" env:"BULK_PREVIEW_RETENTION" env-default:"24h"`
	SampleSize       int           `yaml:"sample_size"       env:"BULK_SAMPLE_SIZE"       env-default:"50"`
	MaxMatched       int           `yaml:"max_matched"       env:"BULK_MAX_MATCHED"       env-default:"5000"`
	SubBatchSize     int           `yaml:"sub_batch_size"    env:"BULK_SUB_BATCH_SIZE"    env-default:"500"`
	StaleTolerance   int           `yaml:"stale_tolerance"   env:"BULK_STALE_TOLERANCE"   env-default:"0"`
	StrictSnapshot   bool          `yaml:"strict_snapshot"   env:"BULK_STRICT_SNAPSHOT"   env-default:"false"`
	SweepInterval    time.Duration `yaml:"sweep_interval"    env:"BULK_SWEEP_INTERVAL"    env-default:"1m"`
	LockTimeout      time.Duration `yaml:"lock_timeout"      env:"BULK_LOCK_TIMEOUT"      env-default:"5s"`
	PreviewBackend   string        `yaml:"preview_backend"   env:"BULK_PREVIEW_BACKEND"   env-default:"postgres"`
}

// RedisConfig holds the connection used by the redis preview backend.
type RedisConfig struct {
	Addr      string `yaml:"addr"       env:"REDIS_ADDR"       env-default:"localhost:6379"`
	Password  string `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"trainingpulse:bulk"`
}

// BoltConfig holds the file used by the bolt preview backend.
type BoltConfig struct {
	Path string `yaml:"path" env:"BOLT_PATH" env-default:"./data/previews.db"`
}

// NotifyConfig sizes the asynchronous notification dispatcher.
type NotifyConfig struct {
	Workers   int `yaml:"workers"    env:"NOTIFY_WORKERS"    env-default:"2"`
	QueueSize int `yaml:"queue_size" env:"NOTIFY_QUEUE_SIZE" env-default:"1024"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	ExecutePerMinute int           `yaml:"execute_per_minute" env:"RATE_LIMIT_EXECUTE_PER_MINUTE" env-default:"30"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
