package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if len(c.Auth.AllowedBulkRoles()) == 0 {
		return fmt.Errorf("auth.bulk_roles must list at least one role")
	}

	if err := c.Bulk.validate(); err != nil {
		return fmt.Errorf("bulk: %w", err)
	}

	switch c.Bulk.PreviewBackend {
	case PreviewBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis preview backend")
		}
	case PreviewBackendBolt:
		if c.Bolt.Path == "" {
			return fmt.Errorf("bolt.path is required for the bolt preview backend")
		}
	}

	if c.Notify.Workers <= 0 {
		return fmt.Errorf("notify.workers must be > 0 (got %d)", c.Notify.Workers)
	}
	if c.Notify.QueueSize <= 0 {
		return fmt.Errorf("notify.queue_size must be > 0 (got %d)", c.Notify.QueueSize)
	}
	if c.RateLimit.ExecutePerMinute < 0 {
		return fmt.Errorf("rate_limit.execute_per_minute must be >= 0 (got %d)", c.RateLimit.ExecutePerMinute)
	}

	return nil
}

func (b *BulkConfig) validate() error {
	if b.PreviewTTL <= 0 {
		return fmt.Errorf("preview_ttl must be > 0 (got %v)", b.PreviewTTL)
	}
	if b.PreviewRetention < 0 {
		return fmt.Errorf("preview_retention must be >= 0 (got %v)", b.PreviewRetention)
	}
	if b.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be > 0 (got %d)", b.SampleSize)
	}
	if b.MaxMatched <= 0 {
		return fmt.Errorf("max_matched must be > 0 (got %d)", b.MaxMatched)
	}
	if b.SubBatchSize <= 0 {
		return fmt.Errorf("sub_batch_size must be > 0 (got %d)", b.SubBatchSize)
	}
	if b.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must be >= 0 (got %v)", b.LockTimeout)
	}
	if b.StaleTolerance < 0 {
		return fmt.Errorf("stale_tolerance must be >= 0 (got %d)", b.StaleTolerance)
	}

	switch b.PreviewBackend {
	case PreviewBackendPostgres, PreviewBackendRedis, PreviewBackendBolt, PreviewBackendMemory:
	default:
		return fmt.Errorf("preview_backend %q is not one of postgres, redis, bolt, memory", b.PreviewBackend)
	}

	return nil
}

// AllowedBulkRoles parses BulkRoles into a trimmed, non-empty list.
func (c AuthConfig) AllowedBulkRoles() []string {
	var roles []string
	for _, r := range strings.Split(c.BulkRoles, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
