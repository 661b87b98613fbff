// Package cache stores scoring results in Redis. The engine is
// deterministic, so a hit is always identical to a fresh calculation for
// the same config version, locale and profile.
package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic_portal_backend/internal/leads/scoring"
	"clinic_portal_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lead_score"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// NewClient opens a Redis client from REDIS_URL, honouring REDIS_TLS_INSECURE.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.IsRedisEnabled() {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{}
		}
		opt.TLSConfig.InsecureSkipVerify = true
	}
	return redis.NewClient(opt), nil
}

// Key derives the cache key for a profile scored under version and locale.
func Key(version string, locale scoring.Locale, profile scoring.CustomerProfile) (string, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, version, locale, hex.EncodeToString(sum[:])), nil
}

// Get returns the cached score for key; ok is false on a miss.
func (c *Cache) Get(ctx context.Context, key string) (scoring.LeadScore, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return scoring.LeadScore{}, false, nil
	}
	if err != nil {
		return scoring.LeadScore{}, false, err
	}

	var score scoring.LeadScore
	if err := json.Unmarshal(data, &score); err != nil {
		return scoring.LeadScore{}, false, fmt.Errorf("decode cached score: %w", err)
	}
	return score, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, score scoring.LeadScore) error {
	data, err := json.Marshal(score)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
