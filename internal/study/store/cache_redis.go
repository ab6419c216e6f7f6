package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"studylab/internal/study/models"
	id "studylab/pkg/domain"
	"studylab/pkg/platform/circuit"
)

const (
	cacheKeyPrefix  = "study:"
	DefaultCacheTTL = 5 * time.Minute
)

// Backend is the authoritative store behind the cache.
type Backend interface {
	Save(ctx context.Context, study *models.Study) (*models.Study, error)
	FindByID(ctx context.Context, studyID id.StudyID) (*models.Study, error)
}

// CacheClient is the subset of go-redis commands the cache needs.
// *redis.Client satisfies it.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type CacheMetrics interface {
	RecordCacheHit()
	RecordCacheMiss()
	RecordCacheError()
}

// RedisCache is a read-through, write-through cache in front of a Backend.
// Redis failures degrade to the backend; they never fail a request. With a
// breaker attached, an unhealthy redis is skipped until a probe succeeds.
type RedisCache struct {
	backend Backend
	client  CacheClient
	ttl     time.Duration
	logger  *slog.Logger
	metrics CacheMetrics
	breaker *circuit.Breaker
}

type CacheOption func(*RedisCache)

func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

func WithCacheMetrics(m CacheMetrics) CacheOption {
	return func(c *RedisCache) {
		c.metrics = m
	}
}

func WithCacheBreaker(b *circuit.Breaker) CacheOption {
	return func(c *RedisCache) {
		c.breaker = b
	}
}

func NewRedisCache(backend Backend, client CacheClient, opts ...CacheOption) *RedisCache {
	c := &RedisCache{
		backend: backend,
		client:  client,
		ttl:     DefaultCacheTTL,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(studyID id.StudyID) string {
	return cacheKeyPrefix + studyID.String()
}

// Save writes through to the backend, then refreshes the cache entry.
func (c *RedisCache) Save(ctx context.Context, study *models.Study) (*models.Study, error) {
	persisted, err := c.backend.Save(ctx, study)
	if err != nil {
		return nil, err
	}
	c.put(ctx, persisted)
	return persisted, nil
}

func (c *RedisCache) FindByID(ctx context.Context, studyID id.StudyID) (*models.Study, error) {
	if !c.allow() {
		return c.backend.FindByID(ctx, studyID)
	}

	raw, err := c.client.Get(ctx, cacheKey(studyID)).Bytes()
	switch {
	case err == nil:
		c.succeeded(ctx)
		var cached models.Study
		jsonErr := json.Unmarshal(raw, &cached)
		if jsonErr == nil {
			c.recordHit()
			return &cached, nil
		}
		c.recordError()
		c.logger.WarnContext(ctx, "discarding undecodable study cache entry",
			"study_id", studyID.String(), "error", jsonErr)
		c.evict(ctx, studyID)
	case errors.Is(err, redis.Nil):
		c.succeeded(ctx)
		c.recordMiss()
	default:
		c.failed(ctx)
		c.recordError()
		c.logger.WarnContext(ctx, "study cache read failed", "study_id", studyID.String(), "error", err)
		return c.backend.FindByID(ctx, studyID)
	}

	study, err := c.backend.FindByID(ctx, studyID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, study)
	return study, nil
}

// Invalidate drops the cached entry for studyID.
func (c *RedisCache) Invalidate(ctx context.Context, studyID id.StudyID) {
	c.evict(ctx, studyID)
}

func (c *RedisCache) put(ctx context.Context, study *models.Study) {
	if !c.allow() {
		return
	}
	payload, err := json.Marshal(study)
	if err != nil {
		c.logger.WarnContext(ctx, "encode study for cache", "study_id", study.ID.String(), "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(study.ID), payload, c.ttl).Err(); err != nil {
		c.failed(ctx)
		c.recordError()
		c.logger.WarnContext(ctx, "study cache write failed", "study_id", study.ID.String(), "error", err)
		return
	}
	c.succeeded(ctx)
}

func (c *RedisCache) allow() bool {
	return c.breaker == nil || c.breaker.Allow()
}

func (c *RedisCache) failed(ctx context.Context) {
	if c.breaker == nil {
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "study cache circuit opened", "breaker", c.breaker.Name())
	}
}

func (c *RedisCache) succeeded(ctx context.Context) {
	if c.breaker == nil {
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "study cache circuit closed", "breaker", c.breaker.Name())
	}
}

func (c *RedisCache) evict(ctx context.Context, studyID id.StudyID) {
	if err := c.client.Del(ctx, cacheKey(studyID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "study cache evict failed", "study_id", studyID.String(), "error", err)
	}
}

func (c *RedisCache) recordHit() {
	if c.metrics != nil {
		c.metrics.RecordCacheHit()
	}
}

func (c *RedisCache) recordMiss() {
	if c.metrics != nil {
		c.metrics.RecordCacheMiss()
	}
}

func (c *RedisCache) recordError() {
	if c.metrics != nil {
		c.metrics.RecordCacheError()
	}
}
