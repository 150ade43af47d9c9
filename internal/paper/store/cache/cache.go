// Package cache accelerates the pending-approvals listing with Redis.
// The listing is the reviewers' work queue and is polled far more often
// than papers change state, so a short TTL absorbs most of the reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"paperflow/internal/paper/models"

	"github.com/redis/go-redis/v9"
)

const (
	pendingKey = "paperflow:papers:pending"

	// DefaultTTL bounds staleness when an invalidation is missed.
	DefaultTTL = 30 * time.Second
)

// ErrMiss signals the caller must fall through to the store.
var ErrMiss = errors.New("pending cache miss")

// PendingCache stores the serialized pending-approvals listing.
// All failures degrade to a miss; the cache never takes the read path down.
type PendingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the PendingCache.
type Option func(*PendingCache)

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *PendingCache) {
		c.ttl = ttl
	}
}

// WithLogger sets a logger for degradation reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *PendingCache) {
		c.logger = logger
	}
}

func New(client *redis.Client, opts ...Option) *PendingCache {
	c := &PendingCache{
		client: client,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached listing or ErrMiss.
func (c *PendingCache) Get(ctx context.Context) ([]*models.Paper, error) {
	payload, err := c.client.Get(ctx, pendingKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "pending cache read failed", "error", err)
		}
		return nil, ErrMiss
	}

	var docs []models.Document
	if err := json.Unmarshal(payload, &docs); err != nil {
		c.logger.WarnContext(ctx, "pending cache entry corrupt, dropping", "error", err)
		c.Invalidate(ctx)
		return nil, ErrMiss
	}

	papers := make([]*models.Paper, 0, len(docs))
	for _, doc := range docs {
		paper, err := models.FromDocument(doc)
		if err != nil {
			c.logger.WarnContext(ctx, "pending cache entry corrupt, dropping", "error", err)
			c.Invalidate(ctx)
			return nil, ErrMiss
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

// Set stores the listing. Best-effort.
func (c *PendingCache) Set(ctx context.Context, papers []*models.Paper) {
	docs := make([]models.Document, 0, len(papers))
	for _, paper := range papers {
		docs = append(docs, paper.Document())
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		c.logger.WarnContext(ctx, "pending cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, pendingKey, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "pending cache write failed", "error", err)
	}
}

// Invalidate drops the listing. Called after any lifecycle transition that
// changes which papers await review.
func (c *PendingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, pendingKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "pending cache invalidation failed", "error", err)
	}
}
