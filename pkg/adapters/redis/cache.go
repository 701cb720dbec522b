// Package redis provides a read-through cache over any PartRepository,
// backed by Redis. It is meant for deployments where the part store is
// expensive to query; a cache miss or Redis outage falls back to the source.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/partstack/bomtree/pkg/domain"
	"github.com/partstack/bomtree/pkg/ports"
)

// Cache implements ports.PartRepository by caching part and BOM-edge lookups
// in Redis. Negative lookups are not cached; ListAssemblies always passes
// through.
type Cache struct {
	client *backend.Client
	next   ports.PartRepository
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Cache)

// WithTTL sets the expiration for cached entries. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached entries.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithLogger sets the logger used for cache fallback diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates a cache connected to the given Redis address.
func New(address, password string, db int, next ports.PartRepository, opts ...Option) *Cache {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, next, opts...)
}

// NewFromClient creates a cache from an existing Redis client.
func NewFromClient(client *backend.Client, next ports.PartRepository, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		next:   next,
		prefix: "bomtree:",
		ttl:    5 * time.Minute,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

func (c *Cache) partKey(id int) string {
	return fmt.Sprintf("%spart:%d", c.prefix, id)
}

func (c *Cache) edgesKey(partID int) string {
	return fmt.Sprintf("%sbom:%d", c.prefix, partID)
}

// GetPart resolves a part, serving from Redis when possible.
func (c *Cache) GetPart(ctx context.Context, id int) (domain.Part, error) {
	key := c.partKey(id)

	val, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var part domain.Part
		if err := json.Unmarshal([]byte(val), &part); err == nil {
			return part, nil
		}
		// Corrupt entry: drop it and fall through to the source.
		_ = c.client.Del(ctx, key).Err()
	} else if err != backend.Nil {
		c.logger.Debug("redis cache unavailable, falling back", "key", key, "err", err)
	}

	part, err := c.next.GetPart(ctx, id)
	if err != nil {
		return domain.Part{}, err
	}

	if data, err := json.Marshal(part); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("redis cache write failed", "key", key, "err", err)
		}
	}
	return part, nil
}

// GetBomEdges returns the BOM edges for partID, serving from Redis when possible.
func (c *Cache) GetBomEdges(ctx context.Context, partID int) ([]domain.BomEdge, error) {
	key := c.edgesKey(partID)

	val, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var edges []domain.BomEdge
		if err := json.Unmarshal([]byte(val), &edges); err == nil {
			return edges, nil
		}
		_ = c.client.Del(ctx, key).Err()
	} else if err != backend.Nil {
		c.logger.Debug("redis cache unavailable, falling back", "key", key, "err", err)
	}

	edges, err := c.next.GetBomEdges(ctx, partID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(edges); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("redis cache write failed", "key", key, "err", err)
		}
	}
	return edges, nil
}

// ListAssemblies is not cached; listings are cheap and change-sensitive.
func (c *Cache) ListAssemblies(ctx context.Context, limit int) ([]domain.Part, error) {
	return c.next.ListAssemblies(ctx, limit)
}

// Invalidate removes cached entries for the given part id.
func (c *Cache) Invalidate(ctx context.Context, partID int) error {
	return c.client.Del(ctx, c.partKey(partID), c.edgesKey(partID)).Err()
}
