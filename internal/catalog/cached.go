package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/jcmexdev/bakehouse-storefront/internal/pkg/cache"
)

// CachedSource is a read-through cache in front of another Source.
// Cache failures are never fatal: on any miss or Redis error the request
// falls through to the underlying source and the result is written back
// on a best-effort basis.
type CachedSource struct {
	src   Source
	cache cache.Cache
	ttl   time.Duration
}

var _ Source = (*CachedSource)(nil)

func NewCachedSource(src Source, c cache.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{src: src, cache: c, ttl: ttl}
}

func (c *CachedSource) List(ctx context.Context) ([]Product, error) {
	key := c.cache.GenerateKey("products", "all")

	if raw := c.lookup(ctx, key); raw != "" {
		var products []Product
		if err := json.Unmarshal([]byte(raw), &products); err == nil {
			return products, nil
		}
	}

	products, err := c.src.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, products)
	return products, nil
}

func (c *CachedSource) Get(ctx context.Context, id string) (Product, error) {
	key := c.cache.GenerateKey("product", id)

	if raw := c.lookup(ctx, key); raw != "" {
		var p Product
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return p, nil
		}
	}

	p, err := c.src.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	c.store(ctx, key, p)
	return p, nil
}

func (c *CachedSource) Stock(ctx context.Context, id string) (int, error) {
	key := c.cache.GenerateKey("stock", id)

	if raw := c.lookup(ctx, key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n, nil
		}
	}

	n, err := c.src.Stock(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := c.cache.Set(ctx, key, strconv.Itoa(n), c.ttl); err != nil {
		slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
	}
	return n, nil
}

// lookup returns the cached value or "" on miss/error.
func (c *CachedSource) lookup(ctx context.Context, key string) string {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
		return ""
	}
	return raw
}

func (c *CachedSource) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(b), c.ttl); err != nil {
		slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
	}
}
