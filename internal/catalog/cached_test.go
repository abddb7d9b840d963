package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is an in-memory cache.Cache used to exercise the read-through
// wrapper without a Redis instance.
type mapCache struct {
	data map[string]string
	err  error
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]string)} }

func (m *mapCache) Get(ctx context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.data[key], nil
}

func (m *mapCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *mapCache) GenerateKey(scope, key string) string {
	return "test:" + scope + ":" + key
}

// countingSource counts calls through to the underlying data.
type countingSource struct {
	products []Product
	calls    int
}

func (c *countingSource) List(ctx context.Context) ([]Product, error) {
	c.calls++
	return c.products, nil
}

func (c *countingSource) Get(ctx context.Context, id string) (Product, error) {
	c.calls++
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (c *countingSource) Stock(ctx context.Context, id string) (int, error) {
	c.calls++
	p, err := c.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	c.calls-- // Get above already counted
	return p.Stock, nil
}

func TestCachedSourceListReadThrough(t *testing.T) {
	ctx := context.Background()
	src := &countingSource{products: []Product{
		{ID: "1", Name: "Pan", Price: decimal.NewFromFloat(6.50), Stock: 20},
	}}
	cached := NewCachedSource(src, newMapCache(), time.Minute)

	first, err := cached.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, src.calls)

	// Second read is served from the cache.
	second, err := cached.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Price.Equal(decimal.NewFromFloat(6.50)))
	assert.Equal(t, 1, src.calls)
}

func TestCachedSourceStockReadThrough(t *testing.T) {
	ctx := context.Background()
	src := &countingSource{products: []Product{{ID: "1", Stock: 12}}}
	cached := NewCachedSource(src, newMapCache(), time.Minute)

	stock, err := cached.Stock(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 12, stock)

	stock, err = cached.Stock(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 12, stock)
	assert.Equal(t, 1, src.calls)
}

func TestCachedSourceFallsThroughOnCacheFailure(t *testing.T) {
	ctx := context.Background()
	src := &countingSource{products: []Product{{ID: "1", Stock: 12}}}
	broken := newMapCache()
	broken.err = errors.New("redis down")
	cached := NewCachedSource(src, broken, time.Minute)

	// Cache failures are invisible to the caller.
	p, err := cached.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, 1, src.calls)
}
