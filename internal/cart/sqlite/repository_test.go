package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"
	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	snap := cart.Snapshot{
		Items: []cart.Line{
			{
				Product: catalog.Product{
					ID:    "3",
					Name:  "Baguette Francesa",
					Price: decimal.NewFromFloat(4.75),
					Stock: 10,
				},
				Quantity: 3,
			},
		},
		Total: decimal.NewFromFloat(14.25),
	}

	require.NoError(t, repo.Save(ctx, "s1", snap))

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "3", loaded.Items[0].Product.ID)
	assert.Equal(t, 3, loaded.Items[0].Quantity)
	assert.True(t, loaded.Items[0].Product.Price.Equal(decimal.NewFromFloat(4.75)))
	assert.True(t, loaded.Total.Equal(decimal.NewFromFloat(14.25)))
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.Save(ctx, "s1", cart.Snapshot{Total: decimal.NewFromInt(10)}))
	require.NoError(t, repo.Save(ctx, "s1", cart.Snapshot{Total: decimal.NewFromInt(25)}))

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.Total.Equal(decimal.NewFromInt(25)))
}

func TestLoadMissingSessionReturnsNil(t *testing.T) {
	repo := openTestRepo(t)

	loaded, err := repo.Load(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadCorruptRowReportsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO cart_snapshots (session_id, snapshot, updated_at) VALUES (?, ?, ?)`,
		"s1", "{not json", time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)

	_, err = repo.Load(ctx, "s1")
	require.ErrorIs(t, err, cart.ErrCorruptSnapshot)
}
