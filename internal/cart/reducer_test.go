package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
)

func product(id string, price float64, stock int) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  "Producto " + id,
		Price: decimal.NewFromFloat(price),
		Stock: stock,
	}
}

func assertTotal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Equal(decimal.RequireFromString(want)),
		"total = %s, want %s", got, want)
}

func TestReduceAddItemAppendsAndMerges(t *testing.T) {
	s := Reduce(State{}, AddItem{Product: product("a", 6.50, 20), Quantity: 2})
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 2, s.Lines[0].Quantity)
	assertTotal(t, "13.00", s.Total)

	// Same product merges into the existing line instead of adding a second.
	s = Reduce(s, AddItem{Product: product("a", 6.50, 20), Quantity: 3})
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 5, s.Lines[0].Quantity)
	assertTotal(t, "32.50", s.Total)
}

func TestReduceKeepsInsertionOrder(t *testing.T) {
	s := State{}
	s = Reduce(s, AddItem{Product: product("a", 1.00, 10), Quantity: 1})
	s = Reduce(s, AddItem{Product: product("b", 2.00, 10), Quantity: 1})
	s = Reduce(s, AddItem{Product: product("c", 3.00, 10), Quantity: 1})

	// Touching the middle line must not move it.
	s = Reduce(s, SetQuantity{ProductID: "b", Quantity: 4})

	require.Len(t, s.Lines, 3)
	assert.Equal(t, "a", s.Lines[0].Product.ID)
	assert.Equal(t, "b", s.Lines[1].Product.ID)
	assert.Equal(t, "c", s.Lines[2].Product.ID)
	assert.Equal(t, 4, s.Lines[1].Quantity)
}

func TestReduceRemoveItem(t *testing.T) {
	s := State{}
	s = Reduce(s, AddItem{Product: product("a", 1.50, 10), Quantity: 2})
	s = Reduce(s, AddItem{Product: product("b", 2.00, 10), Quantity: 1})

	s = Reduce(s, RemoveItem{ProductID: "a"})
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "b", s.Lines[0].Product.ID)
	assertTotal(t, "2.00", s.Total)

	// Removing an absent ID leaves the state unchanged.
	s = Reduce(s, RemoveItem{ProductID: "nope"})
	require.Len(t, s.Lines, 1)
	assertTotal(t, "2.00", s.Total)
}

func TestReduceSetQuantityZeroEqualsRemove(t *testing.T) {
	base := Reduce(State{}, AddItem{Product: product("a", 1.50, 10), Quantity: 2})

	byZero := Reduce(base, SetQuantity{ProductID: "a", Quantity: 0})
	byRemove := Reduce(base, RemoveItem{ProductID: "a"})

	assert.Equal(t, len(byRemove.Lines), len(byZero.Lines))
	assert.True(t, byZero.Total.Equal(byRemove.Total))
	assert.Empty(t, byZero.Lines)
}

func TestReduceClear(t *testing.T) {
	s := Reduce(State{}, AddItem{Product: product("a", 9.99, 5), Quantity: 3})
	s = Reduce(s, Clear{})

	assert.Empty(t, s.Lines)
	assertTotal(t, "0", s.Total)
}

func TestReduceReplaceRecomputesTotal(t *testing.T) {
	// Replace ignores whatever total was persisted alongside the lines and
	// recomputes from scratch, so drifted snapshots self-heal on hydration.
	lines := []Line{
		{Product: product("a", 4.75, 10), Quantity: 3},
		{Product: product("b", 2.50, 25), Quantity: 2},
	}
	s := Reduce(State{Total: decimal.NewFromFloat(999)}, Replace{Lines: lines})

	require.Len(t, s.Lines, 2)
	assertTotal(t, "19.25", s.Total)
}

func TestReduceTotalAlwaysMatchesLines(t *testing.T) {
	actions := []Action{
		AddItem{Product: product("a", 6.50, 20), Quantity: 2},
		AddItem{Product: product("b", 3.25, 15), Quantity: 1},
		SetQuantity{ProductID: "a", Quantity: 5},
		AddItem{Product: product("c", 18.90, 8), Quantity: 1},
		RemoveItem{ProductID: "b"},
		SetQuantity{ProductID: "c", Quantity: 0},
		AddItem{Product: product("a", 6.50, 20), Quantity: 1},
	}

	s := State{}
	for i, a := range actions {
		s = Reduce(s, a)

		want := decimal.Zero
		for _, l := range s.Lines {
			want = want.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		require.Truef(t, s.Total.Equal(want),
			"after action %d: total = %s, recomputed = %s", i, s.Total, want)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	base := Reduce(State{}, AddItem{Product: product("a", 1.00, 10), Quantity: 1})

	_ = Reduce(base, SetQuantity{ProductID: "a", Quantity: 7})
	_ = Reduce(base, AddItem{Product: product("b", 2.00, 10), Quantity: 1})

	require.Len(t, base.Lines, 1)
	assert.Equal(t, 1, base.Lines[0].Quantity)
	assertTotal(t, "1.00", base.Total)
}
