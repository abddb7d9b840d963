// Package cart implements the session-local shopping cart: a pure reducer
// over an ordered sequence of lines, and a Store that owns the state, keeps
// the persisted snapshot in sync on every mutation, and notifies subscribers.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
)

// Line pairs a product snapshot with a quantity. The product is an embedded
// copy, not a live reference: catalog updates after the line was added do not
// change what the customer put in the cart.
//
// Line identity is the product ID; a cart holds at most one line per product.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is the cart contents at a point in time. Lines keep insertion order:
// the first product added stays first. Total is always the recomputation of
// the current lines, never independently set.
type State struct {
	Lines []Line
	Total decimal.Decimal
}

func (s State) Empty() bool { return len(s.Lines) == 0 }

func sumTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func findLine(lines []Line, productID string) int {
	for i, l := range lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
