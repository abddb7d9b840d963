package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
)

// Action is a cart state transition request handled by Reduce.
type Action interface{ isAction() }

// AddItem merges the quantity into an existing line for the same product, or
// appends a new line at the end of the sequence.
type AddItem struct {
	Product  catalog.Product
	Quantity int
}

// RemoveItem drops the line with the given product ID. Absent IDs are a no-op.
type RemoveItem struct {
	ProductID string
}

// SetQuantity replaces a line's quantity in place. A quantity <= 0 behaves
// exactly like RemoveItem.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

// Clear empties the cart unconditionally.
type Clear struct{}

// Replace swaps in a full set of lines, used when hydrating from a persisted
// snapshot. The total is recomputed from the lines, so a drifted persisted
// total can never survive a reload.
type Replace struct {
	Lines []Line
}

func (AddItem) isAction()     {}
func (RemoveItem) isAction()  {}
func (SetQuantity) isAction() {}
func (Clear) isAction()       {}
func (Replace) isAction()     {}

// Reduce is the pure transition function over cart state. It performs no
// validation and has no side effects; the Store validates before dispatching
// and persists after. The input state is never mutated.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		lines := slices.Clone(s.Lines)
		if i := findLine(lines, a.Product.ID); i >= 0 {
			lines[i].Quantity += a.Quantity
		} else {
			lines = append(lines, Line{Product: a.Product, Quantity: a.Quantity})
		}
		return State{Lines: lines, Total: sumTotal(lines)}

	case RemoveItem:
		lines := make([]Line, 0, len(s.Lines))
		for _, l := range s.Lines {
			if l.Product.ID != a.ProductID {
				lines = append(lines, l)
			}
		}
		return State{Lines: lines, Total: sumTotal(lines)}

	case SetQuantity:
		if a.Quantity <= 0 {
			return Reduce(s, RemoveItem{ProductID: a.ProductID})
		}
		lines := slices.Clone(s.Lines)
		if i := findLine(lines, a.ProductID); i >= 0 {
			lines[i].Quantity = a.Quantity
		}
		return State{Lines: lines, Total: sumTotal(lines)}

	case Clear:
		return State{Total: decimal.Zero}

	case Replace:
		lines := slices.Clone(a.Lines)
		return State{Lines: lines, Total: sumTotal(lines)}
	}

	return s
}
