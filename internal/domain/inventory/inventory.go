package inventory

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNegativeQuantity is returned when restocking with a negative amount
var ErrNegativeQuantity = errors.New("quantity cannot be negative")

// Inventory maps product ID → quantity on hand for one actor.
//
// Invariants:
//   - quantities are never negative; consumption is clamped to what is on hand
//   - an inventory is owned by exactly one actor and never shared
type Inventory struct {
	Quantities map[string]int `json:"quantities"`
}

// New creates an empty inventory
func New() *Inventory {
	return &Inventory{Quantities: make(map[string]int)}
}

// FromQuantities rebuilds an inventory from persisted quantities,
// dropping any negative values left by corrupt data.
func FromQuantities(q map[string]int) *Inventory {
	inv := New()
	for id, qty := range q {
		if qty > 0 {
			inv.Quantities[id] = qty
		}
	}
	return inv
}

func (inv *Inventory) ensure() {
	if inv.Quantities == nil {
		inv.Quantities = make(map[string]int)
	}
}

// Quantity returns the units on hand of a product (0 if absent)
func (inv *Inventory) Quantity(productID string) int {
	return inv.Quantities[productID]
}

// Restock adds units of a product
func (inv *Inventory) Restock(productID string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("restock %s: %w", productID, ErrNegativeQuantity)
	}
	inv.ensure()
	inv.Quantities[productID] += qty
	return nil
}

// Consume removes up to qty units and returns how many were actually removed
func (inv *Inventory) Consume(productID string, qty int) int {
	if qty <= 0 {
		return 0
	}
	onHand := inv.Quantities[productID]
	if qty > onHand {
		qty = onHand
	}
	if qty == 0 {
		return 0
	}
	inv.Quantities[productID] = onHand - qty
	return qty
}

// Reset empties the inventory
func (inv *Inventory) Reset() {
	inv.Quantities = make(map[string]int)
}

// TotalUnits returns the sum of all quantities
func (inv *Inventory) TotalUnits() int {
	total := 0
	for _, qty := range inv.Quantities {
		total += qty
	}
	return total
}

// IsEmpty reports whether no units are on hand
func (inv *Inventory) IsEmpty() bool {
	return inv.TotalUnits() == 0
}

// Snapshot returns a copy of the quantities
func (inv *Inventory) Snapshot() map[string]int {
	out := make(map[string]int, len(inv.Quantities))
	for id, qty := range inv.Quantities {
		out[id] = qty
	}
	return out
}

func (inv *Inventory) String() string {
	ids := make([]string, 0, len(inv.Quantities))
	for id := range inv.Quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	s := "Inventory("
	for i, id := range ids {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%d", id, inv.Quantities[id])
	}
	return s + ")"
}
