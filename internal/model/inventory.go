package model

import (
	"fmt"
	"sort"
	"strings"
)

// ErrNonPositiveQuantity is returned by Add for a zero or negative quantity.
var ErrNonPositiveQuantity = fmt.Errorf("quantity must be positive")

// Inventory — finite quantity-tracked stock of ingredients.
//
// Invariant: every stored quantity is > 0; an entry that reaches zero is
// removed, never kept at zero. The inventory is owned by a single
// planning loop at a time; concurrent trials must Clone it first.
type Inventory struct {
	items map[string]int
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]int)}
}

// InventoryFromQuantities builds an inventory from a name→quantity map.
// Rejects non-positive quantities.
func InventoryFromQuantities(quantities map[string]int) (*Inventory, error) {
	inv := NewInventory()
	for name, qty := range quantities {
		if err := inv.Add(name, qty); err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", name, err)
		}
	}
	return inv, nil
}

// Add increases the quantity of an ingredient.
func (inv *Inventory) Add(name string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w, got %d", ErrNonPositiveQuantity, qty)
	}
	inv.items[name] += qty
	return nil
}

// AvailableIngredients returns the distinct ingredient names on hand,
// sorted lexicographically. Sorting fixes the candidate enumeration
// order, which makes greedy tie-breaking deterministic.
func (inv *Inventory) AvailableIngredients() []string {
	names := make([]string, 0, len(inv.items))
	for name := range inv.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Quantity returns the quantity on hand, 0 if absent.
func (inv *Inventory) Quantity(name string) int {
	return inv.items[name]
}

// Has reports whether at least qty units of the ingredient are on hand.
func (inv *Inventory) Has(name string, qty int) bool {
	return inv.items[name] >= qty
}

// TotalItems returns the total unit count across all ingredients.
func (inv *Inventory) TotalItems() int {
	total := 0
	for _, qty := range inv.items {
		total += qty
	}
	return total
}

// UniqueItems returns the number of distinct ingredients on hand.
func (inv *Inventory) UniqueItems() int {
	return len(inv.items)
}

// IsEmpty reports whether nothing is on hand.
func (inv *Inventory) IsEmpty() bool {
	return len(inv.items) == 0
}

// Consume removes one unit of the ingredient.
// Returns false (and changes nothing) if it is not on hand.
func (inv *Inventory) Consume(name string) bool {
	if inv.items[name] < 1 {
		return false
	}
	inv.items[name]--
	if inv.items[name] == 0 {
		delete(inv.items, name)
	}
	return true
}

// ConsumeRecipe removes one unit per listed name, counting duplicates.
// The consumption is atomic: every required quantity is verified before
// anything is decremented, so a failed call leaves the inventory
// untouched.
func (inv *Inventory) ConsumeRecipe(names []string) bool {
	required := make(map[string]int, len(names))
	for _, name := range names {
		required[name]++
	}

	for name, qty := range required {
		if inv.items[name] < qty {
			return false
		}
	}

	for name, qty := range required {
		inv.items[name] -= qty
		if inv.items[name] == 0 {
			delete(inv.items, name)
		}
	}
	return true
}

// Clone returns an independent copy of the inventory.
func (inv *Inventory) Clone() *Inventory {
	items := make(map[string]int, len(inv.items))
	for name, qty := range inv.items {
		items[name] = qty
	}
	return &Inventory{items: items}
}

// String renders the inventory for logs and CLI output.
func (inv *Inventory) String() string {
	if inv.IsEmpty() {
		return "Inventory(empty)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Inventory(%d types, %d total)", inv.UniqueItems(), inv.TotalItems())
	for _, name := range inv.AvailableIngredients() {
		fmt.Fprintf(&b, "\n  %s: %d", name, inv.items[name])
	}
	return b.String()
}
