// Package cart holds the per-session shopping cart and its quantity
// arithmetic.
package cart

import (
	"storefront/internal/model"
	"storefront/internal/pricing"
)

// Cart is the line list of one shopping session together with the running
// item count. Count is maintained incrementally and always equals the sum of
// line quantities.
//
// A Cart is not safe for concurrent use; callers serialise access per session.
type Cart struct {
	Lines []model.CartLine `json:"items"`
	Count int              `json:"count"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Lines: []model.CartLine{}}
}

// AddItem adds one unit of the product. An existing line for the product is
// incremented; otherwise a new line with quantity 1 is appended.
func (c *Cart) AddItem(productID, price int64, name, image string) {
	if i := c.find(productID); i >= 0 {
		c.Lines[i].Quantity++
		c.Count++
		return
	}

	c.Lines = append(c.Lines, model.CartLine{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Image:     image,
		Quantity:  1,
	})
	c.Count++
}

// RemoveItem deletes the line for productID. It reports whether a line was
// removed.
func (c *Cart) RemoveItem(productID int64) bool {
	i := c.find(productID)
	if i < 0 {
		return false
	}

	c.Count -= c.Lines[i].Quantity
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// SetQuantity replaces the quantity of the line for productID. Quantities
// below 1 are ignored; callers remove the line instead. It reports whether
// the cart changed.
func (c *Cart) SetQuantity(productID int64, quantity int) bool {
	if quantity < 1 {
		return false
	}

	i := c.find(productID)
	if i < 0 {
		return false
	}

	c.Count += quantity - c.Lines[i].Quantity
	c.Lines[i].Quantity = quantity
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []model.CartLine{}
	c.Count = 0
}

// IsEmpty reports whether the cart holds no units.
func (c *Cart) IsEmpty() bool {
	return len(c.View()) == 0
}

// View returns the deduplicated lines. Every reader of the cart goes through
// View so state persisted with repeated entries is still presented merged.
func (c *Cart) View() []model.CartLine {
	return pricing.Merge(c.Lines)
}

// Snapshot returns an independent copy of the deduplicated lines.
func (c *Cart) Snapshot() []model.CartLine {
	view := c.View()
	snapshot := make([]model.CartLine, len(view))
	copy(snapshot, view)
	return snapshot
}

// Normalize merges duplicate lines, drops lines with a non-positive quantity
// and recomputes Count. It reports whether anything had to be repaired.
func (c *Cart) Normalize() bool {
	merged := pricing.Merge(c.Lines)
	kept := merged[:0]
	for _, line := range merged {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}

	count := pricing.ItemCount(kept)
	repaired := len(kept) != len(c.Lines) || count != c.Count
	c.Lines = kept
	c.Count = count
	return repaired
}

// Summary returns the read model for API callers.
func (c *Cart) Summary() model.CartView {
	view := c.View()
	return model.CartView{
		Items:    view,
		Count:    c.Count,
		Subtotal: pricing.Subtotal(view),
	}
}

func (c *Cart) find(productID int64) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
