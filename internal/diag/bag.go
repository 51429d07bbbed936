package diag

import (
	"fmt"
)

type Bag struct {
	items []*Diagnostic
	max   int
}

// NewBag returns a bag holding at most max diagnostics; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 {
		capacity = 16
	}
	return &Bag{
		items: make([]*Diagnostic, 0, capacity),
		max:   max,
	}
}

// Add appends a diagnostic unless the limit is reached.
// It returns false when the diagnostic was dropped.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Items returns the backing slice; do not modify it.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Dedup drops repeated diagnostics with the same ID, location and message.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]*Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%s", d.ID, d.Location.String(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}
