package engine

// Entry is a selected item together with its chosen quantity.
type Entry struct {
	Item     Item
	Quantity int
}

// Selection is an ordered set of selected items keyed by Item.Key.
// Iteration order is insertion order; re-selecting an item after
// removing it moves it to the end.
type Selection struct {
	order   []string
	entries map[string]*Entry
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{entries: make(map[string]*Entry)}
}

// Toggle flips the membership of an item. A newly selected item enters
// with quantity 1; toggling a selected item removes it entirely, so a
// later re-select starts at quantity 1 again. Returns whether the item
// is selected after the call.
func (s *Selection) Toggle(item Item) bool {
	key := item.Key()
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		for i, k := range s.order {
			if k == key {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}

	s.entries[key] = &Entry{Item: item, Quantity: 1}
	s.order = append(s.order, key)
	return true
}

// ChangeQuantity adjusts the quantity of a selected item by delta,
// never dropping below 1. Unknown keys are ignored: quantity controls
// never remove an item, only Toggle does.
func (s *Selection) ChangeQuantity(key string, delta int) {
	entry, ok := s.entries[key]
	if !ok {
		return
	}

	entry.Quantity += delta
	if entry.Quantity < 1 {
		entry.Quantity = 1
	}
}

// IsSelected reports whether the key is in the selection.
func (s *Selection) IsSelected(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Quantity returns the quantity for a key, or 0 if not selected.
func (s *Selection) Quantity(key string) int {
	if entry, ok := s.entries[key]; ok {
		return entry.Quantity
	}
	return 0
}

// Len returns the number of selected items.
func (s *Selection) Len() int {
	return len(s.order)
}

// Entries returns the selection in insertion order.
func (s *Selection) Entries() []Entry {
	results := make([]Entry, 0, len(s.order))
	for _, key := range s.order {
		results = append(results, *s.entries[key])
	}
	return results
}

// Total sums the selection in cents. With useQuantities set, each line
// contributes price times quantity; otherwise every line counts once
// regardless of its stored quantity.
func (s *Selection) Total(useQuantities bool) int64 {
	var total int64
	for _, key := range s.order {
		entry := s.entries[key]
		if useQuantities {
			total += entry.Item.PriceCents * int64(entry.Quantity)
		} else {
			total += entry.Item.PriceCents
		}
	}
	return total
}
