// Package selection holds the per-session rental selection: requested
// quantities per equipment item and the set of selected rental dates.
package selection

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spacehash/portal/internal/availability"
	"github.com/spacehash/portal/internal/catalog"
)

// State is the mutable selection of one rental session. It is owned by a
// single browser session and mutated only by its user's requests, so it
// carries no locking of its own.
type State struct {
	Dates      []time.Time
	Quantities map[int]int
}

// NewState returns an empty selection.
func NewState() *State {
	return &State{Quantities: make(map[int]int)}
}

// AddDate inserts d into the selection, keeping the dates sorted ascending.
// The insert is rejected (no-op, returns false) when d is the zero date,
// unavailable, or already selected.
func (s *State) AddDate(d time.Time, ranges []catalog.UnavailableRange) bool {
	if d.IsZero() ||
		availability.IsDateUnavailable(d, ranges) ||
		availability.IsDateAlreadySelected(d, s.Dates) {
		return false
	}
	s.Dates = append(s.Dates, availability.DayOf(d))
	sort.Slice(s.Dates, func(i, j int) bool { return s.Dates[i].Before(s.Dates[j]) })
	return true
}

// RemoveDate removes the date at the given position. Out-of-range indexes
// are ignored.
func (s *State) RemoveDate(index int) {
	if index < 0 || index >= len(s.Dates) {
		return
	}
	s.Dates = append(s.Dates[:index], s.Dates[index+1:]...)
}

// ClearDates empties the date selection.
func (s *State) ClearDates() {
	s.Dates = nil
}

// SetQuantity parses raw as an integer (0 on parse failure), clamps it into
// [0, maxQty] and records it for the item. The stored quantity is returned.
func (s *State) SetQuantity(itemID int, raw string, maxQty int) int {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		qty = 0
	}
	if qty < 0 {
		qty = 0
	}
	if qty > maxQty {
		qty = maxQty
	}
	if s.Quantities == nil {
		s.Quantities = make(map[int]int)
	}
	s.Quantities[itemID] = qty
	return qty
}

// Qty returns the requested quantity for the item, 0 when unset.
func (s *State) Qty(itemID int) int {
	return s.Quantities[itemID]
}

// SelectedItems returns the catalog items with a positive quantity, in
// catalog order.
func (s *State) SelectedItems(items []catalog.EquipmentItem) []catalog.EquipmentItem {
	var selected []catalog.EquipmentItem
	for _, item := range items {
		if s.Qty(item.ID) > 0 {
			selected = append(selected, item)
		}
	}
	return selected
}

// PerDayTotal is the sum of quantity x daily cost across selected items.
// It is a daily rate: multi-day totals multiply this by the date count.
func (s *State) PerDayTotal(items []catalog.EquipmentItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(s.Qty(item.ID)) * item.Cost
	}
	return total
}

// HasSelections reports whether any item has a positive quantity.
func (s *State) HasSelections() bool {
	for _, qty := range s.Quantities {
		if qty > 0 {
			return true
		}
	}
	return false
}

// HasDates reports whether at least one date is selected.
func (s *State) HasDates() bool {
	return len(s.Dates) > 0
}
