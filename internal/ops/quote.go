package ops

import (
	"github.com/spacehash/portal/internal/catalog"
	"github.com/spacehash/portal/internal/selection"
)

// newQuoteState builds a throwaway selection from a quote request, applying
// the same quantity clamping the rentals page applies.
func newQuoteState(cat *catalog.Catalog, req quoteRequest) *selection.State {
	state := selection.NewState()
	for _, entry := range req.Items {
		item, ok := cat.Item(entry.ID)
		if !ok {
			continue
		}
		state.SetQuantity(item.ID, entry.Quantity, item.MaxQty)
	}
	return state
}
