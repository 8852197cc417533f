package search

import (
	"strings"

	"github.com/pantrylab/inventory-service/internal/model"
)

// Filter returns the items whose name contains term, case-insensitive.
// An empty term returns the snapshot unchanged. Filtering is on-demand
// against the snapshot it was given; it is not re-applied when the
// inventory refreshes.
func Filter(term string, snapshot []model.InventoryItem) []model.InventoryItem {
	if term == "" {
		return snapshot
	}

	needle := strings.ToLower(term)
	out := []model.InventoryItem{}
	for _, it := range snapshot {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}
