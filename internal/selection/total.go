package selection

import (
	"github.com/pantrylab/inventory-service/internal/model"
	"github.com/shopspring/decimal"
)

// SelectedTotal sums price times quantity over the selected members of
// the filtered view. The filtered view, not the full inventory, is the
// iteration domain.
func SelectedTotal(filtered []model.InventoryItem, t *Tracker) decimal.Decimal {
	total := decimal.Zero
	for _, it := range filtered {
		if t.IsSelected(it.ID) {
			total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
		}
	}
	return total
}
