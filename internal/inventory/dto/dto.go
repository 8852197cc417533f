package dto

import (
	"github.com/pantrylab/inventory-service/internal/model"
	"github.com/shopspring/decimal"
)

type AddOutcome string

const (
	AddOutcomeCreated         AddOutcome = "created"
	AddOutcomeIncremented     AddOutcome = "incremented"
	AddOutcomeConflictPending AddOutcome = "conflict_pending"
)

// PendingConflict describes a re-added name that matched an existing
// item at a different price. Nothing has been written yet; the resolved
// quantity is applied whichever way the user decides.
type PendingConflict struct {
	ItemID           string          `json:"item_id"`
	Name             string          `json:"name"`
	OldPrice         decimal.Decimal `json:"old_price"`
	NewPrice         decimal.Decimal `json:"new_price"`
	ResolvedQuantity int64           `json:"resolved_quantity"`
}

type AddResult struct {
	Outcome  AddOutcome           `json:"outcome"`
	Item     *model.InventoryItem `json:"item,omitempty"`
	Conflict *PendingConflict     `json:"conflict,omitempty"`
}
