package inventory

import (
	"context"

	"github.com/pantrylab/inventory-service/internal/inventory/dto"
	"github.com/pantrylab/inventory-service/internal/model"
)

type UseCase interface {
	ListItems(ctx context.Context) ([]model.InventoryItem, error)

	// AddItem reconciles a raw add against the store: create on no match,
	// bump quantity on a matching price, or report a pending price
	// conflict without touching the store.
	AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.AddResult, error)

	// ConfirmConflict applies the new price together with the resolved
	// quantity; CancelConflict keeps the stored price and applies only
	// the resolved quantity.
	ConfirmConflict(ctx context.Context, c *dto.PendingConflict) error
	CancelConflict(ctx context.Context, c *dto.PendingConflict) error

	IncrementQuantity(ctx context.Context, id string) error
	DecrementQuantity(ctx context.Context, id string) error
	RemoveItem(ctx context.Context, id string) error
}
