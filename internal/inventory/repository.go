package inventory

import (
	"context"

	"github.com/pantrylab/inventory-service/internal/model"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// ListAll returns a full snapshot of the collection.
	ListAll(ctx context.Context) ([]model.InventoryItem, error)

	// FindByName does an exact match on the stored (trimmed) name.
	// At most one row matches by the add-time uniqueness invariant.
	FindByName(ctx context.Context, name string) (*model.InventoryItem, error)
	FindByID(ctx context.Context, id string) (*model.InventoryItem, error)

	Create(ctx context.Context, item *model.InventoryItem) error

	// Partial writes: only the named fields are touched.
	UpsertQuantity(ctx context.Context, id string, quantity int64) error
	UpsertPriceAndQuantity(ctx context.Context, id string, price decimal.Decimal, quantity int64) error

	Delete(ctx context.Context, id string) error
}
