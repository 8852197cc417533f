package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is one row of the inventory collection. Quantity is at
// least 1 while the row exists; hitting zero deletes the row instead.
type InventoryItem struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
