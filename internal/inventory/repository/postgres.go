package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pantrylab/inventory-service/internal/model"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListAll(ctx context.Context) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	query := `SELECT * FROM inventory ORDER BY created_at ASC`
	err := r.DB.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	query := `SELECT * FROM inventory WHERE name = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &item, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	query := `SELECT * FROM inventory WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
        INSERT INTO inventory (id, name, price, quantity, created_at, updated_at)
        VALUES (:id, :name, :price, :quantity, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGRepository) UpsertQuantity(ctx context.Context, id string, quantity int64) error {
	query := `UPDATE inventory SET quantity = $2, updated_at = $3 WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, quantity, time.Now())
	return err
}

func (r *PGRepository) UpsertPriceAndQuantity(ctx context.Context, id string, price decimal.Decimal, quantity int64) error {
	query := `UPDATE inventory SET price = $2, quantity = $3, updated_at = $4 WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, price, quantity, time.Now())
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM inventory WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}
