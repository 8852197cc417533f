package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pantrylab/inventory-service/internal/model"
	"github.com/shopspring/decimal"
)

func getPostgresDB(t *testing.T) *sqlx.DB {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=pantry password=pantry dbname=pantry_inventory sslmode=disable"
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS inventory (
            id         TEXT PRIMARY KEY,
            name       TEXT NOT NULL,
            price      NUMERIC(12,2) NOT NULL,
            quantity   BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	db.Exec(`DELETE FROM inventory WHERE name LIKE 'repo-test-%'`)

	return db
}

func newTestItem(name string, price string, quantity int64) *model.InventoryItem {
	now := time.Now()
	return &model.InventoryItem{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndFindByName(t *testing.T) {
	db := getPostgresDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewPGRepository(db)

	item := newTestItem("repo-test-apples", "2.50", 1)
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByName(ctx, "repo-test-apples")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected item, got nil")
	}
	if found.ID != item.ID {
		t.Errorf("expected id %s, got %s", item.ID, found.ID)
	}
	if !found.Price.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("expected price 2.50, got %s", found.Price)
	}
	if found.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", found.Quantity)
	}
}

func TestFindByName_NotFoundReturnsNil(t *testing.T) {
	db := getPostgresDB(t)
	defer db.Close()

	repo := NewPGRepository(db)
	found, err := repo.FindByName(context.Background(), "repo-test-missing")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil, got %+v", found)
	}
}

func TestUpsertQuantity(t *testing.T) {
	db := getPostgresDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewPGRepository(db)

	item := newTestItem("repo-test-bread", "1.20", 1)
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpsertQuantity(ctx, item.ID, 4); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	found, err := repo.FindByID(ctx, item.ID)
	if err != nil || found == nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", found.Quantity)
	}
	if !found.Price.Equal(decimal.RequireFromString("1.20")) {
		t.Errorf("price must be untouched, got %s", found.Price)
	}
}

func TestUpsertPriceAndQuantity(t *testing.T) {
	db := getPostgresDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewPGRepository(db)

	item := newTestItem("repo-test-milk", "0.99", 2)
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpsertPriceAndQuantity(ctx, item.ID, decimal.RequireFromString("1.49"), 3); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	found, err := repo.FindByID(ctx, item.ID)
	if err != nil || found == nil {
		t.Fatalf("find failed: %v", err)
	}
	if !found.Price.Equal(decimal.RequireFromString("1.49")) {
		t.Errorf("expected price 1.49, got %s", found.Price)
	}
	if found.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", found.Quantity)
	}
}

func TestDeleteRemovesFromListing(t *testing.T) {
	db := getPostgresDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewPGRepository(db)

	item := newTestItem("repo-test-eggs", "3.10", 1)
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	items, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, it := range items {
		if it.ID == item.ID {
			t.Error("deleted item still present in listing")
		}
	}
}
