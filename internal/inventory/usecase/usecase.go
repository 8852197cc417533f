package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pantrylab/inventory-service/internal/inventory"
	"github.com/pantrylab/inventory-service/internal/inventory/dto"
	"github.com/pantrylab/inventory-service/internal/model"
	"github.com/pantrylab/inventory-service/pkg/cache"
	"github.com/pantrylab/inventory-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	listCacheKey = "inventory:list"
	listCacheTTL = 5 * time.Minute
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

// NewInventoryUseCase builds the reconciliation core. A nil cache
// disables list caching.
func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *inventoryUseCase) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, listCacheKey).Result()
		if err == nil {
			var items []model.InventoryItem
			if err := json.Unmarshal([]byte(val), &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			uc.cache.Client.Set(ctx, listCacheKey, data, listCacheTTL)
		}
	}

	return items, nil
}

func (uc *inventoryUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.AddResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, inventory.ErrNameRequired
	}

	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil || price.IsNegative() {
		return nil, inventory.ErrInvalidPrice
	}

	// Dedup match is exact on the trimmed name, unlike search which is
	// case-insensitive.
	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		now := time.Now()
		item := &model.InventoryItem{
			ID:        uuid.New().String(),
			Name:      name,
			Price:     price,
			Quantity:  1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.repo.Create(ctx, item); err != nil {
			return nil, err
		}
		uc.invalidateListCache(ctx)
		return &dto.AddResult{Outcome: dto.AddOutcomeCreated, Item: item}, nil
	}

	resolved := existing.Quantity + 1

	if existing.Price.Equal(price) {
		if err := uc.repo.UpsertQuantity(ctx, existing.ID, resolved); err != nil {
			return nil, err
		}
		uc.invalidateListCache(ctx)
		existing.Quantity = resolved
		return &dto.AddResult{Outcome: dto.AddOutcomeIncremented, Item: existing}, nil
	}

	// Different price: nothing is written until the conflict is resolved.
	return &dto.AddResult{
		Outcome: dto.AddOutcomeConflictPending,
		Conflict: &dto.PendingConflict{
			ItemID:           existing.ID,
			Name:             name,
			OldPrice:         existing.Price,
			NewPrice:         price,
			ResolvedQuantity: resolved,
		},
	}, nil
}

func (uc *inventoryUseCase) ConfirmConflict(ctx context.Context, c *dto.PendingConflict) error {
	if err := uc.repo.UpsertPriceAndQuantity(ctx, c.ItemID, c.NewPrice, c.ResolvedQuantity); err != nil {
		return err
	}
	uc.invalidateListCache(ctx)
	uc.logger.Info("price conflict confirmed",
		zap.String("item_id", c.ItemID),
		zap.String("new_price", c.NewPrice.String()),
	)
	return nil
}

func (uc *inventoryUseCase) CancelConflict(ctx context.Context, c *dto.PendingConflict) error {
	if err := uc.repo.UpsertQuantity(ctx, c.ItemID, c.ResolvedQuantity); err != nil {
		return err
	}
	uc.invalidateListCache(ctx)
	return nil
}

func (uc *inventoryUseCase) IncrementQuantity(ctx context.Context, id string) error {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return inventory.ErrItemNotFound
	}

	if err := uc.repo.UpsertQuantity(ctx, id, item.Quantity+1); err != nil {
		return err
	}
	uc.invalidateListCache(ctx)
	return nil
}

func (uc *inventoryUseCase) DecrementQuantity(ctx context.Context, id string) error {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return inventory.ErrItemNotFound
	}

	// Quantity never persists at zero; the row is removed instead.
	if item.Quantity-1 <= 0 {
		if err := uc.repo.Delete(ctx, id); err != nil {
			return err
		}
	} else {
		if err := uc.repo.UpsertQuantity(ctx, id, item.Quantity-1); err != nil {
			return err
		}
	}
	uc.invalidateListCache(ctx)
	return nil
}

func (uc *inventoryUseCase) RemoveItem(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateListCache(ctx)
	return nil
}

func (uc *inventoryUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, listCacheKey).Err(); err != nil {
		uc.logger.Warn("failed to invalidate list cache", zap.Error(err))
	}
}
