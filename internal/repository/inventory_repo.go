package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryRepository covers inventory items and their movement ledger.
// Movement application runs inside a transaction owned by the service layer,
// so the write methods take an explicit tx.
type InventoryRepository interface {
	CreateItem(ctx context.Context, item *model.InventoryItem) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	ListItems(ctx context.Context) ([]model.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]model.InventoryItem, error)
	UpdateItem(ctx context.Context, item *model.InventoryItem) (int64, error)
	DeleteItem(ctx context.Context, id uuid.UUID) (int64, error)

	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error
	UpdateBalanceTx(tx *gorm.DB, itemID uuid.UUID, newBalance decimal.Decimal) error
	ListMovements(ctx context.Context, limit int) ([]model.StockMovement, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) DB() *gorm.DB { return r.db }

func (r *inventoryRepo) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

func (r *inventoryRepo) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) ListLowStock(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("current_stock <= minimum_stock").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// UpdateItem edits metadata only — current_stock is deliberately excluded.
func (r *inventoryRepo) UpdateItem(ctx context.Context, item *model.InventoryItem) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":          item.Name,
			"sku":           item.SKU,
			"unit":          item.Unit,
			"minimum_stock": item.MinimumStock,
			"category":      item.Category,
		})
	return res.RowsAffected, res.Error
}

func (r *inventoryRepo) DeleteItem(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.InventoryItem{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *inventoryRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *inventoryRepo) UpdateBalanceTx(tx *gorm.DB, itemID uuid.UUID, newBalance decimal.Decimal) error {
	return tx.Model(&model.InventoryItem{}).
		Where("id = ?", itemID).
		Update("current_stock", newBalance).Error
}

func (r *inventoryRepo) ListMovements(ctx context.Context, limit int) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Preload("Item").
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}
