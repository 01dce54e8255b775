package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// CreateTx inserts the sale row inside the caller's transaction.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	CreateItemTx(tx *gorm.DB, item *model.SaleItem) error
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	ListByDateRange(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, error)
	ListItemsBySale(ctx context.Context, saleID uuid.UUID) ([]model.SaleItem, error)
	CreateItems(ctx context.Context, items []model.SaleItem) error

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) CreateItemTx(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Create(item).Error
}

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) ListByDateRange(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", filter.Start, filter.End).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListItemsBySale(ctx context.Context, saleID uuid.UUID) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.db.WithContext(ctx).Where("sale_id = ?", saleID).Find(&items).Error
	return items, err
}

// CreateItems batch-inserts pre-built sale items in one transaction.
func (r *saleRepo) CreateItems(ctx context.Context, items []model.SaleItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
