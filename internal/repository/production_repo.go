package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductionRepository interface {
	Create(ctx context.Context, o *model.ProductionOrder) error
	List(ctx context.Context) ([]model.ProductionOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionOrder, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type productionRepo struct{ db *gorm.DB }

func NewProductionRepository(db *gorm.DB) ProductionRepository { return &productionRepo{db: db} }

func (r *productionRepo) Create(ctx context.Context, o *model.ProductionOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *productionRepo) List(ctx context.Context) ([]model.ProductionOrder, error) {
	var orders []model.ProductionOrder
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *productionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionOrder, error) {
	var order model.ProductionOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *productionRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.ProductionOrder{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *productionRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.ProductionOrder{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
