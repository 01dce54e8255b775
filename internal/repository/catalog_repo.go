package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogOrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.CatalogOrder) error
	// LastOrderNumberTx returns the lexicographically greatest order_number
	// with the given date prefix, or "" when none exists. Must run inside
	// the same transaction that inserts the new order.
	LastOrderNumberTx(tx *gorm.DB, prefix string) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CatalogOrder, error)
	List(ctx context.Context) ([]model.CatalogOrder, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.CatalogOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, progress string) (int64, error)

	DB() *gorm.DB
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogOrderRepository(db *gorm.DB) CatalogOrderRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) DB() *gorm.DB { return r.db }

func (r *catalogRepo) CreateTx(tx *gorm.DB, o *model.CatalogOrder) error {
	return tx.Create(o).Error
}

func (r *catalogRepo) LastOrderNumberTx(tx *gorm.DB, prefix string) (string, error) {
	var last string
	err := tx.Model(&model.CatalogOrder{}).
		Select("order_number").
		Where("order_number LIKE ?", prefix+"-%").
		Order("order_number DESC").
		Limit(1).
		Scan(&last).Error
	return last, err
}

func (r *catalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CatalogOrder, error) {
	var o model.CatalogOrder
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *catalogRepo) List(ctx context.Context) ([]model.CatalogOrder, error) {
	var orders []model.CatalogOrder
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *catalogRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.CatalogOrder, error) {
	var orders []model.CatalogOrder
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *catalogRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CatalogOrder{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *catalogRepo) UpdateProgress(ctx context.Context, id uuid.UUID, progress string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CatalogOrder{}).
		Where("id = ?", id).
		Update("progress_status", progress)
	return res.RowsAffected, res.Error
}
