package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoletoRepository interface {
	Create(ctx context.Context, b *model.Boleto) error
	List(ctx context.Context) ([]model.Boleto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Boleto, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// ListDueUnpaid returns unpaid boletos whose due date falls on or before
	// the given cutoff (YYYY-MM-DD). Used by the reminder cron.
	ListDueUnpaid(ctx context.Context, cutoff string) ([]model.Boleto, error)
}

type boletoRepo struct{ db *gorm.DB }

func NewBoletoRepository(db *gorm.DB) BoletoRepository { return &boletoRepo{db: db} }

func (r *boletoRepo) Create(ctx context.Context, b *model.Boleto) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *boletoRepo) List(ctx context.Context) ([]model.Boleto, error) {
	var boletos []model.Boleto
	err := r.db.WithContext(ctx).Order("due_date ASC").Find(&boletos).Error
	return boletos, err
}

func (r *boletoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Boleto, error) {
	var boleto model.Boleto
	err := r.db.WithContext(ctx).First(&boleto, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &boleto, nil
}

func (r *boletoRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Boleto{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *boletoRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Boleto{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *boletoRepo) ListDueUnpaid(ctx context.Context, cutoff string) ([]model.Boleto, error) {
	var boletos []model.Boleto
	err := r.db.WithContext(ctx).
		Where("is_paid = ? AND due_date <= ?", false, cutoff).
		Order("due_date ASC").
		Find(&boletos).Error
	return boletos, err
}
