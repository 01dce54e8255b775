package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, s *model.CashRegisterSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashRegisterSession, error)
	// FindOpen returns the most recently opened session with status 'open'.
	FindOpen(ctx context.Context) (*model.CashRegisterSession, error)
	FindOpenByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CashRegisterSession, error)
	ListByDateRange(ctx context.Context, filter dto.SessionFilter) ([]model.CashRegisterSession, error)
	Close(ctx context.Context, s *model.CashRegisterSession) (int64, error)
	// AccumulateTotalsTx adds total to total_sales and to the given payment
	// bucket in one UPDATE — no read-then-write, so concurrent sales cannot
	// lose increments.
	AccumulateTotalsTx(tx *gorm.DB, id uuid.UUID, bucketColumn string, total decimal.Decimal) error
	OverwriteTotals(ctx context.Context, id uuid.UUID, req dto.SessionTotalsRequest) (int64, error)
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) Create(ctx context.Context, s *model.CashRegisterSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashRegisterSession, error) {
	var s model.CashRegisterSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *sessionRepo) FindOpen(ctx context.Context) (*model.CashRegisterSession, error) {
	var s model.CashRegisterSession
	err := r.db.WithContext(ctx).
		Where("status = 'open'").
		Order("opened_at DESC").
		First(&s).Error
	return &s, err
}

func (r *sessionRepo) FindOpenByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CashRegisterSession, error) {
	var s model.CashRegisterSession
	err := tx.Where("id = ? AND status = 'open'", id).First(&s).Error
	return &s, err
}

func (r *sessionRepo) ListByDateRange(ctx context.Context, filter dto.SessionFilter) ([]model.CashRegisterSession, error) {
	var sessions []model.CashRegisterSession
	err := r.db.WithContext(ctx).
		Where("opened_at BETWEEN ? AND ?", filter.Start, filter.End).
		Order("opened_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) Close(ctx context.Context, s *model.CashRegisterSession) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CashRegisterSession{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"closed_at":       s.ClosedAt,
			"closing_balance": s.ClosingBalance,
			"closed_by":       s.ClosedBy,
			"status":          s.Status,
			"notes":           s.Notes,
		})
	return res.RowsAffected, res.Error
}

func (r *sessionRepo) AccumulateTotalsTx(tx *gorm.DB, id uuid.UUID, bucketColumn string, total decimal.Decimal) error {
	return tx.Model(&model.CashRegisterSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_sales": gorm.Expr("total_sales + ?", total),
			bucketColumn:  gorm.Expr(bucketColumn+" + ?", total),
		}).Error
}

func (r *sessionRepo) OverwriteTotals(ctx context.Context, id uuid.UUID, req dto.SessionTotalsRequest) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CashRegisterSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_sales": req.TotalSales,
			"total_cash":  req.TotalCash,
			"total_card":  req.TotalCard,
			"total_pix":   req.TotalPix,
			"total_other": req.TotalOther,
		})
	return res.RowsAffected, res.Error
}
