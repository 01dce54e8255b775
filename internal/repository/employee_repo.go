package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) error
	List(ctx context.Context, active *bool) ([]model.Employee, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Employee, error)
	UpdatePixKey(ctx context.Context, id uuid.UUID, pixKey *string) (int64, error)
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository { return &employeeRepo{db: db} }

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) List(ctx context.Context, active *bool) ([]model.Employee, error) {
	var employees []model.Employee
	q := r.db.WithContext(ctx)
	if active != nil {
		q = q.Where("active = ?", *active)
	}
	err := q.Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) UpdatePixKey(ctx context.Context, id uuid.UUID, pixKey *string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("id = ?", id).
		Update("pix_key", pixKey)
	return res.RowsAffected, res.Error
}

// ─── Time records ────────────────────────────────────────────────────────────

type TimeRecordRepository interface {
	Create(ctx context.Context, t *model.TimeRecord) error
	List(ctx context.Context, limit int) ([]model.TimeRecord, error)
	Update(ctx context.Context, t *model.TimeRecord) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type timeRecordRepo struct{ db *gorm.DB }

func NewTimeRecordRepository(db *gorm.DB) TimeRecordRepository { return &timeRecordRepo{db: db} }

func (r *timeRecordRepo) Create(ctx context.Context, t *model.TimeRecord) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *timeRecordRepo) List(ctx context.Context, limit int) ([]model.TimeRecord, error) {
	var records []model.TimeRecord
	err := r.db.WithContext(ctx).
		Order("record_date DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *timeRecordRepo) Update(ctx context.Context, t *model.TimeRecord) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TimeRecord{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"employee_id": t.EmployeeID,
			"record_date": t.RecordDate,
			"clock_in":    t.ClockIn,
			"lunch_out":   t.LunchOut,
			"lunch_in":    t.LunchIn,
			"clock_out":   t.ClockOut,
			"notes":       t.Notes,
		})
	return res.RowsAffected, res.Error
}

func (r *timeRecordRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.TimeRecord{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
