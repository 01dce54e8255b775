package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, m *model.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
}

type memberRepo struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) MemberRepository { return &memberRepo{db: db} }

func (r *memberRepo) Create(ctx context.Context, m *model.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *memberRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) List(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&members).Error
	return members, err
}

func (r *memberRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}
