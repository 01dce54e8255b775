package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubMemberRepo struct {
	members map[uuid.UUID]*model.Member
}

func newStubMemberRepo() *stubMemberRepo {
	return &stubMemberRepo{members: make(map[uuid.UUID]*model.Member)}
}

func (r *stubMemberRepo) Create(_ context.Context, m *model.Member) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	for _, existing := range r.members {
		if strings.EqualFold(existing.Email, m.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.members[m.ID] = m
	return nil
}

func (r *stubMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMemberRepo) FindByEmail(_ context.Context, email string) (*model.Member, error) {
	for _, m := range r.members {
		if strings.EqualFold(m.Email, email) {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMemberRepo) List(_ context.Context) ([]model.Member, error) {
	out := make([]model.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMemberRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	m, ok := r.members[id]
	if !ok {
		return 0, nil
	}
	if email, ok := fields["email"].(string); ok {
		for _, existing := range r.members {
			if existing.ID != id && strings.EqualFold(existing.Email, email) {
				return 0, gorm.ErrDuplicatedKey
			}
		}
		m.Email = email
	}
	if name, ok := fields["name"].(string); ok {
		m.Name = name
	}
	if phone, ok := fields["phone"].(*string); ok {
		m.Phone = phone
	}
	return 1, nil
}

func TestCreateMemberDuplicateEmail(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewMemberService(repo)

	_, err := svc.Create(context.Background(), dto.MemberRequest{
		Name:  "João",
		Email: "joao@exemplo.com.br",
	})
	assert.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.MemberRequest{
		Name:  "Outro João",
		Email: "JOAO@exemplo.com.br",
	})
	assert.ErrorIs(t, err, ErrMemberEmailTaken)
	assert.Len(t, repo.members, 1)
}

func TestUpdateMemberEmailCollision(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewMemberService(repo)

	first, err := svc.Create(context.Background(), dto.MemberRequest{Name: "João", Email: "joao@exemplo.com.br"})
	assert.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.MemberRequest{Name: "Ana", Email: "ana@exemplo.com.br"})
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.MustParse(first.ID), dto.MemberRequest{
		Name:  "João",
		Email: "ana@exemplo.com.br",
	})
	assert.ErrorIs(t, err, ErrMemberEmailTaken)
}

func TestGetMemberNotFound(t *testing.T) {
	svc := NewMemberService(newStubMemberRepo())
	_, err := svc.Get(context.Background(), uuid.New())
	assert.EqualError(t, err, "Membro não encontrado")
}
