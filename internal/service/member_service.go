package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMemberEmailTaken rejects registering an email twice. Handlers map it
// to 409.
var ErrMemberEmailTaken = errors.New("E-mail já cadastrado")

type MemberService interface {
	Create(ctx context.Context, req dto.MemberRequest) (*dto.MemberResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MemberResponse, error)
	List(ctx context.Context) ([]dto.MemberResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.MemberRequest) (*dto.MemberResponse, error)
}

type memberService struct {
	repo repository.MemberRepository
}

func NewMemberService(repo repository.MemberRepository) MemberService {
	return &memberService{repo: repo}
}

func (s *memberService) Create(ctx context.Context, req dto.MemberRequest) (*dto.MemberResponse, error) {
	member := model.Member{
		Name:   req.Name,
		Email:  strings.ToLower(req.Email),
		Phone:  req.Phone,
		Active: true,
	}
	if err := s.repo.Create(ctx, &member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMemberEmailTaken
		}
		return nil, err
	}
	return memberToResponse(&member), nil
}

func (s *memberService) Get(ctx context.Context, id uuid.UUID) (*dto.MemberResponse, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Membro não encontrado")
	}
	return memberToResponse(member), nil
}

func (s *memberService) List(ctx context.Context) ([]dto.MemberResponse, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, *memberToResponse(&members[i]))
	}
	return out, nil
}

func (s *memberService) Update(ctx context.Context, id uuid.UUID, req dto.MemberRequest) (*dto.MemberResponse, error) {
	fields := map[string]interface{}{
		"name":  req.Name,
		"email": strings.ToLower(req.Email),
		"phone": req.Phone,
	}
	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMemberEmailTaken
		}
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Membro não encontrado")
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return memberToResponse(member), nil
}

func memberToResponse(m *model.Member) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Active:    m.Active,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
