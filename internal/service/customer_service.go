package service

import (
	"context"
	"errors"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CustomerRequest) (*dto.CustomerResponse, error)
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer := model.Customer{
		CompanyName: req.CompanyName,
		CNPJ:        req.CNPJ,
		Email:       req.Email,
		Phone:       req.Phone,
		Whatsapp:    req.Whatsapp,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, &customer); err != nil {
		return nil, err
	}
	return customerToResponse(&customer), nil
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *customerToResponse(&customers[i]))
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	fields := map[string]interface{}{
		"company_name": req.CompanyName,
		"cnpj":         req.CNPJ,
		"email":        req.Email,
		"phone":        req.Phone,
		"whatsapp":     req.Whatsapp,
		"address":      req.Address,
		"city":         req.City,
		"state":        req.State,
		"notes":        req.Notes,
	}
	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Cliente não encontrado")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("Cliente não encontrado")
	}
	return nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:          c.ID.String(),
		CompanyName: c.CompanyName,
		CNPJ:        c.CNPJ,
		Email:       c.Email,
		Phone:       c.Phone,
		Whatsapp:    c.Whatsapp,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
