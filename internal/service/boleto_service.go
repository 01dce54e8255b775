package service

import (
	"context"
	"errors"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
)

type BoletoService interface {
	Create(ctx context.Context, req dto.BoletoRequest) (*dto.BoletoResponse, error)
	List(ctx context.Context) ([]dto.BoletoResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.BoletoRequest) (*dto.BoletoResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListDueUnpaid feeds both the reports surface and the reminder cron.
	ListDueUnpaid(ctx context.Context, cutoff string) ([]dto.BoletoResponse, error)
}

type boletoService struct {
	repo repository.BoletoRepository
}

func NewBoletoService(repo repository.BoletoRepository) BoletoService {
	return &boletoService{repo: repo}
}

func (s *boletoService) Create(ctx context.Context, req dto.BoletoRequest) (*dto.BoletoResponse, error) {
	boleto := model.Boleto{
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Barcode:     req.Barcode,
		FileURL:     req.FileURL,
		Supplier:    req.Supplier,
		IsPaid:      req.IsPaid,
		PaidAt:      req.PaidAt,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, &boleto); err != nil {
		return nil, err
	}
	return boletoToResponse(&boleto), nil
}

func (s *boletoService) List(ctx context.Context) ([]dto.BoletoResponse, error) {
	boletos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return boletosToResponses(boletos), nil
}

func (s *boletoService) Update(ctx context.Context, id uuid.UUID, req dto.BoletoRequest) (*dto.BoletoResponse, error) {
	fields := map[string]interface{}{
		"description": req.Description,
		"amount":      req.Amount,
		"due_date":    req.DueDate,
		"barcode":     req.Barcode,
		"file_url":    req.FileURL,
		"supplier":    req.Supplier,
		"is_paid":     req.IsPaid,
		"paid_at":     req.PaidAt,
		"notes":       req.Notes,
	}
	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Boleto não encontrado")
	}
	boleto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return boletoToResponse(boleto), nil
}

func (s *boletoService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("Boleto não encontrado")
	}
	return nil
}

func (s *boletoService) ListDueUnpaid(ctx context.Context, cutoff string) ([]dto.BoletoResponse, error) {
	boletos, err := s.repo.ListDueUnpaid(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return boletosToResponses(boletos), nil
}

func boletoToResponse(b *model.Boleto) *dto.BoletoResponse {
	return &dto.BoletoResponse{
		ID:          b.ID.String(),
		Description: b.Description,
		Amount:      b.Amount,
		DueDate:     b.DueDate,
		Barcode:     b.Barcode,
		FileURL:     b.FileURL,
		Supplier:    b.Supplier,
		IsPaid:      b.IsPaid,
		PaidAt:      b.PaidAt,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func boletosToResponses(boletos []model.Boleto) []dto.BoletoResponse {
	out := make([]dto.BoletoResponse, 0, len(boletos))
	for i := range boletos {
		out = append(out, *boletoToResponse(&boletos[i]))
	}
	return out
}
