package service

import (
	"context"
	"errors"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
)

type ProductionService interface {
	Create(ctx context.Context, req dto.ProductionOrderRequest) (*dto.ProductionOrderResponse, error)
	List(ctx context.Context) ([]dto.ProductionOrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ProductionOrderRequest) (*dto.ProductionOrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productionService struct {
	repo repository.ProductionRepository
}

func NewProductionService(repo repository.ProductionRepository) ProductionService {
	return &productionService{repo: repo}
}

func (s *productionService) Create(ctx context.Context, req dto.ProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	status := req.Status
	if status == "" {
		status = "Em Produção"
	}
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	order := model.ProductionOrder{
		OrderNumber:  req.OrderNumber,
		ClientName:   req.ClientName,
		ProductName:  req.ProductName,
		Quantity:     quantity,
		Status:       status,
		DeliveryDate: req.DeliveryDate,
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, &order); err != nil {
		return nil, err
	}
	return productionOrderToResponse(&order), nil
}

func (s *productionService) List(ctx context.Context) ([]dto.ProductionOrderResponse, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *productionOrderToResponse(&orders[i]))
	}
	return out, nil
}

func (s *productionService) Update(ctx context.Context, id uuid.UUID, req dto.ProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	fields := map[string]interface{}{
		"order_number":  req.OrderNumber,
		"client_name":   req.ClientName,
		"product_name":  req.ProductName,
		"quantity":      req.Quantity,
		"status":        req.Status,
		"delivery_date": req.DeliveryDate,
		"notes":         req.Notes,
	}
	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Ordem de produção não encontrada")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productionOrderToResponse(order), nil
}

func (s *productionService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("Ordem de produção não encontrada")
	}
	return nil
}

func productionOrderToResponse(o *model.ProductionOrder) *dto.ProductionOrderResponse {
	return &dto.ProductionOrderResponse{
		ID:           o.ID.String(),
		OrderNumber:  o.OrderNumber,
		ClientName:   o.ClientName,
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		Status:       o.Status,
		DeliveryDate: o.DeliveryDate,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    o.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
