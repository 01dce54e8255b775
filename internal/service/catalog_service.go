package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CatalogOrderService interface {
	// Create assigns the next YYYYMMDD-NNNN order number and persists the
	// order with its cart snapshot. Staff gets a notification email.
	Create(ctx context.Context, req dto.CreateCatalogOrderRequest) (*dto.CatalogOrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CatalogOrderResponse, error)
	List(ctx context.Context) ([]dto.CatalogOrderResponse, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]dto.CatalogOrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.CatalogOrderResponse, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, progress string) (*dto.CatalogOrderResponse, error)
}

type catalogOrderService struct {
	repo       repository.CatalogOrderRepository
	dispatcher *worker.Dispatcher
}

func NewCatalogOrderService(repo repository.CatalogOrderRepository, dispatcher *worker.Dispatcher) CatalogOrderService {
	return &catalogOrderService{repo: repo, dispatcher: dispatcher}
}

// ── Create ────────────────────────────────────────────────────────────────────
// The number is assigned inside the same transaction that inserts the order:
// read the highest suffix for today's prefix, add one, pad to four digits.
// Concurrent submissions racing to the same number hit the unique index on
// order_number and roll back instead of silently duplicating.

func (s *catalogOrderService) Create(ctx context.Context, req dto.CreateCatalogOrderRequest) (*dto.CatalogOrderResponse, error) {
	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return nil, err
	}

	var memberID *uuid.UUID
	if req.MemberID != nil {
		mid, err := uuid.Parse(*req.MemberID)
		if err != nil {
			return nil, fmt.Errorf("member_id inválido: %w", err)
		}
		memberID = &mid
	}

	order := model.CatalogOrder{
		MemberID:       memberID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		ItemsJSON:      string(itemsJSON),
		Total:          req.Total,
		Status:         "pending",
		ProgressStatus: "em_producao",
		Notes:          req.Notes,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		prefix := time.Now().Format("20060102")
		last, err := s.repo.LastOrderNumberTx(tx, prefix)
		if err != nil {
			return err
		}
		order.OrderNumber = nextOrderNumber(prefix, last)
		return s.repo.CreateTx(tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		payload := map[string]interface{}{
			"kind":         "catalog_order",
			"order_number": order.OrderNumber,
			"total":        order.Total.StringFixed(2),
		}
		if req.CustomerName != nil {
			payload["customer_name"] = *req.CustomerName
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Warn().Err(err).Str("order", order.OrderNumber).Msg("failed to enqueue order notification")
		}
	}

	return catalogOrderToResponse(&order), nil
}

// nextOrderNumber increments the numeric suffix of last, or starts at 0001
// when last is empty or malformed.
func nextOrderNumber(prefix, last string) string {
	seq := 1
	if last != "" {
		parts := strings.SplitN(last, "-", 2)
		if len(parts) == 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

func (s *catalogOrderService) Get(ctx context.Context, id uuid.UUID) (*dto.CatalogOrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Pedido não encontrado")
	}
	return catalogOrderToResponse(order), nil
}

func (s *catalogOrderService) List(ctx context.Context) ([]dto.CatalogOrderResponse, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalogOrdersToResponses(orders), nil
}

func (s *catalogOrderService) ListByMember(ctx context.Context, memberID uuid.UUID) ([]dto.CatalogOrderResponse, error) {
	orders, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return catalogOrdersToResponses(orders), nil
}

func (s *catalogOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.CatalogOrderResponse, error) {
	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Pedido não encontrado")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return catalogOrderToResponse(order), nil
}

func (s *catalogOrderService) UpdateProgress(ctx context.Context, id uuid.UUID, progress string) (*dto.CatalogOrderResponse, error) {
	affected, err := s.repo.UpdateProgress(ctx, id, progress)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Pedido não encontrado")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return catalogOrderToResponse(order), nil
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func catalogOrderToResponse(o *model.CatalogOrder) *dto.CatalogOrderResponse {
	var items []dto.CatalogOrderItem
	_ = json.Unmarshal([]byte(o.ItemsJSON), &items)

	var memberID *string
	if o.MemberID != nil {
		s := o.MemberID.String()
		memberID = &s
	}
	return &dto.CatalogOrderResponse{
		ID:             o.ID.String(),
		OrderNumber:    o.OrderNumber,
		MemberID:       memberID,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		Items:          items,
		Total:          o.Total,
		Status:         o.Status,
		ProgressStatus: o.ProgressStatus,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func catalogOrdersToResponses(orders []model.CatalogOrder) []dto.CatalogOrderResponse {
	out := make([]dto.CatalogOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *catalogOrderToResponse(&orders[i]))
	}
	return out
}
