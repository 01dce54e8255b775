package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInsufficientStock rejects a saída larger than the current balance.
var ErrInsufficientStock = errors.New("Quantidade indisponível em estoque")

type InventoryService interface {
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*dto.InventoryItemResponse, error)
	ListItems(ctx context.Context) ([]dto.InventoryItemResponse, error)
	ListLowStock(ctx context.Context) ([]dto.InventoryItemResponse, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	// ApplyMovement records an entrada or saída and moves the item balance,
	// atomically. A saída that would drive the balance negative is rejected
	// before anything is written.
	ApplyMovement(ctx context.Context, req dto.StockMovementRequest) (*dto.StockMovementResponse, error)
	ListMovements(ctx context.Context, limit int) ([]dto.StockMovementResponse, error)
}

type inventoryService struct {
	repo repository.InventoryRepository
}

func NewInventoryService(repo repository.InventoryRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	unit := req.Unit
	if unit == "" {
		unit = "un"
	}
	item := model.InventoryItem{
		Name:         req.Name,
		SKU:          req.SKU,
		Unit:         unit,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
		Category:     req.Category,
	}
	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}
	return itemToResponse(&item), nil
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (*dto.InventoryItemResponse, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return nil, errors.New("Item não encontrado")
	}
	return itemToResponse(item), nil
}

func (s *inventoryService) ListItems(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *itemToResponse(&items[i]))
	}
	return out, nil
}

func (s *inventoryService) ListLowStock(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *itemToResponse(&items[i]))
	}
	return out, nil
}

// UpdateItem edits metadata only. The balance never moves through here.
func (s *inventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item := model.InventoryItem{
		ID:           id,
		Name:         req.Name,
		SKU:          req.SKU,
		Unit:         req.Unit,
		MinimumStock: req.MinimumStock,
		Category:     req.Category,
	}
	affected, err := s.repo.UpdateItem(ctx, &item)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Item não encontrado")
	}
	updated, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return itemToResponse(updated), nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("Item não encontrado")
	}
	return nil
}

// ── ApplyMovement ─────────────────────────────────────────────────────────────
// Lookup → validate → insert movement + persist balance, both in one
// transaction. The movement row and the balance change commit together or
// not at all.

func (s *inventoryService) ApplyMovement(ctx context.Context, req dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("item_id inválido: %w", err)
	}
	if req.Quantity.IsNegative() || req.Quantity.IsZero() {
		return nil, errors.New("Quantidade deve ser maior que zero")
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, errors.New("Item não encontrado")
	}

	newBalance := item.CurrentStock
	switch req.MovementType {
	case "entrada":
		newBalance = newBalance.Add(req.Quantity)
	case "saida":
		newBalance = newBalance.Sub(req.Quantity)
		if newBalance.IsNegative() {
			return nil, ErrInsufficientStock
		}
	default:
		return nil, errors.New("Tipo de movimentação inválido")
	}

	movement := model.StockMovement{
		ItemID:       itemID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Notes:        req.Notes,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateMovementTx(tx, &movement); err != nil {
			return err
		}
		return s.repo.UpdateBalanceTx(tx, itemID, newBalance)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movementToResponse(&movement)
	resp.ItemName = item.Name
	return resp, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, limit int) ([]dto.StockMovementResponse, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	movements, err := s.repo.ListMovements(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		resp := movementToResponse(&movements[i])
		if movements[i].Item != nil {
			resp.ItemName = movements[i].Item.Name
		}
		out = append(out, *resp)
	}
	return out, nil
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func itemToResponse(i *model.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:           i.ID.String(),
		Name:         i.Name,
		SKU:          i.SKU,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		MinimumStock: i.MinimumStock,
		Category:     i.Category,
		CreatedAt:    i.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    i.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func movementToResponse(m *model.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:           m.ID.String(),
		ItemID:       m.ItemID.String(),
		MovementType: m.MovementType,
		Quantity:     m.Quantity,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
