package service

import (
	"context"
	"testing"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory Repository Stub ─────────────────────────────────────────────────

type stubInventoryRepo struct {
	items     map[uuid.UUID]*model.InventoryItem
	movements []model.StockMovement
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

func (r *stubInventoryRepo) CreateItem(_ context.Context, item *model.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubInventoryRepo) FindItemByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubInventoryRepo) ListItems(_ context.Context) ([]model.InventoryItem, error) {
	out := make([]model.InventoryItem, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubInventoryRepo) ListLowStock(_ context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, i := range r.items {
		if i.CurrentStock.LessThanOrEqual(i.MinimumStock) {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) UpdateItem(_ context.Context, item *model.InventoryItem) (int64, error) {
	stored, ok := r.items[item.ID]
	if !ok {
		return 0, nil
	}
	// metadata columns only, current_stock stays — same contract as the repo
	stored.Name = item.Name
	stored.SKU = item.SKU
	stored.Unit = item.Unit
	stored.MinimumStock = item.MinimumStock
	stored.Category = item.Category
	return 1, nil
}

func (r *stubInventoryRepo) DeleteItem(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

func (r *stubInventoryRepo) CreateMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubInventoryRepo) UpdateBalanceTx(_ *gorm.DB, itemID uuid.UUID, newBalance decimal.Decimal) error {
	item, ok := r.items[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.CurrentStock = newBalance
	return nil
}

func (r *stubInventoryRepo) ListMovements(_ context.Context, limit int) ([]model.StockMovement, error) {
	if limit > len(r.movements) {
		limit = len(r.movements)
	}
	return r.movements[:limit], nil
}

func seedItem(repo *stubInventoryRepo, name, stock string) *model.InventoryItem {
	item := &model.InventoryItem{
		ID:           uuid.New(),
		Name:         name,
		Unit:         "m",
		CurrentStock: decimal.RequireFromString(stock),
	}
	repo.items[item.ID] = item
	return item
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestApplyMovementEntradaAddsBalance(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo)
	item := seedItem(repo, "Espuma D33", "10.000")

	resp, err := svc.ApplyMovement(context.Background(), dto.StockMovementRequest{
		ItemID:       item.ID.String(),
		MovementType: "entrada",
		Quantity:     decimal.RequireFromString("2.500"),
	})

	assert.NoError(t, err)
	assert.True(t, item.CurrentStock.Equal(decimal.RequireFromString("12.500")))
	assert.Len(t, repo.movements, 1)
	assert.Equal(t, "entrada", resp.MovementType)
	assert.Equal(t, "Espuma D33", resp.ItemName)
}

func TestApplyMovementSaidaSubtractsBalance(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo)
	item := seedItem(repo, "Tecido suede", "5.000")

	_, err := svc.ApplyMovement(context.Background(), dto.StockMovementRequest{
		ItemID:       item.ID.String(),
		MovementType: "saida",
		Quantity:     decimal.RequireFromString("5.000"),
	})

	assert.NoError(t, err)
	assert.True(t, item.CurrentStock.IsZero())
}

func TestApplyMovementRejectsOversell(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo)
	item := seedItem(repo, "Madeira pinus", "3.000")

	_, err := svc.ApplyMovement(context.Background(), dto.StockMovementRequest{
		ItemID:       item.ID.String(),
		MovementType: "saida",
		Quantity:     decimal.RequireFromString("3.001"),
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	// rejected movement leaves the ledger and the balance untouched
	assert.Empty(t, repo.movements)
	assert.True(t, item.CurrentStock.Equal(decimal.RequireFromString("3.000")))
}

func TestApplyMovementRejectsNonPositiveQuantity(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo)
	item := seedItem(repo, "Grampo", "100")

	_, err := svc.ApplyMovement(context.Background(), dto.StockMovementRequest{
		ItemID:       item.ID.String(),
		MovementType: "entrada",
		Quantity:     decimal.Zero,
	})
	assert.EqualError(t, err, "Quantidade deve ser maior que zero")

	_, err = svc.ApplyMovement(context.Background(), dto.StockMovementRequest{
		ItemID:       item.ID.String(),
		MovementType: "saida",
		Quantity:     decimal.RequireFromString("-1"),
	})
	assert.EqualError(t, err, "Quantidade deve ser maior que zero")
	assert.Empty(t, repo.movements)
}

func TestApplyMovementRejectsUnknownType(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo)
	item := seedItem(repo, "Cola", "1")

	_, err := svc.ApplyMovement(context.Background(), dto.StockMovementRequest{
		ItemID:       item.ID.String(),
		MovementType: "ajuste",
		Quantity:     decimal.RequireFromString("1"),
	})
	assert.EqualError(t, err, "Tipo de movimentação inválido")
}

func TestApplyMovementUnknownItem(t *testing.T) {
	svc := NewInventoryService(newStubInventoryRepo())
	_, err := svc.ApplyMovement(context.Background(), dto.StockMovementRequest{
		ItemID:       uuid.New().String(),
		MovementType: "entrada",
		Quantity:     decimal.RequireFromString("1"),
	})
	assert.EqualError(t, err, "Item não encontrado")
}

func TestUpdateItemNeverTouchesBalance(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo)
	item := seedItem(repo, "Espuma D28", "7.000")

	_, err := svc.UpdateItem(context.Background(), item.ID, dto.UpdateInventoryItemRequest{
		Name:         "Espuma D28 premium",
		Unit:         "m2",
		MinimumStock: decimal.RequireFromString("2"),
	})

	assert.NoError(t, err)
	assert.True(t, repo.items[item.ID].CurrentStock.Equal(decimal.RequireFromString("7.000")))
	assert.Equal(t, "Espuma D28 premium", repo.items[item.ID].Name)
}

func TestListLowStock(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo)

	low := seedItem(repo, "Tecido chenille", "1.000")
	low.MinimumStock = decimal.RequireFromString("5")
	ok := seedItem(repo, "Percinta", "50.000")
	ok.MinimumStock = decimal.RequireFromString("5")

	out, err := svc.ListLowStock(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Tecido chenille", out[0].Name)
}
