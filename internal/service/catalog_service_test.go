package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory Repository Stub ─────────────────────────────────────────────────

type stubCatalogRepo struct {
	orders map[uuid.UUID]*model.CatalogOrder
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{orders: make(map[uuid.UUID]*model.CatalogOrder)}
}

func (r *stubCatalogRepo) DB() *gorm.DB { return nil }

func (r *stubCatalogRepo) CreateTx(_ *gorm.DB, o *model.CatalogOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for _, existing := range r.orders {
		if existing.OrderNumber == o.OrderNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *stubCatalogRepo) LastOrderNumberTx(_ *gorm.DB, prefix string) (string, error) {
	last := ""
	for _, o := range r.orders {
		if len(o.OrderNumber) > len(prefix) && o.OrderNumber[:len(prefix)] == prefix && o.OrderNumber > last {
			last = o.OrderNumber
		}
	}
	return last, nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CatalogOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubCatalogRepo) List(_ context.Context) ([]model.CatalogOrder, error) {
	out := make([]model.CatalogOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubCatalogRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]model.CatalogOrder, error) {
	var out []model.CatalogOrder
	for _, o := range r.orders {
		if o.MemberID != nil && *o.MemberID == memberID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (int64, error) {
	o, ok := r.orders[id]
	if !ok {
		return 0, nil
	}
	o.Status = status
	return 1, nil
}

func (r *stubCatalogRepo) UpdateProgress(_ context.Context, id uuid.UUID, progress string) (int64, error) {
	o, ok := r.orders[id]
	if !ok {
		return 0, nil
	}
	o.ProgressStatus = progress
	return 1, nil
}

func cartFixture() []dto.CatalogOrderItem {
	return []dto.CatalogOrderItem{
		{Name: "Sofá retrátil", Quantity: 1,
			UnitPrice: decimal.RequireFromString("4500.00"), TotalPrice: decimal.RequireFromString("4500.00")},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestNextOrderNumber(t *testing.T) {
	assert.Equal(t, "20260901-0001", nextOrderNumber("20260901", ""))
	assert.Equal(t, "20260901-0002", nextOrderNumber("20260901", "20260901-0001"))
	assert.Equal(t, "20260901-0100", nextOrderNumber("20260901", "20260901-0099"))
	assert.Equal(t, "20260901-10000", nextOrderNumber("20260901", "20260901-9999"))
	// malformed last restarts the sequence
	assert.Equal(t, "20260901-0001", nextOrderNumber("20260901", "garbage"))
}

func TestCreateCatalogOrderAssignsSequentialNumbers(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := NewCatalogOrderService(repo, nil)

	first, err := svc.Create(context.Background(), dto.CreateCatalogOrderRequest{
		Items: cartFixture(),
		Total: decimal.RequireFromString("4500.00"),
	})
	assert.NoError(t, err)

	second, err := svc.Create(context.Background(), dto.CreateCatalogOrderRequest{
		Items: cartFixture(),
		Total: decimal.RequireFromString("4500.00"),
	})
	assert.NoError(t, err)

	prefix := time.Now().Format("20060102")
	assert.Equal(t, prefix+"-0001", first.OrderNumber)
	assert.Equal(t, prefix+"-0002", second.OrderNumber)
}

func TestCreateCatalogOrderSnapshotsCart(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := NewCatalogOrderService(repo, nil)

	resp, err := svc.Create(context.Background(), dto.CreateCatalogOrderRequest{
		Items:        cartFixture(),
		Total:        decimal.RequireFromString("4500.00"),
		CustomerName: strPtr("João da Silva"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "em_producao", resp.ProgressStatus)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "Sofá retrátil", resp.Items[0].Name)

	// the stored row carries its own serialized copy of the cart
	stored := repo.orders[uuid.MustParse(resp.ID)]
	var snapshot []dto.CatalogOrderItem
	assert.NoError(t, json.Unmarshal([]byte(stored.ItemsJSON), &snapshot))
	assert.Equal(t, resp.Items, snapshot)
}

func TestCreateCatalogOrderInvalidMemberID(t *testing.T) {
	svc := NewCatalogOrderService(newStubCatalogRepo(), nil)
	bad := "not-a-uuid"
	_, err := svc.Create(context.Background(), dto.CreateCatalogOrderRequest{
		Items:    cartFixture(),
		MemberID: &bad,
	})
	assert.Error(t, err)
}

func TestUpdateStatusAndProgress(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := NewCatalogOrderService(repo, nil)

	created, err := svc.Create(context.Background(), dto.CreateCatalogOrderRequest{
		Items: cartFixture(),
	})
	assert.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.UpdateStatus(context.Background(), id, "accepted")
	assert.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)

	resp, err = svc.UpdateProgress(context.Background(), id, "pronto_entrega")
	assert.NoError(t, err)
	assert.Equal(t, "pronto_entrega", resp.ProgressStatus)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := NewCatalogOrderService(newStubCatalogRepo(), nil)
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "accepted")
	assert.EqualError(t, err, "Pedido não encontrado")
}

func TestListByMember(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := NewCatalogOrderService(repo, nil)

	memberID := uuid.New().String()
	_, err := svc.Create(context.Background(), dto.CreateCatalogOrderRequest{
		Items:    cartFixture(),
		MemberID: &memberID,
	})
	assert.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.CreateCatalogOrderRequest{
		Items: cartFixture(),
	})
	assert.NoError(t, err)

	out, err := svc.ListByMember(context.Background(), uuid.MustParse(memberID))
	assert.NoError(t, err)
	assert.Len(t, out, 1)
}
