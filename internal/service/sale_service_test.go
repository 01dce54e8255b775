package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory Repository Stubs ────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	items []model.SaleItem
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *stubSaleRepo) CreateItemTx(_ *gorm.DB, item *model.SaleItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	return r.CreateTx(nil, s)
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	for _, item := range r.items {
		if item.SaleID == id {
			cp.Items = append(cp.Items, item)
		}
	}
	return &cp, nil
}

func (r *stubSaleRepo) ListByDateRange(_ context.Context, _ dto.SaleFilter) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) ListItemsBySale(_ context.Context, saleID uuid.UUID) ([]model.SaleItem, error) {
	var out []model.SaleItem
	for _, item := range r.items {
		if item.SaleID == saleID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) CreateItems(_ context.Context, items []model.SaleItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	r.items = append(r.items, items...)
	return nil
}

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU != nil && *p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) ListActive(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) (int64, error) {
	if _, ok := r.products[p.ID]; !ok {
		return 0, nil
	}
	r.products[p.ID] = p
	return 1, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}

func (r *stubProductRepo) DecrementStockClampedTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity -= qty
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	return nil
}

type stubSessionRepo struct {
	sessions map[uuid.UUID]*model.CashRegisterSession
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[uuid.UUID]*model.CashRegisterSession)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *model.CashRegisterSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for _, existing := range r.sessions {
		if existing.Status == "open" {
			return gorm.ErrDuplicatedKey
		}
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashRegisterSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) FindOpen(_ context.Context) (*model.CashRegisterSession, error) {
	for _, s := range r.sessions {
		if s.Status == "open" {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSessionRepo) FindOpenByIDTx(_ *gorm.DB, id uuid.UUID) (*model.CashRegisterSession, error) {
	s, ok := r.sessions[id]
	if !ok || s.Status != "open" {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) ListByDateRange(_ context.Context, _ dto.SessionFilter) ([]model.CashRegisterSession, error) {
	out := make([]model.CashRegisterSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSessionRepo) Close(_ context.Context, s *model.CashRegisterSession) (int64, error) {
	if _, ok := r.sessions[s.ID]; !ok {
		return 0, nil
	}
	r.sessions[s.ID] = s
	return 1, nil
}

func (r *stubSessionRepo) AccumulateTotalsTx(_ *gorm.DB, id uuid.UUID, bucketColumn string, total decimal.Decimal) error {
	s, ok := r.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.TotalSales = s.TotalSales.Add(total)
	switch bucketColumn {
	case "total_cash":
		s.TotalCash = s.TotalCash.Add(total)
	case "total_card":
		s.TotalCard = s.TotalCard.Add(total)
	case "total_pix":
		s.TotalPix = s.TotalPix.Add(total)
	case "total_other":
		s.TotalOther = s.TotalOther.Add(total)
	default:
		return errors.New("unknown bucket: " + bucketColumn)
	}
	return nil
}

func (r *stubSessionRepo) OverwriteTotals(_ context.Context, id uuid.UUID, req dto.SessionTotalsRequest) (int64, error) {
	s, ok := r.sessions[id]
	if !ok {
		return 0, nil
	}
	s.TotalSales = req.TotalSales
	s.TotalCash = req.TotalCash
	s.TotalCard = req.TotalCard
	s.TotalPix = req.TotalPix
	s.TotalOther = req.TotalOther
	return 1, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func openTestSession(t *testing.T, repo *stubSessionRepo, opening string) *model.CashRegisterSession {
	t.Helper()
	session := &model.CashRegisterSession{
		ID:             uuid.New(),
		OpeningBalance: decimal.RequireFromString(opening),
		Status:         "open",
	}
	repo.sessions[session.ID] = session
	return session
}

func strPtr(s string) *string { return &s }

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestPaymentBucket(t *testing.T) {
	assert.Equal(t, "total_cash", paymentBucket("dinheiro"))
	assert.Equal(t, "total_card", paymentBucket("cartao"))
	assert.Equal(t, "total_pix", paymentBucket("pix"))
	assert.Equal(t, "total_other", paymentBucket("boleto"))
	assert.Equal(t, "total_other", paymentBucket("fiado"))
}

func TestCompleteSaleCreatesSaleAndItems(t *testing.T) {
	saleRepo := newStubSaleRepo()
	productRepo := newStubProductRepo()
	sessionRepo := newStubSessionRepo()
	svc := NewSaleService(saleRepo, productRepo, sessionRepo)

	product := &model.Product{ID: uuid.New(), Name: "Sofá 3 lugares", StockQuantity: 5, Active: true}
	productRepo.products[product.ID] = product
	pid := product.ID.String()

	resp, err := svc.CompleteSale(context.Background(), dto.CompleteSaleRequest{
		SaleNumber: "V-0001",
		Subtotal:   decimal.RequireFromString("3200.00"),
		Total:      decimal.RequireFromString("3200.00"),
		Items: []dto.SaleItemRequest{
			{ProductID: &pid, ProductName: "Sofá 3 lugares", Quantity: 2,
				UnitPrice: decimal.RequireFromString("1500.00"), TotalPrice: decimal.RequireFromString("3000.00")},
			{ProductName: "Entrega", Quantity: 1,
				UnitPrice: decimal.RequireFromString("200.00"), TotalPrice: decimal.RequireFromString("200.00")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "V-0001", resp.SaleNumber)
	assert.Len(t, saleRepo.items, 2)
	// stock decremented for the cataloged line only
	assert.Equal(t, 3, product.StockQuantity)
	// defaults applied
	assert.Equal(t, "dinheiro", resp.PaymentMethod)
	assert.Equal(t, "pago", resp.PaymentStatus)
}

func TestCompleteSaleClampsStockAtZero(t *testing.T) {
	saleRepo := newStubSaleRepo()
	productRepo := newStubProductRepo()
	svc := NewSaleService(saleRepo, productRepo, newStubSessionRepo())

	// only 1 in stock, sell 3 — the sale goes through and stock floors at 0
	product := &model.Product{ID: uuid.New(), Name: "Poltrona", StockQuantity: 1, Active: true}
	productRepo.products[product.ID] = product
	pid := product.ID.String()

	_, err := svc.CompleteSale(context.Background(), dto.CompleteSaleRequest{
		SaleNumber: "V-0002",
		Total:      decimal.RequireFromString("2400.00"),
		Items: []dto.SaleItemRequest{
			{ProductID: &pid, ProductName: "Poltrona", Quantity: 3,
				UnitPrice: decimal.RequireFromString("800.00"), TotalPrice: decimal.RequireFromString("2400.00")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, product.StockQuantity)
}

func TestCompleteSaleAccumulatesOneBucket(t *testing.T) {
	saleRepo := newStubSaleRepo()
	sessionRepo := newStubSessionRepo()
	svc := NewSaleService(saleRepo, newStubProductRepo(), sessionRepo)

	session := openTestSession(t, sessionRepo, "100.00")
	sid := session.ID.String()

	_, err := svc.CompleteSale(context.Background(), dto.CompleteSaleRequest{
		SaleNumber:    "V-0003",
		SessionID:     &sid,
		Total:         decimal.RequireFromString("50.00"),
		PaymentMethod: "pix",
		Items: []dto.SaleItemRequest{
			{ProductName: "Almofada", Quantity: 1,
				UnitPrice: decimal.RequireFromString("50.00"), TotalPrice: decimal.RequireFromString("50.00")},
		},
	})

	assert.NoError(t, err)
	assert.True(t, session.TotalSales.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, session.TotalPix.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, session.TotalCash.IsZero())
	assert.True(t, session.TotalCard.IsZero())
	assert.True(t, session.TotalOther.IsZero())
	// opening balance untouched by sales
	assert.True(t, session.OpeningBalance.Equal(decimal.RequireFromString("100.00")))
}

func TestCompleteSaleUnknownMethodGoesToOther(t *testing.T) {
	saleRepo := newStubSaleRepo()
	sessionRepo := newStubSessionRepo()
	svc := NewSaleService(saleRepo, newStubProductRepo(), sessionRepo)

	session := openTestSession(t, sessionRepo, "0")
	sid := session.ID.String()

	_, err := svc.CompleteSale(context.Background(), dto.CompleteSaleRequest{
		SaleNumber:    "V-0004",
		SessionID:     &sid,
		Total:         decimal.RequireFromString("10.00"),
		PaymentMethod: "boleto",
		Items: []dto.SaleItemRequest{
			{ProductName: "Tecido", Quantity: 1,
				UnitPrice: decimal.RequireFromString("10.00"), TotalPrice: decimal.RequireFromString("10.00")},
		},
	})

	assert.NoError(t, err)
	assert.True(t, session.TotalOther.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, session.TotalPix.IsZero())
}

func TestCompleteSaleClosedSessionSkipsTotals(t *testing.T) {
	saleRepo := newStubSaleRepo()
	sessionRepo := newStubSessionRepo()
	svc := NewSaleService(saleRepo, newStubProductRepo(), sessionRepo)

	// session closed between the PDV loading it and the checkout: the sale
	// still commits, only the totals update is skipped
	session := openTestSession(t, sessionRepo, "0")
	session.Status = "closed"
	sid := session.ID.String()

	resp, err := svc.CompleteSale(context.Background(), dto.CompleteSaleRequest{
		SaleNumber: "V-0005",
		SessionID:  &sid,
		Total:      decimal.RequireFromString("10.00"),
		Items: []dto.SaleItemRequest{
			{ProductName: "Tecido", Quantity: 1,
				UnitPrice: decimal.RequireFromString("10.00"), TotalPrice: decimal.RequireFromString("10.00")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "V-0005", resp.SaleNumber)
	assert.Len(t, saleRepo.sales, 1)
	assert.Len(t, saleRepo.items, 1)
	assert.True(t, session.TotalSales.IsZero())
}

func TestCompleteSaleUnknownSessionSkipsTotals(t *testing.T) {
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, newStubProductRepo(), newStubSessionRepo())

	sid := uuid.New().String()
	resp, err := svc.CompleteSale(context.Background(), dto.CompleteSaleRequest{
		SaleNumber: "V-0008",
		SessionID:  &sid,
		Total:      decimal.RequireFromString("25.00"),
		Items: []dto.SaleItemRequest{
			{ProductName: "Manta", Quantity: 1,
				UnitPrice: decimal.RequireFromString("25.00"), TotalPrice: decimal.RequireFromString("25.00")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, sid, *resp.SessionID)
	assert.Len(t, saleRepo.sales, 1)
}

func TestCompleteSaleInvalidSessionID(t *testing.T) {
	svc := NewSaleService(newStubSaleRepo(), newStubProductRepo(), newStubSessionRepo())
	bad := "not-a-uuid"
	_, err := svc.CompleteSale(context.Background(), dto.CompleteSaleRequest{
		SaleNumber: "V-0006",
		SessionID:  &bad,
		Items: []dto.SaleItemRequest{
			{ProductName: "Tecido", Quantity: 1},
		},
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSaleFailed)
}

func TestCreateSaleBareRowNoSideEffects(t *testing.T) {
	saleRepo := newStubSaleRepo()
	productRepo := newStubProductRepo()
	sessionRepo := newStubSessionRepo()
	svc := NewSaleService(saleRepo, productRepo, sessionRepo)

	product := &model.Product{ID: uuid.New(), Name: "Sofá", StockQuantity: 5, Active: true}
	productRepo.products[product.ID] = product
	session := openTestSession(t, sessionRepo, "0")
	sid := session.ID.String()

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		SaleNumber: "V-0007",
		SessionID:  &sid,
		Total:      decimal.RequireFromString("99.00"),
		SoldBy:     strPtr("maria"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "V-0007", resp.SaleNumber)
	assert.Empty(t, saleRepo.items)
	assert.Equal(t, 5, product.StockQuantity)
	assert.True(t, session.TotalSales.IsZero())
}

func TestCreateSaleItemsBatch(t *testing.T) {
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, newStubProductRepo(), newStubSessionRepo())

	saleID := uuid.New().String()
	out, err := svc.CreateSaleItems(context.Background(), dto.SaleItemsBatchRequest{
		{SaleID: saleID, ProductName: "Puff", Quantity: 2,
			UnitPrice: decimal.RequireFromString("120.00"), TotalPrice: decimal.RequireFromString("240.00")},
		{SaleID: saleID, ProductName: "Manta", Quantity: 1,
			UnitPrice: decimal.RequireFromString("80.00"), TotalPrice: decimal.RequireFromString("80.00")},
	})

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Len(t, saleRepo.items, 2)
	assert.Equal(t, saleID, out[0].SaleID)
}

func TestGetSaleNotFound(t *testing.T) {
	svc := NewSaleService(newStubSaleRepo(), newStubProductRepo(), newStubSessionRepo())
	_, _, err := svc.GetSale(context.Background(), uuid.New())
	assert.EqualError(t, err, "Venda não encontrada")
}
