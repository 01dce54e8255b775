package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/infra"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrSaleFailed is the only error the sale-completion endpoint surfaces.
// The real cause goes to the log; the client gets a stable message it can
// show at the PDV.
var ErrSaleFailed = errors.New("Erro ao finalizar venda")

type SaleService interface {
	// CompleteSale runs the full PDV checkout: sale + items + product stock
	// decrement + session totals, all in one transaction.
	CompleteSale(ctx context.Context, req dto.CompleteSaleRequest) (*dto.SaleResponse, error)
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	CreateSaleItems(ctx context.Context, req dto.SaleItemsBatchRequest) ([]dto.SaleItemResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, []dto.SaleItemResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) ([]dto.SaleResponse, error)
	ListSaleItems(ctx context.Context, saleID uuid.UUID) ([]dto.SaleItemResponse, error)
	// Receipt renders the thermal-style PDF for a completed sale.
	Receipt(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	sessionRepo repository.SessionRepository
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	sessionRepo repository.SessionRepository,
) SaleService {
	return &saleService{
		repo:        repo,
		productRepo: productRepo,
		sessionRepo: sessionRepo,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// paymentBucket maps a free-text payment method to a session totals column.
// Unknown methods land in total_other.
func paymentBucket(method string) string {
	switch method {
	case "dinheiro":
		return "total_cash"
	case "cartao":
		return "total_card"
	case "pix":
		return "total_pix"
	default:
		return "total_other"
	}
}

// ── CompleteSale ──────────────────────────────────────────────────────────────
// One transaction:
//   1. insert sale
//   2. insert each item (product_name snapshotted from the request)
//   3. decrement stock_quantity for items carrying a product_id (clamped at 0)
//   4. accumulate session totals into exactly one payment bucket, when the
//      referenced session is still open
// Any failure rolls everything back and surfaces ErrSaleFailed.

func (s *saleService) CompleteSale(ctx context.Context, req dto.CompleteSaleRequest) (*dto.SaleResponse, error) {
	var customerID, sessionID *uuid.UUID
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("customer_id inválido: %w", err)
		}
		customerID = &cid
	}
	if req.SessionID != nil {
		sid, err := uuid.Parse(*req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("session_id inválido: %w", err)
		}
		sessionID = &sid
	}

	status := req.PaymentStatus
	if status == "" {
		status = "pago"
	}
	method := req.PaymentMethod
	if method == "" {
		method = "dinheiro"
	}

	sale := model.Sale{
		SaleNumber:    req.SaleNumber,
		CustomerID:    customerID,
		SessionID:     sessionID,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Total:         req.Total,
		PaymentMethod: method,
		PaymentStatus: status,
		Notes:         req.Notes,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		for _, item := range req.Items {
			var productID *uuid.UUID
			if item.ProductID != nil {
				pid, err := uuid.Parse(*item.ProductID)
				if err != nil {
					return fmt.Errorf("product_id inválido: %w", err)
				}
				productID = &pid
			}
			row := model.SaleItem{
				SaleID:      sale.ID,
				ProductID:   productID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				TotalPrice:  item.TotalPrice,
				Notes:       item.Notes,
			}
			if err := s.repo.CreateItemTx(tx, &row); err != nil {
				return err
			}
			if productID != nil {
				if err := s.productRepo.DecrementStockClampedTx(tx, *productID, item.Quantity); err != nil {
					return err
				}
			}
		}

		if sessionID != nil {
			// Totals only accumulate against a session that is still open.
			// A stale or already-closed session id skips the update but the
			// sale still commits.
			_, err := s.sessionRepo.FindOpenByIDTx(tx, *sessionID)
			switch {
			case err == nil:
				bucket := paymentBucket(method)
				if err := s.sessionRepo.AccumulateTotalsTx(tx, *sessionID, bucket, req.Total); err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				log.Warn().Str("session_id", sessionID.String()).Msg("sale without open session, totals skipped")
			default:
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		log.Error().Err(txErr).Str("sale_number", req.SaleNumber).Msg("sale completion failed")
		return nil, ErrSaleFailed
	}

	// Re-read after commit so the response reflects persisted state.
	persisted, err := s.repo.FindByID(ctx, sale.ID)
	if err != nil {
		return saleToResponse(&sale), nil
	}
	return saleToResponse(persisted), nil
}

// CreateSale inserts a bare sale row with no items and no side effects.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	var customerID, sessionID *uuid.UUID
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("customer_id inválido: %w", err)
		}
		customerID = &cid
	}
	if req.SessionID != nil {
		sid, err := uuid.Parse(*req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("session_id inválido: %w", err)
		}
		sessionID = &sid
	}

	sale := model.Sale{
		SaleNumber:    req.SaleNumber,
		CustomerID:    customerID,
		SessionID:     sessionID,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		SoldBy:        req.SoldBy,
		Notes:         req.Notes,
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = "dinheiro"
	}
	if sale.PaymentStatus == "" {
		sale.PaymentStatus = "pago"
	}
	if err := s.repo.Create(ctx, &sale); err != nil {
		return nil, err
	}
	return saleToResponse(&sale), nil
}

func (s *saleService) CreateSaleItems(ctx context.Context, req dto.SaleItemsBatchRequest) ([]dto.SaleItemResponse, error) {
	items := make([]model.SaleItem, 0, len(req))
	for _, row := range req {
		saleID, err := uuid.Parse(row.SaleID)
		if err != nil {
			return nil, fmt.Errorf("sale_id inválido: %w", err)
		}
		var productID *uuid.UUID
		if row.ProductID != nil {
			pid, err := uuid.Parse(*row.ProductID)
			if err != nil {
				return nil, fmt.Errorf("product_id inválido: %w", err)
			}
			productID = &pid
		}
		items = append(items, model.SaleItem{
			SaleID:      saleID,
			ProductID:   productID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			TotalPrice:  row.TotalPrice,
			Notes:       row.Notes,
		})
	}
	if err := s.repo.CreateItems(ctx, items); err != nil {
		return nil, err
	}
	out := make([]dto.SaleItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *saleItemToResponse(&items[i]))
	}
	return out, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, []dto.SaleItemResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, errors.New("Venda não encontrada")
	}
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for i := range sale.Items {
		items = append(items, *saleItemToResponse(&sale.Items[i]))
	}
	return saleToResponse(sale), items, nil
}

// ListSales returns sales within [start, end] by created_at; both bounds
// default to today.
func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) ([]dto.SaleResponse, error) {
	today := time.Now().Format("2006-01-02")
	if filter.Start == "" {
		filter.Start = today
	}
	if filter.End == "" {
		filter.End = today
	}
	filter.Start += " 00:00:00"
	filter.End += " 23:59:59"

	sales, err := s.repo.ListByDateRange(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return out, nil
}

func (s *saleService) ListSaleItems(ctx context.Context, saleID uuid.UUID) ([]dto.SaleItemResponse, error) {
	items, err := s.repo.ListItemsBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *saleItemToResponse(&items[i]))
	}
	return out, nil
}

func (s *saleService) Receipt(ctx context.Context, id uuid.UUID) ([]byte, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Venda não encontrada")
	}
	lines := make([]infra.ReceiptLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, infra.ReceiptLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.TotalPrice,
		})
	}
	return infra.GenerateReceiptPDF(infra.ReceiptData{
		SaleNumber:    sale.SaleNumber,
		CreatedAt:     sale.CreatedAt,
		Lines:         lines,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
	})
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func saleToResponse(v *model.Sale) *dto.SaleResponse {
	var customerID, sessionID *string
	if v.CustomerID != nil {
		s := v.CustomerID.String()
		customerID = &s
	}
	if v.SessionID != nil {
		s := v.SessionID.String()
		sessionID = &s
	}
	return &dto.SaleResponse{
		ID:            v.ID.String(),
		SaleNumber:    v.SaleNumber,
		CustomerID:    customerID,
		SessionID:     sessionID,
		Subtotal:      v.Subtotal,
		Discount:      v.Discount,
		Total:         v.Total,
		PaymentMethod: v.PaymentMethod,
		PaymentStatus: v.PaymentStatus,
		SoldBy:        v.SoldBy,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func saleItemToResponse(i *model.SaleItem) *dto.SaleItemResponse {
	var productID *string
	if i.ProductID != nil {
		s := i.ProductID.String()
		productID = &s
	}
	return &dto.SaleItemResponse{
		ID:          i.ID.String(),
		SaleID:      i.SaleID.String(),
		ProductID:   productID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		TotalPrice:  i.TotalPrice,
		Notes:       i.Notes,
		CreatedAt:   i.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
