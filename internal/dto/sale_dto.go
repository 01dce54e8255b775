package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID   *string         `json:"product_id"   validate:"omitempty,uuid"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"   validate:"min=0"`
	TotalPrice  decimal.Decimal `json:"total_price"  validate:"min=0"`
	Notes       *string         `json:"notes"`
}

// CompleteSaleRequest is the body of POST /api/sales/complete — the one
// multi-entity transaction in the system.
// PaymentMethod is free text: dinheiro/cartao/pix map to their session
// buckets, anything else accumulates into total_other.
type CompleteSaleRequest struct {
	SaleNumber    string            `json:"sale_number"    validate:"required"`
	CustomerID    *string           `json:"customer_id"    validate:"omitempty,uuid"`
	SessionID     *string           `json:"session_id"     validate:"omitempty,uuid"`
	Subtotal      decimal.Decimal   `json:"subtotal"       validate:"min=0"`
	Discount      decimal.Decimal   `json:"discount"       validate:"min=0"`
	Total         decimal.Decimal   `json:"total"          validate:"min=0"`
	PaymentMethod string            `json:"payment_method"`
	PaymentStatus string            `json:"payment_status"`
	Notes         *string           `json:"notes"`
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
}

// CreateSaleRequest is the plain POST /api/sales body — a bare sale row with
// no items and no side effects.
type CreateSaleRequest struct {
	SaleNumber    string          `json:"sale_number"    validate:"required"`
	CustomerID    *string         `json:"customer_id"    validate:"omitempty,uuid"`
	SessionID     *string         `json:"session_id"     validate:"omitempty,uuid"`
	Subtotal      decimal.Decimal `json:"subtotal"       validate:"min=0"`
	Discount      decimal.Decimal `json:"discount"       validate:"min=0"`
	Total         decimal.Decimal `json:"total"          validate:"min=0"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	SoldBy        *string         `json:"sold_by"`
	Notes         *string         `json:"notes"`
}

// SaleItemsBatchRequest inserts pre-built sale items (POST /api/sale-items).
type SaleItemsBatchRequest []SaleItemRow

type SaleItemRow struct {
	SaleID      string          `json:"sale_id"      validate:"required,uuid"`
	ProductID   *string         `json:"product_id"   validate:"omitempty,uuid"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"   validate:"min=0"`
	TotalPrice  decimal.Decimal `json:"total_price"  validate:"min=0"`
	Notes       *string         `json:"notes"`
}

// SaleFilter is bound from query string of GET /api/sales.
// Empty bounds default to today.
type SaleFilter struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleResponse struct {
	ID            string          `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	CustomerID    *string         `json:"customer_id"`
	SessionID     *string         `json:"session_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	SoldBy        *string         `json:"sold_by"`
	Notes         *string         `json:"notes"`
	CreatedAt     string          `json:"created_at"`
}

type SaleItemResponse struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Notes       *string         `json:"notes"`
	CreatedAt   string          `json:"created_at"`
}
