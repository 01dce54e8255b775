package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CatalogOrderItem is one cart line of a public catalog submission. The
// whole slice is snapshotted into items_json — prices are whatever the
// catalog showed the customer at the time.
type CatalogOrderItem struct {
	ProductID  *string         `json:"product_id" validate:"omitempty,uuid"`
	Name       string          `json:"name"       validate:"required"`
	Quantity   int             `json:"quantity"   validate:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"unit_price" validate:"min=0"`
	TotalPrice decimal.Decimal `json:"total_price" validate:"min=0"`
}

type CreateCatalogOrderRequest struct {
	Items         []CatalogOrderItem `json:"items"          validate:"required,min=1,dive"`
	Total         decimal.Decimal    `json:"total"          validate:"min=0"`
	MemberID      *string            `json:"member_id"      validate:"omitempty,uuid"`
	CustomerName  *string            `json:"customer_name"`
	CustomerPhone *string            `json:"customer_phone"`
	Notes         *string            `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type UpdateOrderProgressRequest struct {
	ProgressStatus string `json:"progress_status" validate:"required,oneof=em_producao montagem pronto_entrega"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CatalogOrderResponse struct {
	ID             string             `json:"id"`
	OrderNumber    string             `json:"order_number"`
	MemberID       *string            `json:"member_id"`
	CustomerName   *string            `json:"customer_name"`
	CustomerPhone  *string            `json:"customer_phone"`
	Items          []CatalogOrderItem `json:"items"`
	Total          decimal.Decimal    `json:"total"`
	Status         string             `json:"status"`
	ProgressStatus string             `json:"progress_status"`
	Notes          *string            `json:"notes"`
	CreatedAt      string             `json:"created_at"`
}
