package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateInventoryItemRequest struct {
	Name         string          `json:"name"          validate:"required"`
	SKU          *string         `json:"sku"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock" validate:"min=0"`
	MinimumStock decimal.Decimal `json:"minimum_stock" validate:"min=0"`
	Category     *string         `json:"category"`
}

// UpdateInventoryItemRequest edits item metadata only. The balance is never
// touched here — it moves exclusively through stock movements.
type UpdateInventoryItemRequest struct {
	Name         string          `json:"name"          validate:"required"`
	SKU          *string         `json:"sku"`
	Unit         string          `json:"unit"`
	MinimumStock decimal.Decimal `json:"minimum_stock" validate:"min=0"`
	Category     *string         `json:"category"`
}

type StockMovementRequest struct {
	ItemID       string          `json:"item_id"       validate:"required,uuid"`
	MovementType string          `json:"movement_type" validate:"required,oneof=entrada saida"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"required"`
	Notes        *string         `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          *string         `json:"sku"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Category     *string         `json:"category"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// StockMovementResponse joins the parent item name for the movements list.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	MovementType string          `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        *string         `json:"notes"`
	CreatedAt    string          `json:"created_at"`
}
