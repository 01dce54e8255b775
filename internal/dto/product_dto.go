package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"           validate:"required"`
	Description   *string         `json:"description"`
	SKU           *string         `json:"sku"`
	Category      *string         `json:"category"`
	ImageURL      *string         `json:"image_url"`
	Price         decimal.Decimal `json:"price"          validate:"min=0"`
	Cost          decimal.Decimal `json:"cost"           validate:"min=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	MinStock      int             `json:"min_stock"      validate:"min=0"`
	Active        bool            `json:"active"`
}

type UpdateProductRequest = CreateProductRequest

// ImportProductsRequest triggers the best-effort external catalog import.
// URL overrides the configured source when present.
type ImportProductsRequest struct {
	URL string `json:"url" validate:"omitempty,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	SKU           *string         `json:"sku"`
	Category      *string         `json:"category"`
	ImageURL      *string         `json:"image_url"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Active        bool            `json:"active"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type ImportProductsResponse struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}
