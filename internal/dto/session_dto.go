package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"min=0"`
	OpenedBy       *string         `json:"opened_by"`
}

// CloseSessionRequest closes a session. ClosingBalance is client-computed
// (opening + cash − card − pix − other) and stored as declared.
type CloseSessionRequest struct {
	ClosedAt       *string          `json:"closed_at"`
	ClosingBalance *decimal.Decimal `json:"closing_balance"`
	ClosedBy       *string          `json:"closed_by"`
	Status         *string          `json:"status" validate:"omitempty,oneof=open closed"`
	Notes          *string          `json:"notes"`
}

// SessionTotalsRequest is a direct totals overwrite
// (PATCH /api/cash-register-sessions/:id/totals) — used by reconciliation
// tooling outside the sale-completion path.
type SessionTotalsRequest struct {
	TotalSales decimal.Decimal `json:"total_sales" validate:"min=0"`
	TotalCash  decimal.Decimal `json:"total_cash"  validate:"min=0"`
	TotalCard  decimal.Decimal `json:"total_card"  validate:"min=0"`
	TotalPix   decimal.Decimal `json:"total_pix"   validate:"min=0"`
	TotalOther decimal.Decimal `json:"total_other" validate:"min=0"`
}

// SessionFilter is bound from query string of GET /api/cash-register-sessions.
type SessionFilter struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessionResponse struct {
	ID             string           `json:"id"`
	OpenedAt       string           `json:"opened_at"`
	ClosedAt       *string          `json:"closed_at"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	ClosingBalance *decimal.Decimal `json:"closing_balance"`
	TotalSales     decimal.Decimal  `json:"total_sales"`
	TotalCash      decimal.Decimal  `json:"total_cash"`
	TotalCard      decimal.Decimal  `json:"total_card"`
	TotalPix       decimal.Decimal  `json:"total_pix"`
	TotalOther     decimal.Decimal  `json:"total_other"`
	Notes          *string          `json:"notes"`
	OpenedBy       *string          `json:"opened_by"`
	ClosedBy       *string          `json:"closed_by"`
	Status         string           `json:"status"`
}
