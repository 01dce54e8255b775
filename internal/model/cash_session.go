package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashRegisterSession tracks one open/close cycle of the PDV cash drawer.
// Running totals accumulate as sales complete against the session — always
// via single-statement atomic increments, never read-then-write.
// Status: "open" | "closed". A partial unique index guarantees at most one
// open session at a time (see infra.applySchemaPatches).
type CashRegisterSession struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OpenedAt       time.Time `gorm:"not null"`
	ClosedAt       *time.Time
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// ClosingBalance is computed client-side (opening + cash − card − pix − other)
	// and stored as declared — the server does not re-derive it.
	ClosingBalance *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalSales     decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCash      decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCard      decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPix       decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	TotalOther     decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Notes          *string
	OpenedBy       *string
	ClosedBy       *string
	Status         string `gorm:"type:varchar(10);not null;default:'open'"`
	CreatedAt      time.Time
}

func (s *CashRegisterSession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (CashRegisterSession) TableName() string { return "cash_register_sessions" }
