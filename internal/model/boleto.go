package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Boleto is a payable supplier invoice, optionally with an uploaded file
// (the scanned slip) referenced by FileURL under /files/boletos/.
type Boleto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate     string          `gorm:"not null;index"` // YYYY-MM-DD
	Barcode     *string
	FileURL     *string
	Supplier    *string
	IsPaid      bool `gorm:"not null;default:false"`
	PaidAt      *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Boleto) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
