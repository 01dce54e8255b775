package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a finished good sold at the PDV and shown in the public catalog.
// StockQuantity is decremented by sale completion (clamped at zero — an
// oversell never fails the sale) and edited directly by staff.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"not null;index"`
	Description   *string
	SKU           *string `gorm:"column:sku;index"`
	Category      *string
	ImageURL      *string
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Cost          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	MinStock      int             `gorm:"not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
