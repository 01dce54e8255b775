package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a completed PDV transaction. Immutable after creation — there is
// no update endpoint for sales.
// PaymentMethod: "dinheiro" | "cartao" | "pix" | free text (bucketed as other)
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleNumber    string          `gorm:"not null;index"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	SessionID     *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentMethod string          `gorm:"not null;default:'dinheiro'"`
	PaymentStatus string          `gorm:"not null;default:'pago'"`
	SoldBy        *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SaleItem is one cart line. ProductName is a value snapshot taken at sale
// time so the historical record survives product renames and deletes.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes       *string
	CreatedAt   time.Time
}

func (i *SaleItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
