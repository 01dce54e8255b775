package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is a raw material (fabric, foam, wood) tracked by the shop.
// CurrentStock is mutated ONLY through stock movements — the balance is the
// signed sum of all movements for the item and never goes negative.
type InventoryItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"not null;index"`
	SKU          *string         `gorm:"column:sku"`
	Unit         string          `gorm:"not null;default:'un'"` // un | m | m2 | kg
	CurrentStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	MinimumStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Category     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (InventoryItem) TableName() string { return "inventory_items" }

// StockMovement is an immutable ledger entry against an inventory item.
// Created only by the movement endpoint; each one causes exactly one balance
// update on its parent item, inside the same transaction.
type StockMovement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementType string          `gorm:"not null"` // entrada | saida
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Notes        *string
	CreatedAt    time.Time

	Item *InventoryItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

func (m *StockMovement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
