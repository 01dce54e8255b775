package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductionOrder tracks a custom furniture job through the shop floor.
// Status is free text in practice; the UI uses "Em Produção", "Montagem",
// "Pronto para Entrega", "Entregue".
type ProductionOrder struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber  string    `gorm:"not null;index"`
	ClientName   string    `gorm:"not null"`
	ProductName  string    `gorm:"not null"`
	Quantity     int       `gorm:"not null;default:1"`
	Status       string    `gorm:"not null;default:'Em Produção'"`
	DeliveryDate *string   // YYYY-MM-DD
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o *ProductionOrder) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
