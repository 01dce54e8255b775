package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogOrder is a customer-submitted order from the public catalog.
// It never mutates products or inventory — importing it into the PDV cart
// is a manual staff action that happens as an ordinary sale.
// Status: "pending" | "accepted" | "rejected"
// ProgressStatus: "em_producao" | "montagem" | "pronto_entrega"
type CatalogOrder struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// OrderNumber is formatted YYYYMMDD-NNNN, sequential within the day.
	// Assigned inside the creation transaction; a unique index backstops
	// duplicates from concurrent submissions.
	OrderNumber   string     `gorm:"uniqueIndex;not null"`
	MemberID      *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  *string
	CustomerPhone *string
	// ItemsJSON is a serialized cart snapshot — the order keeps its own copy
	// of names and prices regardless of later catalog edits.
	ItemsJSON      string          `gorm:"column:items_json;not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status         string          `gorm:"not null;default:'pending'"`
	ProgressStatus string          `gorm:"not null;default:'em_producao'"`
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Member *Member `gorm:"foreignKey:MemberID"`
}

func (o *CatalogOrder) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Member is a registered catalog customer with access to the member area.
type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Phone     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
