package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a business client (lojista) buying on account.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName string    `gorm:"not null;index"`
	CNPJ        *string   `gorm:"column:cnpj"`
	Email       *string
	Phone       *string
	Whatsapp    *string
	Address     *string
	City        *string
	State       *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
