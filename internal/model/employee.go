package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is a shop-floor worker paid by daily rate.
type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;index"`
	Position  *string
	DailyRate decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	// PixKey is the employee's payout key — the only field the UI edits in place
	PixKey    *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	TimeRecords []TimeRecord `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TimeRecord is one work day for one employee.
// At most one record per (employee, date) — enforced by a unique index,
// violations surface as 409 to the client.
type TimeRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employee_record_date"`
	RecordDate string    `gorm:"not null;uniqueIndex:idx_employee_record_date"` // YYYY-MM-DD
	ClockIn    *string
	LunchOut   *string
	LunchIn    *string
	ClockOut   *string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}

func (t *TimeRecord) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
