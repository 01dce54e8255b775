package dto

import "github.com/shopspring/decimal"

// DTOs for the staff-management resources: employees, time records,
// production orders, boletos, customers, members.

// ─── Employees ───────────────────────────────────────────────────────────────

type CreateEmployeeRequest struct {
	Name      string          `json:"name"       validate:"required"`
	Position  *string         `json:"position"`
	DailyRate decimal.Decimal `json:"daily_rate" validate:"min=0"`
	PixKey    *string         `json:"pix_key"`
}

// UpdateEmployeeRequest mirrors the UI, which only edits the pix key in place.
type UpdateEmployeeRequest struct {
	PixKey *string `json:"pix_key"`
}

type EmployeeResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Position  *string         `json:"position"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	PixKey    *string         `json:"pix_key"`
	Active    bool            `json:"active"`
	CreatedAt string          `json:"created_at"`
}

// ─── Time records ────────────────────────────────────────────────────────────

type TimeRecordRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	RecordDate string  `json:"record_date" validate:"required"`
	ClockIn    *string `json:"clock_in"`
	LunchOut   *string `json:"lunch_out"`
	LunchIn    *string `json:"lunch_in"`
	ClockOut   *string `json:"clock_out"`
	Notes      *string `json:"notes"`
}

// TimeRecordEmployee is the merged employee payload the time-records list
// embeds under "employees", matching what the timesheet screen expects.
type TimeRecordEmployee struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	PixKey    *string         `json:"pix_key"`
}

type TimeRecordResponse struct {
	ID         string              `json:"id"`
	EmployeeID string              `json:"employee_id"`
	RecordDate string              `json:"record_date"`
	ClockIn    *string             `json:"clock_in"`
	LunchOut   *string             `json:"lunch_out"`
	LunchIn    *string             `json:"lunch_in"`
	ClockOut   *string             `json:"clock_out"`
	Notes      *string             `json:"notes"`
	CreatedAt  string              `json:"created_at"`
	Employee   *TimeRecordEmployee `json:"employees"`
}

// ─── Production orders ───────────────────────────────────────────────────────

type ProductionOrderRequest struct {
	OrderNumber  string  `json:"order_number" validate:"required"`
	ClientName   string  `json:"client_name"  validate:"required"`
	ProductName  string  `json:"product_name" validate:"required"`
	Quantity     int     `json:"quantity"     validate:"min=0"`
	Status       string  `json:"status"`
	DeliveryDate *string `json:"delivery_date"`
	Notes        *string `json:"notes"`
}

type ProductionOrderResponse struct {
	ID           string  `json:"id"`
	OrderNumber  string  `json:"order_number"`
	ClientName   string  `json:"client_name"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	Status       string  `json:"status"`
	DeliveryDate *string `json:"delivery_date"`
	Notes        *string `json:"notes"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ─── Boletos ─────────────────────────────────────────────────────────────────

type BoletoRequest struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	DueDate     string          `json:"due_date"    validate:"required"`
	Barcode     *string         `json:"barcode"`
	FileURL     *string         `json:"file_url"`
	Supplier    *string         `json:"supplier"`
	IsPaid      bool            `json:"is_paid"`
	PaidAt      *string         `json:"paid_at"`
	Notes       *string         `json:"notes"`
}

type BoletoResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
	Barcode     *string         `json:"barcode"`
	FileURL     *string         `json:"file_url"`
	Supplier    *string         `json:"supplier"`
	IsPaid      bool            `json:"is_paid"`
	PaidAt      *string         `json:"paid_at"`
	Notes       *string         `json:"notes"`
	CreatedAt   string          `json:"created_at"`
}

// ─── Customers ───────────────────────────────────────────────────────────────

type CustomerRequest struct {
	CompanyName string  `json:"company_name" validate:"required"`
	CNPJ        *string `json:"cnpj"`
	Email       *string `json:"email"   validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Whatsapp    *string `json:"whatsapp"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Notes       *string `json:"notes"`
}

type CustomerResponse struct {
	ID          string  `json:"id"`
	CompanyName string  `json:"company_name"`
	CNPJ        *string `json:"cnpj"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Whatsapp    *string `json:"whatsapp"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// ─── Members ─────────────────────────────────────────────────────────────────

type MemberRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone"`
}

type MemberResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
}

// ─── Uploads ─────────────────────────────────────────────────────────────────

// UploadRequest carries a file as base64 JSON — the SPA has no multipart path.
type UploadRequest struct {
	FileName string `json:"fileName" validate:"required"`
	Base64   string `json:"base64"   validate:"required"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
