package service

import (
	"context"
	"testing"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory Repository Stubs ────────────────────────────────────────────────

type stubEmployeeRepo struct {
	employees map[uuid.UUID]*model.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[uuid.UUID]*model.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) List(_ context.Context, active *bool) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.employees {
		if active == nil || e.Active == *active {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, id := range ids {
		if e, ok := r.employees[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) UpdatePixKey(_ context.Context, id uuid.UUID, pixKey *string) (int64, error) {
	e, ok := r.employees[id]
	if !ok {
		return 0, nil
	}
	e.PixKey = pixKey
	return 1, nil
}

type stubTimeRecordRepo struct {
	records map[uuid.UUID]*model.TimeRecord
}

func newStubTimeRecordRepo() *stubTimeRecordRepo {
	return &stubTimeRecordRepo{records: make(map[uuid.UUID]*model.TimeRecord)}
}

func (r *stubTimeRecordRepo) Create(_ context.Context, t *model.TimeRecord) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	for _, existing := range r.records {
		if existing.EmployeeID == t.EmployeeID && existing.RecordDate == t.RecordDate {
			return gorm.ErrDuplicatedKey
		}
	}
	r.records[t.ID] = t
	return nil
}

func (r *stubTimeRecordRepo) List(_ context.Context, limit int) ([]model.TimeRecord, error) {
	out := make([]model.TimeRecord, 0, len(r.records))
	for _, t := range r.records {
		if len(out) == limit {
			break
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTimeRecordRepo) Update(_ context.Context, t *model.TimeRecord) (int64, error) {
	if _, ok := r.records[t.ID]; !ok {
		return 0, nil
	}
	for _, existing := range r.records {
		if existing.ID != t.ID && existing.EmployeeID == t.EmployeeID && existing.RecordDate == t.RecordDate {
			return 0, gorm.ErrDuplicatedKey
		}
	}
	r.records[t.ID] = t
	return 1, nil
}

func (r *stubTimeRecordRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.records[id]; !ok {
		return 0, nil
	}
	delete(r.records, id)
	return 1, nil
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestUpdatePixKeyOnlyEdit(t *testing.T) {
	empRepo := newStubEmployeeRepo()
	svc := NewEmployeeService(empRepo, newStubTimeRecordRepo())

	emp := &model.Employee{ID: uuid.New(), Name: "José", DailyRate: decimal.RequireFromString("120.00"), Active: true}
	empRepo.employees[emp.ID] = emp

	err := svc.UpdatePixKey(context.Background(), emp.ID, dto.UpdateEmployeeRequest{PixKey: strPtr("11999990000")})
	assert.NoError(t, err)
	assert.Equal(t, "11999990000", *emp.PixKey)
	// nothing else moved
	assert.Equal(t, "José", emp.Name)
	assert.True(t, emp.DailyRate.Equal(decimal.RequireFromString("120.00")))
}

func TestUpdatePixKeyUnknownEmployee(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), newStubTimeRecordRepo())
	err := svc.UpdatePixKey(context.Background(), uuid.New(), dto.UpdateEmployeeRequest{})
	assert.EqualError(t, err, "Funcionário não encontrado")
}

func TestCreateTimeRecordDuplicateDay(t *testing.T) {
	empRepo := newStubEmployeeRepo()
	recRepo := newStubTimeRecordRepo()
	svc := NewEmployeeService(empRepo, recRepo)

	emp := &model.Employee{ID: uuid.New(), Name: "José", Active: true}
	empRepo.employees[emp.ID] = emp

	req := dto.TimeRecordRequest{
		EmployeeID: emp.ID.String(),
		RecordDate: "2026-09-01",
		ClockIn:    strPtr("07:30"),
	}
	_, err := svc.CreateTimeRecord(context.Background(), req)
	assert.NoError(t, err)

	_, err = svc.CreateTimeRecord(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateTimeRecord)
	assert.Len(t, recRepo.records, 1)
}

func TestListTimeRecordsEmbedsEmployee(t *testing.T) {
	empRepo := newStubEmployeeRepo()
	recRepo := newStubTimeRecordRepo()
	svc := NewEmployeeService(empRepo, recRepo)

	emp := &model.Employee{
		ID: uuid.New(), Name: "Maria",
		DailyRate: decimal.RequireFromString("150.00"),
		PixKey:    strPtr("maria@pix"),
		Active:    true,
	}
	empRepo.employees[emp.ID] = emp

	_, err := svc.CreateTimeRecord(context.Background(), dto.TimeRecordRequest{
		EmployeeID: emp.ID.String(),
		RecordDate: "2026-09-01",
	})
	assert.NoError(t, err)

	out, err := svc.ListTimeRecords(context.Background(), 50)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NotNil(t, out[0].Employee)
	assert.Equal(t, "Maria", out[0].Employee.Name)
	assert.Equal(t, "maria@pix", *out[0].Employee.PixKey)
}

func TestDeleteTimeRecordUnknown(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), newStubTimeRecordRepo())
	err := svc.DeleteTimeRecord(context.Background(), uuid.New())
	assert.EqualError(t, err, "Registro não encontrado")
}
