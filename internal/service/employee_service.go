package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateTimeRecord rejects a second record for the same employee and
// date. Handlers map it to 409.
var ErrDuplicateTimeRecord = errors.New("Já existe um registro para este funcionário nesta data")

type EmployeeService interface {
	Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	List(ctx context.Context, active *bool) ([]dto.EmployeeResponse, error)
	// UpdatePixKey is the only employee edit the API exposes.
	UpdatePixKey(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) error

	CreateTimeRecord(ctx context.Context, req dto.TimeRecordRequest) (*dto.TimeRecordResponse, error)
	ListTimeRecords(ctx context.Context, limit int) ([]dto.TimeRecordResponse, error)
	UpdateTimeRecord(ctx context.Context, id uuid.UUID, req dto.TimeRecordRequest) error
	DeleteTimeRecord(ctx context.Context, id uuid.UUID) error
}

type employeeService struct {
	repo       repository.EmployeeRepository
	recordRepo repository.TimeRecordRepository
}

func NewEmployeeService(repo repository.EmployeeRepository, recordRepo repository.TimeRecordRepository) EmployeeService {
	return &employeeService{repo: repo, recordRepo: recordRepo}
}

func (s *employeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee := model.Employee{
		Name:      req.Name,
		Position:  req.Position,
		DailyRate: req.DailyRate,
		PixKey:    req.PixKey,
		Active:    true,
	}
	if err := s.repo.Create(ctx, &employee); err != nil {
		return nil, err
	}
	return employeeToResponse(&employee), nil
}

func (s *employeeService) List(ctx context.Context, active *bool) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.List(ctx, active)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, *employeeToResponse(&employees[i]))
	}
	return out, nil
}

func (s *employeeService) UpdatePixKey(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) error {
	affected, err := s.repo.UpdatePixKey(ctx, id, req.PixKey)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("Funcionário não encontrado")
	}
	return nil
}

// ── Time records ─────────────────────────────────────────────────────────────

func (s *employeeService) CreateTimeRecord(ctx context.Context, req dto.TimeRecordRequest) (*dto.TimeRecordResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("employee_id inválido: %w", err)
	}
	record := model.TimeRecord{
		EmployeeID: employeeID,
		RecordDate: req.RecordDate,
		ClockIn:    req.ClockIn,
		LunchOut:   req.LunchOut,
		LunchIn:    req.LunchIn,
		ClockOut:   req.ClockOut,
		Notes:      req.Notes,
	}
	if err := s.recordRepo.Create(ctx, &record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTimeRecord
		}
		return nil, err
	}
	return timeRecordToResponse(&record, nil), nil
}

// ListTimeRecords merges the parent employee payload into each row, the
// shape the timesheet screen consumes.
func (s *employeeService) ListTimeRecords(ctx context.Context, limit int) ([]dto.TimeRecordResponse, error) {
	if limit < 1 || limit > 500 {
		limit = 200
	}
	records, err := s.recordRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(records))
	seen := make(map[uuid.UUID]bool)
	for _, r := range records {
		if !seen[r.EmployeeID] {
			seen[r.EmployeeID] = true
			ids = append(ids, r.EmployeeID)
		}
	}
	employees, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Employee, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	out := make([]dto.TimeRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, *timeRecordToResponse(&records[i], byID[records[i].EmployeeID]))
	}
	return out, nil
}

func (s *employeeService) UpdateTimeRecord(ctx context.Context, id uuid.UUID, req dto.TimeRecordRequest) error {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return fmt.Errorf("employee_id inválido: %w", err)
	}
	record := model.TimeRecord{
		ID:         id,
		EmployeeID: employeeID,
		RecordDate: req.RecordDate,
		ClockIn:    req.ClockIn,
		LunchOut:   req.LunchOut,
		LunchIn:    req.LunchIn,
		ClockOut:   req.ClockOut,
		Notes:      req.Notes,
	}
	affected, err := s.recordRepo.Update(ctx, &record)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTimeRecord
		}
		return err
	}
	if affected == 0 {
		return errors.New("Registro não encontrado")
	}
	return nil
}

func (s *employeeService) DeleteTimeRecord(ctx context.Context, id uuid.UUID) error {
	affected, err := s.recordRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("Registro não encontrado")
	}
	return nil
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func employeeToResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID.String(),
		Name:      e.Name,
		Position:  e.Position,
		DailyRate: e.DailyRate,
		PixKey:    e.PixKey,
		Active:    e.Active,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func timeRecordToResponse(t *model.TimeRecord, e *model.Employee) *dto.TimeRecordResponse {
	resp := &dto.TimeRecordResponse{
		ID:         t.ID.String(),
		EmployeeID: t.EmployeeID.String(),
		RecordDate: t.RecordDate,
		ClockIn:    t.ClockIn,
		LunchOut:   t.LunchOut,
		LunchIn:    t.LunchIn,
		ClockOut:   t.ClockOut,
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if e != nil {
		resp.Employee = &dto.TimeRecordEmployee{
			ID:        e.ID.String(),
			Name:      e.Name,
			DailyRate: e.DailyRate,
			PixKey:    e.PixKey,
		}
	}
	return resp
}
