package service

import (
	"context"
	"errors"
	"time"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSessionAlreadyOpen rejects opening a second session while one is open.
// Handlers map it to 409.
var ErrSessionAlreadyOpen = errors.New("Já existe um caixa aberto")

type SessionService interface {
	Open(ctx context.Context, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	Close(ctx context.Context, id uuid.UUID, req dto.CloseSessionRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	// GetOpen returns the currently open session, or nil when the register
	// is closed.
	GetOpen(ctx context.Context) (*dto.SessionResponse, error)
	List(ctx context.Context, filter dto.SessionFilter) ([]dto.SessionResponse, error)
	OverwriteTotals(ctx context.Context, id uuid.UUID, req dto.SessionTotalsRequest) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo repository.SessionRepository
}

func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionService{repo: repo}
}

// Open creates a new session with zeroed totals. At most one session may be
// open: the pre-check covers the common path and the partial unique index on
// status='open' closes the race between concurrent opens.
func (s *sessionService) Open(ctx context.Context, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	if existing, err := s.repo.FindOpen(ctx); err == nil && existing != nil {
		return nil, ErrSessionAlreadyOpen
	}

	session := model.CashRegisterSession{
		OpenedAt:       time.Now(),
		OpeningBalance: req.OpeningBalance,
		OpenedBy:       req.OpenedBy,
		Status:         "open",
	}
	if err := s.repo.Create(ctx, &session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSessionAlreadyOpen
		}
		return nil, err
	}
	return sessionToResponse(&session), nil
}

// Close stamps closed_at and stores the client-declared closing balance as
// given. The server never re-derives it from the totals.
func (s *sessionService) Close(ctx context.Context, id uuid.UUID, req dto.CloseSessionRequest) (*dto.SessionResponse, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Sessão não encontrada")
	}
	if session.Status != "open" {
		return nil, errors.New("Caixa já está fechado")
	}

	closedAt := time.Now()
	if req.ClosedAt != nil {
		if t, err := time.Parse(time.RFC3339, *req.ClosedAt); err == nil {
			closedAt = t
		}
	}
	session.ClosedAt = &closedAt
	session.ClosingBalance = req.ClosingBalance
	session.ClosedBy = req.ClosedBy
	session.Status = "closed"
	if req.Status != nil {
		session.Status = *req.Status
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}

	affected, err := s.repo.Close(ctx, session)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Sessão não encontrada")
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Sessão não encontrada")
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) GetOpen(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := s.repo.FindOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) List(ctx context.Context, filter dto.SessionFilter) ([]dto.SessionResponse, error) {
	today := time.Now().Format("2006-01-02")
	if filter.Start == "" {
		filter.Start = today
	}
	if filter.End == "" {
		filter.End = today
	}
	filter.Start += " 00:00:00"
	filter.End += " 23:59:59"

	sessions, err := s.repo.ListByDateRange(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToResponse(&sessions[i]))
	}
	return out, nil
}

// OverwriteTotals replaces all five totals columns at once. Reconciliation
// tooling only — the sale path always goes through atomic increments.
func (s *sessionService) OverwriteTotals(ctx context.Context, id uuid.UUID, req dto.SessionTotalsRequest) (*dto.SessionResponse, error) {
	affected, err := s.repo.OverwriteTotals(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Sessão não encontrada")
	}
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func sessionToResponse(v *model.CashRegisterSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:             v.ID.String(),
		OpenedAt:       v.OpenedAt.Format("2006-01-02T15:04:05Z"),
		OpeningBalance: v.OpeningBalance,
		ClosingBalance: v.ClosingBalance,
		TotalSales:     v.TotalSales,
		TotalCash:      v.TotalCash,
		TotalCard:      v.TotalCard,
		TotalPix:       v.TotalPix,
		TotalOther:     v.TotalOther,
		Notes:          v.Notes,
		OpenedBy:       v.OpenedBy,
		ClosedBy:       v.ClosedBy,
		Status:         v.Status,
	}
	if v.ClosedAt != nil {
		t := v.ClosedAt.Format("2006-01-02T15:04:05Z")
		resp.ClosedAt = &t
	}
	return resp
}
