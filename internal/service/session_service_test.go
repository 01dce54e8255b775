package service

import (
	"context"
	"testing"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOpenSessionZeroesTotals(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewSessionService(repo)

	resp, err := svc.Open(context.Background(), dto.OpenSessionRequest{
		OpeningBalance: decimal.RequireFromString("100.00"),
		OpenedBy:       strPtr("maria"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "open", resp.Status)
	assert.True(t, resp.OpeningBalance.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, resp.TotalSales.IsZero())
	assert.True(t, resp.TotalCash.IsZero())
	assert.Nil(t, resp.ClosedAt)
}

func TestOpenSecondSessionRejected(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewSessionService(repo)

	_, err := svc.Open(context.Background(), dto.OpenSessionRequest{})
	assert.NoError(t, err)

	_, err = svc.Open(context.Background(), dto.OpenSessionRequest{})
	assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
}

func TestCloseStoresDeclaredBalanceVerbatim(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewSessionService(repo)

	session := openTestSession(t, repo, "100.00")
	session.TotalSales = decimal.RequireFromString("50.00")
	session.TotalPix = decimal.RequireFromString("50.00")

	// pix leaves the drawer untouched: client declares opening balance back
	declared := decimal.RequireFromString("100.00")
	resp, err := svc.Close(context.Background(), session.ID, dto.CloseSessionRequest{
		ClosingBalance: &declared,
		ClosedBy:       strPtr("maria"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "closed", resp.Status)
	assert.NotNil(t, resp.ClosedAt)
	assert.True(t, resp.ClosingBalance.Equal(declared))
	// totals survive the close untouched
	assert.True(t, resp.TotalPix.Equal(decimal.RequireFromString("50.00")))
}

func TestCloseAlreadyClosedSession(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewSessionService(repo)

	session := openTestSession(t, repo, "0")
	session.Status = "closed"

	_, err := svc.Close(context.Background(), session.ID, dto.CloseSessionRequest{})
	assert.EqualError(t, err, "Caixa já está fechado")
}

func TestCloseUnknownSession(t *testing.T) {
	svc := NewSessionService(newStubSessionRepo())
	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseSessionRequest{})
	assert.EqualError(t, err, "Sessão não encontrada")
}

func TestReopenAfterClose(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewSessionService(repo)

	session := openTestSession(t, repo, "0")
	_, err := svc.Close(context.Background(), session.ID, dto.CloseSessionRequest{})
	assert.NoError(t, err)

	_, err = svc.Open(context.Background(), dto.OpenSessionRequest{})
	assert.NoError(t, err)
}

func TestGetOpenReturnsNilWhenNoneOpen(t *testing.T) {
	svc := NewSessionService(newStubSessionRepo())
	resp, err := svc.GetOpen(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestOverwriteTotals(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewSessionService(repo)
	session := openTestSession(t, repo, "0")

	resp, err := svc.OverwriteTotals(context.Background(), session.ID, dto.SessionTotalsRequest{
		TotalSales: decimal.RequireFromString("300.00"),
		TotalCash:  decimal.RequireFromString("100.00"),
		TotalCard:  decimal.RequireFromString("150.00"),
		TotalPix:   decimal.RequireFromString("50.00"),
	})

	assert.NoError(t, err)
	assert.True(t, resp.TotalSales.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, resp.TotalOther.IsZero())
}

func TestOverwriteTotalsUnknownSession(t *testing.T) {
	svc := NewSessionService(newStubSessionRepo())
	_, err := svc.OverwriteTotals(context.Background(), uuid.New(), dto.SessionTotalsRequest{})
	assert.EqualError(t, err, "Sessão não encontrada")
}
