package handler

import (
	"errors"
	"net/http"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/apierror"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct{ svc service.SessionService }

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Open godoc
// @Summary Abre uma sessão de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Param body body dto.OpenSessionRequest true "Saldo de abertura"
// @Success 201 {object} dto.SessionResponse
// @Failure 409 {object} apierror.APIError "Já existe um caixa aberto"
// @Router /api/cash-register-sessions [post]
func (h *SessionHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSessionAlreadyOpen) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SessionHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id, req)
	if err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOpen returns the currently open session, or 404 when no register
// is open — the front end polls this on the POS screen.
func (h *SessionHandler) GetOpen(c *gin.Context) {
	resp, err := h.svc.GetOpen(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar sessão"))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Nenhum caixa aberto"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionHandler) List(c *gin.Context) {
	var filter dto.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros inválidos"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar sessões"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionHandler) OverwriteTotals(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.SessionTotalsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.OverwriteTotals(c.Request.Context(), id, req)
	if err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
