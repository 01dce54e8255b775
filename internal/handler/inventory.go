package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/apierror"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req dto.CreateInventoryItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.GetItem(c.Request.Context(), id)
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

func (h *InventoryHandler) ListItems(c *gin.Context) {
	resp, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar itens de estoque"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListLowStock returns items at or below their minimum quantity — the
// dashboard reorder alert.
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	resp, err := h.svc.ListLowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar itens de estoque"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateInventoryItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), id, req)
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

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ApplyMovement godoc
// @Summary Registra uma movimentação de estoque (entrada/saída)
// @Tags estoque
// @Accept json
// @Produce json
// @Param body body dto.StockMovementRequest true "Movimentação"
// @Success 201 {object} dto.StockMovementResponse
// @Failure 400 {object} apierror.APIError "Quantidade indisponível em estoque"
// @Router /api/stock-movements [post]
func (h *InventoryHandler) ApplyMovement(c *gin.Context) {
	var req dto.StockMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyMovement(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.ListMovements(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar movimentações"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
