package handler

import (
	"net/http"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/apierror"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogOrderHandler struct{ svc service.CatalogOrderService }

func NewCatalogOrderHandler(svc service.CatalogOrderService) *CatalogOrderHandler {
	return &CatalogOrderHandler{svc: svc}
}

// Create godoc
// @Summary Registra um pedido do catálogo público
// @Tags catalogo
// @Accept json
// @Produce json
// @Param body body dto.CreateCatalogOrderRequest true "Pedido"
// @Success 201 {object} dto.CatalogOrderResponse
// @Router /api/catalog-orders [post]
func (h *CatalogOrderHandler) Create(c *gin.Context) {
	var req dto.CreateCatalogOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogOrderHandler) Get(c *gin.Context) {
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

func (h *CatalogOrderHandler) List(c *gin.Context) {
	if memberID := c.Query("member_id"); memberID != "" {
		id, err := uuid.Parse(memberID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
			return
		}
		resp, err := h.svc.ListByMember(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar pedidos"))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus accepts or rejects a pending order.
func (h *CatalogOrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
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

// UpdateProgress moves an accepted order along the production pipeline.
func (h *CatalogOrderHandler) UpdateProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateOrderProgressRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProgress(c.Request.Context(), id, req.ProgressStatus)
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
