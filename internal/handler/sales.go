package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/apierror"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct{ svc service.SaleService }

func NewSaleHandler(svc service.SaleService) *SaleHandler { return &SaleHandler{svc: svc} }

// Complete godoc
// @Summary Finaliza uma venda (venda + itens + estoque + totais do caixa)
// @Tags vendas
// @Accept json
// @Produce json
// @Param body body dto.CompleteSaleRequest true "Venda completa"
// @Success 201 {object} dto.SaleResponse
// @Failure 500 {object} apierror.APIError "Erro ao finalizar venda"
// @Router /api/sales/complete [post]
func (h *SaleHandler) Complete(c *gin.Context) {
	var req dto.CompleteSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CompleteSale(c.Request.Context(), req)
	if err != nil {
		// a failed transaction is an internal error; the generic message
		// hides the real cause from the client
		if errors.Is(err, service.ErrSaleFailed) {
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSale(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	sale, items, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale, "items": items})
}

func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros inválidos"))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateItems inserts pre-built sale items. The body is a bare JSON array.
func (h *SaleHandler) CreateItems(c *gin.Context) {
	var req dto.SaleItemsBatchRequest
	if !bindAndValidateSlice(c, &req) {
		return
	}
	resp, err := h.svc.CreateSaleItems(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SaleHandler) ListItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ListSaleItems(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar itens"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt streams the 74x105mm PDF receipt of a sale.
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	pdf, err := h.svc.Receipt(c.Request.Context(), id)
	if err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar comprovante"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=venda-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
