package handler

import (
	"net/http"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/apierror"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoletoHandler struct{ svc service.BoletoService }

func NewBoletoHandler(svc service.BoletoService) *BoletoHandler {
	return &BoletoHandler{svc: svc}
}

func (h *BoletoHandler) Create(c *gin.Context) {
	var req dto.BoletoRequest
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

func (h *BoletoHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar boletos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BoletoHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.BoletoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
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

func (h *BoletoHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
