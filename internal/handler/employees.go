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

type EmployeeHandler struct{ svc service.EmployeeService }

func NewEmployeeHandler(svc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
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

func (h *EmployeeHandler) List(c *gin.Context) {
	var active *bool
	if raw := c.Query("active"); raw != "" {
		v := raw == "true"
		active = &v
	}
	resp, err := h.svc.List(c.Request.Context(), active)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar funcionários"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update only touches pix_key; the rest of the employee record is
// immutable through the API.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdatePixKey(c.Request.Context(), id, req); err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Time records ────────────────────────────────────────────────────────────

func (h *EmployeeHandler) CreateTimeRecord(c *gin.Context) {
	var req dto.TimeRecordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateTimeRecord(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTimeRecord) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
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

func (h *EmployeeHandler) ListTimeRecords(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	resp, err := h.svc.ListTimeRecords(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar registros de ponto"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeeHandler) UpdateTimeRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.TimeRecordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateTimeRecord(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, service.ErrDuplicateTimeRecord) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EmployeeHandler) DeleteTimeRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DeleteTimeRecord(c.Request.Context(), id); err != nil {
		if notFoundMessage(err) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
