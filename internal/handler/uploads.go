package handler

import (
	"net/http"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/apierror"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/infra"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct{ store *infra.FileStore }

func NewUploadHandler(store *infra.FileStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Save receives a base64-encoded file and writes it under the category
// taken from the route (:category is constrained by the store whitelist).
func (h *UploadHandler) Save(c *gin.Context) {
	var req dto.UploadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	url, err := h.store.SaveBase64(c.Param("category"), req.FileName, req.Base64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}
