package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sabia-pyme/backend-go/internal/pipeline/inventory"
	"github.com/sabia-pyme/backend-go/internal/pipeline/sample"
	"github.com/sabia-pyme/backend-go/internal/service"
)

type InventoryHandler struct {
	service        *service.InventoryService
	maxUploadBytes int64
}

func NewInventoryHandler(service *service.InventoryService, maxUploadBytes int64) *InventoryHandler {
	return &InventoryHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Analyze runs the single-table analysis on an uploaded CSV or XLSX report.
func (h *InventoryHandler) Analyze(c *gin.Context) {
	limitBody(c, h.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, errors.New("no file provided"))
		return
	}
	if !inventory.IsSupported(fh.Filename) {
		errorResponse(c, http.StatusBadRequest, fmt.Errorf("unsupported file %s (expected .csv or .xlsx)", fh.Filename))
		return
	}

	files, err := readUploads([]*multipart.FileHeader{fh})
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return
	}

	report, err := h.service.Analyze(c.Request.Context(), files[0])
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Sample downloads the demonstration report.
func (h *InventoryHandler) Sample(c *gin.Context) {
	content, err := h.service.Sample()
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sample.DefaultFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}
