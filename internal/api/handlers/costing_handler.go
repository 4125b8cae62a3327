package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline/costing"
	"github.com/sabia-pyme/backend-go/internal/service"
)

type CostingHandler struct {
	service        *service.CostingService
	maxUploadBytes int64
}

func NewCostingHandler(service *service.CostingService, maxUploadBytes int64) *CostingHandler {
	return &CostingHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// RemoteRequest selects a configured source and the location inside it:
// a key prefix for "bucket", a folder id for "drive". An empty location
// means the source default.
type RemoteRequest struct {
	Source   string `json:"source" binding:"required"`
	Location string `json:"location"`
}

// Analyze runs the costing pipeline on the six uploaded tables.
func (h *CostingHandler) Analyze(c *gin.Context) {
	files, ok := h.uploadedFiles(c)
	if !ok {
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), files)
	if err != nil {
		writeCostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export runs the costing pipeline and returns the master table as CSV.
func (h *CostingHandler) Export(c *gin.Context) {
	files, ok := h.uploadedFiles(c)
	if !ok {
		return
	}

	// The pipeline runs fully before any byte is written, so errors can
	// still be reported as JSON.
	result, err := h.service.Analyze(c.Request.Context(), files)
	if err != nil {
		writeCostingError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="tabla_maestra.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.service.WriteMaster(c.Writer, result); err != nil {
		log.Error().Err(err).Msg("failed to write master table csv")
	}
}

// AnalyzeRemote fetches the six tables from a bucket prefix or a Drive
// folder and runs the costing pipeline.
func (h *CostingHandler) AnalyzeRemote(c *gin.Context) {
	var req RemoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	result, err := h.service.AnalyzeRemote(c.Request.Context(), req.Source, req.Location)
	if err != nil {
		writeCostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Sources lists the remote sources configured on this server.
func (h *CostingHandler) Sources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": h.service.Sources()})
}

func (h *CostingHandler) uploadedFiles(c *gin.Context) ([]domain.UploadedFile, bool) {
	limitBody(c, h.maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, errors.New("invalid form data"))
		return nil, false
	}

	files, err := readUploads(form.File["files"])
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return nil, false
	}
	return files, true
}

// writeCostingError maps pipeline failures to HTTP statuses: missing tables
// 422, unreadable input 400, anything else 500.
func writeCostingError(c *gin.Context, err error) {
	var (
		missingErr *costing.MissingTablesError
		parseErr   *costing.ParseError
	)

	switch {
	case errors.As(err, &missingErr):
		log.Warn().Strs("missing", missingErr.Missing).Msg("Costing inputs incomplete")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   err.Error(),
			"missing": missingErr.Missing,
		})
	case errors.As(err, &parseErr):
		log.Warn().Err(parseErr.Err).Str("file", parseErr.File).Msg("Costing input unreadable")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"file":  parseErr.File,
		})
	case errors.Is(err, service.ErrUnknownSource):
		errorResponse(c, http.StatusBadRequest, err)
	default:
		errorResponse(c, http.StatusInternalServerError, err)
	}
}
