package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/service"
)

// ExportHandler implements the export and report API endpoints
type ExportHandler struct {
	tracker *service.TrackerService
	reports *service.ReportService
	logger  *zap.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(tracker *service.TrackerService, reports *service.ReportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		tracker: tracker,
		reports: reports,
		logger:  logger,
	}
}

// GetCSV downloads all records as CSV
func (h *ExportHandler) GetCSV(c *gin.Context) {
	filename := fmt.Sprintf("bellsbalance-export-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(h.tracker.ExportCSV()))
}

// GetReport downloads the PDF hydration report
func (h *ExportHandler) GetReport(c *gin.Context) {
	data, err := h.reports.GenerateReport()
	if err != nil {
		h.logger.Error("failed to generate report", zap.Error(err))
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("bellsbalance-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// PostReset wipes all stored data back to defaults
func (h *ExportHandler) PostReset(c *gin.Context) {
	if err := h.tracker.Reset(c.Request.Context()); err != nil {
		h.logger.Error("failed to reset state", zap.Error(err))
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
