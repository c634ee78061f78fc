package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/service"
	"github.com/bellsbalance/backend/pkg/model"
)

// RecordHandler implements the intake record API endpoints
type RecordHandler struct {
	tracker *service.TrackerService
	logger  *zap.Logger
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(tracker *service.TrackerService, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{
		tracker: tracker,
		logger:  logger,
	}
}

type addRecordRequest struct {
	Amount             int     `json:"amount" binding:"required"`
	DrinkType          string  `json:"drink_type"`
	Note               *string `json:"note"`
	IsReminderResponse bool    `json:"is_reminder_response"`
	ContainerID        *string `json:"container_id"`
}

// PostRecord logs a single drink
func (h *RecordHandler) PostRecord(c *gin.Context) {
	var req addRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		writeBindError(c, err)
		return
	}

	drinkType := model.DrinkTypeWater
	if req.DrinkType != "" {
		drinkType = model.DrinkType(req.DrinkType)
	}

	record, err := h.tracker.AddRecord(c.Request.Context(), service.AddRecordInput{
		Amount:             req.Amount,
		Note:               req.Note,
		IsReminderResponse: req.IsReminderResponse,
		DrinkType:          drinkType,
		ContainerID:        req.ContainerID,
	})
	if err != nil {
		h.logger.Error("failed to add record", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetRecords lists records, optionally filtered to one calendar day
// via ?date=2006-01-02
func (h *RecordHandler) GetRecords(c *gin.Context) {
	var day *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid date, expected YYYY-MM-DD",
				Details: stringPtr(err.Error()),
			})
			return
		}
		day = &parsed
	}

	c.JSON(http.StatusOK, gin.H{"records": h.tracker.Records(day)})
}

// DeleteRecord removes a record by id
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	id := c.Param("id")
	if err := h.tracker.DeleteRecord(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete record", zap.Error(err), zap.String("record_id", id))
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type logTemplateRequest struct {
	Note *string `json:"note"`
}

// PostTemplateLog logs every drink of a saved template at once
func (h *RecordHandler) PostTemplateLog(c *gin.Context) {
	var req logTemplateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
	}

	id := c.Param("id")
	records, err := h.tracker.LogTemplate(c.Request.Context(), id, req.Note)
	if err != nil {
		h.logger.Error("failed to log template", zap.Error(err), zap.String("template_id", id))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"records": records})
}
