package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/service"
	"github.com/bellsbalance/backend/pkg/model"
)

// ReminderHandler implements the reminder API endpoints
type ReminderHandler struct {
	tracker *service.TrackerService
	logger  *zap.Logger
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(tracker *service.TrackerService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		tracker: tracker,
		logger:  logger,
	}
}

type reminderRequest struct {
	Time time.Time `json:"time" binding:"required"`
	Days []int     `json:"days" binding:"required"`
	Note *string   `json:"note"`
}

// PostReminder schedules a new reminder
func (h *ReminderHandler) PostReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		writeBindError(c, err)
		return
	}

	reminder, err := h.tracker.AddReminder(c.Request.Context(), req.Time, req.Days, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

type updateReminderRequest struct {
	Time     time.Time `json:"time" binding:"required"`
	Days     []int     `json:"days" binding:"required"`
	IsActive bool      `json:"is_active"`
	Note     *string   `json:"note"`
}

// PutReminder replaces an existing reminder
func (h *ReminderHandler) PutReminder(c *gin.Context) {
	var req updateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	reminder := model.Reminder{
		ID:       c.Param("id"),
		Time:     req.Time,
		IsActive: req.IsActive,
		Days:     req.Days,
		Note:     req.Note,
	}
	if err := h.tracker.UpdateReminder(c.Request.Context(), reminder); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder removes a reminder by id
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	if err := h.tracker.DeleteReminder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PostReminderToggle flips a reminder's active flag
func (h *ReminderHandler) PostReminderToggle(c *gin.Context) {
	reminder, err := h.tracker.ToggleReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// GetReminders lists all reminders
func (h *ReminderHandler) GetReminders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reminders": h.tracker.Reminders()})
}
