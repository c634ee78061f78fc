package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/service"
)

// StatsHandler implements the statistics API endpoints
type StatsHandler struct {
	tracker *service.TrackerService
	logger  *zap.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(tracker *service.TrackerService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// GetToday returns the current day's summary
func (h *StatsHandler) GetToday(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Today())
}

// GetDay returns the summary for one calendar day (path date format
// 2006-01-02)
func (h *StatsHandler) GetDay(c *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid date, expected YYYY-MM-DD",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, h.tracker.Day(day))
}

// GetWeekly returns totals and averages for the last 7 days
func (h *StatsHandler) GetWeekly(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Weekly())
}

// GetMonthly returns the current calendar month's aggregates
func (h *StatsHandler) GetMonthly(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Monthly())
}

// GetTrends returns daily totals for the trend chart, ?days= controls
// the window
func (h *StatsHandler) GetTrends(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid days parameter",
				Details: stringPtr(err.Error()),
			})
			return
		}
		days = parsed
	}

	c.JSON(http.StatusOK, gin.H{"trends": h.tracker.Trends(days)})
}

// GetForecast projects today's end-of-day total
func (h *StatsHandler) GetForecast(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"forecast": h.tracker.TodayForecast()})
}

// GetBestHour returns the strongest drinking hour of the last 30 days
func (h *StatsHandler) GetBestHour(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"best_hour": h.tracker.BestHour()})
}

// GetStreak returns the current goal streak in days
func (h *StatsHandler) GetStreak(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"streak": h.tracker.Streak()})
}

// GetCalendar rates every day of a month, ?month=2006-01 selects it
// and defaults to the current month
func (h *StatsHandler) GetCalendar(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid month, expected YYYY-MM",
				Details: stringPtr(err.Error()),
			})
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	c.JSON(http.StatusOK, gin.H{"days": h.tracker.Calendar(year, month)})
}
