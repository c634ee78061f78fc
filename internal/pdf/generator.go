package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/pkg/model"
)

// Generator renders hydration reports
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new Generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{
		logger: logger,
	}
}

// TrendPoint is one day of the trend section
type TrendPoint struct {
	Date  time.Time
	Total int
}

// ReportData contains all data needed for report generation
type ReportData struct {
	GeneratedAt         time.Time
	TodayTotalMl        int
	GoalMl              int
	TodayPercentage     float64
	HydrationLevel      model.HydrationLevel
	StreakDays          int
	WeeklyTotals        []int // oldest first
	Trends              []TrendPoint
	Points              int
	Level               int
	PointsToNextLevel   int
	CompletedChallenges int
	Achievements        []model.Achievement // unlocked only
}

// Generate creates a PDF report from the provided data
func (g *Generator) Generate(data *ReportData) ([]byte, error) {
	g.logger.Info("generating hydration report",
		zap.Int("today_total", data.TodayTotalMl),
		zap.Int("trend_days", len(data.Trends)),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, "Hydration Report", data.GeneratedAt)
	g.addTodaySummary(pdf, data)
	g.addWeeklyTotals(pdf, data.WeeklyTotals)
	g.addTrends(pdf, data.Trends)
	g.addGamification(pdf, data)
	g.addAchievements(pdf, data.Achievements)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("hydration report generated",
		zap.Int("size_bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *Generator) addTitle(pdf *gofpdf.Fpdf, title string, generatedAt time.Time) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *Generator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

// addTodaySummary adds today's totals and status
func (g *Generator) addTodaySummary(pdf *gofpdf.Fpdf, data *ReportData) {
	g.addSectionHeader(pdf, "Today")

	pdf.CellFormat(0, 6, fmt.Sprintf("Intake: %d ml of %d ml (%.1f%%)", data.TodayTotalMl, data.GoalMl, data.TodayPercentage), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", data.HydrationLevel), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Streak: %d days at goal", data.StreakDays), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addWeeklyTotals adds the 7-day totals table
func (g *Generator) addWeeklyTotals(pdf *gofpdf.Fpdf, totals []int) {
	g.addSectionHeader(pdf, "Last 7 Days")

	if len(totals) == 0 {
		pdf.CellFormat(0, 8, "No intake recorded this week.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	sum := 0
	for i, total := range totals {
		label := fmt.Sprintf("%d days ago", len(totals)-1-i)
		if i == len(totals)-1 {
			label = "Today"
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("  %s: %d ml", label, total), "", 1, "L", false, 0, "")
		sum += total
	}
	pdf.Ln(2)
	pdf.CellFormat(0, 6, fmt.Sprintf("Daily average: %d ml", sum/len(totals)), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addTrends adds the trend section, skipping empty days to keep the
// report compact
func (g *Generator) addTrends(pdf *gofpdf.Fpdf, trends []TrendPoint) {
	g.addSectionHeader(pdf, fmt.Sprintf("Trend (%d days)", len(trends)))

	nonEmpty := 0
	for _, p := range trends {
		if p.Total > 0 {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		pdf.CellFormat(0, 8, "No intake recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, p := range trends {
		if p.Total == 0 {
			continue
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("  %s: %d ml", p.Date.Format("2006-01-02"), p.Total), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// addGamification adds points and level progress
func (g *Generator) addGamification(pdf *gofpdf.Fpdf, data *ReportData) {
	g.addSectionHeader(pdf, "Progress")

	pdf.CellFormat(0, 6, fmt.Sprintf("Level %d with %d points", data.Level, data.Points), "", 1, "L", false, 0, "")
	if data.PointsToNextLevel > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("%d points to the next level", data.PointsToNextLevel), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Daily challenges completed: %d", data.CompletedChallenges), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addAchievements lists unlocked achievements
func (g *Generator) addAchievements(pdf *gofpdf.Fpdf, achievements []model.Achievement) {
	g.addSectionHeader(pdf, "Achievements")

	if len(achievements) == 0 {
		pdf.CellFormat(0, 8, "No achievements unlocked yet.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, a := range achievements {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, a.Title, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  %s", a.Description), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	pdf.Ln(5)
}
