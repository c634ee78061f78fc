package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/pdf"
	"github.com/bellsbalance/backend/pkg/model"
)

// ReportService assembles tracker data into a PDF hydration report
type ReportService struct {
	tracker *TrackerService
	pdfGen  *pdf.Generator
	logger  *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(tracker *TrackerService, pdfGen *pdf.Generator, logger *zap.Logger) *ReportService {
	return &ReportService{
		tracker: tracker,
		pdfGen:  pdfGen,
		logger:  logger,
	}
}

// GenerateReport renders the current state as a PDF report
func (s *ReportService) GenerateReport() ([]byte, error) {
	today := s.tracker.Today()
	weekly := s.tracker.Weekly()
	gamification := s.tracker.Gamification()

	trends := s.tracker.Trends(DefaultTrendDays)
	trendPoints := make([]pdf.TrendPoint, 0, len(trends))
	for _, t := range trends {
		trendPoints = append(trendPoints, pdf.TrendPoint{Date: t.Date, Total: t.Total})
	}

	var unlocked []model.Achievement
	for _, a := range s.tracker.Achievements() {
		if a.Unlocked {
			unlocked = append(unlocked, a.Achievement)
		}
	}

	data := &pdf.ReportData{
		GeneratedAt:         today.Date,
		TodayTotalMl:        today.TotalMl,
		GoalMl:              today.GoalMl,
		TodayPercentage:     today.Percentage,
		HydrationLevel:      today.Level,
		StreakDays:          today.Streak,
		WeeklyTotals:        weekly.Totals,
		Trends:              trendPoints,
		Points:              gamification.Points,
		Level:               gamification.Level,
		PointsToNextLevel:   gamification.PointsToNextLevel,
		CompletedChallenges: gamification.CompletedChallengeCount,
		Achievements:        unlocked,
	}

	report, err := s.pdfGen.Generate(data)
	if err != nil {
		s.logger.Error("failed to generate report", zap.Error(err))
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	return report, nil
}
