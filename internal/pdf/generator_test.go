package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/pkg/model"
)

func TestGenerate_ProducesValidPDF(t *testing.T) {
	generator := NewGenerator(zap.NewNop())

	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	data := &ReportData{
		GeneratedAt:         now,
		TodayTotalMl:        1800,
		GoalMl:              2500,
		TodayPercentage:     72,
		HydrationLevel:      model.HydrationGood,
		StreakDays:          3,
		WeeklyTotals:        []int{2000, 2500, 1800, 0, 2600, 2500, 1800},
		Trends:              []TrendPoint{{Date: now.AddDate(0, 0, -1), Total: 2500}, {Date: now, Total: 1800}},
		Points:              350,
		Level:               2,
		PointsToNextLevel:   250,
		CompletedChallenges: 4,
		Achievements:        model.AchievementCatalog[:2],
	}

	out, err := generator.Generate(data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerate_EmptyDataStillRenders(t *testing.T) {
	generator := NewGenerator(zap.NewNop())

	out, err := generator.Generate(&ReportData{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
