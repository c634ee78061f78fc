package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellsbalance/backend/pkg/model"
)

func record(ts time.Time, amount int, dt model.DrinkType) model.IntakeRecord {
	return model.IntakeRecord{
		ID:        "rec-" + ts.Format("20060102150405"),
		Amount:    amount,
		Timestamp: ts,
		DrinkType: dt,
	}
}

func TestEffectiveAmount_CoefficientTruncation(t *testing.T) {
	tests := []struct {
		name     string
		amount   int
		dt       model.DrinkType
		expected int
	}{
		{name: "water keeps full amount", amount: 250, dt: model.DrinkTypeWater, expected: 250},
		{name: "coffee scales to 80 percent", amount: 1000, dt: model.DrinkTypeCoffee, expected: 800},
		{name: "tea scales to 90 percent", amount: 333, dt: model.DrinkTypeTea, expected: 299},
		{name: "juice scales to 85 percent", amount: 100, dt: model.DrinkTypeJuice, expected: 85},
		{name: "other scales to 70 percent", amount: 150, dt: model.DrinkTypeOther, expected: 105},
		{name: "truncates instead of rounding", amount: 99, dt: model.DrinkTypeTea, expected: 89},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := record(time.Now(), tt.amount, tt.dt)
			assert.Equal(t, tt.expected, r.EffectiveAmount())
		})
	}
}

func TestTotalForDay_SumsOnlyThatCalendarDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(day.Add(-3*time.Hour), 300, model.DrinkTypeWater),
		record(day.Add(2*time.Hour), 200, model.DrinkTypeWater),
		record(day.AddDate(0, 0, -1), 999, model.DrinkTypeWater),
		record(day.AddDate(0, 0, 1), 999, model.DrinkTypeWater),
	}

	assert.Equal(t, 500, TotalForDay(records, day))
}

func TestTotalForDay_MidnightBoundary(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(day, 100, model.DrinkTypeWater),
		record(day.Add(-time.Nanosecond), 200, model.DrinkTypeWater),
		record(day.Add(24*time.Hour-time.Nanosecond), 50, model.DrinkTypeWater),
	}

	assert.Equal(t, 150, TotalForDay(records, day))
}

func TestPercentageForDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(day, 1000, model.DrinkTypeCoffee), // effective 800
	}

	assert.InDelta(t, 40.0, PercentageForDay(records, day, 2000), 0.0001)
	assert.Equal(t, 0.0, PercentageForDay(records, day, 0))
	assert.Equal(t, 0.0, PercentageForDay(records, day, -100))
}

func TestCappedPercentageForDay_ClampsAt150(t *testing.T) {
	day := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(day, 4000, model.DrinkTypeWater),
	}

	assert.Equal(t, 150.0, CappedPercentageForDay(records, day, 2000))
	assert.InDelta(t, 200.0, PercentageForDay(records, day, 2000), 0.0001)
}

func TestStreakDays(t *testing.T) {
	today := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	goal := 2000

	t.Run("zero when today misses the goal", func(t *testing.T) {
		records := []model.IntakeRecord{record(today, 1999, model.DrinkTypeWater)}
		assert.Equal(t, 0, StreakDays(records, goal, today))
	})

	t.Run("one on an exact goal day", func(t *testing.T) {
		records := []model.IntakeRecord{record(today, 2000, model.DrinkTypeWater)}
		assert.Equal(t, 1, StreakDays(records, goal, today))
	})

	t.Run("stops at the first gap", func(t *testing.T) {
		var records []model.IntakeRecord
		for i := 0; i < 4; i++ {
			records = append(records, record(today.AddDate(0, 0, -i), 2500, model.DrinkTypeWater))
		}
		// Day -4 missing, day -5 hit again
		records = append(records, record(today.AddDate(0, 0, -5), 2500, model.DrinkTypeWater))

		assert.Equal(t, 4, StreakDays(records, goal, today))
	})

	t.Run("zero goal yields zero instead of an endless walk", func(t *testing.T) {
		records := []model.IntakeRecord{record(today, 2000, model.DrinkTypeWater)}
		assert.Equal(t, 0, StreakDays(records, 0, today))
	})
}

func TestWeeklyTotals_AlwaysSevenOldestFirst(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(today, 500, model.DrinkTypeWater),
		record(today.AddDate(0, 0, -6), 300, model.DrinkTypeWater),
		record(today.AddDate(0, 0, -7), 999, model.DrinkTypeWater), // outside window
	}

	totals := WeeklyTotals(records, today)
	require.Len(t, totals, 7)
	assert.Equal(t, 300, totals[0])
	assert.Equal(t, []int{0, 0, 0, 0, 0}, totals[1:6])
	assert.Equal(t, 500, totals[6])
}

func TestWeeklyAveragesAndDailyAverage(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(today, 1400, model.DrinkTypeWater),
		record(today.AddDate(0, 0, -1), 700, model.DrinkTypeWater),
	}

	averages := WeeklyAverages(records, today)
	require.Len(t, averages, 7)
	assert.Equal(t, 200, averages[6])
	assert.Equal(t, 100, averages[5])
	assert.Equal(t, 0, averages[0])

	assert.Equal(t, 300, AverageDailyVolume(records, today))
}

func TestMonthlyTotal_CalendarMonthOnly(t *testing.T) {
	today := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 100, model.DrinkTypeWater),
		record(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), 200, model.DrinkTypeWater),
		record(time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), 999, model.DrinkTypeWater),
		record(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), 999, model.DrinkTypeWater),
	}

	assert.Equal(t, 300, MonthlyTotal(records, today))
}

func TestTrendTotals_ZeroFilledWindow(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(today, 250, model.DrinkTypeWater),
		record(today.AddDate(0, 0, -29), 400, model.DrinkTypeWater),
	}

	trends := TrendTotals(records, today, 30)
	require.Len(t, trends, 30)
	assert.Equal(t, 400, trends[0].Total)
	assert.Equal(t, 250, trends[29].Total)
	assert.Equal(t, 0, trends[15].Total)
	assert.True(t, trends[0].Date.Before(trends[29].Date))

	assert.Empty(t, TrendTotals(records, today, 0))
	assert.Empty(t, TrendTotals(records, today, -3))
}

func TestForecast_IntegerPace(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	records := []model.IntakeRecord{
		record(now.Add(-2*time.Hour), 500, model.DrinkTypeWater),
		record(now.Add(-time.Hour), 500, model.DrinkTypeWater),
	}

	// 1000 total by hour 10: 100/hour * 14 remaining = 2400
	assert.Equal(t, 2400, Forecast(records, now))
}

func TestForecast_MidnightAvoidsDivisionByZero(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 30, 0, 0, time.UTC)
	records := []model.IntakeRecord{record(now, 200, model.DrinkTypeWater)}

	// hour 0 clamps to 1: 200 + 200*24 = 5000
	assert.Equal(t, 5000, Forecast(records, now))
}

func TestForecast_LateEveningCountsAtLeastOneHour(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	records := []model.IntakeRecord{record(now.Add(-time.Hour), 2300, model.DrinkTypeWater)}

	// 2300/23 = 100 per hour, one remaining hour
	assert.Equal(t, 2400, Forecast(records, now))
}

func TestBestHourOfDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("nil without records in the window", func(t *testing.T) {
		old := []model.IntakeRecord{
			record(now.AddDate(0, 0, -31), 1000, model.DrinkTypeWater),
		}
		assert.Nil(t, BestHourOfDay(nil, now))
		assert.Nil(t, BestHourOfDay(old, now))
	})

	t.Run("picks the strongest hour", func(t *testing.T) {
		records := []model.IntakeRecord{
			record(time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC), 300, model.DrinkTypeWater),
			record(time.Date(2026, 3, 8, 8, 30, 0, 0, time.UTC), 300, model.DrinkTypeWater),
			record(time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC), 500, model.DrinkTypeWater),
		}
		best := BestHourOfDay(records, now)
		require.NotNil(t, best)
		assert.Equal(t, 8, *best)
	})

	t.Run("ties resolve to the earliest hour", func(t *testing.T) {
		records := []model.IntakeRecord{
			record(time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC), 400, model.DrinkTypeWater),
			record(time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC), 400, model.DrinkTypeWater),
		}
		best := BestHourOfDay(records, now)
		require.NotNil(t, best)
		assert.Equal(t, 7, *best)
	})
}

func TestHydrationLevelBands(t *testing.T) {
	tests := []struct {
		pct      float64
		expected model.HydrationLevel
	}{
		{0, model.HydrationCritical},
		{29.9, model.HydrationCritical},
		{30, model.HydrationLow},
		{69.9, model.HydrationLow},
		{70, model.HydrationGood},
		{99.9, model.HydrationGood},
		{100, model.HydrationExcellent},
		{150, model.HydrationExcellent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, model.HydrationLevelFrom(tt.pct), "pct %v", tt.pct)
	}
}

func TestDailyTip_Bands(t *testing.T) {
	assert.Contains(t, DailyTip(10), "every drop counts")
	assert.Contains(t, DailyTip(50), "halfway")
	assert.Contains(t, DailyTip(85), "Almost there")
	assert.Contains(t, DailyTip(120), "crushed it")
}
