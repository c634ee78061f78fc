package service

import (
	"time"

	"github.com/bellsbalance/backend/pkg/model"
)

// maxStreakWindowDays bounds the backward streak walk so degenerate data
// can never loop unboundedly
const maxStreakWindowDays = 3650

// bestHourWindowDays is how far back best-hour analysis looks
const bestHourWindowDays = 30

// DefaultTrendDays is the trend window used when the caller does not ask
// for a specific length
const DefaultTrendDays = 30

// MaxTrendDays caps caller-supplied trend windows; each day costs a full
// pass over the record set
const MaxTrendDays = 365

// DailyTotal pairs a calendar day with its effective intake total
type DailyTotal struct {
	Date  time.Time `json:"date"`
	Total int       `json:"total"`
}

// sameCalendarDay reports whether t falls on the same calendar day as
// day, evaluated in day's location. Calendar-day equality, not a rolling
// 24h window.
func sameCalendarDay(t, day time.Time) bool {
	ty, tm, td := t.In(day.Location()).Date()
	dy, dm, dd := day.Date()
	return ty == dy && tm == dm && td == dd
}

// RecordsForDay returns the records logged on the given calendar day
func RecordsForDay(records []model.IntakeRecord, day time.Time) []model.IntakeRecord {
	var out []model.IntakeRecord
	for _, r := range records {
		if sameCalendarDay(r.Timestamp, day) {
			out = append(out, r)
		}
	}
	return out
}

// TotalForDay sums effective amounts for the given calendar day
func TotalForDay(records []model.IntakeRecord, day time.Time) int {
	total := 0
	for _, r := range records {
		if sameCalendarDay(r.Timestamp, day) {
			total += r.EffectiveAmount()
		}
	}
	return total
}

// PercentageForDay is the day's total as a percentage of the goal.
// A goal of zero or less yields 0 rather than a division fault.
func PercentageForDay(records []model.IntakeRecord, day time.Time, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(TotalForDay(records, day)) / float64(goal) * 100
}

// CappedPercentageForDay is PercentageForDay clamped to 150 so the
// progress ring cannot overflow on over-achievement
func CappedPercentageForDay(records []model.IntakeRecord, day time.Time, goal int) float64 {
	pct := PercentageForDay(records, day, goal)
	if pct > 150 {
		return 150
	}
	return pct
}

// StreakDays counts consecutive calendar days ending today that each
// reached 100% of the goal. The walk stops at the first day below goal
// and is capped at maxStreakWindowDays.
func StreakDays(records []model.IntakeRecord, goal int, today time.Time) int {
	if goal <= 0 {
		return 0
	}
	streak := 0
	day := today
	for streak < maxStreakWindowDays {
		if PercentageForDay(records, day, goal) < 100 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WeeklyTotals returns totals for the 7 calendar days ending today,
// oldest first. Always exactly 7 values.
func WeeklyTotals(records []model.IntakeRecord, today time.Time) []int {
	totals := make([]int, 0, 7)
	for i := 6; i >= 0; i-- {
		totals = append(totals, TotalForDay(records, today.AddDate(0, 0, -i)))
	}
	return totals
}

// WeeklyAverages divides each weekly total by the window length
func WeeklyAverages(records []model.IntakeRecord, today time.Time) []int {
	totals := WeeklyTotals(records, today)
	averages := make([]int, len(totals))
	for i, t := range totals {
		averages[i] = t / len(totals)
	}
	return averages
}

// AverageDailyVolume is the mean of the last 7 daily totals
func AverageDailyVolume(records []model.IntakeRecord, today time.Time) int {
	totals := WeeklyTotals(records, today)
	sum := 0
	for _, t := range totals {
		sum += t
	}
	return sum / len(totals)
}

// MonthlyTotal sums effective amounts for the calendar month containing
// today, first day through last day
func MonthlyTotal(records []model.IntakeRecord, today time.Time) int {
	total := 0
	for _, r := range records {
		ts := r.Timestamp.In(today.Location())
		if ts.Year() == today.Year() && ts.Month() == today.Month() {
			total += r.EffectiveAmount()
		}
	}
	return total
}

// TrendTotals returns daily totals for the n calendar days ending today,
// oldest first. Days with no records contribute zero, so the result
// always has exactly n entries.
func TrendTotals(records []model.IntakeRecord, today time.Time, n int) []DailyTotal {
	if n <= 0 {
		return []DailyTotal{}
	}
	trends := make([]DailyTotal, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		trends = append(trends, DailyTotal{Date: day, Total: TotalForDay(records, day)})
	}
	return trends
}

// Forecast projects today's end-of-day total from the pace so far.
// The per-hour average uses integer division intentionally.
func Forecast(records []model.IntakeRecord, now time.Time) int {
	todayTotal := TotalForDay(records, now)
	hour := now.Hour()
	remainingHours := max(1, 24-hour)
	avgPerHour := todayTotal / max(1, hour)
	return todayTotal + avgPerHour*remainingHours
}

// AllTimeEffectiveTotal sums effective amounts over every record
func AllTimeEffectiveTotal(records []model.IntakeRecord) int {
	total := 0
	for _, r := range records {
		total += r.EffectiveAmount()
	}
	return total
}

// BestHourOfDay returns the hour of day (0-23) with the highest summed
// effective intake over the last 30 days, or nil when no records fall in
// the window. Ties resolve to the earliest hour.
func BestHourOfDay(records []model.IntakeRecord, now time.Time) *int {
	cutoff := now.AddDate(0, 0, -bestHourWindowDays)
	var buckets [24]int
	found := false
	for _, r := range records {
		if r.Timestamp.Before(cutoff) {
			continue
		}
		buckets[r.Timestamp.In(now.Location()).Hour()] += r.EffectiveAmount()
		found = true
	}
	if !found {
		return nil
	}
	best := 0
	for h := 1; h < 24; h++ {
		if buckets[h] > buckets[best] {
			best = h
		}
	}
	return &best
}

// DailyTip returns the motivation message for today's capped percentage
func DailyTip(percentage float64) string {
	switch {
	case percentage < 30:
		return "Start with a glass of water — every drop counts!"
	case percentage < 70:
		return "You're halfway there. Keep sipping!"
	case percentage < 100:
		return "Almost there! One more glass to go."
	default:
		return "You crushed it today! Stay hydrated tomorrow too."
	}
}
