package service

import (
	"time"

	"github.com/bellsbalance/backend/pkg/model"
)

// Point awards for a logged record
const (
	basePointsPerRecord   = 5
	bigDrinkBonusPoints   = 10
	reminderBonusPoints   = 5
	bigDrinkThresholdMl   = 500
	earlyBirdAchievedHour = 8
)

// TriangularThreshold is the cumulative point total required to advance
// past the given level: 100 * sum(1..level)
func TriangularThreshold(level int) int {
	return 100 * level * (level + 1) / 2
}

// PointsForRecord computes the award for a newly logged record
func PointsForRecord(r model.IntakeRecord) int {
	points := basePointsPerRecord
	if r.EffectiveAmount() >= bigDrinkThresholdMl {
		points += bigDrinkBonusPoints
	}
	if r.IsReminderResponse {
		points += reminderBonusPoints
	}
	return points
}

// ApplyLevelUps promotes the state while its points clear the current
// level's threshold. A single large award can cross several boundaries,
// so this loops rather than checking once. Level is capped at MaxLevel.
func ApplyLevelUps(g *model.GamificationState) {
	for g.Level < model.MaxLevel && g.Points >= TriangularThreshold(g.Level) {
		g.Level++
	}
}

// PointsToNextLevel is how many points remain until the next promotion,
// zero at the level cap
func PointsToNextLevel(g model.GamificationState) int {
	if g.Level >= model.MaxLevel {
		return 0
	}
	remaining := TriangularThreshold(g.Level) - g.Points
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ChallengeCompletedOn reports whether the daily challenge was already
// completed on the given calendar day
func ChallengeCompletedOn(g model.GamificationState, day time.Time) bool {
	return g.LastChallengeCompletedAt != nil && sameCalendarDay(*g.LastChallengeCompletedAt, day)
}

// EvaluateChallenge runs the challenge's completion predicate against
// the given day's records and percentage. Record hours are read in the
// day's location, like every other calendar computation.
func EvaluateChallenge(ch model.DailyChallenge, day time.Time, dayRecords []model.IntakeRecord, dayPercentage float64) bool {
	switch ch.ID {
	case model.ChallengeEarly:
		for _, r := range dayRecords {
			if r.Timestamp.In(day.Location()).Hour() < 9 && r.EffectiveAmount() >= ch.Target {
				return true
			}
		}
	case model.ChallengeDouble:
		for _, r := range dayRecords {
			if r.EffectiveAmount() >= ch.Target {
				return true
			}
		}
	case model.ChallengeStreak:
		return len(dayRecords) >= ch.Target
	case model.ChallengeGoal:
		return dayPercentage >= float64(ch.Target)
	}
	return false
}

// EvaluateAchievements recomputes the unlock set from the full record
// history. The result is a monotonic union with the existing set: ids
// are never removed, already-unlocked ids keep their position, newly
// unlocked ids append in catalog order. Calling it twice with unchanged
// data yields an identical set.
func EvaluateAchievements(records []model.IntakeRecord, goal int, today time.Time, unlocked []string) []string {
	have := make(map[string]bool, len(unlocked))
	result := make([]string, 0, len(unlocked))
	for _, id := range unlocked {
		if !have[id] {
			have[id] = true
			result = append(result, id)
		}
	}

	earned := map[string]bool{}

	streak := StreakDays(records, goal, today)
	if streak >= 7 {
		earned[model.AchievementStreak7] = true
	}
	if streak >= 30 {
		earned[model.AchievementStreak30] = true
	}

	allTime := AllTimeEffectiveTotal(records)
	if allTime >= 100_000 {
		earned[model.Achievement100Liters] = true
	}
	if allTime >= 500_000 {
		earned[model.Achievement500Liters] = true
	}

	for _, r := range RecordsForDay(records, today) {
		if r.Timestamp.In(today.Location()).Hour() < earlyBirdAchievedHour && r.EffectiveAmount() > 0 {
			earned[model.AchievementEarlyBird] = true
			break
		}
	}

	perfect := true
	for i := 0; i < 7; i++ {
		if PercentageForDay(records, today.AddDate(0, 0, -i), goal) < 100 {
			perfect = false
			break
		}
	}
	if perfect {
		earned[model.AchievementPerfectWeek] = true
	}

	types := map[model.DrinkType]bool{}
	reminderResponses := 0
	for _, r := range records {
		types[r.DrinkType] = true
		if r.IsReminderResponse {
			reminderResponses++
		}
	}
	if len(types) >= 4 {
		earned[model.AchievementDiversity] = true
	}
	if reminderResponses >= 10 {
		earned[model.AchievementReminderPro] = true
	}

	for _, a := range model.AchievementCatalog {
		if earned[a.ID] && !have[a.ID] {
			have[a.ID] = true
			result = append(result, a.ID)
		}
	}
	return result
}
