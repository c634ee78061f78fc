package model

import "time"

// MaxLevel caps the gamification level
const MaxLevel = 99

// GamificationState tracks points, level and daily challenge progress.
// Only the gamification service mutates it.
type GamificationState struct {
	Points                   int        `json:"points"`
	Level                    int        `json:"level"`
	LastChallengeCompletedAt *time.Time `json:"last_challenge_completed_at,omitempty"`
	CompletedChallengeCount  int        `json:"completed_challenge_count"`
}

// DefaultGamificationState returns the state for a fresh user
func DefaultGamificationState() GamificationState {
	return GamificationState{
		Points: 0,
		Level:  1,
	}
}

// Achievement is a static catalog entry; unlock state lives separately as
// a monotonic set of ids
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// Achievement ids referenced by the unlock rules
const (
	AchievementStreak7     = "streak7"
	AchievementStreak30    = "streak30"
	Achievement100Liters   = "100liters"
	Achievement500Liters   = "500liters"
	AchievementEarlyBird   = "early"
	AchievementPerfectWeek = "perfect"
	AchievementDiversity   = "diversity"
	AchievementReminderPro = "reminder"
)

// AchievementCatalog is the fixed set of achievements in display order
var AchievementCatalog = []Achievement{
	{ID: AchievementStreak7, Title: "7 days in a row", Description: "Hit goal 7 days straight", Icon: "bell", Color: "green"},
	{ID: AchievementStreak30, Title: "30-day streak", Description: "Hit goal for 30 days", Icon: "flame", Color: "green"},
	{ID: Achievement100Liters, Title: "100 liters", Description: "Total 100 liters logged", Icon: "drop", Color: "yellow"},
	{ID: Achievement500Liters, Title: "500 liters", Description: "Total 500 liters logged", Icon: "drop", Color: "yellow"},
	{ID: AchievementEarlyBird, Title: "Early bird", Description: "First drink before 8 AM", Icon: "sun", Color: "yellow"},
	{ID: AchievementPerfectWeek, Title: "Perfect week", Description: "7/7 days at 100%+", Icon: "star", Color: "green"},
	{ID: AchievementDiversity, Title: "Variety", Description: "Log 4 drink types", Icon: "cup", Color: "yellow"},
	{ID: AchievementReminderPro, Title: "On time", Description: "Log 10 reminder responses", Icon: "bell-badge", Color: "green"},
}

// DailyChallenge is a static catalog entry; exactly one is active per
// calendar day
type DailyChallenge struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Target       int    `json:"target"`
	PointsReward int    `json:"points_reward"`
	Icon         string `json:"icon"`
}

// Daily challenge ids, each with its own completion predicate
const (
	ChallengeEarly  = "early"
	ChallengeDouble = "double"
	ChallengeStreak = "streak"
	ChallengeGoal   = "goal"
)

// DailyChallengeCatalog is the fixed rotation of challenges
var DailyChallengeCatalog = []DailyChallenge{
	{ID: ChallengeEarly, Title: "Early bird", Description: "Drink before 9 AM", Target: 250, PointsReward: 20, Icon: "sun"},
	{ID: ChallengeDouble, Title: "Double up", Description: "Add 500+ ml at once", Target: 500, PointsReward: 25, Icon: "drop"},
	{ID: ChallengeStreak, Title: "Keep going", Description: "5 entries today", Target: 5, PointsReward: 30, Icon: "flame"},
	{ID: ChallengeGoal, Title: "Goal crusher", Description: "Reach 100%", Target: 100, PointsReward: 50, Icon: "star"},
}

// ChallengeForDay selects the active challenge for a calendar day; the
// rotation is deterministic by day of year
func ChallengeForDay(day time.Time) DailyChallenge {
	return DailyChallengeCatalog[day.YearDay()%len(DailyChallengeCatalog)]
}
