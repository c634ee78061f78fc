package model

import "sort"

// AppState is the whole-state blob the persistence layer loads and saves
// atomically. There is no partial or incremental persistence.
type AppState struct {
	Records              []IntakeRecord    `json:"records"`
	Reminders            []Reminder        `json:"reminders"`
	Profile              Profile           `json:"profile"`
	Containers           []Container       `json:"containers"`
	Templates            []Template        `json:"templates"`
	Gamification         GamificationState `json:"gamification"`
	UnlockedAchievements []string          `json:"unlocked_achievements"`
}

// DefaultAppState returns the state for a brand new user, with starter
// containers and templates seeded
func DefaultAppState() AppState {
	s := AppState{
		Profile:      DefaultProfile(),
		Gamification: DefaultGamificationState(),
	}
	s.seed()
	return s
}

// Normalize applies per-field defaults to state decoded from storage.
// Malformed or missing persisted values are not errors: unknown enum
// variants fall back to their defaults, missing collections become empty
// and starter containers/templates are seeded. Records are ordered
// newest first.
func (s *AppState) Normalize() {
	for i := range s.Records {
		if !s.Records[i].DrinkType.Valid() {
			s.Records[i].DrinkType = DrinkTypeWater
		}
	}
	sort.SliceStable(s.Records, func(i, j int) bool {
		return s.Records[i].Timestamp.After(s.Records[j].Timestamp)
	})

	defaults := DefaultProfile()
	if s.Profile.WeightKg <= 0 {
		s.Profile.WeightKg = defaults.WeightKg
	}
	if s.Profile.DailyGoalMl <= 0 {
		s.Profile.DailyGoalMl = defaults.DailyGoalMl
	}
	if s.Profile.ReminderIntervalMin <= 0 {
		s.Profile.ReminderIntervalMin = defaults.ReminderIntervalMin
	}
	if s.Profile.PreferredGlassSizeMl <= 0 {
		s.Profile.PreferredGlassSizeMl = defaults.PreferredGlassSizeMl
	}
	if !s.Profile.ActivityLevel.Valid() {
		s.Profile.ActivityLevel = ActivityModerate
	}
	if !s.Profile.Gender.Valid() {
		s.Profile.Gender = GenderMale
	}
	if !s.Profile.Theme.Valid() {
		s.Profile.Theme = ThemeDark
	}

	if s.Gamification.Level < 1 {
		s.Gamification.Level = 1
	}
	if s.Gamification.Level > MaxLevel {
		s.Gamification.Level = MaxLevel
	}
	if s.Gamification.Points < 0 {
		s.Gamification.Points = 0
	}

	for i := range s.Templates {
		for j := range s.Templates[i].Items {
			if !s.Templates[i].Items[j].DrinkType.Valid() {
				s.Templates[i].Items[j].DrinkType = DrinkTypeWater
			}
		}
	}

	if s.Records == nil {
		s.Records = []IntakeRecord{}
	}
	if s.Reminders == nil {
		s.Reminders = []Reminder{}
	}
	if s.UnlockedAchievements == nil {
		s.UnlockedAchievements = []string{}
	}
	s.seed()
}

// seed fills empty container and template collections with starters
func (s *AppState) seed() {
	if len(s.Containers) == 0 {
		s.Containers = []Container{
			{ID: "container-glass", Name: "Glass", VolumeMl: 250},
			{ID: "container-bottle", Name: "Bottle", VolumeMl: 500},
			{ID: "container-mug", Name: "Mug", VolumeMl: 350},
		}
	}
	if len(s.Templates) == 0 {
		s.Templates = []Template{
			{
				ID:   "template-morning",
				Name: "Morning",
				Items: []TemplateItem{
					{DrinkType: DrinkTypeWater, Amount: 250},
					{DrinkType: DrinkTypeCoffee, Amount: 200},
				},
			},
			{
				ID:   "template-after-workout",
				Name: "After workout",
				Items: []TemplateItem{
					{DrinkType: DrinkTypeWater, Amount: 500},
				},
			},
		}
	}
}

// IsAchievementUnlocked reports whether the id is in the unlock set
func (s *AppState) IsAchievementUnlocked(id string) bool {
	for _, unlocked := range s.UnlockedAchievements {
		if unlocked == id {
			return true
		}
	}
	return false
}
