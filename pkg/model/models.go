package model

import "time"

// DrinkType identifies what kind of drink an intake record logs
type DrinkType string

const (
	DrinkTypeWater  DrinkType = "water"
	DrinkTypeTea    DrinkType = "tea"
	DrinkTypeCoffee DrinkType = "coffee"
	DrinkTypeJuice  DrinkType = "juice"
	DrinkTypeOther  DrinkType = "other"
)

// AllDrinkTypes lists every drink type in display order
var AllDrinkTypes = []DrinkType{
	DrinkTypeWater,
	DrinkTypeTea,
	DrinkTypeCoffee,
	DrinkTypeJuice,
	DrinkTypeOther,
}

// hydrationCoefficients maps each drink type to how much of its volume
// counts toward hydration (1.0 = full hydration)
var hydrationCoefficients = map[DrinkType]float64{
	DrinkTypeWater:  1.0,
	DrinkTypeTea:    0.9,
	DrinkTypeCoffee: 0.8,
	DrinkTypeJuice:  0.85,
	DrinkTypeOther:  0.7,
}

var drinkTypeNames = map[DrinkType]string{
	DrinkTypeWater:  "Water",
	DrinkTypeTea:    "Tea",
	DrinkTypeCoffee: "Coffee",
	DrinkTypeJuice:  "Juice",
	DrinkTypeOther:  "Other",
}

// Valid reports whether the drink type is one of the known variants
func (d DrinkType) Valid() bool {
	_, ok := hydrationCoefficients[d]
	return ok
}

// Coefficient returns the hydration coefficient for the drink type.
// Unknown values behave like water; Normalize rewrites them on load so
// this only matters for in-flight data.
func (d DrinkType) Coefficient() float64 {
	if c, ok := hydrationCoefficients[d]; ok {
		return c
	}
	return 1.0
}

// DisplayName returns the human readable name of the drink type
func (d DrinkType) DisplayName() string {
	if n, ok := drinkTypeNames[d]; ok {
		return n
	}
	return "Other"
}

// IntakeRecord represents a single logged drink
type IntakeRecord struct {
	ID                 string    `json:"id"`
	Amount             int       `json:"amount"` // ml
	Timestamp          time.Time `json:"timestamp"`
	Note               *string   `json:"note,omitempty"`
	IsReminderResponse bool      `json:"is_reminder_response"`
	DrinkType          DrinkType `json:"drink_type"`
	ContainerID        *string   `json:"container_id,omitempty"`
}

// EffectiveAmount is the intake amount scaled by the drink's hydration
// coefficient, truncated to whole milliliters. Never exceeds Amount.
func (r IntakeRecord) EffectiveAmount() int {
	return int(float64(r.Amount) * r.DrinkType.Coefficient())
}

// ActivityLevel describes how physically active the user is
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// activityMultipliers gives the ml-per-kg factor used when deriving a
// recommended daily goal from body weight
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  30,
	ActivityLight:      32,
	ActivityModerate:   35,
	ActivityActive:     38,
	ActivityVeryActive: 42,
}

// Valid reports whether the activity level is a known variant
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Multiplier returns the ml-per-kg factor for the activity level
func (a ActivityLevel) Multiplier() float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return activityMultipliers[ActivityModerate]
}

// Gender of the user, used only for goal calculation
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether the gender is a known variant
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Theme is the UI theme preference stored with the profile
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// Valid reports whether the theme is a known variant
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight || t == ThemeSystem
}

// Profile holds the user's settings and goal inputs
type Profile struct {
	WeightKg             int           `json:"weight"`
	DailyGoalMl          int           `json:"daily_goal"`
	ReminderIntervalMin  int           `json:"reminder_interval"`
	PreferredGlassSizeMl int           `json:"preferred_glass_size"`
	ActivityLevel        ActivityLevel `json:"activity_level"`
	Gender               Gender        `json:"gender"`
	Age                  *int          `json:"age,omitempty"`
	Theme                Theme         `json:"theme"`
}

// DefaultProfile returns the profile used before onboarding completes
func DefaultProfile() Profile {
	return Profile{
		WeightKg:             70,
		DailyGoalMl:          2500,
		ReminderIntervalMin:  60,
		PreferredGlassSizeMl: 250,
		ActivityLevel:        ActivityModerate,
		Gender:               GenderMale,
		Theme:                ThemeDark,
	}
}

// Reminder is a scheduled drink notification; delivery is owned by the
// presentation layer, the engine only stores it
type Reminder struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	IsActive bool      `json:"is_active"`
	Days     []int     `json:"days"` // 1-7, 1 = Monday
	Note     *string   `json:"note,omitempty"`
}

// Container is a named vessel with a fixed volume for quick logging
type Container struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	VolumeMl int    `json:"volume"`
}

// TemplateItem is one drink inside a template
type TemplateItem struct {
	DrinkType DrinkType `json:"drink_type"`
	Amount    int       `json:"amount"` // ml
}

// Template groups several drinks the user logs together
type Template struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items"`
}

// TotalAmount is the raw volume of all items in the template
func (t Template) TotalAmount() int {
	total := 0
	for _, item := range t.Items {
		total += item.Amount
	}
	return total
}

// EffectiveHydration is the coefficient-scaled volume of all items
func (t Template) EffectiveHydration() int {
	var total float64
	for _, item := range t.Items {
		total += float64(item.Amount) * item.DrinkType.Coefficient()
	}
	return int(total)
}

// HydrationLevel classifies a daily percentage for status display
type HydrationLevel string

const (
	HydrationCritical  HydrationLevel = "critical"
	HydrationLow       HydrationLevel = "low"
	HydrationGood      HydrationLevel = "good"
	HydrationExcellent HydrationLevel = "excellent"
)

// HydrationLevelFrom maps a goal percentage to its level band
func HydrationLevelFrom(percentage float64) HydrationLevel {
	switch {
	case percentage < 30:
		return HydrationCritical
	case percentage < 70:
		return HydrationLow
	case percentage < 100:
		return HydrationGood
	default:
		return HydrationExcellent
	}
}

// DayRating classifies a past day for the statistics calendar
type DayRating string

const (
	DayRatingComplete DayRating = "complete" // >= 100% of goal
	DayRatingHalfway  DayRating = "halfway"  // >= 50%
	DayRatingStarted  DayRating = "started"  // > 0%
	DayRatingEmpty    DayRating = "empty"    // nothing logged
)

// DayRatingFrom maps a goal percentage to its calendar rating
func DayRatingFrom(percentage float64) DayRating {
	switch {
	case percentage >= 100:
		return DayRatingComplete
	case percentage >= 50:
		return DayRatingHalfway
	case percentage > 0:
		return DayRatingStarted
	default:
		return DayRatingEmpty
	}
}
