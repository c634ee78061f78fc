package service

import "github.com/bellsbalance/backend/pkg/model"

// CalculateDailyGoal derives a recommended daily intake in ml from the
// profile: weight times the activity multiplier, scaled down for female
// users and for users over 50, truncated to whole milliliters.
func CalculateDailyGoal(p model.Profile) int {
	base := float64(p.WeightKg) * p.ActivityLevel.Multiplier()
	if p.Gender == model.GenderFemale {
		base *= 0.9
	}
	if p.Age != nil && *p.Age > 50 {
		base *= 0.95
	}
	return int(base)
}
