package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bellsbalance/backend/pkg/model"
)

func TestCalculateDailyGoal(t *testing.T) {
	age55 := 55
	age50 := 50

	tests := []struct {
		name     string
		profile  model.Profile
		expected int
	}{
		{
			name:     "moderate male baseline",
			profile:  model.Profile{WeightKg: 70, ActivityLevel: model.ActivityModerate, Gender: model.GenderMale},
			expected: 2450, // 70 * 35
		},
		{
			name:     "sedentary",
			profile:  model.Profile{WeightKg: 80, ActivityLevel: model.ActivitySedentary, Gender: model.GenderMale},
			expected: 2400, // 80 * 30
		},
		{
			name:     "very active",
			profile:  model.Profile{WeightKg: 60, ActivityLevel: model.ActivityVeryActive, Gender: model.GenderMale},
			expected: 2520, // 60 * 42
		},
		{
			name:     "female scales down 10 percent",
			profile:  model.Profile{WeightKg: 70, ActivityLevel: model.ActivityModerate, Gender: model.GenderFemale},
			expected: 2205, // 2450 * 0.9
		},
		{
			name:     "over 50 scales down 5 percent",
			profile:  model.Profile{WeightKg: 70, ActivityLevel: model.ActivityModerate, Gender: model.GenderMale, Age: &age55},
			expected: 2327, // 2450 * 0.95 truncated
		},
		{
			name:     "exactly 50 keeps the full goal",
			profile:  model.Profile{WeightKg: 70, ActivityLevel: model.ActivityModerate, Gender: model.GenderMale, Age: &age50},
			expected: 2450,
		},
		{
			name:     "both reductions stack",
			profile:  model.Profile{WeightKg: 70, ActivityLevel: model.ActivityModerate, Gender: model.GenderFemale, Age: &age55},
			expected: 2094, // 2450 * 0.9 * 0.95 truncated
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateDailyGoal(tt.profile))
		})
	}
}
