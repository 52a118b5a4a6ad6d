package mealplan

import (
	"strings"

	"MediPlan-Backend/domain"
)

var activityFactors = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.20,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.90,
}

// ObesityCalorieDeficit is subtracted from the daily target when any
// obesity-class condition is present.
const ObesityCalorieDeficit = 600

// CalculateDailyCalories computes TDEE with the Mifflin-St Jeor formula.
// The formula only defines male and female branches; any other gender is
// rejected rather than guessed.
func CalculateDailyCalories(age int, gender string, weightKg, heightCm float64, activityLevel domain.ActivityLevel) (float64, error) {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch strings.ToLower(gender) {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		return 0, domain.ErrInvalidGender
	}

	factor, ok := activityFactors[activityLevel]
	if !ok {
		return 0, domain.ErrInvalidActivityLevel
	}

	return bmr * factor, nil
}

// CalculateMacroTargets derives protein/carbs/fat percentage targets from
// the detected conditions. Diabetes keeps the default split: its management
// is about glycemic index, not macro shares. When hyperlipidemia and an
// obesity class are both present, the obesity protein target and the
// hyperlipidemia fat target are kept and carbs absorb the remainder.
func CalculateMacroTargets(conditions []domain.HealthCondition) domain.MacronutrientRatios {
	hasHyperlipidemia := false
	hasObesity := false
	for _, condition := range conditions {
		if condition.ConditionType == domain.ConditionHyperlipidemia {
			hasHyperlipidemia = true
		}
		if condition.ConditionType.IsObesityClass() {
			hasObesity = true
		}
	}

	switch {
	case hasHyperlipidemia && hasObesity:
		return domain.MacronutrientRatios{ProteinPercent: 35, CarbsPercent: 40, FatPercent: 25}
	case hasObesity:
		return domain.MacronutrientRatios{ProteinPercent: 35, CarbsPercent: 35, FatPercent: 30}
	case hasHyperlipidemia:
		return domain.MacronutrientRatios{ProteinPercent: 30, CarbsPercent: 45, FatPercent: 25}
	default:
		return domain.MacronutrientRatios{ProteinPercent: 30, CarbsPercent: 40, FatPercent: 30}
	}
}

func hasObesityCondition(conditions []domain.HealthCondition) bool {
	for _, condition := range conditions {
		if condition.ConditionType.IsObesityClass() {
			return true
		}
	}
	return false
}
