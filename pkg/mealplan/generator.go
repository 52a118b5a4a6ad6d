package mealplan

import (
	"strings"
	"time"

	"MediPlan-Backend/domain"
	"MediPlan-Backend/pkg/catalog"

	"github.com/google/uuid"
)

var mealCalorieShares = map[domain.MealType]float64{
	domain.MealBreakfast: 0.25,
	domain.MealLunch:     0.35,
	domain.MealSnack:     0.10,
	domain.MealDinner:    0.30,
}

var mealOrder = []domain.MealType{
	domain.MealBreakfast,
	domain.MealLunch,
	domain.MealSnack,
	domain.MealDinner,
}

var conditionGuidance = []struct {
	matches func(domain.ConditionType) bool
	text    string
}{
	{func(c domain.ConditionType) bool { return c.IsDiabetesFamily() }, "Choose low glycemic index foods and spread carbohydrates evenly across meals"},
	{func(c domain.ConditionType) bool {
		return c == domain.ConditionHypertensionStage1 || c == domain.ConditionHypertensionStage2
	}, "Keep sodium intake below 2300mg per day and season with herbs instead of salt"},
	{func(c domain.ConditionType) bool { return c == domain.ConditionHyperlipidemia }, "Prefer unsaturated fats and increase soluble fiber intake"},
	{func(c domain.ConditionType) bool { return c.IsObesityClass() }, "Maintain the calorie deficit and prioritize portion control at every meal"},
	{func(c domain.ConditionType) bool { return c == domain.ConditionAnemia }, "Pair iron-rich foods with vitamin C sources to improve absorption"},
}

// GeneratePlan assembles one complete single-day diet plan. Input
// validation failures surface before any filtering work; the only
// plan-level failure afterwards is UnsatisfiableConstraintsError.
func GeneratePlan(patientID string, profile domain.PatientProfile, conditions []domain.HealthCondition, rules []domain.DietRule) (domain.DietPlan, []domain.ConflictResolution, error) {
	dailyCalories, err := CalculateDailyCalories(profile.Age, profile.Gender, profile.WeightKg, profile.HeightCm, profile.ActivityLevel)
	if err != nil {
		return domain.DietPlan{}, nil, err
	}

	conflicts := DetectAndResolveConflicts(rules, profile.Preferences, conditions)

	if hasObesityCondition(conditions) {
		dailyCalories -= ObesityCalorieDeficit
	}

	macroTargets := CalculateMacroTargets(conditions)
	restrictions := restrictionsFromRules(rules)

	available := filterCatalog(catalog.Foods(), restrictions, profile.Preferences)
	if len(available) == 0 {
		alternatives := collectAlternatives(conflicts)
		return domain.DietPlan{}, conflicts, &domain.UnsatisfiableConstraintsError{
			Conflicts:    conflicts,
			Alternatives: alternatives,
		}
	}

	meals := buildMeals(dailyCalories, available)

	plan := domain.DietPlan{
		ID:                   uuid.New().String(),
		PatientID:            patientID,
		GeneratedAt:          time.Now(),
		DailyCalories:        dailyCalories,
		MacronutrientTargets: macroTargets,
		Meals:                meals,
		Restrictions:         restrictions,
		Recommendations:      buildRecommendations(conflicts, conditions, rules),
		HealthConditions:     append([]domain.HealthCondition(nil), conditions...),
	}

	return plan, conflicts, nil
}

// GenerateWeeklyPlan produces seven independent single-day plans. Variety
// across days is best-effort only.
func GenerateWeeklyPlan(patientID string, profile domain.PatientProfile, conditions []domain.HealthCondition, rules []domain.DietRule) ([]domain.DietPlan, []domain.ConflictResolution, error) {
	plans := make([]domain.DietPlan, 0, 7)
	var conflicts []domain.ConflictResolution
	for day := 0; day < 7; day++ {
		plan, dayConflicts, err := GeneratePlan(patientID, profile, conditions, rules)
		if err != nil {
			return nil, dayConflicts, err
		}
		plans = append(plans, plan)
		if day == 0 {
			conflicts = dayConflicts
		}
	}
	return plans, conflicts, nil
}

// restrictionsFromRules converts REQUIRED exclude-rules into restriction
// entries carried on the plan.
func restrictionsFromRules(rules []domain.DietRule) []domain.DietaryRestriction {
	var restrictions []domain.DietaryRestriction
	for _, rule := range rules {
		if rule.FlaggedForReview() {
			continue
		}
		if rule.Priority != domain.PriorityRequired || rule.Action != domain.ActionExclude {
			continue
		}
		items := make([]string, 0, len(rule.FoodCategories))
		for _, category := range rule.FoodCategories {
			items = append(items, string(category))
		}
		restrictions = append(restrictions, domain.DietaryRestriction{
			RestrictionType: domain.RestrictionTypeOf(rule.RuleText),
			RestrictedItems: items,
			Severity:        "high",
		})
	}
	return restrictions
}

// filterCatalog removes every food whose category is restricted, whose
// name contains a restricted item, allergy or dislike, or whose name
// matches a keyword implied by the dietary style. The allergy filter is
// absolute regardless of any other accommodation.
func filterCatalog(foods []domain.Food, restrictions []domain.DietaryRestriction, preferences domain.UserPreferences) []domain.Food {
	restrictedCategories := make(map[domain.FoodCategory]bool)
	var restrictedItems []string
	for _, restriction := range restrictions {
		for _, item := range restriction.RestrictedItems {
			if item == string(domain.CategoryAll) {
				for _, top := range domain.TopLevelCategories {
					restrictedCategories[top] = true
				}
				restrictedCategories[domain.CategorySweets] = true
				continue
			}
			restrictedCategories[domain.FoodCategory(item)] = true
			restrictedItems = append(restrictedItems, item)
		}
	}

	var styleKeywords []string
	switch strings.ToLower(strings.TrimSpace(preferences.DietaryStyle)) {
	case "vegetarian":
		styleKeywords = meatKeywords
	case "vegan":
		styleKeywords = animalKeywords
		restrictedCategories[domain.CategoryDairy] = true
	}

	var out []domain.Food
	for _, food := range foods {
		if restrictedCategories[food.Category] {
			continue
		}
		name := strings.ToLower(food.Name)
		if containsAnyKeyword(name, restrictedItems) {
			continue
		}
		if containsAnyKeyword(name, preferences.Allergies) {
			continue
		}
		if containsAnyKeyword(name, preferences.Dislikes) {
			continue
		}
		if containsAnyKeyword(name, styleKeywords) {
			continue
		}
		out = append(out, food)
	}
	return out
}

// buildMeals splits the daily target across the four meal types and
// selects portions from each meal's preferred shortlist, topping up from
// the whole filtered catalog when filtering thins the shortlist below
// two foods for a non-snack meal.
// Each food's calories are allocated evenly, with the last food absorbing
// the division remainder, and portion amounts scale linearly off a 100g
// base serving.
func buildMeals(dailyCalories float64, available []domain.Food) []domain.Meal {
	meals := make([]domain.Meal, 0, len(mealOrder))
	for _, mealType := range mealOrder {
		target := dailyCalories * mealCalorieShares[mealType]

		maxFoods := 3
		if mealType == domain.MealSnack {
			maxFoods = 2
		}

		selected := selectFoods(mealType, available, maxFoods)
		meal := domain.Meal{MealType: mealType}

		perFood := target / float64(len(selected))
		allocated := 0.0
		for i, food := range selected {
			allocation := perFood
			if i == len(selected)-1 {
				allocation = target - allocated
			}
			allocated += allocation

			amount := 0.0
			if food.Calories > 0 {
				amount = allocation / food.Calories * 100
			}
			portion := domain.Portion{
				Food:     food,
				Amount:   amount,
				Unit:     "g",
				Calories: allocation,
				ProteinG: food.ProteinG * amount / 100,
				CarbsG:   food.CarbsG * amount / 100,
				FatG:     food.FatG * amount / 100,
			}
			meal.Portions = append(meal.Portions, portion)
			meal.TotalCalories += portion.Calories
			meal.TotalProteinG += portion.ProteinG
			meal.TotalCarbsG += portion.CarbsG
			meal.TotalFatG += portion.FatG
		}

		meals = append(meals, meal)
	}
	return meals
}

func selectFoods(mealType domain.MealType, available []domain.Food, maxFoods int) []domain.Food {
	byName := make(map[string]domain.Food, len(available))
	for _, food := range available {
		byName[strings.ToLower(food.Name)] = food
	}

	var selected []domain.Food
	for _, name := range catalog.Shortlist(mealType) {
		if len(selected) == maxFoods {
			break
		}
		if food, ok := byName[strings.ToLower(name)]; ok {
			selected = append(selected, food)
		}
	}

	if len(selected) == 0 {
		for _, food := range available {
			if len(selected) == maxFoods {
				break
			}
			selected = append(selected, food)
		}
	}

	// A shortlist thinned to a single survivor still yields a two-food
	// meal when the filtered catalog has more to offer.
	if mealType != domain.MealSnack && len(selected) < 2 {
		chosen := make(map[string]bool, len(selected))
		for _, food := range selected {
			chosen[strings.ToLower(food.Name)] = true
		}
		for _, food := range available {
			if len(selected) >= 2 {
				break
			}
			if chosen[strings.ToLower(food.Name)] {
				continue
			}
			selected = append(selected, food)
		}
	}
	return selected
}

// buildRecommendations orders the list as conflict notices first, then
// condition-specific guidance, then RECOMMENDED rule texts.
func buildRecommendations(conflicts []domain.ConflictResolution, conditions []domain.HealthCondition, rules []domain.DietRule) []string {
	var recommendations []string

	for _, conflict := range conflicts {
		recommendations = append(recommendations, conflict.Resolution)
		for i, alternative := range conflict.Alternatives {
			if i == 2 {
				break
			}
			recommendations = append(recommendations, "Alternative: "+alternative)
		}
	}

	seen := make(map[string]bool)
	for _, guidance := range conditionGuidance {
		for _, condition := range conditions {
			if guidance.matches(condition.ConditionType) && !seen[guidance.text] {
				seen[guidance.text] = true
				recommendations = append(recommendations, guidance.text)
			}
		}
	}

	for _, rule := range rules {
		if rule.FlaggedForReview() {
			continue
		}
		if rule.Priority == domain.PriorityRecommended {
			recommendations = append(recommendations, rule.RuleText)
		}
	}

	return recommendations
}

func collectAlternatives(conflicts []domain.ConflictResolution) []string {
	var alternatives []string
	seen := make(map[string]bool)
	for _, conflict := range conflicts {
		for _, alternative := range conflict.Alternatives {
			if !seen[alternative] {
				seen[alternative] = true
				alternatives = append(alternatives, alternative)
			}
		}
	}
	if len(alternatives) == 0 {
		alternatives = append(alternatives, dietitianSuggestion)
	}
	return alternatives
}

func containsAnyKeyword(name string, keywords []string) bool {
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" && strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
