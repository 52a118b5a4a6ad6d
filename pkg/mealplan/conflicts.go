package mealplan

import (
	"fmt"
	"strings"

	"MediPlan-Backend/domain"
)

const (
	ConflictMedicalVsDietaryStyle = "medical_vs_dietary_style"
	ConflictImpossibleConstraints = "impossible_constraints"
)

const dietitianSuggestion = "Consult a registered dietitian for a fully supervised plan"

var meatKeywords = []string{"meat", "chicken", "beef", "pork", "lamb", "turkey", "fish", "salmon", "tuna", "seafood", "shellfish"}

var animalKeywords = append([]string{"dairy", "milk", "cheese", "yogurt", "egg", "butter", "honey"}, meatKeywords...)

var vegetarianAlternatives = []string{
	"Eggs as a complete protein source",
	"Greek yogurt (dairy protein)",
	"Tofu (plant-based protein)",
}

var veganAlternatives = []string{
	"Tofu (plant-based protein)",
	"Lentils (plant-based protein)",
	"Fortified soy milk (plant-based calcium source)",
}

// allergyCategories maps common allergy strings to the catalog category
// they knock out when deciding joint satisfiability.
var allergyCategories = map[string]domain.FoodCategory{
	"nut":       domain.CategoryFats,
	"peanut":    domain.CategoryFats,
	"milk":      domain.CategoryDairy,
	"dairy":     domain.CategoryDairy,
	"lactose":   domain.CategoryDairy,
	"egg":       domain.CategoryProteins,
	"fish":      domain.CategoryProteins,
	"shellfish": domain.CategoryProteins,
	"soy":       domain.CategoryProteins,
	"gluten":    domain.CategoryCarbs,
	"wheat":     domain.CategoryCarbs,
}

// DetectAndResolveConflicts reconciles medically REQUIRED rules with the
// user's dietary style and checks whether the combined restrictions leave
// enough of the catalog to build meals from. Medical requirements always
// win; the conflict record explains the override and proposes compatible
// substitutes.
func DetectAndResolveConflicts(rules []domain.DietRule, preferences domain.UserPreferences, conditions []domain.HealthCondition) []domain.ConflictResolution {
	var conflicts []domain.ConflictResolution
	style := strings.ToLower(strings.TrimSpace(preferences.DietaryStyle))

	for _, rule := range rules {
		if rule.FlaggedForReview() {
			continue
		}
		if rule.Priority != domain.PriorityRequired || rule.Action != domain.ActionInclude {
			continue
		}

		switch style {
		case "vegetarian":
			if mentionsAny(rule, meatKeywords) {
				conflicts = append(conflicts, domain.ConflictResolution{
					ConflictType:       ConflictMedicalVsDietaryStyle,
					MedicalRequirement: rule.RuleText,
					UserPreference:     "vegetarian dietary style",
					Resolution:         "Medical requirement takes priority; vegetarian-compatible protein substitutes are suggested",
					Alternatives:       copyStrings(vegetarianAlternatives),
				})
			}
		case "vegan":
			if mentionsAny(rule, animalKeywords) || rule.HasCategory(domain.CategoryDairy) {
				conflicts = append(conflicts, domain.ConflictResolution{
					ConflictType:       ConflictMedicalVsDietaryStyle,
					MedicalRequirement: rule.RuleText,
					UserPreference:     "vegan dietary style",
					Resolution:         "Medical requirement takes priority; plant-based substitutes are suggested",
					Alternatives:       copyStrings(veganAlternatives),
				})
			}
		}
	}

	if excluded := excludedTopLevelCategories(rules, preferences); len(excluded) >= len(domain.TopLevelCategories)-1 {
		alternatives := []string{dietitianSuggestion}
		if hasObesityCondition(conditions) {
			alternatives = append(alternatives, "Focus on portion control within the few remaining allowed foods")
		}
		conflicts = append(conflicts, domain.ConflictResolution{
			ConflictType:       ConflictImpossibleConstraints,
			MedicalRequirement: fmt.Sprintf("%d of %d food categories are excluded", len(excluded), len(domain.TopLevelCategories)),
			UserPreference:     preferences.DietaryStyle,
			Resolution:         "The combined restrictions cannot produce a balanced plan",
			Alternatives:       alternatives,
		})
	}

	return conflicts
}

// excludedTopLevelCategories unions REQUIRED-exclude categories with
// allergy-derived and dietary-style-implied ones.
func excludedTopLevelCategories(rules []domain.DietRule, preferences domain.UserPreferences) []domain.FoodCategory {
	excluded := make(map[domain.FoodCategory]bool)

	for _, rule := range rules {
		if rule.FlaggedForReview() {
			continue
		}
		if rule.Priority != domain.PriorityRequired || rule.Action != domain.ActionExclude {
			continue
		}
		for _, category := range rule.FoodCategories {
			if category == domain.CategoryAll {
				for _, top := range domain.TopLevelCategories {
					excluded[top] = true
				}
				continue
			}
			excluded[category] = true
		}
	}

	for _, allergy := range preferences.Allergies {
		lower := strings.ToLower(allergy)
		for keyword, category := range allergyCategories {
			if strings.Contains(lower, keyword) {
				excluded[category] = true
			}
		}
	}

	if strings.EqualFold(preferences.DietaryStyle, "vegan") {
		excluded[domain.CategoryDairy] = true
	}

	var out []domain.FoodCategory
	for _, top := range domain.TopLevelCategories {
		if excluded[top] {
			out = append(out, top)
		}
	}
	return out
}

func mentionsAny(rule domain.DietRule, keywords []string) bool {
	lower := strings.ToLower(rule.RuleText)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
