package mealplan

import (
	"strings"
	"testing"

	"MediPlan-Backend/domain"
)

func TestDetectConflictVeganVsDairyRequirement(t *testing.T) {
	rules := []domain.DietRule{
		{
			RuleText:       "Increase dairy intake for calcium",
			Priority:       domain.PriorityRequired,
			FoodCategories: []domain.FoodCategory{domain.CategoryDairy},
			Action:         domain.ActionInclude,
		},
	}
	preferences := domain.UserPreferences{DietaryStyle: "vegan"}

	conflicts := DetectAndResolveConflicts(rules, preferences, nil)
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d: %+v", len(conflicts), conflicts)
	}

	conflict := conflicts[0]
	if conflict.ConflictType != ConflictMedicalVsDietaryStyle {
		t.Errorf("expected %s, got %s", ConflictMedicalVsDietaryStyle, conflict.ConflictType)
	}
	if conflict.MedicalRequirement != rules[0].RuleText {
		t.Errorf("conflict should carry the rule text, got %q", conflict.MedicalRequirement)
	}

	var plantBased bool
	for _, alternative := range conflict.Alternatives {
		if strings.Contains(strings.ToLower(alternative), "plant-based") {
			plantBased = true
		}
	}
	if !plantBased {
		t.Errorf("vegan alternatives must offer a plant-based option: %v", conflict.Alternatives)
	}
}

func TestDetectConflictVegetarianVsFishRequirement(t *testing.T) {
	rules := []domain.DietRule{
		{
			RuleText:       "Eat fish twice a week for omega-3",
			Priority:       domain.PriorityRequired,
			FoodCategories: []domain.FoodCategory{domain.CategoryProteins},
			Action:         domain.ActionInclude,
		},
	}
	preferences := domain.UserPreferences{DietaryStyle: "vegetarian"}

	conflicts := DetectAndResolveConflicts(rules, preferences, nil)
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d", len(conflicts))
	}

	var dairyOrEggs bool
	for _, alternative := range conflicts[0].Alternatives {
		lower := strings.ToLower(alternative)
		if strings.Contains(lower, "egg") || strings.Contains(lower, "yogurt") {
			dairyOrEggs = true
		}
	}
	if !dairyOrEggs {
		t.Errorf("vegetarian alternatives may use dairy or eggs: %v", conflicts[0].Alternatives)
	}
}

func TestNoConflictWithoutDietaryStyle(t *testing.T) {
	rules := []domain.DietRule{
		{
			RuleText:       "Eat fish twice a week for omega-3",
			Priority:       domain.PriorityRequired,
			FoodCategories: []domain.FoodCategory{domain.CategoryProteins},
			Action:         domain.ActionInclude,
		},
	}

	conflicts := DetectAndResolveConflicts(rules, domain.UserPreferences{}, nil)
	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts for an unrestricted diet, got %+v", conflicts)
	}
}

func TestFlaggedRulesNeverConflict(t *testing.T) {
	rules := []domain.DietRule{
		{
			RuleText:       domain.ReviewMarker + " Consider more dairy for calcium",
			Priority:       domain.PriorityRequired,
			FoodCategories: []domain.FoodCategory{domain.CategoryDairy},
			Action:         domain.ActionInclude,
		},
	}

	conflicts := DetectAndResolveConflicts(rules, domain.UserPreferences{DietaryStyle: "vegan"}, nil)
	if len(conflicts) != 0 {
		t.Fatalf("flagged rules must not be enforced, got %+v", conflicts)
	}
}

func TestDetectImpossibleConstraints(t *testing.T) {
	rules := excludeAllCategoriesRules()

	conflicts := DetectAndResolveConflicts(rules, domain.UserPreferences{}, nil)

	var impossible *domain.ConflictResolution
	for i := range conflicts {
		if conflicts[i].ConflictType == ConflictImpossibleConstraints {
			impossible = &conflicts[i]
		}
	}
	if impossible == nil {
		t.Fatalf("expected impossible_constraints conflict, got %+v", conflicts)
	}

	var dietitian bool
	for _, alternative := range impossible.Alternatives {
		if strings.Contains(strings.ToLower(alternative), "dietitian") {
			dietitian = true
		}
	}
	if !dietitian {
		t.Errorf("alternatives must include a dietitian consultation: %v", impossible.Alternatives)
	}
}

func TestImpossibleConstraintsObesityGuidance(t *testing.T) {
	conditions := []domain.HealthCondition{{ConditionType: domain.ConditionObesityClass1}}

	conflicts := DetectAndResolveConflicts(excludeAllCategoriesRules(), domain.UserPreferences{}, conditions)

	var portionControl bool
	for _, conflict := range conflicts {
		if conflict.ConflictType != ConflictImpossibleConstraints {
			continue
		}
		for _, alternative := range conflict.Alternatives {
			if strings.Contains(strings.ToLower(alternative), "portion control") {
				portionControl = true
			}
		}
	}
	if !portionControl {
		t.Errorf("obesity should add portion-control guidance to the impossible conflict: %+v", conflicts)
	}
}

func TestAllergiesCountTowardExclusion(t *testing.T) {
	rules := []domain.DietRule{
		requiredExclude("No carbohydrates", domain.CategoryCarbs),
		requiredExclude("No fats", domain.CategoryFats),
		requiredExclude("No vegetables", domain.CategoryVegetables),
		requiredExclude("No fruits", domain.CategoryFruits),
	}
	preferences := domain.UserPreferences{Allergies: []string{"milk", "egg"}}

	conflicts := DetectAndResolveConflicts(rules, preferences, nil)

	var impossible bool
	for _, conflict := range conflicts {
		if conflict.ConflictType == ConflictImpossibleConstraints {
			impossible = true
		}
	}
	if !impossible {
		t.Fatalf("allergy-derived categories should complete the exclusion set: %+v", conflicts)
	}
}

func requiredExclude(text string, categories ...domain.FoodCategory) domain.DietRule {
	return domain.DietRule{
		RuleText:       text,
		Priority:       domain.PriorityRequired,
		FoodCategories: categories,
		Action:         domain.ActionExclude,
	}
}

func excludeAllCategoriesRules() []domain.DietRule {
	return []domain.DietRule{
		requiredExclude("No animal protein", domain.CategoryProteins, domain.CategoryCarbs),
		requiredExclude("No dairy", domain.CategoryDairy),
		requiredExclude("No added fats", domain.CategoryFats),
		requiredExclude("No raw vegetables", domain.CategoryVegetables),
		requiredExclude("No fruit", domain.CategoryFruits),
	}
}
