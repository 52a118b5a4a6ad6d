package interpreter

import (
	"fmt"
	"strings"

	"MediPlan-Backend/domain"
)

var vagueQuantifiers = []string{"some", "moderate amount", "occasionally", "maybe", "consider"}

var hedgedAllergyPhrases = []string{
	"possible allergy",
	"suspected allergy",
	"possible intolerance",
	"suspected intolerance",
	"may be allergic",
	"might be allergic",
}

// DetectAmbiguities scans note text for guidance that must not be enforced
// automatically: contradictory include/exclude mentions of the same
// category, vague quantifiers, simultaneous low-carb and high-carb advice,
// and hedged allergy statements. Each finding becomes an OPTIONAL rule
// prefixed with the review marker so it can never override a stricter rule.
func DetectAmbiguities(text string) []domain.DietRule {
	lower := strings.ToLower(text)
	var flagged []domain.DietRule

	included := make(map[domain.FoodCategory]bool)
	excluded := make(map[domain.FoodCategory]bool)
	for _, sentence := range splitSentences(lower) {
		action, _, ok := classifyAction(sentence)
		if !ok {
			continue
		}
		for _, category := range mentionedCategories(sentence) {
			switch action {
			case domain.ActionInclude:
				included[category] = true
			case domain.ActionExclude:
				excluded[category] = true
			}
		}
	}
	var contradictory []domain.FoodCategory
	for category := range excluded {
		if included[category] {
			contradictory = appendCategory(contradictory, category)
		}
	}
	sortCategories(contradictory)
	for _, category := range contradictory {
		flagged = append(flagged, flaggedRule(
			fmt.Sprintf("Contradictory guidance: %s is both included and excluded", category),
			[]domain.FoodCategory{category},
		))
	}

	for _, quantifier := range vagueQuantifiers {
		if strings.Contains(lower, quantifier) {
			flagged = append(flagged, flaggedRule(
				fmt.Sprintf("Vague quantifier %q requires clarification", quantifier),
				nil,
			))
		}
	}

	lowCarb := strings.Contains(lower, "low-carb") || strings.Contains(lower, "low carb")
	highCarb := strings.Contains(lower, "high-carb") || strings.Contains(lower, "high carb")
	if lowCarb && highCarb {
		flagged = append(flagged, flaggedRule(
			"Simultaneous low-carb and high-carb guidance",
			[]domain.FoodCategory{domain.CategoryCarbs},
		))
	}

	for _, phrase := range hedgedAllergyPhrases {
		if strings.Contains(lower, phrase) {
			flagged = append(flagged, flaggedRule(
				fmt.Sprintf("Hedged allergy statement %q needs confirmation", phrase),
				nil,
			))
		}
	}

	return flagged
}

func flaggedRule(text string, categories []domain.FoodCategory) domain.DietRule {
	return domain.DietRule{
		RuleText:       domain.ReviewMarker + " " + text,
		Priority:       domain.PriorityOptional,
		FoodCategories: categories,
		Action:         domain.ActionLimit,
		Source:         "ambiguity_detector",
	}
}
