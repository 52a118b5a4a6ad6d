package interpreter

import (
	"context"
	"sort"
	"strings"

	"MediPlan-Backend/domain"
)

// categoryKeywords maps food words found in clinical notes to catalog
// categories. Shared by the keyword extractor and the ambiguity detector.
var categoryKeywords = map[string]domain.FoodCategory{
	"sugar":     domain.CategorySweets,
	"sweets":    domain.CategorySweets,
	"dessert":   domain.CategorySweets,
	"candy":     domain.CategorySweets,
	"dairy":     domain.CategoryDairy,
	"milk":      domain.CategoryDairy,
	"cheese":    domain.CategoryDairy,
	"yogurt":    domain.CategoryDairy,
	"lactose":   domain.CategoryDairy,
	"meat":      domain.CategoryProteins,
	"protein":   domain.CategoryProteins,
	"fish":      domain.CategoryProteins,
	"egg":       domain.CategoryProteins,
	"shellfish": domain.CategoryProteins,
	"carb":      domain.CategoryCarbs,
	"bread":     domain.CategoryCarbs,
	"rice":      domain.CategoryCarbs,
	"gluten":    domain.CategoryCarbs,
	"wheat":     domain.CategoryCarbs,
	"fat":       domain.CategoryFats,
	"fried":     domain.CategoryFats,
	"oil":       domain.CategoryFats,
	"nut":       domain.CategoryFats,
	"fiber":     domain.CategoryVegetables,
	"fibre":     domain.CategoryVegetables,
	"vegetable": domain.CategoryVegetables,
	"salad":     domain.CategoryVegetables,
	"greens":    domain.CategoryVegetables,
	"fruit":     domain.CategoryFruits,
}

var excludeVerbs = []string{"avoid", "no ", "exclude", "eliminate", "stop eating", "do not eat", "cut out", "restrict"}
var includeVerbs = []string{"include", "add ", "eat more", "increase", "more ", "encourage"}
var limitVerbs = []string{"limit", "reduce", "less ", "lower", "moderate"}

type keywordExtractor struct{}

// NewKeywordExtractor returns the deterministic fallback extractor. It
// never fails and always yields at least a default balanced-diet rule.
func NewKeywordExtractor() RuleExtractor {
	return &keywordExtractor{}
}

func (e *keywordExtractor) Name() string { return "keyword" }

func (e *keywordExtractor) Extract(_ context.Context, text string) ([]domain.DietRule, error) {
	var rules []domain.DietRule
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		action, priority, ok := classifyAction(lower)
		if !ok {
			continue
		}

		categories := mentionedCategories(lower)
		if len(categories) == 0 {
			continue
		}

		// "Avoid refined carbohydrates" and "avoid sugar" both imply the
		// sweets category alongside carbs.
		if action == domain.ActionExclude && containsCategory(categories, domain.CategorySweets) {
			categories = appendCategory(categories, domain.CategoryCarbs)
		}
		// High-fiber guidance maps to vegetables and fruits.
		if action == domain.ActionInclude && (strings.Contains(lower, "fiber") || strings.Contains(lower, "fibre")) {
			categories = appendCategory(categories, domain.CategoryVegetables)
			categories = appendCategory(categories, domain.CategoryFruits)
			categories = removeCategory(categories, domain.CategoryCarbs)
		}

		rules = append(rules, domain.DietRule{
			RuleText:       strings.TrimSpace(sentence),
			Priority:       priority,
			FoodCategories: categories,
			Action:         action,
			Source:         "keyword",
		})
	}

	if len(rules) == 0 {
		rules = append(rules, domain.DietRule{
			RuleText:       "Maintain a balanced diet with foods from all groups",
			Priority:       domain.PriorityRecommended,
			FoodCategories: []domain.FoodCategory{domain.CategoryAll},
			Action:         domain.ActionInclude,
			Source:         "keyword",
		})
	}

	return rules, nil
}

// classifyAction decides the rule action for a sentence. Exclusions are
// treated as hard requirements; inclusions and limits as recommendations.
func classifyAction(lower string) (domain.RuleAction, domain.RulePriority, bool) {
	for _, v := range excludeVerbs {
		if strings.Contains(lower, v) {
			return domain.ActionExclude, domain.PriorityRequired, true
		}
	}
	for _, v := range limitVerbs {
		if strings.Contains(lower, v) {
			return domain.ActionLimit, domain.PriorityRecommended, true
		}
	}
	for _, v := range includeVerbs {
		if strings.Contains(lower, v) {
			return domain.ActionInclude, domain.PriorityRecommended, true
		}
	}
	return "", "", false
}

func mentionedCategories(lower string) []domain.FoodCategory {
	var out []domain.FoodCategory
	for word, category := range categoryKeywords {
		if strings.Contains(lower, word) {
			out = appendCategory(out, category)
		}
	}
	sortCategories(out)
	return out
}

func splitSentences(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == ';' || r == '\n' || r == '!'
	})
	var out []string
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func appendCategory(categories []domain.FoodCategory, c domain.FoodCategory) []domain.FoodCategory {
	if containsCategory(categories, c) {
		return categories
	}
	return append(categories, c)
}

func removeCategory(categories []domain.FoodCategory, c domain.FoodCategory) []domain.FoodCategory {
	var out []domain.FoodCategory
	for _, existing := range categories {
		if existing != c {
			out = append(out, existing)
		}
	}
	return out
}

func containsCategory(categories []domain.FoodCategory, c domain.FoodCategory) bool {
	for _, existing := range categories {
		if existing == c {
			return true
		}
	}
	return false
}

func sortCategories(categories []domain.FoodCategory) {
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
}
