package interpreter

import (
	"context"
	"testing"

	"MediPlan-Backend/domain"
)

func TestKeywordExtractorClassification(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		priority domain.RulePriority
		action   domain.RuleAction
		category domain.FoodCategory
	}{
		{"exclusion is required", "Avoid all dairy products", domain.PriorityRequired, domain.ActionExclude, domain.CategoryDairy},
		{"limit is recommended", "Limit fried foods", domain.PriorityRecommended, domain.ActionLimit, domain.CategoryFats},
		{"inclusion is recommended", "Eat more vegetables", domain.PriorityRecommended, domain.ActionInclude, domain.CategoryVegetables},
	}

	extractor := NewKeywordExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := extractor.Extract(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if len(rules) != 1 {
				t.Fatalf("expected 1 rule, got %d: %+v", len(rules), rules)
			}
			rule := rules[0]
			if rule.Priority != tt.priority {
				t.Errorf("priority: expected %s, got %s", tt.priority, rule.Priority)
			}
			if rule.Action != tt.action {
				t.Errorf("action: expected %s, got %s", tt.action, rule.Action)
			}
			if !rule.HasCategory(tt.category) {
				t.Errorf("expected category %s in %v", tt.category, rule.FoodCategories)
			}
			if rule.Source != "keyword" {
				t.Errorf("expected keyword source, got %q", rule.Source)
			}
		})
	}
}

func TestKeywordExtractorSweetsImplyCarbs(t *testing.T) {
	extractor := NewKeywordExtractor()
	rules, err := extractor.Extract(context.Background(), "Avoid sugar completely")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if !rules[0].HasCategory(domain.CategorySweets) || !rules[0].HasCategory(domain.CategoryCarbs) {
		t.Errorf("sweets exclusion should imply carbs: %v", rules[0].FoodCategories)
	}
}

func TestKeywordExtractorFiberImpliesProduceNotCarbs(t *testing.T) {
	extractor := NewKeywordExtractor()
	rules, err := extractor.Extract(context.Background(), "Include high-fiber foods")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	rule := rules[0]
	if !rule.HasCategory(domain.CategoryVegetables) || !rule.HasCategory(domain.CategoryFruits) {
		t.Errorf("fiber inclusion should target vegetables and fruits: %v", rule.FoodCategories)
	}
	for _, category := range rule.FoodCategories {
		if category == domain.CategoryCarbs {
			t.Errorf("fiber inclusion should not target carbs: %v", rule.FoodCategories)
		}
	}
}

func TestKeywordExtractorDefaultRule(t *testing.T) {
	extractor := NewKeywordExtractor()
	rules, err := extractor.Extract(context.Background(), "Patient is recovering well")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected the default rule, got %d rules", len(rules))
	}
	rule := rules[0]
	if rule.Priority != domain.PriorityRecommended || rule.Action != domain.ActionInclude {
		t.Errorf("default rule should be RECOMMENDED include, got %s %s", rule.Priority, rule.Action)
	}
	if !rule.HasCategory(domain.CategoryAll) {
		t.Errorf("default rule should cover all categories: %v", rule.FoodCategories)
	}
}
