package interpreter

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"MediPlan-Backend/domain"
)

type stubExtractor struct {
	name  string
	rules []domain.DietRule
	err   error
	calls int
}

func (s *stubExtractor) Name() string { return s.name }

func (s *stubExtractor) Extract(_ context.Context, _ string) ([]domain.DietRule, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rules, nil
}

func diabetesNotes() []domain.TextualNote {
	return []domain.TextualNote{
		{Content: "Patient has diabetes. Avoid sugar and refined carbohydrates. Include high-fiber foods.", Section: domain.SectionDoctorNotes},
	}
}

func TestInterpretDiabetesNotes(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})

	rules, err := service.Interpret(context.Background(), diabetesNotes())
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if len(rules) < 2 {
		t.Fatalf("expected at least 2 rules, got %d", len(rules))
	}

	var foundExclude, foundInclude bool
	for _, rule := range rules {
		if rule.Priority == domain.PriorityRequired && rule.Action == domain.ActionExclude &&
			rule.HasCategory(domain.CategoryCarbs) && rule.HasCategory(domain.CategorySweets) {
			foundExclude = true
		}
		if rule.Priority == domain.PriorityRecommended && rule.Action == domain.ActionInclude &&
			rule.HasCategory(domain.CategoryVegetables) && rule.HasCategory(domain.CategoryFruits) {
			foundInclude = true
		}
	}
	if !foundExclude {
		t.Errorf("missing REQUIRED exclude rule for carbs and sweets: %+v", rules)
	}
	if !foundInclude {
		t.Errorf("missing RECOMMENDED include rule for vegetables and fruits: %+v", rules)
	}
}

func TestInterpretEmptyNotes(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})

	if _, err := service.Interpret(context.Background(), nil); !errors.Is(err, domain.ErrEmptyNotes) {
		t.Fatalf("expected ErrEmptyNotes, got %v", err)
	}
}

func TestInterpretUsesCache(t *testing.T) {
	stub := &stubExtractor{
		name: "stub",
		rules: []domain.DietRule{
			{RuleText: "Avoid dairy", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategoryDairy}, Action: domain.ActionExclude, Source: "stub"},
		},
	}
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{stub})
	notes := []domain.TextualNote{{Content: "Avoid dairy", Section: domain.SectionPrescription}}

	first, err := service.Interpret(context.Background(), notes)
	if err != nil {
		t.Fatalf("first Interpret failed: %v", err)
	}
	second, err := service.Interpret(context.Background(), notes)
	if err != nil {
		t.Fatalf("second Interpret failed: %v", err)
	}

	if stub.calls != 1 {
		t.Errorf("expected 1 extractor call, got %d", stub.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestInterpretFallsBackOnExtractorError(t *testing.T) {
	failing := &stubExtractor{name: "failing", err: domain.ErrExtractionBackend}
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{failing, NewKeywordExtractor()})

	rules, err := service.Interpret(context.Background(), diabetesNotes())
	if err != nil {
		t.Fatalf("Interpret should fall back to keyword extractor, got error: %v", err)
	}
	if failing.calls != 1 {
		t.Errorf("failing extractor should be tried once, got %d calls", failing.calls)
	}
	if len(rules) == 0 {
		t.Fatal("fallback produced no rules")
	}
	for _, rule := range rules {
		if rule.Source == "failing" {
			t.Errorf("rule attributed to failed extractor: %+v", rule)
		}
	}
}

func TestResolveConflictsPriorityWins(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})

	rules := []domain.DietRule{
		{RuleText: "Limit dairy somewhat", Priority: domain.PriorityOptional, FoodCategories: []domain.FoodCategory{domain.CategoryDairy}, Action: domain.ActionExclude, Source: "keyword"},
		{RuleText: "Avoid dairy entirely", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategoryDairy}, Action: domain.ActionExclude, Source: "gemini"},
		{RuleText: "Cut dairy", Priority: domain.PriorityRecommended, FoodCategories: []domain.FoodCategory{domain.CategoryDairy}, Action: domain.ActionExclude, Source: "ner"},
	}

	resolved := service.ResolveConflicts(rules)
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved rule, got %d: %+v", len(resolved), resolved)
	}
	if resolved[0].Priority != domain.PriorityRequired {
		t.Errorf("expected REQUIRED rule to win, got %s", resolved[0].Priority)
	}
	if resolved[0].RuleText != "Avoid dairy entirely" {
		t.Errorf("unexpected winning rule: %q", resolved[0].RuleText)
	}
}

func TestResolveConflictsFirstSeenTieBreak(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})

	rules := []domain.DietRule{
		{RuleText: "Avoid sweets", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategorySweets}, Action: domain.ActionExclude, Source: "gemini"},
		{RuleText: "No desserts", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategorySweets}, Action: domain.ActionExclude, Source: "keyword"},
	}

	resolved := service.ResolveConflicts(rules)
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved rule, got %d", len(resolved))
	}
	if resolved[0].RuleText != "Avoid sweets" {
		t.Errorf("first occurrence should win the tie, got %q", resolved[0].RuleText)
	}
}

func TestResolveConflictsOverlappingCategorySets(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})

	rules := []domain.DietRule{
		{RuleText: "Avoid sugar and refined carbohydrates", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategoryCarbs, domain.CategorySweets}, Action: domain.ActionExclude, Source: "gemini"},
		{RuleText: "No bread or rice", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategoryCarbs}, Action: domain.ActionExclude, Source: "keyword"},
		{RuleText: "Avoid desserts and dairy", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategorySweets, domain.CategoryDairy}, Action: domain.ActionExclude, Source: "keyword"},
	}

	resolved := service.ResolveConflicts(rules)
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolved rules, got %d: %+v", len(resolved), resolved)
	}
	if resolved[0].RuleText != "Avoid sugar and refined carbohydrates" {
		t.Errorf("first rule should claim carbs and sweets, got %q", resolved[0].RuleText)
	}
	// The second rule repeats already-claimed pairs and must drop; the
	// third survives on the unclaimed dairy pair.
	if resolved[1].RuleText != "Avoid desserts and dairy" {
		t.Errorf("rule carrying an unclaimed pair should survive, got %q", resolved[1].RuleText)
	}
}

func TestResolveConflictsKeepsFlaggedRules(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})

	flagged := domain.DietRule{
		RuleText:       domain.ReviewMarker + " Vague quantifier \"some\" requires clarification",
		Priority:       domain.PriorityOptional,
		Action:         domain.ActionLimit,
		Source:         "ambiguity_detector",
		FoodCategories: []domain.FoodCategory{domain.CategoryDairy},
	}
	active := domain.DietRule{
		RuleText:       "Avoid dairy",
		Priority:       domain.PriorityRequired,
		FoodCategories: []domain.FoodCategory{domain.CategoryDairy},
		Action:         domain.ActionExclude,
		Source:         "keyword",
	}

	resolved := service.ResolveConflicts([]domain.DietRule{flagged, active})
	if len(resolved) != 2 {
		t.Fatalf("flagged rule must not be merged away, got %d rules", len(resolved))
	}
	if !service.IsFlaggedForReview(resolved[len(resolved)-1]) {
		t.Error("flagged rule should be appended after active rules")
	}
}

func TestExtractRestrictions(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})

	rules := []domain.DietRule{
		{RuleText: "Confirmed shellfish allergy, strict avoidance", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategoryProteins}, Action: domain.ActionExclude},
		{RuleText: "Lactose intolerance noted", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategoryDairy}, Action: domain.ActionExclude},
		{RuleText: "Avoid fried foods", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategoryFats}, Action: domain.ActionExclude},
		{RuleText: "Eat more vegetables", Priority: domain.PriorityRecommended, FoodCategories: []domain.FoodCategory{domain.CategoryVegetables}, Action: domain.ActionInclude},
		{RuleText: domain.ReviewMarker + " possible allergy to nuts", Priority: domain.PriorityOptional, FoodCategories: []domain.FoodCategory{domain.CategoryFats}, Action: domain.ActionLimit},
	}

	restrictions := service.ExtractRestrictions(rules)
	if len(restrictions) != 3 {
		t.Fatalf("expected 3 restrictions, got %d: %+v", len(restrictions), restrictions)
	}

	expectedTypes := []domain.RestrictionType{
		domain.RestrictionAllergy,
		domain.RestrictionIntolerance,
		domain.RestrictionMedical,
	}
	for i, restriction := range restrictions {
		if restriction.RestrictionType != expectedTypes[i] {
			t.Errorf("restriction %d: expected type %s, got %s", i, expectedTypes[i], restriction.RestrictionType)
		}
		if restriction.Severity != "high" {
			t.Errorf("restriction %d: expected high severity, got %s", i, restriction.Severity)
		}
	}
}

func TestExtractRecommendations(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})

	rules := []domain.DietRule{
		{RuleText: "Avoid dairy", Priority: domain.PriorityRequired, FoodCategories: []domain.FoodCategory{domain.CategoryDairy}, Action: domain.ActionExclude},
		{RuleText: "Eat more vegetables", Priority: domain.PriorityRecommended, FoodCategories: []domain.FoodCategory{domain.CategoryVegetables}, Action: domain.ActionInclude},
		{RuleText: domain.ReviewMarker + " unclear guidance", Priority: domain.PriorityRecommended, FoodCategories: []domain.FoodCategory{domain.CategoryFruits}, Action: domain.ActionLimit},
	}

	recommendations := service.ExtractRecommendations(rules)
	if len(recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d: %v", len(recommendations), recommendations)
	}
	if recommendations[0] != "Eat more vegetables" {
		t.Errorf("unexpected recommendation: %q", recommendations[0])
	}
}

func TestExtractRestrictionsCacheRoundTrip(t *testing.T) {
	service := NewInterpreterService(NewRuleCache(0), []RuleExtractor{NewKeywordExtractor()})
	notes := diabetesNotes()

	first, err := service.Interpret(context.Background(), notes)
	if err != nil {
		t.Fatalf("first Interpret failed: %v", err)
	}
	second, err := service.Interpret(context.Background(), notes)
	if err != nil {
		t.Fatalf("second Interpret failed: %v", err)
	}

	if !reflect.DeepEqual(service.ExtractRestrictions(first), service.ExtractRestrictions(second)) {
		t.Error("restrictions differ across cached interpretations")
	}
}
