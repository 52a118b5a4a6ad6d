package interpreter

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"MediPlan-Backend/domain"
)

type (
	InterpreterService interface {
		Interpret(ctx context.Context, notes []domain.TextualNote) ([]domain.DietRule, error)
		ResolveConflicts(rules []domain.DietRule) []domain.DietRule
		ExtractRestrictions(rules []domain.DietRule) []domain.DietaryRestriction
		ExtractRecommendations(rules []domain.DietRule) []string
		IsFlaggedForReview(rule domain.DietRule) bool
	}

	interpreterService struct {
		extractors []RuleExtractor
		cache      *RuleCache
	}
)

func NewInterpreterService(cache *RuleCache, extractors []RuleExtractor) InterpreterService {
	if len(extractors) == 0 {
		extractors = DefaultExtractors()
	}
	return &interpreterService{
		extractors: extractors,
		cache:      cache,
	}
}

func (s *interpreterService) Interpret(ctx context.Context, notes []domain.TextualNote) ([]domain.DietRule, error) {
	if len(notes) == 0 {
		return nil, domain.ErrEmptyNotes
	}

	combined := combineNotes(notes)
	key := CacheKey(combined)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	var rules []domain.DietRule
	extracted := false
	for _, extractor := range s.extractors {
		result, err := extractor.Extract(ctx, combined)
		if err != nil {
			log.Printf("extraction stage %s failed, falling back: %v", extractor.Name(), err)
			continue
		}
		rules = result
		extracted = true
		break
	}
	if !extracted {
		// Unreachable as long as the keyword extractor is in the chain.
		return nil, domain.ErrInterpretationFailed
	}

	rules = append(rules, DetectAmbiguities(combined)...)
	rules = s.ResolveConflicts(rules)

	s.cache.Set(key, rules)
	return rules, nil
}

// ResolveConflicts keeps, for every (food category, action) pair, the
// single highest-priority rule, REQUIRED beating RECOMMENDED beating
// OPTIONAL, with first occurrence winning ties after a stable sort. A rule
// survives only if it contributes at least one unclaimed pair; survivors
// claim all their pairs. Exact textual duplicates are dropped. Flagged
// rules pass through untouched and are never merged.
func (s *interpreterService) ResolveConflicts(rules []domain.DietRule) []domain.DietRule {
	var active []domain.DietRule
	var flagged []domain.DietRule
	for _, rule := range rules {
		if rule.FlaggedForReview() {
			flagged = append(flagged, rule)
		} else {
			active = append(active, rule)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return domain.PriorityRank(active[i].Priority) < domain.PriorityRank(active[j].Priority)
	})

	seenPair := make(map[string]bool)
	seenText := make(map[string]bool)
	var resolved []domain.DietRule
	for _, rule := range active {
		if seenText[rule.RuleText] {
			continue
		}
		contributes := len(rule.FoodCategories) == 0
		for _, category := range rule.FoodCategories {
			if !seenPair[pairKey(category, rule.Action)] {
				contributes = true
			}
		}
		if !contributes {
			continue
		}
		for _, category := range rule.FoodCategories {
			seenPair[pairKey(category, rule.Action)] = true
		}
		seenText[rule.RuleText] = true
		resolved = append(resolved, rule)
	}

	return append(resolved, flagged...)
}

// ExtractRestrictions projects REQUIRED exclude-rules into dietary
// restrictions. Pure, no side effects.
func (s *interpreterService) ExtractRestrictions(rules []domain.DietRule) []domain.DietaryRestriction {
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

// ExtractRecommendations projects RECOMMENDED rule texts. Pure, no side
// effects.
func (s *interpreterService) ExtractRecommendations(rules []domain.DietRule) []string {
	var recommendations []string
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

func (s *interpreterService) IsFlaggedForReview(rule domain.DietRule) bool {
	return rule.FlaggedForReview()
}

func combineNotes(notes []domain.TextualNote) string {
	var b strings.Builder
	for i, note := range notes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s] %s", note.Section, note.Content)
	}
	return b.String()
}

func pairKey(category domain.FoodCategory, action domain.RuleAction) string {
	return string(category) + "|" + string(action)
}
