package domain

import (
	"errors"
	"strings"
)

// ReviewMarker prefixes the rule text of every rule flagged as ambiguous.
// Flagged rules are surfaced to a human reviewer and never enforced.
const ReviewMarker = "[NEEDS REVIEW]"

type NoteSection string

const (
	SectionDoctorNotes    NoteSection = "doctor_notes"
	SectionPrescription   NoteSection = "prescription"
	SectionRecommendation NoteSection = "recommendation"
	SectionGeneral        NoteSection = "general"
)

type RulePriority string

const (
	PriorityRequired    RulePriority = "REQUIRED"
	PriorityRecommended RulePriority = "RECOMMENDED"
	PriorityOptional    RulePriority = "OPTIONAL"
)

// PriorityRank gives the explicit total order used by conflict resolution.
// Lower rank wins.
func PriorityRank(p RulePriority) int {
	switch p {
	case PriorityRequired:
		return 0
	case PriorityRecommended:
		return 1
	default:
		return 2
	}
}

type RuleAction string

const (
	ActionInclude RuleAction = "include"
	ActionExclude RuleAction = "exclude"
	ActionLimit   RuleAction = "limit"
)

type FoodCategory string

const (
	CategoryProteins   FoodCategory = "proteins"
	CategoryCarbs      FoodCategory = "carbs"
	CategoryDairy      FoodCategory = "dairy"
	CategoryFats       FoodCategory = "fats"
	CategoryVegetables FoodCategory = "vegetables"
	CategoryFruits     FoodCategory = "fruits"
	CategorySweets     FoodCategory = "sweets"
	CategoryAll        FoodCategory = "all"
)

// TopLevelCategories are the six categories counted when deciding whether
// a restriction set is jointly unsatisfiable.
var TopLevelCategories = []FoodCategory{
	CategoryProteins,
	CategoryCarbs,
	CategoryDairy,
	CategoryFats,
	CategoryVegetables,
	CategoryFruits,
}

type RestrictionType string

const (
	RestrictionAllergy     RestrictionType = "allergy"
	RestrictionIntolerance RestrictionType = "intolerance"
	RestrictionMedical     RestrictionType = "medical"
)

var (
	MessageSuccessInterpretNotes = "notes interpreted successfully"
	MessageFailedInterpretNotes  = "failed to interpret notes"

	ErrEmptyNotes           = errors.New("notes list is empty")
	ErrInterpretationFailed = errors.New("all extraction stages failed")
	ErrExtractionBackend    = errors.New("extraction backend unavailable")
)

type (
	TextualNote struct {
		Content string      `json:"content" validate:"required"`
		Section NoteSection `json:"section" validate:"required,oneof=doctor_notes prescription recommendation general"`
	}

	DietRule struct {
		RuleText       string         `json:"rule_text"`
		Priority       RulePriority   `json:"priority"`
		FoodCategories []FoodCategory `json:"food_categories"`
		Action         RuleAction     `json:"action"`
		Source         string         `json:"source"`
	}

	DietaryRestriction struct {
		RestrictionType RestrictionType `json:"restriction_type"`
		RestrictedItems []string        `json:"restricted_items"`
		Severity        string          `json:"severity"`
	}
)

// RestrictionTypeOf infers the restriction class from rule text.
// Allergy and intolerance wording is preserved; anything else is a
// medical restriction.
func RestrictionTypeOf(ruleText string) RestrictionType {
	lower := strings.ToLower(ruleText)
	if strings.Contains(lower, "allerg") {
		return RestrictionAllergy
	}
	if strings.Contains(lower, "intoleran") {
		return RestrictionIntolerance
	}
	return RestrictionMedical
}

// FlaggedForReview reports whether the rule carries the review marker.
func (r DietRule) FlaggedForReview() bool {
	return strings.HasPrefix(r.RuleText, ReviewMarker)
}

// HasCategory reports whether the rule targets the given category,
// either directly or through the "all" wildcard.
func (r DietRule) HasCategory(c FoodCategory) bool {
	for _, rc := range r.FoodCategories {
		if rc == c || rc == CategoryAll {
			return true
		}
	}
	return false
}
