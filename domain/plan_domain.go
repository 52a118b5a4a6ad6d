package domain

import (
	"errors"
	"fmt"
	"time"
)

type ConditionType string

const (
	ConditionDiabetesType1      ConditionType = "diabetes_type_1"
	ConditionDiabetesType2      ConditionType = "diabetes_type_2"
	ConditionPrediabetes        ConditionType = "prediabetes"
	ConditionHypertensionStage1 ConditionType = "hypertension_stage_1"
	ConditionHypertensionStage2 ConditionType = "hypertension_stage_2"
	ConditionHyperlipidemia     ConditionType = "hyperlipidemia"
	ConditionObesityClass1      ConditionType = "obesity_class_1"
	ConditionObesityClass2      ConditionType = "obesity_class_2"
	ConditionObesityClass3      ConditionType = "obesity_class_3"
	ConditionAnemia             ConditionType = "anemia"
)

// IsObesityClass reports whether the condition belongs to the obesity family.
func (c ConditionType) IsObesityClass() bool {
	switch c {
	case ConditionObesityClass1, ConditionObesityClass2, ConditionObesityClass3:
		return true
	}
	return false
}

// IsDiabetesFamily reports whether the condition is a diabetes variant.
func (c ConditionType) IsDiabetesFamily() bool {
	switch c {
	case ConditionDiabetesType1, ConditionDiabetesType2, ConditionPrediabetes:
		return true
	}
	return false
}

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
	MealDinner    MealType = "dinner"
)

var (
	MessageSuccessGeneratePlan   = "diet plan generated successfully"
	MessageSuccessGenerateWeekly = "weekly diet plan generated successfully"
	MessageSuccessGetPlan        = "diet plan retrieved successfully"
	MessageSuccessGetPlans       = "diet plans retrieved successfully"
	MessageSuccessEmailPlan      = "diet plan sent by email"
	MessageSuccessExportPlan     = "diet plan exported successfully"

	MessageFailedGeneratePlan   = "failed to generate diet plan"
	MessageFailedGenerateWeekly = "failed to generate weekly diet plan"
	MessageFailedGetPlan        = "failed to retrieve diet plan"
	MessageFailedEmailPlan      = "failed to send diet plan by email"
	MessageFailedExportPlan     = "failed to export diet plan"

	ErrInvalidGender        = errors.New("gender must be male or female")
	ErrInvalidActivityLevel = errors.New("unknown activity level")
	ErrPlanNotFound         = errors.New("diet plan not found")
)

type (
	HealthCondition struct {
		ConditionType       ConditionType `json:"condition_type"`
		Confidence          float64       `json:"confidence"`
		ContributingMetrics []string      `json:"contributing_metrics"`
	}

	UserPreferences struct {
		DietaryStyle        string   `json:"dietary_style"`
		Allergies           []string `json:"allergies"`
		Dislikes            []string `json:"dislikes"`
		CulturalPreferences []string `json:"cultural_preferences"`
	}

	PatientProfile struct {
		Age           int             `json:"age" validate:"required,min=1,max=130"`
		Gender        string          `json:"gender" validate:"required"`
		HeightCm      float64         `json:"height_cm" validate:"required,gt=0"`
		WeightKg      float64         `json:"weight_kg" validate:"required,gt=0"`
		ActivityLevel ActivityLevel   `json:"activity_level" validate:"required"`
		Preferences   UserPreferences `json:"preferences"`
	}

	Food struct {
		Name     string       `json:"name"`
		Category FoodCategory `json:"category"`
		Calories float64      `json:"calories"`
		ProteinG float64      `json:"protein_g"`
		CarbsG   float64      `json:"carbs_g"`
		FatG     float64      `json:"fat_g"`
		FiberG   float64      `json:"fiber_g"`
		SodiumMg float64      `json:"sodium_mg"`
		SugarG   float64      `json:"sugar_g"`
	}

	Portion struct {
		Food     Food    `json:"food"`
		Amount   float64 `json:"amount"`
		Unit     string  `json:"unit"`
		Calories float64 `json:"calories"`
		ProteinG float64 `json:"protein_g"`
		CarbsG   float64 `json:"carbs_g"`
		FatG     float64 `json:"fat_g"`
	}

	Meal struct {
		MealType      MealType  `json:"meal_type"`
		Portions      []Portion `json:"portions"`
		TotalCalories float64   `json:"total_calories"`
		TotalProteinG float64   `json:"total_protein_g"`
		TotalCarbsG   float64   `json:"total_carbs_g"`
		TotalFatG     float64   `json:"total_fat_g"`
	}

	MacronutrientRatios struct {
		ProteinPercent float64 `json:"protein_percent"`
		CarbsPercent   float64 `json:"carbs_percent"`
		FatPercent     float64 `json:"fat_percent"`
	}

	DietPlan struct {
		ID                   string               `json:"id"`
		PatientID            string               `json:"patient_id"`
		GeneratedAt          time.Time            `json:"generated_at"`
		DailyCalories        float64              `json:"daily_calories"`
		MacronutrientTargets MacronutrientRatios  `json:"macronutrient_targets"`
		Meals                []Meal               `json:"meals"`
		Restrictions         []DietaryRestriction `json:"restrictions"`
		Recommendations      []string             `json:"recommendations"`
		HealthConditions     []HealthCondition    `json:"health_conditions"`
	}

	ConflictResolution struct {
		ConflictType       string   `json:"conflict_type"`
		MedicalRequirement string   `json:"medical_requirement"`
		UserPreference     string   `json:"user_preference"`
		Resolution         string   `json:"resolution"`
		Alternatives       []string `json:"alternatives"`
	}
)

// UnsatisfiableConstraintsError is raised when food filtering leaves no
// candidate foods. It always carries at least one actionable alternative.
type UnsatisfiableConstraintsError struct {
	Conflicts    []ConflictResolution
	Alternatives []string
}

func (e *UnsatisfiableConstraintsError) Error() string {
	return fmt.Sprintf("dietary constraints are jointly unsatisfiable (%d conflicts detected)", len(e.Conflicts))
}

type (
	GeneratePlanRequest struct {
		Profile    PatientProfile    `json:"profile" validate:"required"`
		Conditions []HealthCondition `json:"conditions" validate:"dive"`
		ReportID   string            `json:"report_id" validate:"omitempty,uuid"`
		Notes      []TextualNote     `json:"notes" validate:"omitempty,dive"`
	}

	GeneratePlanResponse struct {
		Plan      DietPlan             `json:"plan"`
		Conflicts []ConflictResolution `json:"conflicts,omitempty"`
	}

	GenerateWeeklyPlanResponse struct {
		Plans     []DietPlan           `json:"plans"`
		Conflicts []ConflictResolution `json:"conflicts,omitempty"`
	}

	EmailPlanRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	PlanSummaryResponse struct {
		ID            string    `json:"id"`
		DailyCalories float64   `json:"daily_calories"`
		CreatedAt     time.Time `json:"created_at"`
	}

	ExportPlanResponse struct {
		PlanID    string `json:"plan_id"`
		ExportURL string `json:"export_url"`
	}
)
