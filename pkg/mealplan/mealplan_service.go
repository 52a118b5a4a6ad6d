package mealplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"MediPlan-Backend/domain"
	"MediPlan-Backend/entities"
	"MediPlan-Backend/internal/utils/mailing"
	"MediPlan-Backend/internal/utils/storage"
	"MediPlan-Backend/pkg/interpreter"
	"MediPlan-Backend/pkg/report"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MealPlanService interface {
		GeneratePlan(ctx context.Context, userID string, req *domain.GeneratePlanRequest) (*domain.GeneratePlanResponse, error)
		GenerateWeeklyPlan(ctx context.Context, userID string, req *domain.GeneratePlanRequest) (*domain.GenerateWeeklyPlanResponse, error)
		GetPlanByID(ctx context.Context, userID string, planID string) (*domain.DietPlan, error)
		GetPlans(ctx context.Context, userID string) ([]domain.PlanSummaryResponse, error)
		EmailPlan(ctx context.Context, userID string, planID string, req *domain.EmailPlanRequest) error
		ExportPlan(ctx context.Context, userID string, planID string) (*domain.ExportPlanResponse, error)
	}

	mealPlanService struct {
		planRepo    MealPlanRepository
		reportRepo  report.ReportRepository
		interpreter interpreter.InterpreterService
		awsS3       storage.AwsS3
	}
)

func NewMealPlanService(planRepo MealPlanRepository, reportRepo report.ReportRepository, interpreterService interpreter.InterpreterService, awsS3 storage.AwsS3) MealPlanService {
	return &mealPlanService{
		planRepo:    planRepo,
		reportRepo:  reportRepo,
		interpreter: interpreterService,
		awsS3:       awsS3,
	}
}

func (s *mealPlanService) GeneratePlan(ctx context.Context, userID string, req *domain.GeneratePlanRequest) (*domain.GeneratePlanResponse, error) {
	rules, err := s.rulesForRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	plan, conflicts, err := GeneratePlan(userID, req.Profile, req.Conditions, rules)
	if err != nil {
		return nil, err
	}

	if err := s.persistPlan(ctx, userID, req.ReportID, &plan); err != nil {
		return nil, err
	}

	return &domain.GeneratePlanResponse{
		Plan:      plan,
		Conflicts: conflicts,
	}, nil
}

func (s *mealPlanService) GenerateWeeklyPlan(ctx context.Context, userID string, req *domain.GeneratePlanRequest) (*domain.GenerateWeeklyPlanResponse, error) {
	rules, err := s.rulesForRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	plans, conflicts, err := GenerateWeeklyPlan(userID, req.Profile, req.Conditions, rules)
	if err != nil {
		return nil, err
	}

	for i := range plans {
		if err := s.persistPlan(ctx, userID, req.ReportID, &plans[i]); err != nil {
			return nil, err
		}
	}

	return &domain.GenerateWeeklyPlanResponse{
		Plans:     plans,
		Conflicts: conflicts,
	}, nil
}

func (s *mealPlanService) GetPlanByID(ctx context.Context, userID string, planID string) (*domain.DietPlan, error) {
	entity, err := s.findOwnedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	var plan domain.DietPlan
	if err := json.Unmarshal([]byte(entity.PlanJSON), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *mealPlanService) GetPlans(ctx context.Context, userID string) ([]domain.PlanSummaryResponse, error) {
	plans, err := s.planRepo.GetPlans(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.PlanSummaryResponse, 0, len(plans))
	for _, plan := range plans {
		summaries = append(summaries, domain.PlanSummaryResponse{
			ID:            plan.ID.String(),
			DailyCalories: plan.DailyCalories,
			CreatedAt:     plan.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *mealPlanService) EmailPlan(ctx context.Context, userID string, planID string, req *domain.EmailPlanRequest) error {
	plan, err := s.GetPlanByID(ctx, userID, planID)
	if err != nil {
		return err
	}

	subject := "Your Diet Plan Summary"
	return mailing.SendMail(req.Email, subject, planEmailBody(plan))
}

func (s *mealPlanService) ExportPlan(ctx context.Context, userID string, planID string) (*domain.ExportPlanResponse, error) {
	entity, err := s.findOwnedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if entity.ExportURL != "" {
		return &domain.ExportPlanResponse{
			PlanID:    entity.ID.String(),
			ExportURL: entity.ExportURL,
		}, nil
	}

	objectKey, err := s.awsS3.UploadBytes(entity.ID.String()+".json", []byte(entity.PlanJSON), "exports", "application/json")
	if err != nil {
		return nil, err
	}

	entity.ExportURL = s.awsS3.GetPublicLinkKey(objectKey)
	if err := s.planRepo.UpdatePlan(ctx, entity); err != nil {
		return nil, err
	}

	return &domain.ExportPlanResponse{
		PlanID:    entity.ID.String(),
		ExportURL: entity.ExportURL,
	}, nil
}

// rulesForRequest resolves the dietary rules the generator will honor,
// preferring a previously interpreted report over raw notes.
func (s *mealPlanService) rulesForRequest(ctx context.Context, userID string, req *domain.GeneratePlanRequest) ([]domain.DietRule, error) {
	if req.ReportID != "" {
		rep, err := s.reportRepo.GetReportByID(ctx, req.ReportID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrReportNotFound
			}
			return nil, err
		}
		if rep.UserID.String() != userID {
			return nil, domain.ErrUnauthorizedAccess
		}

		var rules []domain.DietRule
		if rep.Rules != "" {
			if err := json.Unmarshal([]byte(rep.Rules), &rules); err != nil {
				return nil, err
			}
		}
		return rules, nil
	}

	if len(req.Notes) > 0 {
		return s.interpreter.Interpret(ctx, req.Notes)
	}

	return nil, nil
}

func (s *mealPlanService) persistPlan(ctx context.Context, userID string, reportID string, plan *domain.DietPlan) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	planUUID, err := uuid.Parse(plan.ID)
	if err != nil {
		return domain.ErrParseUUID
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return err
	}

	entity := &entities.DietPlan{
		ID:             planUUID,
		UserID:         userUUID,
		DailyCalories:  plan.DailyCalories,
		ProteinPercent: plan.MacronutrientTargets.ProteinPercent,
		CarbsPercent:   plan.MacronutrientTargets.CarbsPercent,
		FatPercent:     plan.MacronutrientTargets.FatPercent,
		PlanJSON:       string(planJSON),
	}
	if reportID != "" {
		reportUUID, err := uuid.Parse(reportID)
		if err != nil {
			return domain.ErrParseUUID
		}
		entity.ReportID = &reportUUID
	}

	return s.planRepo.AddPlan(ctx, entity)
}

func (s *mealPlanService) findOwnedPlan(ctx context.Context, userID string, planID string) (*entities.DietPlan, error) {
	entity, err := s.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	if entity.UserID.String() != userID {
		return nil, domain.ErrUserNotAllowed
	}
	return entity, nil
}

func mealHeading(mealType domain.MealType) string {
	name := string(mealType)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func planEmailBody(plan *domain.DietPlan) string {
	var b strings.Builder
	b.WriteString("<h2>Your Diet Plan</h2>")
	fmt.Fprintf(&b, "<p>Daily calorie target: <b>%.0f kcal</b></p>", plan.DailyCalories)
	fmt.Fprintf(&b, "<p>Macronutrients: %.0f%% protein, %.0f%% carbs, %.0f%% fat</p>",
		plan.MacronutrientTargets.ProteinPercent,
		plan.MacronutrientTargets.CarbsPercent,
		plan.MacronutrientTargets.FatPercent)

	for _, meal := range plan.Meals {
		fmt.Fprintf(&b, "<h3>%s (%.0f kcal)</h3><ul>", mealHeading(meal.MealType), meal.TotalCalories)
		for _, portion := range meal.Portions {
			fmt.Fprintf(&b, "<li>%s - %.0f%s</li>", portion.Food.Name, portion.Amount, portion.Unit)
		}
		b.WriteString("</ul>")
	}

	if len(plan.Recommendations) > 0 {
		b.WriteString("<h3>Recommendations</h3><ul>")
		for _, rec := range plan.Recommendations {
			fmt.Fprintf(&b, "<li>%s</li>", rec)
		}
		b.WriteString("</ul>")
	}
	return b.String()
}
