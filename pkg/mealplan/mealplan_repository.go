package mealplan

import (
	"context"

	"MediPlan-Backend/entities"

	"gorm.io/gorm"
)

type (
	MealPlanRepository interface {
		AddPlan(ctx context.Context, plan *entities.DietPlan) error
		GetPlanByID(ctx context.Context, id string) (*entities.DietPlan, error)
		GetPlans(ctx context.Context, userID string) ([]entities.DietPlan, error)
		UpdatePlan(ctx context.Context, plan *entities.DietPlan) error
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) AddPlan(ctx context.Context, plan *entities.DietPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *mealPlanRepository) GetPlanByID(ctx context.Context, id string) (*entities.DietPlan, error) {
	var plan entities.DietPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *mealPlanRepository) GetPlans(ctx context.Context, userID string) ([]entities.DietPlan, error) {
	var plans []entities.DietPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mealPlanRepository) UpdatePlan(ctx context.Context, plan *entities.DietPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}
