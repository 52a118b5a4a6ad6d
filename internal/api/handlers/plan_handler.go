package handlers

import (
	"errors"

	"MediPlan-Backend/domain"
	"MediPlan-Backend/internal/api/presenters"
	"MediPlan-Backend/pkg/mealplan"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PlanHandler interface {
		GeneratePlan(c *fiber.Ctx) error
		GenerateWeeklyPlan(c *fiber.Ctx) error
		GetPlan(c *fiber.Ctx) error
		GetPlans(c *fiber.Ctx) error
		EmailPlan(c *fiber.Ctx) error
		ExportPlan(c *fiber.Ctx) error
	}

	planHandler struct {
		planService mealplan.MealPlanService
		validator   *validator.Validate
	}
)

func NewPlanHandler(planService mealplan.MealPlanService, validator *validator.Validate) PlanHandler {
	return &planHandler{
		planService: planService,
		validator:   validator,
	}
}

func (h *planHandler) GeneratePlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.GeneratePlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGeneratePlan, err)
	}

	res, err := h.planService.GeneratePlan(c.Context(), userID, req)
	if err != nil {
		return planError(c, domain.MessageFailedGeneratePlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessGeneratePlan)
}

func (h *planHandler) GenerateWeeklyPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.GeneratePlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateWeekly, err)
	}

	res, err := h.planService.GenerateWeeklyPlan(c.Context(), userID, req)
	if err != nil {
		return planError(c, domain.MessageFailedGenerateWeekly, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessGenerateWeekly)
}

func (h *planHandler) GetPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	planID := c.Params("id")

	res, err := h.planService.GetPlanByID(c.Context(), userID, planID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPlan)
}

func (h *planHandler) GetPlans(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.planService.GetPlans(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPlans)
}

func (h *planHandler) EmailPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	planID := c.Params("id")
	req := new(domain.EmailPlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmailPlan, err)
	}

	if err := h.planService.EmailPlan(c.Context(), userID, planID, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmailPlan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEmailPlan)
}

func (h *planHandler) ExportPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	planID := c.Params("id")

	res, err := h.planService.ExportPlan(c.Context(), userID, planID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessExportPlan)
}

// planError maps unsatisfiable constraints to a 422 carrying the detected
// conflicts and alternatives so the client can surface them.
func planError(c *fiber.Ctx, message string, err error) error {
	var unsat *domain.UnsatisfiableConstraintsError
	if errors.As(err, &unsat) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":       false,
			"message":      message,
			"error":        unsat.Error(),
			"conflicts":    unsat.Conflicts,
			"alternatives": unsat.Alternatives,
		})
	}
	return presenters.ErrorResponse(c, fiber.StatusBadRequest, message, err)
}
