package handlers

import (
	"encoding/json"

	"MediPlan-Backend/domain"
	"MediPlan-Backend/internal/api/presenters"
	"MediPlan-Backend/pkg/report"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReportHandler interface {
		UploadReport(c *fiber.Ctx) error
		GetReport(c *fiber.Ctx) error
		GetReports(c *fiber.Ctx) error
		DeleteReport(c *fiber.Ctx) error
	}

	reportHandler struct {
		reportService report.ReportService
		validator     *validator.Validate
	}
)

func NewReportHandler(reportService report.ReportService, validator *validator.Validate) ReportHandler {
	return &reportHandler{
		reportService: reportService,
		validator:     validator,
	}
}

func (h *reportHandler) UploadReport(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadReportRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// Multipart uploads carry the notes as a JSON-encoded form value.
	if len(req.Notes) == 0 {
		if raw := c.FormValue("notes"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Notes); err != nil {
				return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
			}
		}
	}
	if document, err := c.FormFile("document"); err == nil {
		req.Document = document
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReport, err)
	}

	res, err := h.reportService.UploadReport(c.Context(), userID, req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadReport)
}

func (h *reportHandler) GetReport(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reportID := c.Params("id")

	res, err := h.reportService.GetReportByID(c.Context(), userID, reportID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) GetReports(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.reportService.GetReports(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReports)
}

func (h *reportHandler) DeleteReport(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reportID := c.Params("id")

	if err := h.reportService.DeleteReport(c.Context(), userID, reportID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReport, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReport)
}
