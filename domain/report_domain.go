package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessUploadReport = "medical report uploaded successfully"
	MessageSuccessGetReport    = "medical report retrieved successfully"
	MessageSuccessGetReports   = "medical reports retrieved successfully"
	MessageSuccessDeleteReport = "medical report deleted successfully"

	MessageFailedUploadReport = "failed to upload medical report"
	MessageFailedGetReport    = "failed to retrieve medical report"
	MessageFailedDeleteReport = "failed to delete medical report"

	ErrReportNotFound     = errors.New("medical report not found")
	ErrReportEmpty        = errors.New("medical report has no notes")
	ErrInvalidReportFile  = errors.New("invalid report file format")
	ErrUnauthorizedAccess = errors.New("unauthorized access to medical report")
)

type (
	UploadReportRequest struct {
		Title    string                `json:"title" form:"title" validate:"required"`
		Notes    []TextualNote         `json:"notes" form:"notes" validate:"required,min=1,dive"`
		Document *multipart.FileHeader `json:"document" form:"document" validate:"omitempty"`
	}

	UploadReportResponse struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		DocumentURL string     `json:"document_url,omitempty"`
		Rules       []DietRule `json:"rules"`
		Flagged     []DietRule `json:"flagged_for_review,omitempty"`
	}

	ReportResponse struct {
		ID              string               `json:"id"`
		Title           string               `json:"title"`
		DocumentURL     string               `json:"document_url,omitempty"`
		Rules           []DietRule           `json:"rules"`
		Restrictions    []DietaryRestriction `json:"restrictions"`
		Recommendations []string             `json:"recommendations"`
		CreatedAt       time.Time            `json:"created_at"`
	}
)
