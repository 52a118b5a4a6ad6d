package report

import (
	"context"
	"encoding/json"
	"errors"

	"MediPlan-Backend/domain"
	"MediPlan-Backend/entities"
	"MediPlan-Backend/internal/utils/storage"
	"MediPlan-Backend/pkg/interpreter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReportService interface {
		UploadReport(ctx context.Context, userID string, req *domain.UploadReportRequest) (*domain.UploadReportResponse, error)
		GetReportByID(ctx context.Context, userID string, reportID string) (*domain.ReportResponse, error)
		GetReports(ctx context.Context, userID string) ([]domain.ReportResponse, error)
		DeleteReport(ctx context.Context, userID string, reportID string) error
	}

	reportService struct {
		reportRepo  ReportRepository
		interpreter interpreter.InterpreterService
		awsS3       storage.AwsS3
	}
)

func NewReportService(reportRepo ReportRepository, interpreterService interpreter.InterpreterService, awsS3 storage.AwsS3) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		interpreter: interpreterService,
		awsS3:       awsS3,
	}
}

func (s *reportService) UploadReport(ctx context.Context, userID string, req *domain.UploadReportRequest) (*domain.UploadReportResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	report := &entities.MedicalReport{
		ID:     uuid.New(),
		UserID: userUUID,
		Title:  req.Title,
		Status: "Pending",
	}

	notesJSON, err := json.Marshal(req.Notes)
	if err != nil {
		return nil, err
	}
	report.Notes = string(notesJSON)

	if req.Document != nil {
		objectKey, err := s.awsS3.UploadFile(report.ID.String(), req.Document, "reports", storage.AllowDocument...)
		if err != nil {
			return nil, domain.ErrInvalidReportFile
		}
		report.DocumentURL = s.awsS3.GetPublicLinkKey(objectKey)
	}

	rules, err := s.interpreter.Interpret(ctx, req.Notes)
	if err != nil {
		report.Status = "Failed"
		if saveErr := s.reportRepo.AddReport(ctx, report); saveErr != nil {
			return nil, saveErr
		}
		return nil, err
	}

	rulesJSON, err := json.Marshal(rules)
	if err != nil {
		return nil, err
	}
	report.Rules = string(rulesJSON)
	report.Status = "Interpreted"

	if err := s.reportRepo.AddReport(ctx, report); err != nil {
		return nil, err
	}

	var active []domain.DietRule
	var flagged []domain.DietRule
	for _, rule := range rules {
		if s.interpreter.IsFlaggedForReview(rule) {
			flagged = append(flagged, rule)
		} else {
			active = append(active, rule)
		}
	}

	return &domain.UploadReportResponse{
		ID:          report.ID.String(),
		Title:       report.Title,
		DocumentURL: report.DocumentURL,
		Rules:       active,
		Flagged:     flagged,
	}, nil
}

func (s *reportService) GetReportByID(ctx context.Context, userID string, reportID string) (*domain.ReportResponse, error) {
	report, err := s.findOwnedReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	response, err := s.toReportResponse(report)
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *reportService) GetReports(ctx context.Context, userID string) ([]domain.ReportResponse, error) {
	reports, err := s.reportRepo.GetReports(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.ReportResponse, 0, len(reports))
	for i := range reports {
		response, err := s.toReportResponse(&reports[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func (s *reportService) DeleteReport(ctx context.Context, userID string, reportID string) error {
	report, err := s.findOwnedReport(ctx, userID, reportID)
	if err != nil {
		return err
	}

	if report.DocumentURL != "" {
		objectKey := s.awsS3.GetObjectKeyFromLink(report.DocumentURL)
		if objectKey != "" {
			if err := s.awsS3.DeleteFile(objectKey); err != nil {
				return err
			}
		}
	}

	return s.reportRepo.DeleteReport(ctx, reportID)
}

func (s *reportService) findOwnedReport(ctx context.Context, userID string, reportID string) (*entities.MedicalReport, error) {
	report, err := s.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	if report.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return report, nil
}

func (s *reportService) toReportResponse(report *entities.MedicalReport) (*domain.ReportResponse, error) {
	var rules []domain.DietRule
	if report.Rules != "" {
		if err := json.Unmarshal([]byte(report.Rules), &rules); err != nil {
			return nil, err
		}
	}

	return &domain.ReportResponse{
		ID:              report.ID.String(),
		Title:           report.Title,
		DocumentURL:     report.DocumentURL,
		Rules:           rules,
		Restrictions:    s.interpreter.ExtractRestrictions(rules),
		Recommendations: s.interpreter.ExtractRecommendations(rules),
		CreatedAt:       report.CreatedAt,
	}, nil
}
