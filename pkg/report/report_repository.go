package report

import (
	"context"

	"MediPlan-Backend/entities"

	"gorm.io/gorm"
)

type (
	ReportRepository interface {
		AddReport(ctx context.Context, report *entities.MedicalReport) error
		GetReportByID(ctx context.Context, id string) (*entities.MedicalReport, error)
		GetReports(ctx context.Context, userID string) ([]entities.MedicalReport, error)
		UpdateReport(ctx context.Context, report *entities.MedicalReport) error
		DeleteReport(ctx context.Context, id string) error
	}

	reportRepository struct {
		db *gorm.DB
	}
)

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) AddReport(ctx context.Context, report *entities.MedicalReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetReportByID(ctx context.Context, id string) (*entities.MedicalReport, error) {
	var report entities.MedicalReport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetReports(ctx context.Context, userID string) ([]entities.MedicalReport, error) {
	var reports []entities.MedicalReport
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) UpdateReport(ctx context.Context, report *entities.MedicalReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) DeleteReport(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MedicalReport{}).Error
}
