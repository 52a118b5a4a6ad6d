package report

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"testing"

	"MediPlan-Backend/domain"
	"MediPlan-Backend/entities"
	"MediPlan-Backend/pkg/interpreter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeReportRepo struct {
	reports map[string]*entities.MedicalReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*entities.MedicalReport)}
}

func (f *fakeReportRepo) AddReport(_ context.Context, report *entities.MedicalReport) error {
	f.reports[report.ID.String()] = report
	return nil
}

func (f *fakeReportRepo) GetReportByID(_ context.Context, id string) (*entities.MedicalReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) GetReports(_ context.Context, userID string) ([]entities.MedicalReport, error) {
	var out []entities.MedicalReport
	for _, report := range f.reports {
		if report.UserID.String() == userID {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateReport(_ context.Context, report *entities.MedicalReport) error {
	f.reports[report.ID.String()] = report
	return nil
}

func (f *fakeReportRepo) DeleteReport(_ context.Context, id string) error {
	delete(f.reports, id)
	return nil
}

type fakeS3 struct {
	deleted []string
}

func (f *fakeS3) UploadFile(fileName string, _ *multipart.FileHeader, dir string, _ ...string) (string, error) {
	return dir + "/" + fileName, nil
}

func (f *fakeS3) UploadBytes(fileName string, _ []byte, dir string, _ string) (string, error) {
	return dir + "/" + fileName, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.region.amazonaws.com/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string { return link }

func newTestService(repo *fakeReportRepo, s3 *fakeS3) ReportService {
	interpreterService := interpreter.NewInterpreterService(
		interpreter.NewRuleCache(0),
		[]interpreter.RuleExtractor{interpreter.NewKeywordExtractor()},
	)
	return NewReportService(repo, interpreterService, s3)
}

func TestUploadReportInterpretsNotes(t *testing.T) {
	repo := newFakeReportRepo()
	service := newTestService(repo, &fakeS3{})
	userID := uuid.New().String()

	req := &domain.UploadReportRequest{
		Title: "Annual checkup",
		Notes: []domain.TextualNote{
			{Content: "Avoid sugar and refined carbohydrates. Include high-fiber foods.", Section: domain.SectionDoctorNotes},
		},
	}

	res, err := service.UploadReport(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("UploadReport failed: %v", err)
	}
	if len(res.Rules) < 2 {
		t.Fatalf("expected at least 2 interpreted rules, got %d", len(res.Rules))
	}

	stored, ok := repo.reports[res.ID]
	if !ok {
		t.Fatal("report was not persisted")
	}
	if stored.Status != "Interpreted" {
		t.Errorf("expected Interpreted status, got %q", stored.Status)
	}

	var rules []domain.DietRule
	if err := json.Unmarshal([]byte(stored.Rules), &rules); err != nil {
		t.Fatalf("stored rules do not round-trip: %v", err)
	}
	if len(rules) != len(res.Rules)+len(res.Flagged) {
		t.Errorf("stored %d rules, response carries %d active + %d flagged", len(rules), len(res.Rules), len(res.Flagged))
	}
}

func TestUploadReportSeparatesFlaggedRules(t *testing.T) {
	service := newTestService(newFakeReportRepo(), &fakeS3{})

	req := &domain.UploadReportRequest{
		Title: "Allergy screening",
		Notes: []domain.TextualNote{
			{Content: "Possible allergy to shellfish. Avoid dairy.", Section: domain.SectionDoctorNotes},
		},
	}

	res, err := service.UploadReport(context.Background(), uuid.New().String(), req)
	if err != nil {
		t.Fatalf("UploadReport failed: %v", err)
	}

	if len(res.Flagged) == 0 {
		t.Fatal("hedged allergy statement should produce a flagged rule")
	}
	for _, rule := range res.Rules {
		if rule.FlaggedForReview() {
			t.Errorf("flagged rule leaked into active rules: %q", rule.RuleText)
		}
	}
	for _, rule := range res.Flagged {
		if !rule.FlaggedForReview() {
			t.Errorf("unflagged rule in flagged list: %q", rule.RuleText)
		}
	}
}

func TestUploadReportEmptyNotes(t *testing.T) {
	service := newTestService(newFakeReportRepo(), &fakeS3{})

	req := &domain.UploadReportRequest{Title: "Empty"}
	if _, err := service.UploadReport(context.Background(), uuid.New().String(), req); !errors.Is(err, domain.ErrEmptyNotes) {
		t.Fatalf("expected ErrEmptyNotes, got %v", err)
	}
}

func TestGetReportByIDProjections(t *testing.T) {
	repo := newFakeReportRepo()
	service := newTestService(repo, &fakeS3{})
	userID := uuid.New().String()

	req := &domain.UploadReportRequest{
		Title: "Annual checkup",
		Notes: []domain.TextualNote{
			{Content: "Avoid dairy. Eat more vegetables.", Section: domain.SectionDoctorNotes},
		},
	}
	uploaded, err := service.UploadReport(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("UploadReport failed: %v", err)
	}

	res, err := service.GetReportByID(context.Background(), userID, uploaded.ID)
	if err != nil {
		t.Fatalf("GetReportByID failed: %v", err)
	}
	if len(res.Restrictions) == 0 {
		t.Error("expected dairy restriction in projection")
	}
	if len(res.Recommendations) == 0 {
		t.Error("expected vegetable recommendation in projection")
	}
}

func TestGetReportByIDOwnership(t *testing.T) {
	repo := newFakeReportRepo()
	service := newTestService(repo, &fakeS3{})

	owner := uuid.New()
	entity := &entities.MedicalReport{ID: uuid.New(), UserID: owner, Title: "Private"}
	repo.reports[entity.ID.String()] = entity

	if _, err := service.GetReportByID(context.Background(), uuid.New().String(), entity.ID.String()); !errors.Is(err, domain.ErrUnauthorizedAccess) {
		t.Fatalf("expected ErrUnauthorizedAccess, got %v", err)
	}
	if _, err := service.GetReportByID(context.Background(), owner.String(), uuid.New().String()); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestDeleteReportRemovesDocument(t *testing.T) {
	repo := newFakeReportRepo()
	s3 := &fakeS3{}
	service := newTestService(repo, s3)

	owner := uuid.New()
	entity := &entities.MedicalReport{
		ID:          uuid.New(),
		UserID:      owner,
		Title:       "With document",
		DocumentURL: "reports/some-object.pdf",
	}
	repo.reports[entity.ID.String()] = entity

	if err := service.DeleteReport(context.Background(), owner.String(), entity.ID.String()); err != nil {
		t.Fatalf("DeleteReport failed: %v", err)
	}
	if _, ok := repo.reports[entity.ID.String()]; ok {
		t.Error("report still present after delete")
	}
	if len(s3.deleted) != 1 {
		t.Errorf("expected 1 S3 delete, got %d", len(s3.deleted))
	}
}
