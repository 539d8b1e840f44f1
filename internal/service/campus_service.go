package service

import (
	"context"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

type campusStore interface {
	ListHostels(ctx context.Context) ([]models.Hostel, error)
	ListResults(ctx context.Context) ([]models.SubjectResult, error)
	CreateAdmission(ctx context.Context, admission *models.Admission) error
	ListAdmissions(ctx context.Context) ([]models.Admission, error)
}

// AdmissionRequest is the public application form.
type AdmissionRequest struct {
	FullName       string `json:"fullName" form:"fullName" validate:"required,min=2"`
	Email          string `json:"email" form:"email" validate:"required,email"`
	Phone          string `json:"phone" form:"phone" validate:"required,min=10"`
	Course         string `json:"course" form:"course" validate:"required"`
	PreviousSchool string `json:"previousSchool" form:"previousSchool" validate:"required,min=2"`
	Statement      string `json:"statement" form:"statement" validate:"required,min=50,max=500"`
}

// CampusService covers hostels, results and admissions.
type CampusService struct {
	store     campusStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCampusService constructs the service.
func NewCampusService(store campusStore, validate *validator.Validate, logger *zap.Logger) *CampusService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampusService{store: store, validator: validate, logger: logger}
}

// Hostels returns per hostel and overall occupancy rates.
func (s *CampusService) Hostels(ctx context.Context) (*dto.HostelOverview, error) {
	hostels, err := s.store.ListHostels(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hostels")
	}
	overview := &dto.HostelOverview{Hostels: make([]dto.HostelOccupancy, 0, len(hostels))}
	for _, h := range hostels {
		overview.Hostels = append(overview.Hostels, dto.HostelOccupancy{Hostel: h, Rate: percent(h.Occupancy, h.Capacity)})
		overview.TotalOccupancy += h.Occupancy
		overview.TotalCapacity += h.Capacity
	}
	overview.OverallRate = percent(overview.TotalOccupancy, overview.TotalCapacity)
	return overview, nil
}

// Results returns graded subjects with GPA on a four point scale.
func (s *CampusService) Results(ctx context.Context) (*dto.ResultsOverview, error) {
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	return summariseResults(results), nil
}

func summariseResults(results []models.SubjectResult) *dto.ResultsOverview {
	overview := &dto.ResultsOverview{Subjects: results}
	weighted := 0
	for _, r := range results {
		weighted += r.Marks * r.Credits
		overview.TotalCredits += r.Credits
	}
	if overview.TotalCredits == 0 {
		return overview
	}
	ratio := float64(weighted) / float64(overview.TotalCredits*100)
	overview.GPA = round2(ratio * 4)
	overview.OverallPercentage = round2(ratio * 100)
	return overview
}

// SubmitAdmission stores an application.
func (s *CampusService) SubmitAdmission(ctx context.Context, req AdmissionRequest) (*models.Admission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application")
	}
	admission := &models.Admission{
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Course:         req.Course,
		PreviousSchool: strings.TrimSpace(req.PreviousSchool),
		Statement:      strings.TrimSpace(req.Statement),
	}
	if err := s.store.CreateAdmission(ctx, admission); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit application")
	}
	s.logger.Info("admission submitted", zap.String("admission_id", admission.ID), zap.String("course", admission.Course))
	return admission, nil
}

// Admissions lists applications newest first.
func (s *CampusService) Admissions(ctx context.Context) ([]models.Admission, error) {
	admissions, err := s.store.ListAdmissions(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admissions")
	}
	return admissions, nil
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
