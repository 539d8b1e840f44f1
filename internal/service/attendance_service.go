package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

type attendanceStore interface {
	SaveAttendance(ctx context.Context, date string, studentID string, status models.AttendanceStatus) error
	ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error)
}

// SaveAttendanceRequest marks one day.
type SaveAttendanceRequest struct {
	Date      string                  `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	StudentID string                  `json:"studentId" form:"studentId"`
	Status    models.AttendanceStatus `json:"status" form:"status" validate:"required,oneof=present absent"`
}

// AttendanceService records and summarises attendance.
type AttendanceService struct {
	store     attendanceStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(store attendanceStore, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{store: store, validator: validate, logger: logger}
}

// Save records the status for the date. The mark is global for that date.
func (s *AttendanceService) Save(ctx context.Context, req SaveAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if err := s.store.SaveAttendance(ctx, req.Date, req.StudentID, req.Status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	s.logger.Info("attendance saved",
		zap.String("date", req.Date),
		zap.String("student_id", req.StudentID),
		zap.String("status", string(req.Status)))
	return &models.AttendanceRecord{Date: req.Date, Status: req.Status}, nil
}

// Summary groups every marked day by status. The percentage ignores holidays.
func (s *AttendanceService) Summary(ctx context.Context) (*dto.AttendanceSummary, error) {
	records, err := s.store.ListAttendance(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	summary := &dto.AttendanceSummary{
		Present: []string{},
		Absent:  []string{},
		Holiday: []string{},
		Records: records,
	}
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			summary.Present = append(summary.Present, r.Date)
		case models.AttendanceAbsent:
			summary.Absent = append(summary.Absent, r.Date)
		case models.AttendanceHoliday:
			summary.Holiday = append(summary.Holiday, r.Date)
		}
	}
	summary.Percentage = attendancePercentage(len(summary.Present), len(summary.Absent))
	return summary, nil
}

func attendancePercentage(present, absent int) int {
	total := present + absent
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
