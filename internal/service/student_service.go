package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

type studentStore interface {
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.User, error)
	CountStudents(ctx context.Context) (int, error)
	CreateStudent(ctx context.Context, student *models.User) error
}

// CreateStudentRequest is the add-student form. ID and Password are shown
// prefilled on the form but the store assigns the id and every account
// shares one password, so both are ignored.
type CreateStudentRequest struct {
	ID       string `json:"id" form:"id"`
	Name     string `json:"name" form:"name" validate:"required,min=2"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Course   string `json:"course" form:"course" validate:"required"`
	Year     int    `json:"year" form:"year" validate:"required,min=1,max=5"`
	Section  string `json:"section" form:"section" validate:"required"`
	Password string `json:"password" form:"password"`
}

// StudentService manages the student roster.
type StudentService struct {
	store     studentStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(store studentStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: store, cache: cache, validator: validate, logger: logger}
}

// List returns students matching filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.User, error) {
	students, err := s.store.ListStudents(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Create adds a student and drops cached dashboard figures.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.User{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Course:  strings.TrimSpace(req.Course),
		Year:    req.Year,
		Section: strings.TrimSpace(req.Section),
	}
	if err := s.store.CreateStudent(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.cache.Invalidate(ctx, cacheKeyDashboard)
	s.logger.Info("student created", zap.String("student_id", student.ID), zap.String("course", student.Course))
	return student, nil
}

// DatabaseSummary describes the roster in the form the insights flow reads.
func (s *StudentService) DatabaseSummary(ctx context.Context) (string, error) {
	students, err := s.store.ListStudents(ctx, models.StudentFilter{})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise students")
	}
	courses := make([]string, 0)
	seen := make(map[string]struct{})
	for _, st := range students {
		if _, ok := seen[st.Course]; ok || st.Course == "" {
			continue
		}
		seen[st.Course] = struct{}{}
		courses = append(courses, st.Course)
	}
	return fmt.Sprintf("The database contains %d students. Fields include: id, name, email, course, year, section. Courses offered: %s.",
		len(students), strings.Join(courses, ", ")), nil
}
