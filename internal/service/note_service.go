package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

type noteStore interface {
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) error
}

// AddContentRequest is the teacher upload form for notes, homework and tests.
type AddContentRequest struct {
	Title       string          `json:"title" form:"title" validate:"required,min=3"`
	Type        models.NoteType `json:"type" form:"type" validate:"required,oneof=Notes Homework Test"`
	Subject     string          `json:"subject" form:"subject"`
	Class       string          `json:"class" form:"class" validate:"required"`
	Section     string          `json:"section" form:"section" validate:"required"`
	Description string          `json:"description" form:"description"`
}

// AddResultRequest publishes a link to results for one class section.
type AddResultRequest struct {
	Title   string `json:"title" form:"title" validate:"required,min=3"`
	Subject string `json:"subject" form:"subject" validate:"required,min=2"`
	Class   string `json:"class" form:"class" validate:"required"`
	Section string `json:"section" form:"section" validate:"required"`
	Link    string `json:"link" form:"link" validate:"required,url"`
}

// NoteService publishes and lists class content.
type NoteService struct {
	store     noteStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService constructs the service.
func NewNoteService(store noteStore, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{store: store, validator: validate, logger: logger}
}

// AddContent stores a note. Subject defaults to the class name.
func (s *NoteService) AddContent(ctx context.Context, req AddContentRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid content payload")
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = req.Class
	}
	note := &models.Note{
		Title:       strings.TrimSpace(req.Title),
		Type:        req.Type,
		Subject:     subject,
		Class:       req.Class,
		Section:     req.Section,
		Description: strings.TrimSpace(req.Description),
	}
	return s.create(ctx, note)
}

// AddResult stores a Result note carrying the link.
func (s *NoteService) AddResult(ctx context.Context, req AddResultRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	note := &models.Note{
		Title:   strings.TrimSpace(req.Title),
		Type:    models.NoteTypeResult,
		Subject: strings.TrimSpace(req.Subject),
		Class:   req.Class,
		Section: req.Section,
		Link:    req.Link,
	}
	return s.create(ctx, note)
}

func (s *NoteService) create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save note")
	}
	s.logger.Info("note published",
		zap.Int64("note_id", note.ID),
		zap.String("type", string(note.Type)),
		zap.String("class", note.Class),
		zap.String("section", note.Section))
	return note, nil
}

// List returns notes matching filter, newest first.
func (s *NoteService) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	notes, err := s.store.ListNotes(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}
	return notes, nil
}

// ForStudent returns the notes addressed to the student's course and section.
func (s *NoteService) ForStudent(ctx context.Context, student *models.User, noteType models.NoteType) (*dto.StudentNotes, error) {
	notes, err := s.List(ctx, models.NoteFilter{Class: student.Course, Section: student.Section, Type: noteType})
	if err != nil {
		return nil, err
	}
	return &dto.StudentNotes{Class: student.Course, Section: student.Section, Notes: notes}, nil
}
