package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/pkg/export"
	"github.com/noah-isme/school-erp-api/pkg/storage"
)

type exportSource interface {
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.User, error)
	ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error)
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	DownloadPrefix string
	ResultTTL      time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
}

// ExportService builds record datasets and persists rendered files.
type ExportService struct {
	source    exportSource
	storage   fileStorage
	renderers map[models.ExportFormat]datasetRenderer
	signer    *storage.SignedURLSigner
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(source exportSource, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.DownloadPrefix == "" {
		cfg.DownloadPrefix = "/exports"
	}
	return &ExportService{
		source:  source,
		storage: files,
		renderers: map[models.ExportFormat]datasetRenderer{
			models.ExportFormatCSV: export.NewCSVExporter(),
			models.ExportFormatPDF: export.NewPDFExporter(),
		},
		signer: signer,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Generate builds the dataset for job, renders it and stores the file.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	renderer, ok := s.renderers[job.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format %s", job.Format)
	}
	dataset, err := s.buildDataset(ctx, job.Type)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(*dataset)
	if err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(s.buildFilename(job), payload)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("export rendered", zap.String("job_id", job.ID), zap.String("path", relPath), zap.Int("rows", len(dataset.Rows)))

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.DownloadPrefix, "/"), token),
		Format:       job.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ContentType returns the MIME type of files rendered in format.
func (s *ExportService) ContentType(format models.ExportFormat) string {
	if r, ok := s.renderers[format]; ok {
		return r.ContentType()
	}
	return "application/octet-stream"
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (storage.SignedToken, error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl, or the configured ResultTTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ExportJob) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s/%s_%s.%s", sanitizeFilename(job.ID), job.Type, timestamp, job.Format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func (s *ExportService) buildDataset(ctx context.Context, kind models.ExportType) (*export.Dataset, error) {
	switch kind {
	case models.ExportTypeStudents:
		return s.studentDataset(ctx)
	case models.ExportTypeAttendance:
		return s.attendanceDataset(ctx)
	case models.ExportTypeNotes:
		return s.noteDataset(ctx)
	default:
		return nil, fmt.Errorf("unsupported export type %s", kind)
	}
}

func (s *ExportService) studentDataset(ctx context.Context) (*export.Dataset, error) {
	students, err := s.source.ListStudents(ctx, models.StudentFilter{})
	if err != nil {
		return nil, err
	}
	data := export.NewDataset("Student Roster", "ID", "Name", "Email", "Course", "Year", "Section")
	for _, st := range students {
		if err := data.AddRow(st.ID, st.Name, st.Email, st.Course, strconv.Itoa(st.Year), st.Section); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (s *ExportService) attendanceDataset(ctx context.Context) (*export.Dataset, error) {
	records, err := s.source.ListAttendance(ctx)
	if err != nil {
		return nil, err
	}
	data := export.NewDataset("Attendance Register", "Date", "Status")
	for _, r := range records {
		if err := data.AddRow(r.Date, string(r.Status)); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (s *ExportService) noteDataset(ctx context.Context) (*export.Dataset, error) {
	notes, err := s.source.ListNotes(ctx, models.NoteFilter{})
	if err != nil {
		return nil, err
	}
	data := export.NewDataset("Notes and Results", "ID", "Date", "Type", "Class", "Section", "Subject", "Title", "Link")
	for _, n := range notes {
		if err := data.AddRow(strconv.FormatInt(n.ID, 10), n.Date, string(n.Type), n.Class, n.Section, n.Subject, n.Title, n.Link); err != nil {
			return nil, err
		}
	}
	return data, nil
}
