package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-erp-api/internal/models"
)

const exportJobColumns = "id, type, format, status, progress, result_url, created_by, created_at, finished_at, error_message"

// ExportJobRepository persists export job metadata.
type ExportJobRepository struct {
	db *sqlx.DB
}

// NewExportJobRepository constructs the repository.
func NewExportJobRepository(db *sqlx.DB) *ExportJobRepository {
	return &ExportJobRepository{db: db}
}

// CreateExportJob inserts a job row with generated defaults.
func (r *ExportJobRepository) CreateExportJob(ctx context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ExportStatusQueued
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO export_jobs (id, type, format, status, progress, result_url, created_by, created_at, finished_at, error_message)
VALUES (:id, :type, :format, :status, :progress, :result_url, :created_by, :created_at, :finished_at, :error_message)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create export job: %w", err)
	}
	return nil
}

// GetExportJob returns a job by id.
func (r *ExportJobRepository) GetExportJob(ctx context.Context, id string) (*models.ExportJob, error) {
	var job models.ExportJob
	if err := r.db.GetContext(ctx, &job, "SELECT "+exportJobColumns+" FROM export_jobs WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("get export job: %w", err)
	}
	return &job, nil
}

// UpdateExportJob persists the non-nil fields of update.
func (r *ExportJobRepository) UpdateExportJob(ctx context.Context, id string, update models.ExportJobUpdate) error {
	set := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.Progress != nil {
		add("progress", *update.Progress)
	}
	if update.ResultURL != nil {
		add("result_url", *update.ResultURL)
	}
	if update.ErrorMessage != nil {
		add("error_message", *update.ErrorMessage)
	}
	if update.FinishedAt != nil {
		add("finished_at", *update.FinishedAt)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE export_jobs SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update export job: %w", err)
	}
	return nil
}

// ListQueuedExportJobs fetches queued jobs for cold start recovery.
func (r *ExportJobRepository) ListQueuedExportJobs(ctx context.Context, limit int) ([]models.ExportJob, error) {
	if limit <= 0 {
		limit = 20
	}
	query := "SELECT " + exportJobColumns + " FROM export_jobs WHERE status = $1 ORDER BY created_at ASC LIMIT $2"
	jobs := make([]models.ExportJob, 0)
	if err := r.db.SelectContext(ctx, &jobs, query, models.ExportStatusQueued, limit); err != nil {
		return nil, fmt.Errorf("list queued export jobs: %w", err)
	}
	return jobs, nil
}

// ListFinishedExportJobsBefore retrieves finished jobs older than cutoff.
func (r *ExportJobRepository) ListFinishedExportJobsBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	if limit <= 0 {
		limit = 50
	}
	query := "SELECT " + exportJobColumns + ` FROM export_jobs
WHERE status = $1 AND finished_at IS NOT NULL AND finished_at < $2 ORDER BY finished_at ASC LIMIT $3`
	jobs := make([]models.ExportJob, 0)
	if err := r.db.SelectContext(ctx, &jobs, query, models.ExportStatusFinished, cutoff, limit); err != nil {
		return nil, fmt.Errorf("list finished export jobs: %w", err)
	}
	return jobs, nil
}
