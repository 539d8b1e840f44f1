package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-erp-api/internal/models"
)

// CampusRepository serves hostels, subject results and admissions.
type CampusRepository struct {
	db *sqlx.DB
}

// NewCampusRepository constructs a CampusRepository.
func NewCampusRepository(db *sqlx.DB) *CampusRepository {
	return &CampusRepository{db: db}
}

// ListHostels returns hostels in display order.
func (r *CampusRepository) ListHostels(ctx context.Context) ([]models.Hostel, error) {
	hostels := make([]models.Hostel, 0)
	if err := r.db.SelectContext(ctx, &hostels, "SELECT name, occupancy, capacity FROM hostels ORDER BY position ASC"); err != nil {
		return nil, fmt.Errorf("list hostels: %w", err)
	}
	return hostels, nil
}

// ListResults returns graded subjects.
func (r *CampusRepository) ListResults(ctx context.Context) ([]models.SubjectResult, error) {
	results := make([]models.SubjectResult, 0)
	if err := r.db.SelectContext(ctx, &results, "SELECT subject, grade, marks, credits FROM subject_results ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// CreateAdmission inserts an application.
func (r *CampusRepository) CreateAdmission(ctx context.Context, admission *models.Admission) error {
	if admission.ID == "" {
		admission.ID = uuid.NewString()
	}
	if admission.SubmittedAt.IsZero() {
		admission.SubmittedAt = time.Now().UTC()
	}
	const query = `INSERT INTO admissions (id, full_name, email, phone, course, previous_school, statement, submitted_at)
VALUES (:id, :full_name, :email, :phone, :course, :previous_school, :statement, :submitted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admission); err != nil {
		return fmt.Errorf("create admission: %w", err)
	}
	return nil
}

// ListAdmissions returns applications newest first.
func (r *CampusRepository) ListAdmissions(ctx context.Context) ([]models.Admission, error) {
	const query = `SELECT id, full_name, email, phone, course, previous_school, statement, submitted_at
FROM admissions ORDER BY submitted_at DESC`
	admissions := make([]models.Admission, 0)
	if err := r.db.SelectContext(ctx, &admissions, query); err != nil {
		return nil, fmt.Errorf("list admissions: %w", err)
	}
	return admissions, nil
}
