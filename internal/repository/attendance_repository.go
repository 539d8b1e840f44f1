package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/models"
)

// AttendanceRepository stores one status per calendar day.
type AttendanceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB, logger *zap.Logger) *AttendanceRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceRepository{db: db, logger: logger}
}

// SaveAttendance upserts the status for date. The table has no student
// column, so studentID only reaches the log.
func (r *AttendanceRepository) SaveAttendance(ctx context.Context, date string, studentID string, status models.AttendanceStatus) error {
	const query = `INSERT INTO attendance (day, status) VALUES ($1, $2)
ON CONFLICT (day) DO UPDATE SET status = EXCLUDED.status`
	if _, err := r.db.ExecContext(ctx, query, date, status); err != nil {
		return fmt.Errorf("save attendance: %w", err)
	}
	r.logger.Debug("attendance saved", zap.String("date", date), zap.String("student_id", studentID))
	return nil
}

// ListAttendance returns every marked day in ascending order.
func (r *AttendanceRepository) ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	const query = `SELECT to_char(day, 'YYYY-MM-DD') AS date, status FROM attendance ORDER BY day ASC`
	records := make([]models.AttendanceRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
