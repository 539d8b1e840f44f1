package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-erp-api/internal/models"
)

// studentIDLock serialises id assignment across API replicas.
const studentIDLock = 7301

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes the LIKE wildcards in term match literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// StudentRepository manages the student rows of the users table.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListStudents returns students in insertion order.
func (r *StudentRepository) ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.User, error) {
	args := []interface{}{models.RoleStudent}
	conditions := []string{"role = $1"}

	if filter.Course != "" {
		conditions = append(conditions, fmt.Sprintf("course = $%d", len(args)+1))
		args = append(args, filter.Course)
	}
	if filter.Section != "" {
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)+1))
		args = append(args, filter.Section)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pos := len(args) + 1
		conditions = append(conditions, fmt.Sprintf(`(LOWER(name) LIKE $%d ESCAPE '\' OR LOWER(id) LIKE $%d ESCAPE '\' OR LOWER(course) LIKE $%d ESCAPE '\')`, pos, pos, pos))
		args = append(args, "%"+escapeLike(strings.ToLower(search))+"%")
	}

	query := fmt.Sprintf("SELECT %s FROM users WHERE %s ORDER BY created_at ASC, id ASC", userColumns, strings.Join(conditions, " AND "))
	students := make([]models.User, 0)
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// CountStudents returns the number of student rows.
func (r *StudentRepository) CountStudents(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users WHERE role = $1", models.RoleStudent); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

// CreateStudent assigns the next stuNNN id under an advisory lock and inserts
// the row in the same transaction.
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.User) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create student: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", studentIDLock); err != nil {
		return fmt.Errorf("lock student ids: %w", err)
	}
	var count int
	if err = tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE role = $1", models.RoleStudent); err != nil {
		return fmt.Errorf("count students: %w", err)
	}

	student.ID = models.StudentID(count + 1)
	student.Role = models.RoleStudent
	student.AvatarURL = models.AvatarURLFor(student.ID)
	student.Department = ""

	const insert = `INSERT INTO users (id, role, name, email, avatar_url, course, year, section)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err = tx.ExecContext(ctx, insert, student.ID, student.Role, student.Name, student.Email, student.AvatarURL, student.Course, student.Year, student.Section); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create student: %w", err)
	}
	return nil
}
