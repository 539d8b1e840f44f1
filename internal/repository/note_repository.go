package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-erp-api/internal/models"
)

// NoteRepository persists class content.
type NoteRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewNoteRepository constructs a NoteRepository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db, now: time.Now}
}

// ListNotes returns notes newest first; rows inserted together keep id order.
func (r *NoteRepository) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.Class != "" {
		args = append(args, filter.Class)
		conditions = append(conditions, fmt.Sprintf("class = $%d", len(args)))
	}
	if filter.Section != "" {
		args = append(args, filter.Section)
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT id, title, type, subject, to_char(note_date, 'YYYY-MM-DD') AS date, class, section,
COALESCE(description, '') AS description, COALESCE(link, '') AS link
FROM notes WHERE %s ORDER BY created_at DESC, id ASC`, strings.Join(conditions, " AND "))

	notes := make([]models.Note, 0)
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// CreateNote inserts the note dated today and stores the generated id on it.
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) error {
	note.Date = r.now().UTC().Format(models.DateLayout)
	const query = `INSERT INTO notes (title, type, subject, note_date, class, section, description, link)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, '')) RETURNING id`
	row := r.db.QueryRowxContext(ctx, query, note.Title, note.Type, note.Subject, note.Date, note.Class, note.Section, note.Description, note.Link)
	if err := row.Scan(&note.ID); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}
