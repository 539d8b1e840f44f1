package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-erp-api/internal/models"
)

const userColumns = `id, role, name, email, avatar_url, COALESCE(department, '') AS department,
COALESCE(course, '') AS course, COALESCE(year, 0) AS year, COALESCE(section, '') AS section`

// UserRepository resolves sign-in identities from the users table.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUser returns the user matching both id and role. A miss surfaces as
// sql.ErrNoRows.
func (r *UserRepository) FindUser(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1 AND role = $2 LIMIT 1"
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id, role); err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
