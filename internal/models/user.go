package models

import "fmt"

// UserRole represents the three portals a user can sign in to.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// Roles lists every role in sign-in order.
var Roles = []UserRole{RoleAdmin, RoleTeacher, RoleStudent}

// Valid reports whether the role is one of the known portals.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// DashboardPath is the landing page of the role's portal.
func (r UserRole) DashboardPath() string {
	return fmt.Sprintf("/%s/dashboard", r)
}

// User is the flattened account record shared by every role. Department is
// only set for teachers; course, year and section only for students.
type User struct {
	ID         string   `db:"id" json:"id"`
	Name       string   `db:"name" json:"name"`
	Email      string   `db:"email" json:"email"`
	Role       UserRole `db:"role" json:"role"`
	AvatarURL  string   `db:"avatar_url" json:"avatarUrl"`
	Department string   `db:"department" json:"department,omitempty"`
	Course     string   `db:"course" json:"course,omitempty"`
	Year       int      `db:"year" json:"year,omitempty"`
	Section    string   `db:"section" json:"section,omitempty"`
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	Search  string
	Course  string
	Section string
}

// AvatarURLFor derives the placeholder avatar for a user id.
func AvatarURLFor(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/100/100", seed)
}

// StudentID formats the nth student identifier (stu001, stu002, ...).
func StudentID(n int) string {
	return fmt.Sprintf("stu%03d", n)
}
