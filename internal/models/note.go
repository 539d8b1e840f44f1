package models

import "time"

// NoteType classifies content shared with a class section.
type NoteType string

const (
	NoteTypeNotes    NoteType = "Notes"
	NoteTypeHomework NoteType = "Homework"
	NoteTypeTest     NoteType = "Test"
	NoteTypeResult   NoteType = "Result"
)

// DateLayout is the calendar date format used across the store.
const DateLayout = "2006-01-02"

// Note is a piece of course content (notes, homework, tests or a result
// link) published to one class section.
type Note struct {
	ID          int64    `db:"id" json:"id"`
	Title       string   `db:"title" json:"title"`
	Type        NoteType `db:"type" json:"type"`
	Subject     string   `db:"subject" json:"subject"`
	Date        string   `db:"date" json:"date"`
	Class       string   `db:"class" json:"class"`
	Section     string   `db:"section" json:"section"`
	Description string   `db:"description" json:"description,omitempty"`
	Link        string   `db:"link" json:"link,omitempty"`
}

// NoteFilter selects notes for a class section. Empty fields match everything.
type NoteFilter struct {
	Class   string
	Section string
	Type    NoteType
}

// Matches reports whether the note passes the filter.
func (f NoteFilter) Matches(n Note) bool {
	if f.Class != "" && n.Class != f.Class {
		return false
	}
	if f.Section != "" && n.Section != f.Section {
		return false
	}
	if f.Type != "" && n.Type != f.Type {
		return false
	}
	return true
}

// Today returns the current UTC calendar date.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
