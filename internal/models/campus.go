package models

import "time"

// Hostel reports bed usage for one residence.
type Hostel struct {
	Name      string `db:"name" json:"name"`
	Occupancy int    `db:"occupancy" json:"occupancy"`
	Capacity  int    `db:"capacity" json:"capacity"`
}

// SubjectResult is one graded subject on the student results page.
type SubjectResult struct {
	Subject string `db:"subject" json:"subject"`
	Grade   string `db:"grade" json:"grade"`
	Marks   int    `db:"marks" json:"marks"`
	Credits int    `db:"credits" json:"credits"`
}

// Admission is a submitted application from the public admissions form.
type Admission struct {
	ID             string    `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"fullName"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	Course         string    `db:"course" json:"course"`
	PreviousSchool string    `db:"previous_school" json:"previousSchool"`
	Statement      string    `db:"statement" json:"statement"`
	SubmittedAt    time.Time `db:"submitted_at" json:"submittedAt"`
}
