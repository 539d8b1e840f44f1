package dto

import "github.com/noah-isme/school-erp-api/internal/models"

// AttendanceSummary groups marked days by status for the student calendar.
type AttendanceSummary struct {
	Present    []string                  `json:"present"`
	Absent     []string                  `json:"absent"`
	Holiday    []string                  `json:"holiday"`
	Percentage int                       `json:"percentage"`
	Records    []models.AttendanceRecord `json:"records"`
}

// FeeOverview is the student fee page.
type FeeOverview struct {
	TotalFees      int64                   `json:"totalFees"`
	PaidFees       int64                   `json:"paidFees"`
	Outstanding    int64                   `json:"outstanding"`
	PercentagePaid int                     `json:"percentagePaid"`
	Installments   []models.FeeInstallment `json:"installments"`
}

// ResultsOverview is the student results page.
type ResultsOverview struct {
	Subjects          []models.SubjectResult `json:"subjects"`
	GPA               float64                `json:"gpa"`
	OverallPercentage float64                `json:"overallPercentage"`
	TotalCredits      int                    `json:"totalCredits"`
}

// HostelOccupancy decorates a hostel with its fill rate.
type HostelOccupancy struct {
	models.Hostel
	Rate int `json:"rate"`
}

// HostelOverview is the admin hostel page.
type HostelOverview struct {
	Hostels        []HostelOccupancy `json:"hostels"`
	TotalOccupancy int               `json:"totalOccupancy"`
	TotalCapacity  int               `json:"totalCapacity"`
	OverallRate    int               `json:"overallRate"`
}

// ClassGroup is one section of a teacher's roster.
type ClassGroup struct {
	Name     string        `json:"name"`
	Course   string        `json:"course"`
	Section  string        `json:"section"`
	Students []models.User `json:"students"`
}

// StudentNotes is the student notes page.
type StudentNotes struct {
	Class   string        `json:"class"`
	Section string        `json:"section"`
	Notes   []models.Note `json:"notes"`
}
