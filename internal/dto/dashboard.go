package dto

import "github.com/noah-isme/school-erp-api/internal/models"

// KPI is one headline figure on the admin dashboard.
type KPI struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

// MonthlyEnrollment is one bar of the enrollment trend chart.
type MonthlyEnrollment struct {
	Month    string `json:"month"`
	Students int    `json:"students"`
}

// FeeSlice is one slice of the fee collection chart.
type FeeSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// AdminDashboardResponse captures the admin landing page.
type AdminDashboardResponse struct {
	KPIs            []KPI               `json:"kpis"`
	TotalStudents   int                 `json:"totalStudents"`
	FeeCollection   int64               `json:"feeCollection"`
	FeePercentage   int                 `json:"feePercentage"`
	EnrollmentRate  int                 `json:"enrollmentRate"`
	HostelOccupancy int                 `json:"hostelOccupancy"`
	EnrollmentTrend []MonthlyEnrollment `json:"enrollmentTrend"`
	Fees            []FeeSlice          `json:"fees"`
	Summary         string              `json:"summary"`
}

// TeacherDashboardResponse captures the teacher landing page.
type TeacherDashboardResponse struct {
	Teacher      *models.User  `json:"teacher"`
	StudentCount int           `json:"studentCount"`
	ClassCount   int           `json:"classCount"`
	RecentNotes  []models.Note `json:"recentNotes"`
}

// StudentDashboardResponse captures the student landing page.
type StudentDashboardResponse struct {
	Student              *models.User  `json:"student"`
	AttendancePercentage int           `json:"attendancePercentage"`
	Outstanding          int64         `json:"outstandingFees"`
	GPA                  float64       `json:"gpa"`
	RecentNotes          []models.Note `json:"recentNotes"`
}
