package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleDashboardPath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RoleAdmin.DashboardPath())
	assert.Equal(t, "/student/dashboard", RoleStudent.DashboardPath())
	assert.True(t, RoleTeacher.Valid())
	assert.False(t, UserRole("ADMIN").Valid())
}

func TestStudentIDIsZeroPadded(t *testing.T) {
	assert.Equal(t, "stu006", StudentID(6))
	assert.Equal(t, "stu042", StudentID(42))
	assert.Equal(t, "stu1000", StudentID(1000))
	assert.Equal(t, "https://picsum.photos/seed/stu006/100/100", AvatarURLFor("stu006"))
}

func TestFeeScheduleTotals(t *testing.T) {
	fees := FeeSchedule{TotalFees: 5000, PaidFees: 2500}
	assert.Equal(t, int64(2500), fees.Outstanding())
	assert.Equal(t, 50, fees.PercentagePaid())
	assert.Equal(t, fees.TotalFees, fees.PaidFees+fees.Outstanding())

	assert.Equal(t, 0, FeeSchedule{}.PercentagePaid())
	assert.Equal(t, 33, FeeSchedule{TotalFees: 3000, PaidFees: 1000}.PercentagePaid())
}

func TestNoteFilterMatches(t *testing.T) {
	note := Note{Class: "Physics", Section: "B", Type: NoteTypeHomework}

	assert.True(t, NoteFilter{}.Matches(note))
	assert.True(t, NoteFilter{Class: "Physics", Section: "B"}.Matches(note))
	assert.False(t, NoteFilter{Class: "Physics", Section: "A"}.Matches(note))
	assert.False(t, NoteFilter{Type: NoteTypeResult}.Matches(note))
}

func TestExportJobUpdateApply(t *testing.T) {
	job := ExportJob{Status: ExportStatusQueued}
	status := ExportStatusFinished
	progress := 100
	url := "/exports/token"
	now := time.Now()

	ExportJobUpdate{Status: &status, Progress: &progress, ResultURL: &url, FinishedAt: &now}.Apply(&job)

	assert.Equal(t, ExportStatusFinished, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, "/exports/token", *job.ResultURL)
	assert.Nil(t, job.ErrorMessage)
	assert.True(t, ExportFormatPDF.Valid())
	assert.False(t, ExportType("grades").Valid())
}
