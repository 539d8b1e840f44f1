package models

import "time"

// ExportType enumerates datasets that can be exported asynchronously.
type ExportType string

const (
	ExportTypeStudents   ExportType = "students"
	ExportTypeAttendance ExportType = "attendance"
	ExportTypeNotes      ExportType = "notes"
)

// Valid reports whether the export type is supported.
func (t ExportType) Valid() bool {
	switch t {
	case ExportTypeStudents, ExportTypeAttendance, ExportTypeNotes:
		return true
	default:
		return false
	}
}

// ExportFormat enumerates supported export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// Valid reports whether the format is supported.
func (f ExportFormat) Valid() bool {
	return f == ExportFormatCSV || f == ExportFormatPDF
}

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob is the persisted metadata of one export request.
type ExportJob struct {
	ID           string       `db:"id" json:"id"`
	Type         ExportType   `db:"type" json:"type"`
	Format       ExportFormat `db:"format" json:"format"`
	Status       ExportStatus `db:"status" json:"status"`
	Progress     int          `db:"progress" json:"progress"`
	ResultURL    *string      `db:"result_url" json:"resultUrl,omitempty"`
	CreatedBy    string       `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	FinishedAt   *time.Time   `db:"finished_at" json:"finishedAt,omitempty"`
	ErrorMessage *string      `db:"error_message" json:"errorMessage,omitempty"`
}

// ExportJobUpdate lists the mutable fields of a job. Nil fields are left untouched.
type ExportJobUpdate struct {
	Status       *ExportStatus
	Progress     *int
	ResultURL    *string
	ErrorMessage *string
	FinishedAt   *time.Time
}

// Apply copies the non-nil fields onto job.
func (u ExportJobUpdate) Apply(job *ExportJob) {
	if u.Status != nil {
		job.Status = *u.Status
	}
	if u.Progress != nil {
		job.Progress = *u.Progress
	}
	if u.ResultURL != nil {
		url := *u.ResultURL
		job.ResultURL = &url
	}
	if u.ErrorMessage != nil {
		msg := *u.ErrorMessage
		job.ErrorMessage = &msg
	}
	if u.FinishedAt != nil {
		at := *u.FinishedAt
		job.FinishedAt = &at
	}
}
