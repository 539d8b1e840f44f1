package models

// AttendanceStatus is the mark recorded for a calendar date.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceHoliday AttendanceStatus = "holiday"
)

// AttendanceRecord is keyed by date only. Marking one student overwrites the
// status every student sees for that date.
type AttendanceRecord struct {
	Date   string           `db:"date" json:"date"`
	Status AttendanceStatus `db:"status" json:"status"`
}
