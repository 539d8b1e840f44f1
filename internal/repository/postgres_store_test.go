package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/models"
)

func newStoreMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	store := NewPostgresStore(sqlx.NewDb(db, "sqlmock"), zap.NewNop())
	return store, mock, func() { db.Close() }
}

var userRowColumns = []string{"id", "role", "name", "email", "avatar_url", "department", "course", "year", "section"}

func TestPostgresFindUser(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow("stu001", "student", "Alice Johnson", "alice.j@university.edu", "https://picsum.photos/seed/avatar4/100/100", "", "Computer Science", 2, "A")
	mock.ExpectQuery(`FROM users WHERE id = \$1 AND role = \$2 LIMIT 1`).
		WithArgs("stu001", "student").
		WillReturnRows(rows)

	user, err := store.FindUser(context.Background(), "stu001", models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", user.Name)
	assert.Equal(t, 2, user.Year)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindUserMissing(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(`FROM users WHERE id = \$1 AND role = \$2`).
		WithArgs("stu001", "admin").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindUser(context.Background(), "stu001", models.RoleAdmin)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListStudentsFilters(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow("stu004", "student", "Diana Miller", "diana.m@university.edu", "url", "", "Computer Science", 4, "C")
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE role = $1 AND course = $2 AND section = $3 AND (LOWER(name) LIKE $4 ESCAPE '\' OR LOWER(id) LIKE $4 ESCAPE '\' OR LOWER(course) LIKE $4 ESCAPE '\') ORDER BY created_at ASC, id ASC`)).
		WithArgs("student", "Computer Science", "C", "%diana%").
		WillReturnRows(rows)

	students, err := store.ListStudents(context.Background(), models.StudentFilter{Course: "Computer Science", Section: "C", Search: " Diana "})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "stu004", students[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListStudentsSearchMatchesWildcardsLiterally(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`(LOWER(name) LIKE $2 ESCAPE '\' OR LOWER(id) LIKE $2 ESCAPE '\' OR LOWER(course) LIKE $2 ESCAPE '\')`)).
		WithArgs("student", `%stu\_0\%1\\%`).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	students, err := store.ListStudents(context.Background(), models.StudentFilter{Search: `stu_0%1\`})
	require.NoError(t, err)
	assert.Empty(t, students)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "diana", escapeLike("diana"))
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}

func TestPostgresCreateStudent(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).WithArgs(studentIDLock).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE role = $1")).
		WithArgs("student").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("stu006", "student", "Frank Green", "frank.g@university.edu", "https://picsum.photos/seed/stu006/100/100", "Physics", 1, "A").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	student := &models.User{Name: "Frank Green", Email: "frank.g@university.edu", Course: "Physics", Year: 1, Section: "A"}
	require.NoError(t, store.CreateStudent(context.Background(), student))
	assert.Equal(t, "stu006", student.ID)
	assert.Equal(t, models.RoleStudent, student.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateStudentRollsBack(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectExec("INSERT INTO users").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.CreateStudent(context.Background(), &models.User{Name: "Frank Green"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNotes(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()
	store.NoteRepository.now = func() time.Time { return time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC) }

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs("Sorting", "Notes", "Computer Science", "2024-07-20", "Computer Science", "A", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	note := &models.Note{Title: "Sorting", Type: models.NoteTypeNotes, Subject: "Computer Science", Class: "Computer Science", Section: "A"}
	require.NoError(t, store.CreateNote(context.Background(), note))
	assert.Equal(t, int64(5), note.ID)
	assert.Equal(t, "2024-07-20", note.Date)

	rows := sqlmock.NewRows([]string{"id", "title", "type", "subject", "date", "class", "section", "description", "link"}).
		AddRow(5, "Sorting", "Notes", "Computer Science", "2024-07-20", "Computer Science", "A", "", "").
		AddRow(1, "Chapter 1: Introduction to Algorithms", "Notes", "Computer Science", "2024-07-10", "Computer Science", "A", "", "")
	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE 1=1 AND class = $1 AND section = $2 ORDER BY created_at DESC, id ASC")).
		WithArgs("Computer Science", "A").
		WillReturnRows(rows)

	notes, err := store.ListNotes(context.Background(), models.NoteFilter{Class: "Computer Science", Section: "A"})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, int64(5), notes[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAttendance(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (day) DO UPDATE SET status = EXCLUDED.status")).
		WithArgs("2024-07-17", "absent").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.SaveAttendance(context.Background(), "2024-07-17", "stu002", models.AttendanceAbsent))

	mock.ExpectQuery("FROM attendance ORDER BY day ASC").
		WillReturnRows(sqlmock.NewRows([]string{"date", "status"}).AddRow("2024-07-17", "absent"))
	records, err := store.ListAttendance(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendanceAbsent, records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFeeSchedule(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT total_fees, paid_fees FROM fee_accounts").
		WillReturnRows(sqlmock.NewRows([]string{"total_fees", "paid_fees"}).AddRow(5000, 2500))
	mock.ExpectQuery("FROM fee_installments ORDER BY id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "due_date", "status", "payment_date"}).
			AddRow(1, 2500, "2024-08-01", "Paid", "2024-07-15").
			AddRow(2, 2500, "2025-01-15", "Upcoming", nil))

	fees, err := store.GetFeeSchedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2500), fees.Outstanding())
	require.Len(t, fees.Installments, 2)
	require.NotNil(t, fees.Installments[0].PaymentDate)
	assert.Nil(t, fees.Installments[1].PaymentDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPayInstallment(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM fee_installments WHERE id = \\$1 FOR UPDATE").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "status"}).AddRow(2500, "Upcoming"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE fee_installments SET status = $1, payment_date = $2 WHERE id = $3")).
		WithArgs("Paid", "2024-12-01", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE fee_accounts SET paid_fees = paid_fees + $1")).
		WithArgs(2500).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.PayInstallment(context.Background(), 2, "2024-12-01"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPayInstallmentAlreadyPaid(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"amount", "status"}).AddRow(2500, "Paid"))
	mock.ExpectRollback()

	err := store.PayInstallment(context.Background(), 1, "2024-12-01")
	assert.ErrorIs(t, err, ErrInstallmentPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCampus(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("FROM hostels ORDER BY position ASC").
		WillReturnRows(sqlmock.NewRows([]string{"name", "occupancy", "capacity"}).AddRow("Stanza Living", 180, 200))
	hostels, err := store.ListHostels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stanza Living", hostels[0].Name)

	mock.ExpectQuery("FROM subject_results").
		WillReturnRows(sqlmock.NewRows([]string{"subject", "grade", "marks", "credits"}).AddRow("Data Structures", "A", 92, 4))
	results, err := store.ListResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, results[0].Credits)

	mock.ExpectExec("INSERT INTO admissions").
		WithArgs(sqlmock.AnyArg(), "Grace Hopper", "grace@example.com", "555-0100", "Computer Science", "Vassar", "Statement", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	admission := &models.Admission{FullName: "Grace Hopper", Email: "grace@example.com", Phone: "555-0100", Course: "Computer Science", PreviousSchool: "Vassar", Statement: "Statement"}
	require.NoError(t, store.CreateAdmission(context.Background(), admission))
	assert.NotEmpty(t, admission.ID)
	assert.False(t, admission.SubmittedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExportJobs(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO export_jobs").
		WithArgs(sqlmock.AnyArg(), "students", "csv", "QUEUED", 0, nil, "admin01", sqlmock.AnyArg(), nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	job := &models.ExportJob{Type: models.ExportTypeStudents, Format: models.ExportFormatCSV, CreatedBy: "admin01"}
	require.NoError(t, store.CreateExportJob(context.Background(), job))
	require.NotEmpty(t, job.ID)

	now := time.Now().UTC()
	status := models.ExportStatusFinished
	progress := 100
	url := "/api/v1/exports/download/token"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE export_jobs SET status = $1, progress = $2, result_url = $3, finished_at = $4 WHERE id = $5")).
		WithArgs("FINISHED", 100, url, now, job.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.UpdateExportJob(context.Background(), job.ID, models.ExportJobUpdate{Status: &status, Progress: &progress, ResultURL: &url, FinishedAt: &now}))

	require.NoError(t, store.UpdateExportJob(context.Background(), job.ID, models.ExportJobUpdate{}))

	mock.ExpectQuery(regexp.QuoteMeta("FROM export_jobs WHERE status = $1 ORDER BY created_at ASC LIMIT $2")).
		WithArgs("QUEUED", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "format", "status", "progress", "result_url", "created_by", "created_at", "finished_at", "error_message"}).
			AddRow("job-1", "notes", "pdf", "QUEUED", 0, nil, "admin01", now, nil, nil))
	queued, err := store.ListQueuedExportJobs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, models.ExportFormatPDF, queued[0].Format)
	assert.NoError(t, mock.ExpectationsWereMet())
}
