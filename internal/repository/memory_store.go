package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/school-erp-api/internal/models"
)

// MemoryStore is the process-wide record store used when no database is
// configured. Every collection is guarded by one RWMutex; lookups return
// copies so callers never alias store memory.
type MemoryStore struct {
	mu sync.RWMutex

	users      []models.User
	students   []models.User
	notes      []models.Note
	noteSeq    int64
	attendance map[string]models.AttendanceStatus
	fees       models.FeeSchedule
	hostels    []models.Hostel
	results    []models.SubjectResult
	admissions []models.Admission
	exportJobs map[string]*models.ExportJob

	now func() time.Time
}

// NewMemoryStore returns a store loaded with the demo records.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		students:   seedStudents(),
		notes:      seedNotes(),
		attendance: seedAttendance(),
		fees:       seedFees(),
		hostels:    seedHostels(),
		results:    seedResults(),
		exportJobs: make(map[string]*models.ExportJob),
		now:        time.Now,
	}
	s.users = append(s.users, seedAdmins()...)
	s.users = append(s.users, seedTeachers()...)
	s.users = append(s.users, s.students...)
	s.noteSeq = int64(len(s.notes))
	return s
}

// FindUser returns the user with both the given id and role.
func (s *MemoryStore) FindUser(_ context.Context, id string, role models.UserRole) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id && u.Role == role {
			found := u
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

// ListStudents returns students in insertion order. Search matches name, id
// or course case-insensitively.
func (s *MemoryStore) ListStudents(_ context.Context, filter models.StudentFilter) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.User, 0, len(s.students))
	for _, st := range s.students {
		if filter.Course != "" && st.Course != filter.Course {
			continue
		}
		if filter.Section != "" && st.Section != filter.Section {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(st.Name), search) &&
			!strings.Contains(strings.ToLower(st.ID), search) &&
			!strings.Contains(strings.ToLower(st.Course), search) {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

// CountStudents returns the size of the student list.
func (s *MemoryStore) CountStudents(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students), nil
}

// CreateStudent assigns the next stuNNN id, the student role and an avatar,
// then appends the record to the student and user lists.
func (s *MemoryStore) CreateStudent(_ context.Context, student *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student.ID = models.StudentID(len(s.students) + 1)
	student.Role = models.RoleStudent
	student.AvatarURL = models.AvatarURLFor(student.ID)
	student.Department = ""

	s.students = append(s.students, *student)
	s.users = append(s.users, *student)
	return nil
}

// ListNotes returns notes newest first.
func (s *MemoryStore) ListNotes(_ context.Context, filter models.NoteFilter) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if filter.Matches(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// CreateNote stamps the note with the next id and today's date and prepends it.
func (s *MemoryStore) CreateNote(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.noteSeq++
	note.ID = s.noteSeq
	note.Date = s.now().UTC().Format(models.DateLayout)

	s.notes = append([]models.Note{*note}, s.notes...)
	return nil
}

// SaveAttendance records status for date. The student id is not part of the
// key, so the mark applies to every student.
func (s *MemoryStore) SaveAttendance(_ context.Context, date string, _ string, status models.AttendanceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attendance[date] = status
	return nil
}

// ListAttendance returns every marked date in ascending order.
func (s *MemoryStore) ListAttendance(_ context.Context) ([]models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AttendanceRecord, 0, len(s.attendance))
	for date, status := range s.attendance {
		out = append(out, models.AttendanceRecord{Date: date, Status: status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// GetFeeSchedule returns the fee account and its installments.
func (s *MemoryStore) GetFeeSchedule(_ context.Context) (*models.FeeSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fees := s.copyFees()
	return &fees, nil
}

// PayInstallment marks the installment paid on paidOn and adds its amount to
// the paid total.
func (s *MemoryStore) PayInstallment(_ context.Context, id int64, paidOn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fees.Installments {
		inst := &s.fees.Installments[i]
		if inst.ID != id {
			continue
		}
		if inst.Status == models.InstallmentPaid {
			return ErrInstallmentPaid
		}
		date := paidOn
		inst.Status = models.InstallmentPaid
		inst.PaymentDate = &date
		s.fees.PaidFees += inst.Amount
		return nil
	}
	return sql.ErrNoRows
}

// ListHostels returns the hostels in display order.
func (s *MemoryStore) ListHostels(_ context.Context) ([]models.Hostel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Hostel(nil), s.hostels...), nil
}

// ListResults returns the graded subjects.
func (s *MemoryStore) ListResults(_ context.Context) ([]models.SubjectResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SubjectResult(nil), s.results...), nil
}

// CreateAdmission stores an application with a generated id.
func (s *MemoryStore) CreateAdmission(_ context.Context, admission *models.Admission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admission.ID == "" {
		admission.ID = uuid.NewString()
	}
	if admission.SubmittedAt.IsZero() {
		admission.SubmittedAt = s.now().UTC()
	}
	s.admissions = append(s.admissions, *admission)
	return nil
}

// ListAdmissions returns applications newest first.
func (s *MemoryStore) ListAdmissions(_ context.Context) ([]models.Admission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Admission, len(s.admissions))
	for i, a := range s.admissions {
		out[len(s.admissions)-1-i] = a
	}
	return out, nil
}

// CreateExportJob persists a new export job.
func (s *MemoryStore) CreateExportJob(_ context.Context, job *models.ExportJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ExportStatusQueued
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = s.now().UTC()
	}
	stored := *job
	s.exportJobs[job.ID] = &stored
	return nil
}

// GetExportJob returns a job by id.
func (s *MemoryStore) GetExportJob(_ context.Context, id string) (*models.ExportJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.exportJobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *job
	return &out, nil
}

// UpdateExportJob applies the non-nil fields of update.
func (s *MemoryStore) UpdateExportJob(_ context.Context, id string, update models.ExportJobUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.exportJobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	update.Apply(job)
	return nil
}

// ListQueuedExportJobs returns up to limit queued jobs, oldest first.
func (s *MemoryStore) ListQueuedExportJobs(_ context.Context, limit int) ([]models.ExportJob, error) {
	return s.filterExportJobs(limit, func(j *models.ExportJob) bool {
		return j.Status == models.ExportStatusQueued
	}), nil
}

// ListFinishedExportJobsBefore returns up to limit jobs that finished before cutoff.
func (s *MemoryStore) ListFinishedExportJobsBefore(_ context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	return s.filterExportJobs(limit, func(j *models.ExportJob) bool {
		return j.Status == models.ExportStatusFinished && j.FinishedAt != nil && j.FinishedAt.Before(cutoff)
	}), nil
}

func (s *MemoryStore) filterExportJobs(limit int, keep func(*models.ExportJob) bool) []models.ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ExportJob, 0)
	for _, job := range s.exportJobs {
		if keep(job) {
			out = append(out, *job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *MemoryStore) copyFees() models.FeeSchedule {
	fees := s.fees
	fees.Installments = make([]models.FeeInstallment, len(s.fees.Installments))
	for i, inst := range s.fees.Installments {
		if inst.PaymentDate != nil {
			date := *inst.PaymentDate
			inst.PaymentDate = &date
		}
		fees.Installments[i] = inst
	}
	return fees
}
