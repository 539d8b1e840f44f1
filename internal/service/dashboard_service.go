package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

const recentNotesLimit = 5

// Admission figures the store does not track yet.
const enrollmentRate = 92

var enrollmentTrend = []dto.MonthlyEnrollment{
	{Month: "Jan", Students: 65}, {Month: "Feb", Students: 59},
	{Month: "Mar", Students: 80}, {Month: "Apr", Students: 81},
	{Month: "May", Students: 56}, {Month: "Jun", Students: 55},
	{Month: "Jul", Students: 40},
}

// DashboardStore is the read surface the dashboards aggregate.
type DashboardStore interface {
	studentStore
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error)
	GetFeeSchedule(ctx context.Context) (*models.FeeSchedule, error)
	ListHostels(ctx context.Context) ([]models.Hostel, error)
	ListResults(ctx context.Context) ([]models.SubjectResult, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the landing pages of the three portals.
type DashboardService struct {
	store  DashboardStore
	cache  *CacheService
	logger *zap.Logger
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs the service.
func NewDashboardService(store DashboardStore, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &DashboardService{store: store, cache: cache, logger: logger, cfg: cfg}
}

// Admin returns the admin KPIs. The bool reports a cache hit.
func (s *DashboardService) Admin(ctx context.Context) (*dto.AdminDashboardResponse, bool, error) {
	key := cacheKeyDashboard + ":admin"
	var cached dto.AdminDashboardResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	total, err := s.store.CountStudents(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	fees, err := s.store.GetFeeSchedule(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fees")
	}
	hostels, err := s.store.ListHostels(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hostels")
	}
	occupied, capacity := 0, 0
	for _, h := range hostels {
		occupied += h.Occupancy
		capacity += h.Capacity
	}

	resp := &dto.AdminDashboardResponse{
		TotalStudents:   total,
		FeeCollection:   fees.PaidFees,
		FeePercentage:   fees.PercentagePaid(),
		EnrollmentRate:  enrollmentRate,
		HostelOccupancy: percent(occupied, capacity),
		EnrollmentTrend: enrollmentTrend,
		Fees: []dto.FeeSlice{
			{Name: "Paid", Value: fees.PaidFees},
			{Name: "Due", Value: fees.Outstanding()},
		},
	}
	resp.KPIs = []dto.KPI{
		{Title: "Total Students", Value: formatCount(total), Change: fmt.Sprintf("%d enrolled", total)},
		{Title: "Fee Collection", Value: formatMoney(fees.PaidFees), Change: fmt.Sprintf("%d%% of target", resp.FeePercentage)},
		{Title: "Enrollment Rate", Value: fmt.Sprintf("%d%%", enrollmentRate), Change: "+2% from last year"},
		{Title: "Hostel Occupancy", Value: fmt.Sprintf("%d%%", resp.HostelOccupancy), Change: fmt.Sprintf("%d/%d beds filled", occupied, capacity)},
	}
	resp.Summary = dashboardSummary(resp.KPIs)

	s.cache.Set(ctx, key, resp, s.cfg.CacheTTL)
	return resp, false, nil
}

// AdminSummary renders the KPI line the suggestion flow reads.
func (s *DashboardService) AdminSummary(ctx context.Context) (string, error) {
	resp, _, err := s.Admin(ctx)
	if err != nil {
		return "", err
	}
	return resp.Summary, nil
}

func dashboardSummary(kpis []dto.KPI) string {
	values := make(map[string]string, len(kpis))
	for _, k := range kpis {
		values[k.Title] = k.Value
	}
	return fmt.Sprintf("Total Students: %s, Fee Collection: %s, Enrollment Rate: %s, Hostel Occupancy: %s. Recent enrollment trend shows a dip in July.",
		values["Total Students"], values["Fee Collection"], values["Enrollment Rate"], values["Hostel Occupancy"])
}

// Teacher returns the teacher landing page.
func (s *DashboardService) Teacher(ctx context.Context, teacher *models.User) (*dto.TeacherDashboardResponse, error) {
	classes, err := s.Classes(ctx, teacher)
	if err != nil {
		return nil, err
	}
	count := 0
	for _, c := range classes {
		count += len(c.Students)
	}
	notes, err := s.store.ListNotes(ctx, models.NoteFilter{Class: teacher.Department})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notes")
	}
	return &dto.TeacherDashboardResponse{
		Teacher:      teacher,
		StudentCount: count,
		ClassCount:   len(classes),
		RecentNotes:  limitNotes(notes, recentNotesLimit),
	}, nil
}

// Classes groups the students of the teacher's department by section, in
// roster order.
func (s *DashboardService) Classes(ctx context.Context, teacher *models.User) ([]dto.ClassGroup, error) {
	groups := make([]dto.ClassGroup, 0)
	if teacher.Department == "" {
		return groups, nil
	}
	students, err := s.store.ListStudents(ctx, models.StudentFilter{Course: teacher.Department})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}
	index := make(map[string]int)
	for _, st := range students {
		name := fmt.Sprintf("%s - Section %s", st.Course, st.Section)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, dto.ClassGroup{Name: name, Course: st.Course, Section: st.Section})
		}
		groups[i].Students = append(groups[i].Students, st)
	}
	return groups, nil
}

// Student returns the student landing page.
func (s *DashboardService) Student(ctx context.Context, student *models.User) (*dto.StudentDashboardResponse, error) {
	records, err := s.store.ListAttendance(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	present, absent := 0, 0
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			present++
		case models.AttendanceAbsent:
			absent++
		}
	}
	fees, err := s.store.GetFeeSchedule(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fees")
	}
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	notes, err := s.store.ListNotes(ctx, models.NoteFilter{Class: student.Course, Section: student.Section})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notes")
	}
	return &dto.StudentDashboardResponse{
		Student:              student,
		AttendancePercentage: attendancePercentage(present, absent),
		Outstanding:          fees.Outstanding(),
		GPA:                  summariseResults(results).GPA,
		RecentNotes:          limitNotes(notes, recentNotesLimit),
	}, nil
}

func limitNotes(notes []models.Note, n int) []models.Note {
	if len(notes) > n {
		return notes[:n]
	}
	return notes
}

// formatCount renders 1250 as "1,250".
func formatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// formatMoney renders whole currency units in the dashboard's short form.
func formatMoney(amount int64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.1fM", float64(amount)/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("$%dk", amount/1_000)
	default:
		return fmt.Sprintf("$%d", amount)
	}
}
