package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/service"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

type fakeStudentSrv struct {
	filter  models.StudentFilter
	created service.CreateStudentRequest
}

func (f *fakeStudentSrv) List(_ context.Context, filter models.StudentFilter) ([]models.User, error) {
	f.filter = filter
	return []models.User{{ID: "stu001"}}, nil
}

func (f *fakeStudentSrv) Create(_ context.Context, req service.CreateStudentRequest) (*models.User, error) {
	f.created = req
	return &models.User{ID: "stu006", Name: req.Name, Role: models.RoleStudent}, nil
}

type fakeNoteSrv struct {
	content  service.AddContentRequest
	noteType models.NoteType
	student  *models.User
}

func (f *fakeNoteSrv) AddContent(_ context.Context, req service.AddContentRequest) (*models.Note, error) {
	f.content = req
	return &models.Note{ID: 5, Title: req.Title}, nil
}

func (f *fakeNoteSrv) AddResult(context.Context, service.AddResultRequest) (*models.Note, error) {
	return nil, appErrors.Clone(appErrors.ErrValidation, "link must be a url")
}

func (f *fakeNoteSrv) ForStudent(_ context.Context, student *models.User, noteType models.NoteType) (*dto.StudentNotes, error) {
	f.student = student
	f.noteType = noteType
	return &dto.StudentNotes{}, nil
}

type fakeFeeSrv struct{ paid int64 }

func (f *fakeFeeSrv) Overview(context.Context) (*dto.FeeOverview, error) { return &dto.FeeOverview{}, nil }

func (f *fakeFeeSrv) Pay(_ context.Context, id int64) (*dto.FeeOverview, error) {
	if id == 1 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "installment already paid")
	}
	f.paid = id
	return &dto.FeeOverview{}, nil
}

func TestStudentHandlerList(t *testing.T) {
	svc := &fakeStudentSrv{}
	h := NewStudentHandler(svc)

	c, w := newGinContext(http.MethodGet, "/admin/students?search=+alice+", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", svc.filter.Search)
	assert.Equal(t, float64(1), decodeEnvelope(t, w).Meta["total"])
}

func TestStudentHandlerCreate(t *testing.T) {
	svc := &fakeStudentSrv{}
	h := NewStudentHandler(svc)

	c, w := newGinContext(http.MethodPost, "/admin/students", mustJSON(t, map[string]interface{}{
		"name": "Frank Green", "email": "frank@university.edu", "course": "Physics", "year": 2, "section": "A",
	}))
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, svc.created.Year)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"id":"stu006"`)
}

func TestStudentHandlerCreateMalformedBody(t *testing.T) {
	h := NewStudentHandler(&fakeStudentSrv{})
	c, w := newGinContext(http.MethodPost, "/admin/students", []byte(`{"year":"two"`))
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoteHandlers(t *testing.T) {
	svc := &fakeNoteSrv{}
	h := NewNoteHandler(svc)

	c, w := newGinContext(http.MethodPost, "/teacher/notes", mustJSON(t, map[string]string{
		"title": "Graphs", "type": "Notes", "class": "Computer Science", "section": "A",
	}))
	h.AddContent(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Graphs", svc.content.Title)

	c, w = newGinContext(http.MethodPost, "/teacher/results", mustJSON(t, map[string]string{"title": "Midterm", "link": "nope"}))
	h.AddResult(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newGinContext(http.MethodGet, "/student/notes?type=Homework", nil)
	withUser(c, "stu002", models.RoleStudent)
	h.StudentNotes(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stu002", svc.student.ID)
	assert.Equal(t, models.NoteTypeHomework, svc.noteType)
}

func TestFeeHandlerPay(t *testing.T) {
	svc := &fakeFeeSrv{}
	h := NewFeeHandler(svc)

	cases := []struct {
		id     string
		status int
	}{
		{id: "2", status: http.StatusOK},
		{id: "1", status: http.StatusConflict},
		{id: "abc", status: http.StatusBadRequest},
		{id: "0", status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		c, w := newGinContext(http.MethodPost, "/student/fees/installments/"+tc.id+"/pay", nil)
		c.Params = gin.Params{{Key: "id", Value: tc.id}}
		h.Pay(c)
		assert.Equal(t, tc.status, w.Code, tc.id)
	}
	assert.Equal(t, int64(2), svc.paid)
}

type fakeCampusSrv struct {
	submitted []service.AdmissionRequest
}

func (f *fakeCampusSrv) Hostels(context.Context) (*dto.HostelOverview, error) {
	return &dto.HostelOverview{TotalOccupancy: 180, TotalCapacity: 200}, nil
}

func (f *fakeCampusSrv) Results(context.Context) (*dto.ResultsOverview, error) {
	return &dto.ResultsOverview{GPA: 3.5}, nil
}

func (f *fakeCampusSrv) SubmitAdmission(_ context.Context, req service.AdmissionRequest) (*models.Admission, error) {
	f.submitted = append(f.submitted, req)
	return &models.Admission{ID: "adm-1", FullName: req.FullName}, nil
}

func (f *fakeCampusSrv) Admissions(context.Context) ([]models.Admission, error) {
	out := make([]models.Admission, 0, len(f.submitted))
	for _, req := range f.submitted {
		out = append(out, models.Admission{FullName: req.FullName})
	}
	return out, nil
}

func TestCampusHandlerAdmissions(t *testing.T) {
	svc := &fakeCampusSrv{}
	h := NewCampusHandler(svc)

	c, w := newGinContext(http.MethodPost, "/admissions", mustJSON(t, map[string]string{
		"fullName": "Grace Hopper", "email": "grace@example.com", "phone": "5551234567",
		"course": "Computer Science", "previousSchool": "Vassar",
	}))
	h.SubmitAdmission(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.submitted, 1)
	assert.Equal(t, "Vassar", svc.submitted[0].PreviousSchool)

	c, w = newGinContext(http.MethodGet, "/admin/admissions", nil)
	h.Admissions(c)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, float64(1), env.Meta["total"])
	assert.Contains(t, string(env.Data), "Grace Hopper")

	c, w = newGinContext(http.MethodGet, "/admin/hostels", nil)
	h.Hostels(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCapacity":200`)
}
