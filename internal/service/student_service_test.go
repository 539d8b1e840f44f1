package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/repository"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

func TestStudentServiceCreate(t *testing.T) {
	store := repository.NewMemoryStore()
	cache := newRecordingCache()
	svc := NewStudentService(store, NewCacheService(cache, nil, 0, zap.NewNop(), true), nil, zap.NewNop())

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		ID:       "stu042",
		Name:     " Frank Green ",
		Email:    "frank.g@university.edu",
		Course:   "Physics",
		Year:     1,
		Section:  "A",
		Password: "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "stu006", student.ID)
	assert.Equal(t, "Frank Green", student.Name)
	assert.Equal(t, models.RoleStudent, student.Role)
	assert.Equal(t, []string{"dashboard*"}, cache.deleted)

	list, err := svc.List(context.Background(), models.StudentFilter{Search: "frank"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := NewStudentService(repository.NewMemoryStore(), nil, nil, nil)

	cases := map[string]CreateStudentRequest{
		"short name": {Name: "F", Email: "f@example.com", Course: "Physics", Year: 1, Section: "A"},
		"bad email":  {Name: "Frank", Email: "frank", Course: "Physics", Year: 1, Section: "A"},
		"year zero":  {Name: "Frank", Email: "f@example.com", Course: "Physics", Year: 0, Section: "A"},
		"year six":   {Name: "Frank", Email: "f@example.com", Course: "Physics", Year: 6, Section: "A"},
		"no section": {Name: "Frank", Email: "f@example.com", Course: "Physics", Year: 2},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestStudentServiceDatabaseSummary(t *testing.T) {
	svc := NewStudentService(repository.NewMemoryStore(), nil, nil, nil)

	summary, err := svc.DatabaseSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "The database contains 5 students. Fields include: id, name, email, course, year, section. Courses offered: Computer Science, Physics, Mathematics, Chemistry.", summary)
}
