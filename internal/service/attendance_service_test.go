package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/repository"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

func TestAttendanceServiceSummarySeed(t *testing.T) {
	svc := NewAttendanceService(repository.NewMemoryStore(), nil, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Len(t, summary.Present, 10)
	assert.Len(t, summary.Absent, 2)
	assert.Len(t, summary.Holiday, 2)
	assert.Equal(t, 83, summary.Percentage)
}

func TestAttendanceServiceSaveOverwritesDate(t *testing.T) {
	svc := NewAttendanceService(repository.NewMemoryStore(), nil, nil)
	ctx := context.Background()

	_, err := svc.Save(ctx, SaveAttendanceRequest{Date: "2024-07-03", StudentID: "stu001", Status: models.AttendancePresent})
	require.NoError(t, err)
	_, err = svc.Save(ctx, SaveAttendanceRequest{Date: "2024-07-11", StudentID: "stu002", Status: models.AttendancePresent})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Empty(t, summary.Absent)
	assert.Equal(t, 100, summary.Percentage)
}

func TestAttendanceServiceSaveValidation(t *testing.T) {
	svc := NewAttendanceService(repository.NewMemoryStore(), nil, nil)

	cases := map[string]SaveAttendanceRequest{
		"bad date":   {Date: "07/03/2024", Status: models.AttendancePresent},
		"no date":    {Status: models.AttendancePresent},
		"holiday":    {Date: "2024-07-20", Status: models.AttendanceHoliday},
		"bad status": {Date: "2024-07-20", Status: "late"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestAttendancePercentage(t *testing.T) {
	assert.Equal(t, 0, attendancePercentage(0, 0))
	assert.Equal(t, 67, attendancePercentage(2, 1))
	assert.Equal(t, 100, attendancePercentage(4, 0))
}
