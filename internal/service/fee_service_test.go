package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/repository"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

func TestFeeServiceOverview(t *testing.T) {
	svc := NewFeeService(repository.NewMemoryStore(), nil, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5000), overview.TotalFees)
	assert.Equal(t, int64(2500), overview.Outstanding)
	assert.Equal(t, 50, overview.PercentagePaid)
	assert.Equal(t, overview.TotalFees, overview.PaidFees+overview.Outstanding)
}

func TestFeeServicePay(t *testing.T) {
	cache := newRecordingCache()
	svc := NewFeeService(repository.NewMemoryStore(), NewCacheService(cache, nil, 0, zap.NewNop(), true), nil)
	svc.now = func() time.Time { return time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC) }

	overview, err := svc.Pay(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), overview.PaidFees)
	assert.Equal(t, int64(0), overview.Outstanding)
	assert.Equal(t, 100, overview.PercentagePaid)
	assert.Equal(t, models.InstallmentPaid, overview.Installments[1].Status)
	assert.Equal(t, "2024-12-01", *overview.Installments[1].PaymentDate)
	assert.Equal(t, []string{"dashboard*"}, cache.deleted)

	_, err = svc.Pay(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)

	_, err = svc.Pay(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
