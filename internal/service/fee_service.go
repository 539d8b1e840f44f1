package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/repository"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

type feeStore interface {
	GetFeeSchedule(ctx context.Context) (*models.FeeSchedule, error)
	PayInstallment(ctx context.Context, id int64, paidOn string) error
}

// FeeService reads and settles the fee account.
type FeeService struct {
	store  feeStore
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
}

// NewFeeService constructs the service.
func NewFeeService(store feeStore, cache *CacheService, logger *zap.Logger) *FeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{store: store, cache: cache, logger: logger, now: time.Now}
}

// Overview returns the schedule with derived totals.
func (s *FeeService) Overview(ctx context.Context) (*dto.FeeOverview, error) {
	schedule, err := s.store.GetFeeSchedule(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fees")
	}
	return &dto.FeeOverview{
		TotalFees:      schedule.TotalFees,
		PaidFees:       schedule.PaidFees,
		Outstanding:    schedule.Outstanding(),
		PercentagePaid: schedule.PercentagePaid(),
		Installments:   schedule.Installments,
	}, nil
}

// Pay settles installment id today and returns the refreshed overview.
func (s *FeeService) Pay(ctx context.Context, id int64) (*dto.FeeOverview, error) {
	paidOn := s.now().UTC().Format(models.DateLayout)
	if err := s.store.PayInstallment(ctx, id, paidOn); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "installment not found")
		case errors.Is(err, repository.ErrInstallmentPaid):
			return nil, appErrors.Clone(appErrors.ErrConflict, "installment already paid")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
		}
	}
	s.cache.Invalidate(ctx, cacheKeyDashboard)
	s.logger.Info("installment paid", zap.Int64("installment_id", id), zap.String("paid_on", paidOn))
	return s.Overview(ctx)
}
