package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-erp-api/internal/models"
)

// ErrInstallmentPaid is returned when paying an installment that is already settled.
var ErrInstallmentPaid = errors.New("installment already paid")

// FeeRepository reads and settles the fee account.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// GetFeeSchedule loads the account totals and installments ordered by id.
func (r *FeeRepository) GetFeeSchedule(ctx context.Context) (*models.FeeSchedule, error) {
	var schedule models.FeeSchedule
	if err := r.db.GetContext(ctx, &schedule, "SELECT total_fees, paid_fees FROM fee_accounts WHERE id = 1"); err != nil {
		return nil, fmt.Errorf("get fee account: %w", err)
	}

	const query = `SELECT id, amount, to_char(due_date, 'YYYY-MM-DD') AS due_date, status,
to_char(payment_date, 'YYYY-MM-DD') AS payment_date FROM fee_installments ORDER BY id ASC`
	schedule.Installments = make([]models.FeeInstallment, 0)
	if err := r.db.SelectContext(ctx, &schedule.Installments, query); err != nil {
		return nil, fmt.Errorf("list fee installments: %w", err)
	}
	return &schedule, nil
}

// PayInstallment settles one installment and raises the paid total in a
// single transaction.
func (r *FeeRepository) PayInstallment(ctx context.Context, id int64, paidOn string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin pay installment: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current struct {
		Amount int64                    `db:"amount"`
		Status models.InstallmentStatus `db:"status"`
	}
	if err = tx.GetContext(ctx, &current, "SELECT amount, status FROM fee_installments WHERE id = $1 FOR UPDATE", id); err != nil {
		return fmt.Errorf("load installment: %w", err)
	}
	if current.Status == models.InstallmentPaid {
		return ErrInstallmentPaid
	}

	if _, err = tx.ExecContext(ctx, "UPDATE fee_installments SET status = $1, payment_date = $2 WHERE id = $3", models.InstallmentPaid, paidOn, id); err != nil {
		return fmt.Errorf("mark installment paid: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "UPDATE fee_accounts SET paid_fees = paid_fees + $1 WHERE id = 1", current.Amount); err != nil {
		return fmt.Errorf("raise paid fees: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit pay installment: %w", err)
	}
	return nil
}
