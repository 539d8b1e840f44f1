package models

import "math"

// InstallmentStatus tracks whether an installment has been settled.
type InstallmentStatus string

const (
	InstallmentPaid     InstallmentStatus = "Paid"
	InstallmentUpcoming InstallmentStatus = "Upcoming"
)

// FeeInstallment is one scheduled payment.
type FeeInstallment struct {
	ID          int64             `db:"id" json:"id"`
	Amount      int64             `db:"amount" json:"amount"`
	DueDate     string            `db:"due_date" json:"dueDate"`
	Status      InstallmentStatus `db:"status" json:"status"`
	PaymentDate *string           `db:"payment_date" json:"paymentDate,omitempty"`
}

// FeeSchedule is the fee account shown on the student portal.
type FeeSchedule struct {
	TotalFees    int64            `db:"total_fees" json:"totalFees"`
	PaidFees     int64            `db:"paid_fees" json:"paidFees"`
	Installments []FeeInstallment `db:"-" json:"installments"`
}

// Outstanding is always TotalFees - PaidFees.
func (f FeeSchedule) Outstanding() int64 {
	return f.TotalFees - f.PaidFees
}

// PercentagePaid rounds paid over total to the nearest whole percent.
func (f FeeSchedule) PercentagePaid() int {
	if f.TotalFees <= 0 {
		return 0
	}
	return int(math.Round(float64(f.PaidFees) / float64(f.TotalFees) * 100))
}
