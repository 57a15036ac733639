package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutType selects how a payroll base amount is determined.
type PayoutType string

const (
	PayoutSalary        PayoutType = "SALARY"
	PayoutServiceCharge PayoutType = "SERVICE_CHARGE"
)

// StaffMember is a payroll subject. LoanBalance is the one field in the
// system mutated directly outside the transfer engine, and only as part of
// a loan-repayment disbursement leg.
type StaffMember struct {
	ID              string
	Name            string
	Role            string
	Salary          decimal.Decimal
	LoanBalance     decimal.Decimal
	LoanInstallment decimal.Decimal
	Active          bool
	JoinedAt        time.Time
}

// SuggestedLoanRepayment is the default repayment taken out of a salary
// run: one installment, capped at the remaining balance.
func (s *StaffMember) SuggestedLoanRepayment() decimal.Decimal {
	if s.LoanInstallment.GreaterThan(s.LoanBalance) {
		return s.LoanBalance
	}
	return s.LoanInstallment
}
