package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus is the lifecycle state of a till session.
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

// Shift bounds one till-cash reconciliation session. The till balance is
// the source of truth at all times; the shift checkpoints it at open and
// audits it at close.
type Shift struct {
	ID           string
	Status       ShiftStatus
	OpenedAt     time.Time
	OpenedBy     string
	OpeningFloat decimal.Decimal

	ClosedAt *time.Time
	ClosedBy string

	// Close breakdown, zero until the shift is CLOSED.
	TotalSales            decimal.Decimal
	CardPayments          decimal.Decimal
	CreditBills           decimal.Decimal
	CreditBillCustomerID  string
	HikingBarSales        decimal.Decimal
	ForeignCurrencyAmount decimal.Decimal
	ForeignCurrencyNotes  string

	ExpectedCash decimal.Decimal
	ActualCash   decimal.Decimal
	Variance     decimal.Decimal

	Notes string
}

// LocalCashSales is the residual cash portion of gross sales after the
// card, credit, partner and foreign-currency components are carved out.
func (s *Shift) LocalCashSales() decimal.Decimal {
	return s.TotalSales.
		Sub(s.CardPayments).
		Sub(s.CreditBills).
		Sub(s.HikingBarSales).
		Sub(s.ForeignCurrencyAmount)
}
