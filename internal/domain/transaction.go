package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one immutable movement of money between two accounts.
// Corrections are made with offsetting transactions, never edits. The only
// mutation ever applied after insert is flipping Settled to true, which
// closes an IOU leg without touching any balance.
type Transaction struct {
	ID            string
	Date          time.Time
	Amount        decimal.Decimal
	FromAccountID string
	ToAccountID   string
	Description   string
	Category      string
	CreatedBy     string

	// Settled is false while the movement represents an open IOU leg
	// (a receivable or payable waiting for its real-money counterpart).
	Settled bool

	// Posted gates whether the record counts toward payroll running
	// totals. Kept separate from Settled on purpose: the two track
	// unrelated lifecycles.
	Posted bool

	// ShiftID links till movements to the shift they happened in.
	ShiftID string

	DueDate    *time.Time
	ContactID  string
	CustomerID string
	StaffID    string
	Notes      string
}

// Well-known transaction categories. Free-form tags are allowed; these are
// the ones workflow logic filters on.
const (
	CategoryRevenue         = "Revenue"
	CategoryOperations      = "Operations"
	CategoryTransfer        = "Transfer"
	CategoryCapital         = "Capital"
	CategoryVariance        = "Variance"
	CategorySettlement      = "Settlement"
	CategoryBankCharges     = "Bank Charges"
	CategoryCustomerCredit  = "Customer Credit"
	CategoryClientSettle    = "Client Settlement"
	CategoryPartnerRevenue  = "Partner Revenue"
	CategoryPartnerSettle   = "Partner Settlement"
	CategoryPartnerFee      = "Partner Fee"
	CategoryContraSettle    = "Contra Settlement"
	CategoryForeignExchange = "Foreign Exchange"
	CategoryDebtSettlement  = "Debt Settlement"
	CategoryStaffAdvance    = "Staff Advance"
	CategoryStaffPayroll    = "Staff Payroll"
	CategoryPayrollInternal = "Staff Payroll Internal"
	CategoryLoanRepayment   = "Staff Loan Repayment"
	CategoryAdjustment      = "Adjustment"
	CategoryInternal        = "Internal Transfer"
)

// TillDebitCategories are the categories that count as cash leaving the
// drawer when computing expected cash at shift close.
var TillDebitCategories = []string{CategoryOperations, CategoryTransfer, CategoryCapital}

// Validate checks the structural invariants of a transaction.
func (t *Transaction) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
