package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Transfer errors
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Shift errors
	ErrShiftNotFound    = errors.New("shift not found")
	ErrShiftAlreadyOpen = errors.New("a shift is already open")
	ErrShiftNotOpen     = errors.New("no open shift")
	ErrCustomerRequired = errors.New("credit bills require a customer")

	// Settlement errors
	ErrNothingSelected     = errors.New("no transactions selected")
	ErrTransactionSettled  = errors.New("transaction already settled")
	ErrSelectionMismatch   = errors.New("selected transaction does not belong to this batch")
	ErrBillAlreadySettled  = errors.New("bill already settled")
	ErrAllocationMismatch  = errors.New("allocation does not sum to sale amount")
	ErrPartnerSaleNotFound = errors.New("partner sale not found")
	ErrPartnerSaleSettled  = errors.New("partner sale already reconciled")

	// Payroll errors
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrNegativeNetPayout = errors.New("net payout cannot be negative")

	// Other reference entities
	ErrCustomerNotFound = errors.New("customer not found")
	ErrTemplateNotFound = errors.New("expense template not found")
)
