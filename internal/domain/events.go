package domain

import "time"

// Event types
const (
	EventTypeTransferCreated  = "transfer.created"
	EventTypeShiftOpened      = "shift.opened"
	EventTypeShiftClosed      = "shift.closed"
	EventTypeCardBatchSettled = "cardbatch.settled"
	EventTypeDebtCollected    = "debt.collected"
	EventTypePartnerSettled   = "partner.settled"
	EventTypePayrollPaid      = "payroll.paid"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeShift       = "shift"
	AggregateTypePartnerSale = "partner_sale"
	AggregateTypeStaff       = "staff"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransferCreatedEvent payload
type TransferCreatedEvent struct {
	TransactionID string `json:"transaction_id"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
}

// ShiftClosedEvent payload
type ShiftClosedEvent struct {
	ShiftID      string `json:"shift_id"`
	ExpectedCash string `json:"expected_cash"`
	ActualCash   string `json:"actual_cash"`
	Variance     string `json:"variance"`
}

// PartnerSettledEvent payload
type PartnerSettledEvent struct {
	SaleID string `json:"sale_id"`
	Amount string `json:"amount"`
}

// PayrollPaidEvent payload
type PayrollPaidEvent struct {
	StaffID string `json:"staff_id"`
	NetPay  string `json:"net_pay"`
}
