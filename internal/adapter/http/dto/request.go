package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// TransferRequest represents a request to record a ledger transfer.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	ContactID     string          `json:"contact_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Description:   r.Description,
		Category:      r.Category,
		Meta: usecase.Metadata{
			ContactID: r.ContactID,
			Notes:     r.Notes,
			DueDate:   r.DueDate,
		},
	}
}

// AdjustBalanceRequest represents a manual balance correction.
type AdjustBalanceRequest struct {
	NewBalance decimal.Decimal `json:"new_balance"`
	Reason     string          `json:"reason"`
}

// TillMoveRequest represents a float top-up or bank drop.
type TillMoveRequest struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// QuickExpenseRequest represents a cash expense paid from the till drawer.
type QuickExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// CloseShiftRequest represents the end-of-shift sales breakdown.
type CloseShiftRequest struct {
	TotalSales            decimal.Decimal `json:"total_sales"`
	CardPayments          decimal.Decimal `json:"card_payments"`
	CreditBills           decimal.Decimal `json:"credit_bills"`
	CreditBillCustomerID  string          `json:"credit_bill_customer_id,omitempty"`
	HikingBarSales        decimal.Decimal `json:"hiking_bar_sales"`
	ForeignCurrencyAmount decimal.Decimal `json:"foreign_currency_amount"`
	ForeignCurrencyNotes  string          `json:"foreign_currency_notes,omitempty"`
	ActualCash            decimal.Decimal `json:"actual_cash"`
	Notes                 string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CloseShiftRequest) ToUseCaseInput() usecase.CloseShiftInput {
	return usecase.CloseShiftInput{
		TotalSales:            r.TotalSales,
		CardPayments:          r.CardPayments,
		CreditBills:           r.CreditBills,
		CreditBillCustomerID:  r.CreditBillCustomerID,
		HikingBarSales:        r.HikingBarSales,
		ForeignCurrencyAmount: r.ForeignCurrencyAmount,
		ForeignCurrencyNotes:  r.ForeignCurrencyNotes,
		ActualCash:            r.ActualCash,
		Notes:                 r.Notes,
	}
}

// SettleCardBatchRequest represents a card batch reconciliation.
type SettleCardBatchRequest struct {
	TransactionIDs []string        `json:"transaction_ids"`
	NetReceived    decimal.Decimal `json:"net_received"`
	BankAccountID  string          `json:"bank_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SettleCardBatchRequest) ToUseCaseInput() usecase.SettleBatchInput {
	return usecase.SettleBatchInput{
		TransactionIDs: r.TransactionIDs,
		NetReceived:    r.NetReceived,
		BankAccountID:  r.BankAccountID,
	}
}

// CollectDebtRequest represents a client debt collection.
type CollectDebtRequest struct {
	CustomerID     string   `json:"customer_id"`
	TransactionIDs []string `json:"transaction_ids"`
	ToTill         bool     `json:"to_till"`
}

// ToUseCaseInput converts to use case input.
func (r *CollectDebtRequest) ToUseCaseInput() usecase.CollectInput {
	return usecase.CollectInput{
		CustomerID:     r.CustomerID,
		TransactionIDs: r.TransactionIDs,
		ToTill:         r.ToTill,
	}
}

// CreateCustomerRequest represents a new client record.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// RecordPartnerSaleRequest represents a partner consumption entry.
type RecordPartnerSaleRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// SettlePartnerSaleRequest represents a partner settlement allocation.
type SettlePartnerSaleRequest struct {
	Cash          decimal.Decimal `json:"cash"`
	Card          decimal.Decimal `json:"card"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	Contra        decimal.Decimal `json:"contra"`
}

// ToAllocation converts to a domain allocation.
func (r *SettlePartnerSaleRequest) ToAllocation() domain.PartnerAllocation {
	return domain.PartnerAllocation{
		Cash:          r.Cash,
		Card:          r.Card,
		ServiceCharge: r.ServiceCharge,
		Contra:        r.Contra,
	}
}

// CreateStaffRequest represents a new staff record.
type CreateStaffRequest struct {
	Name            string          `json:"name"`
	Role            string          `json:"role,omitempty"`
	Salary          decimal.Decimal `json:"salary"`
	LoanBalance     decimal.Decimal `json:"loan_balance"`
	LoanInstallment decimal.Decimal `json:"loan_installment"`
}

// ToDomain converts to a domain staff member.
func (r *CreateStaffRequest) ToDomain() *domain.StaffMember {
	return &domain.StaffMember{
		Name:            r.Name,
		Role:            r.Role,
		Salary:          r.Salary,
		LoanBalance:     r.LoanBalance,
		LoanInstallment: r.LoanInstallment,
		Active:          true,
	}
}

// IssueAdvanceRequest represents a mid-month staff advance.
type IssueAdvanceRequest struct {
	StaffID         string          `json:"staff_id"`
	SourceAccountID string          `json:"source_account_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
}

// DisbursePayoutRequest represents a payroll disbursement.
type DisbursePayoutRequest struct {
	StaffID         string           `json:"staff_id"`
	Type            string           `json:"type"`
	BaseAmount      decimal.Decimal  `json:"base_amount"`
	LoanRepayment   *decimal.Decimal `json:"loan_repayment,omitempty"`
	SourceAccountID string           `json:"source_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DisbursePayoutRequest) ToUseCaseInput() usecase.DisburseInput {
	return usecase.DisburseInput{
		StaffID:       r.StaffID,
		Type:          domain.PayoutType(r.Type),
		BaseAmount:    r.BaseAmount,
		LoanRepayment: r.LoanRepayment,
		SourceID:      r.SourceAccountID,
	}
}

// LogExpenseRequest represents a manual expense entry.
type LogExpenseRequest struct {
	FromAccountID string          `json:"from_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category,omitempty"`
	ContactID     string          `json:"contact_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`

	SaveAsTemplate bool   `json:"save_as_template,omitempty"`
	TemplateName   string `json:"template_name,omitempty"`

	Recurring bool   `json:"recurring,omitempty"`
	Frequency string `json:"frequency,omitempty"`

	Unpaid  bool       `json:"unpaid,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *LogExpenseRequest) ToUseCaseInput() usecase.LogExpenseInput {
	return usecase.LogExpenseInput{
		FromAccountID:  r.FromAccountID,
		Amount:         r.Amount,
		Description:    r.Description,
		Category:       r.Category,
		ContactID:      r.ContactID,
		Notes:          r.Notes,
		SaveAsTemplate: r.SaveAsTemplate,
		TemplateName:   r.TemplateName,
		Recurring:      r.Recurring,
		Frequency:      domain.RecurringFrequency(r.Frequency),
		Unpaid:         r.Unpaid,
		DueDate:        r.DueDate,
	}
}

// SettleBillRequest names the account that pays off a pending bill.
type SettleBillRequest struct {
	SourceAccountID string `json:"source_account_id"`
}
