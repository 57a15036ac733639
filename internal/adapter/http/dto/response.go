package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Icon      string          `json:"icon,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance,
		Icon:      a.Icon,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	CreatedBy     string          `json:"created_by,omitempty"`
	Settled       bool            `json:"settled"`
	Posted        bool            `json:"posted"`
	ShiftID       string          `json:"shift_id,omitempty"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	ContactID     string          `json:"contact_id,omitempty"`
	CustomerID    string          `json:"customer_id,omitempty"`
	StaffID       string          `json:"staff_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Date:          t.Date,
		Amount:        t.Amount,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Description:   t.Description,
		Category:      t.Category,
		CreatedBy:     t.CreatedBy,
		Settled:       t.Settled,
		Posted:        t.Posted,
		ShiftID:       t.ShiftID,
		DueDate:       t.DueDate,
		ContactID:     t.ContactID,
		CustomerID:    t.CustomerID,
		StaffID:       t.StaffID,
		Notes:         t.Notes,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ShiftResponse represents a till session in API responses.
type ShiftResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	OpenedAt     time.Time       `json:"opened_at"`
	OpenedBy     string          `json:"opened_by,omitempty"`
	OpeningFloat decimal.Decimal `json:"opening_float"`

	ClosedAt *time.Time `json:"closed_at,omitempty"`
	ClosedBy string     `json:"closed_by,omitempty"`

	TotalSales            decimal.Decimal `json:"total_sales"`
	CardPayments          decimal.Decimal `json:"card_payments"`
	CreditBills           decimal.Decimal `json:"credit_bills"`
	CreditBillCustomerID  string          `json:"credit_bill_customer_id,omitempty"`
	HikingBarSales        decimal.Decimal `json:"hiking_bar_sales"`
	ForeignCurrencyAmount decimal.Decimal `json:"foreign_currency_amount"`
	ForeignCurrencyNotes  string          `json:"foreign_currency_notes,omitempty"`

	ExpectedCash decimal.Decimal `json:"expected_cash"`
	ActualCash   decimal.Decimal `json:"actual_cash"`
	Variance     decimal.Decimal `json:"variance"`

	Notes string `json:"notes,omitempty"`
}

// ShiftFromDomain converts a domain shift to a response.
func ShiftFromDomain(s *domain.Shift) *ShiftResponse {
	return &ShiftResponse{
		ID:                    s.ID,
		Status:                string(s.Status),
		OpenedAt:              s.OpenedAt,
		OpenedBy:              s.OpenedBy,
		OpeningFloat:          s.OpeningFloat,
		ClosedAt:              s.ClosedAt,
		ClosedBy:              s.ClosedBy,
		TotalSales:            s.TotalSales,
		CardPayments:          s.CardPayments,
		CreditBills:           s.CreditBills,
		CreditBillCustomerID:  s.CreditBillCustomerID,
		HikingBarSales:        s.HikingBarSales,
		ForeignCurrencyAmount: s.ForeignCurrencyAmount,
		ForeignCurrencyNotes:  s.ForeignCurrencyNotes,
		ExpectedCash:          s.ExpectedCash,
		ActualCash:            s.ActualCash,
		Variance:              s.Variance,
		Notes:                 s.Notes,
	}
}

// BatchSettlementResponse summarizes a card batch reconciliation.
type BatchSettlementResponse struct {
	Gross      decimal.Decimal `json:"gross"`
	Net        decimal.Decimal `json:"net"`
	Fees       decimal.Decimal `json:"fees"`
	FeePercent decimal.Decimal `json:"fee_percent"`
}

// BatchSettlementFromUseCase converts a settlement summary to a response.
func BatchSettlementFromUseCase(s *usecase.BatchSettlement) *BatchSettlementResponse {
	return &BatchSettlementResponse{
		Gross:      s.Gross,
		Net:        s.Net,
		Fees:       s.Fees,
		FeePercent: s.FeePercent,
	}
}

// CustomerResponse represents a client in API responses.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerFromDomain converts a domain customer to a response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// CustomerDebtResponse groups a client's open bills.
type CustomerDebtResponse struct {
	Customer     *CustomerResponse      `json:"customer"`
	Total        decimal.Decimal        `json:"total"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// CustomerDebtsFromUseCase converts debt groupings to responses.
func CustomerDebtsFromUseCase(debts []*usecase.CustomerDebt) []*CustomerDebtResponse {
	result := make([]*CustomerDebtResponse, len(debts))
	for i, d := range debts {
		result[i] = &CustomerDebtResponse{
			Customer:     CustomerFromDomain(d.Customer),
			Total:        d.Total,
			Transactions: TransactionsFromDomain(d.Transactions),
		}
	}
	return result
}

// PartnerAllocationResponse is the settlement split of a partner sale.
type PartnerAllocationResponse struct {
	Cash          decimal.Decimal `json:"cash"`
	Card          decimal.Decimal `json:"card"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	Contra        decimal.Decimal `json:"contra"`
}

// PartnerSaleResponse represents a partner ledger entry in API responses.
type PartnerSaleResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`

	ReconciledAt *time.Time                 `json:"reconciled_at,omitempty"`
	ReconciledBy string                     `json:"reconciled_by,omitempty"`
	Settlement   *PartnerAllocationResponse `json:"settlement,omitempty"`
}

// PartnerSaleFromDomain converts a domain partner sale to a response.
func PartnerSaleFromDomain(s *domain.PartnerSale) *PartnerSaleResponse {
	resp := &PartnerSaleResponse{
		ID:           s.ID,
		Date:         s.Date,
		Amount:       s.Amount,
		Description:  s.Description,
		Status:       string(s.Status),
		ReconciledAt: s.ReconciledAt,
		ReconciledBy: s.ReconciledBy,
	}
	if s.Settlement != nil {
		resp.Settlement = &PartnerAllocationResponse{
			Cash:          s.Settlement.Cash,
			Card:          s.Settlement.Card,
			ServiceCharge: s.Settlement.ServiceCharge,
			Contra:        s.Settlement.Contra,
		}
	}
	return resp
}

// PartnerSalesFromDomain converts domain partner sales to responses.
func PartnerSalesFromDomain(sales []*domain.PartnerSale) []*PartnerSaleResponse {
	result := make([]*PartnerSaleResponse, len(sales))
	for i, s := range sales {
		result[i] = PartnerSaleFromDomain(s)
	}
	return result
}

// StaffResponse represents a staff member in API responses.
type StaffResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Role            string          `json:"role,omitempty"`
	Salary          decimal.Decimal `json:"salary"`
	LoanBalance     decimal.Decimal `json:"loan_balance"`
	LoanInstallment decimal.Decimal `json:"loan_installment"`
	Active          bool            `json:"active"`
	JoinedAt        time.Time       `json:"joined_at"`
}

// StaffFromDomain converts a domain staff member to a response.
func StaffFromDomain(s *domain.StaffMember) *StaffResponse {
	return &StaffResponse{
		ID:              s.ID,
		Name:            s.Name,
		Role:            s.Role,
		Salary:          s.Salary,
		LoanBalance:     s.LoanBalance,
		LoanInstallment: s.LoanInstallment,
		Active:          s.Active,
		JoinedAt:        s.JoinedAt,
	}
}

// StaffListFromDomain converts domain staff members to responses.
func StaffListFromDomain(staff []*domain.StaffMember) []*StaffResponse {
	result := make([]*StaffResponse, len(staff))
	for i, s := range staff {
		result[i] = StaffFromDomain(s)
	}
	return result
}

// PayoutPreviewResponse represents a payroll calculation in API responses.
type PayoutPreviewResponse struct {
	Staff         *StaffResponse  `json:"staff"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	Advances      decimal.Decimal `json:"advances"`
	LoanRepayment decimal.Decimal `json:"loan_repayment"`
	NetPay        decimal.Decimal `json:"net_pay"`
}

// PayoutPreviewFromUseCase converts a payout preview to a response.
func PayoutPreviewFromUseCase(p *usecase.PayoutPreview) *PayoutPreviewResponse {
	return &PayoutPreviewResponse{
		Staff:         StaffFromDomain(p.Staff),
		BaseAmount:    p.BaseAmount,
		Advances:      p.Advances,
		LoanRepayment: p.LoanRepayment,
		NetPay:        p.NetPay,
	}
}

// ExpenseTemplateResponse represents a saved expense template.
type ExpenseTemplateResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	FromAccountID string          `json:"from_account_id"`
	Description   string          `json:"description"`
}

// ExpenseTemplatesFromDomain converts domain templates to responses.
func ExpenseTemplatesFromDomain(templates []*domain.ExpenseTemplate) []*ExpenseTemplateResponse {
	result := make([]*ExpenseTemplateResponse, len(templates))
	for i, tpl := range templates {
		result[i] = &ExpenseTemplateResponse{
			ID:            tpl.ID,
			Name:          tpl.Name,
			Amount:        tpl.Amount,
			Category:      tpl.Category,
			FromAccountID: tpl.FromAccountID,
			Description:   tpl.Description,
		}
	}
	return result
}

// ExpectedCashResponse is the pre-close drawer count preview.
type ExpectedCashResponse struct {
	ExpectedCash decimal.Decimal `json:"expected_cash"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
