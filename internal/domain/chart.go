package domain

import "github.com/shopspring/decimal"

// Well-known account ids. The chart is extensible, but workflow logic is
// written against these fixed keys.
const (
	AccountTillFloat     = "till_float"
	AccountBusinessBank  = "business_bank"
	AccountStaffCard     = "staff_card"
	AccountCardClearing  = "mozzarella_card_payment"
	AccountPartnerRec    = "hiking_bar_rec"
	AccountPartnerCard   = "hiking_bar_card_payment"
	AccountPendingBills  = "pending_bills"
	AccountCustomerRec   = "customer_receivables"
	AccountOperatingExp  = "operational_expenses"
	AccountPayrollExp    = "payroll_expenses"
	AccountStaffAdvances = "staff_advances_rec"
	AccountRevenue       = "service_fee_income"
	AccountFXReserve     = "foreign_currency_reserve"
	AccountEquityAdjust  = "equity_adjustments"
)

// DefaultChart returns the fixed initial chart of accounts with starting
// balances. Seeded once on first run; never reseeded over existing data.
func DefaultChart() []Account {
	return []Account{
		{ID: AccountTillFloat, Name: "Register Cash (Till)", Type: AccountTypeAsset, Balance: decimal.NewFromInt(150), Icon: "Wallet"},
		{ID: AccountBusinessBank, Name: "Business Bank", Type: AccountTypeAsset, Balance: decimal.NewFromInt(5000), Icon: "Building"},
		{ID: AccountStaffCard, Name: "Staff Card", Type: AccountTypeLiability, Icon: "CreditCard"},
		{ID: AccountCardClearing, Name: "Mozzarella Card Payments", Type: AccountTypeAsset, Icon: "CreditCard"},
		{ID: AccountPartnerRec, Name: "Hiking Bar Receivable", Type: AccountTypeReceivable, Icon: "Handshake"},
		{ID: AccountPartnerCard, Name: "Hiking Bar Card Payment", Type: AccountTypeAsset, Icon: "SmartphoneNfc"},
		{ID: AccountPendingBills, Name: "Pending Bills (To Pay)", Type: AccountTypeLiability, Icon: "FileText"},
		{ID: AccountCustomerRec, Name: "Bills to Received (Customers)", Type: AccountTypeReceivable, Icon: "Users"},
		{ID: AccountOperatingExp, Name: "Operational Expenses", Type: AccountTypeExpense, Icon: "TrendingDown"},
		{ID: AccountPayrollExp, Name: "Payroll & Salaries", Type: AccountTypeExpense, Icon: "Users"},
		{ID: AccountStaffAdvances, Name: "Staff Advances", Type: AccountTypeReceivable, Icon: "History"},
		{ID: AccountRevenue, Name: "Total Gross Sales (Revenue)", Type: AccountTypeRevenue, Icon: "Zap"},
		{ID: AccountFXReserve, Name: "Foreign Currency Reserve", Type: AccountTypeAsset, Icon: "SmartphoneNfc"},
		{ID: AccountEquityAdjust, Name: "Equity & Adjustments", Type: AccountTypeEquity, Icon: "Scale"},
	}
}
