package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account's role in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset      AccountType = "ASSET"
	AccountTypeLiability  AccountType = "LIABILITY"
	AccountTypeReceivable AccountType = "RECEIVABLE"
	AccountTypeRevenue    AccountType = "REVENUE"
	AccountTypeExpense    AccountType = "EXPENSE"
	AccountTypeEquity     AccountType = "EQUITY"
)

// CreditNormal reports whether a transfer out of an account of this type
// grows its balance. Only LIABILITY and EQUITY invert the flow direction:
// their balances track what is owed to others, so money leaving them means
// the obligation grew. REVENUE is deliberately debit-normal here. It only
// ever acts as a pass-through transfer source, never an accumulated credit.
func (t AccountType) CreditNormal() bool {
	return t == AccountTypeLiability || t == AccountTypeEquity
}

// Valid reports whether t is one of the six known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeReceivable,
		AccountTypeRevenue, AccountTypeExpense, AccountTypeEquity:
		return true
	}
	return false
}

// Account is a named bucket in the ledger with a running balance.
// Balances change only through transfers; the type decides the sign.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransferDeltas returns the signed balance deltas applied to the source and
// destination accounts when amount moves from one to the other.
func TransferDeltas(from, to AccountType, amount decimal.Decimal) (fromDelta, toDelta decimal.Decimal) {
	fromDelta = amount.Neg()
	if from.CreditNormal() {
		fromDelta = amount
	}

	toDelta = amount
	if to.CreditNormal() {
		toDelta = amount.Neg()
	}

	return fromDelta, toDelta
}
