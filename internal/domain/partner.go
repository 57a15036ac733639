package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartnerSaleStatus is the lifecycle state of an external partner receivable.
type PartnerSaleStatus string

const (
	PartnerSalePending    PartnerSaleStatus = "PENDING"
	PartnerSaleReconciled PartnerSaleStatus = "RECONCILED"
)

// PartnerAllocation splits a gross partner sale into its settlement legs.
// The four parts must sum exactly to the sale amount (see SumMatches).
type PartnerAllocation struct {
	Cash          decimal.Decimal
	Card          decimal.Decimal
	ServiceCharge decimal.Decimal
	Contra        decimal.Decimal
}

// AllocationTolerance is the maximum accepted rounding gap between a sale
// amount and the sum of its allocation parts.
var AllocationTolerance = decimal.NewFromFloat(0.01)

// Total returns the sum of all allocation parts.
func (a PartnerAllocation) Total() decimal.Decimal {
	return a.Cash.Add(a.Card).Add(a.ServiceCharge).Add(a.Contra)
}

// SumMatches reports whether the allocation covers amount within tolerance.
func (a PartnerAllocation) SumMatches(amount decimal.Decimal) bool {
	return a.Total().Sub(amount).Abs().LessThanOrEqual(AllocationTolerance)
}

// PartnerSale is one entry in the external partner ledger. It is a distinct
// collection from Transactions: the receivable transfer is generated
// alongside it, and settlement later decomposes the gross amount.
type PartnerSale struct {
	ID          string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Status      PartnerSaleStatus

	ReconciledAt *time.Time
	ReconciledBy string
	Settlement   *PartnerAllocation
}
