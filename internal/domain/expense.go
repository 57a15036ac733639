package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseTemplate is a saved expense form: one click re-fills a recurring
// manual expense without retyping it.
type ExpenseTemplate struct {
	ID            string
	Name          string
	Amount        decimal.Decimal
	Category      string
	FromAccountID string
	Description   string
}

// RecurringFrequency is how often a recurring expense fires.
type RecurringFrequency string

const (
	FrequencyDaily   RecurringFrequency = "DAILY"
	FrequencyWeekly  RecurringFrequency = "WEEKLY"
	FrequencyMonthly RecurringFrequency = "MONTHLY"
)

// Interval returns the minimum gap between two generations.
func (f RecurringFrequency) Interval() time.Duration {
	switch f {
	case FrequencyDaily:
		return 24 * time.Hour
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// RecurringExpense is an expense generated automatically on a schedule.
type RecurringExpense struct {
	ID            string
	Name          string
	Amount        decimal.Decimal
	Frequency     RecurringFrequency
	FromAccountID string
	Category      string
	Description   string
	LastGenerated time.Time
	Active        bool
}

// Due reports whether the expense should fire again at now.
func (r *RecurringExpense) Due(now time.Time) bool {
	return r.Active && now.Sub(r.LastGenerated) >= r.Frequency.Interval()
}
