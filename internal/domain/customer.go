package domain

import "time"

// Customer is a debtor that credit-bill transactions are tagged with so
// open receivables can be grouped and collected per customer.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}
