package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/osteria/tillbook/internal/domain"
)

// snapshot is the on-disk form of the sandbox state, so a demo can survive
// a restart. Outbox events are not carried over: anything unpublished at
// shutdown is dropped with the process, same as the rest of sandbox mode's
// durability story.
type snapshot struct {
	Accounts     []*domain.Account          `json:"accounts"`
	Transactions []*domain.Transaction      `json:"transactions"`
	Shifts       []*domain.Shift            `json:"shifts"`
	PartnerSales []*domain.PartnerSale      `json:"partner_sales"`
	Staff        []*domain.StaffMember      `json:"staff"`
	Customers    []*domain.Customer         `json:"customers"`
	Templates    []*domain.ExpenseTemplate  `json:"expense_templates"`
	Recurring    []*domain.RecurringExpense `json:"recurring_expenses"`
}

// SaveFile writes the committed state to path as JSON.
func (s *Store) SaveFile(path string) error {
	var snap snapshot

	s.read(func(st *state) {
		for _, id := range st.txnOrder {
			snap.Transactions = append(snap.Transactions, st.transactions[id])
		}
		for _, id := range st.shiftOrder {
			snap.Shifts = append(snap.Shifts, st.shifts[id])
		}
		for _, id := range st.saleOrder {
			snap.PartnerSales = append(snap.PartnerSales, st.partnerSales[id])
		}
		for _, id := range st.tmplOrder {
			snap.Templates = append(snap.Templates, st.templates[id])
		}
		for _, id := range st.recurOrder {
			snap.Recurring = append(snap.Recurring, st.recurring[id])
		}
		for _, a := range st.accounts {
			snap.Accounts = append(snap.Accounts, a)
		}
		for _, m := range st.staff {
			snap.Staff = append(snap.Staff, m)
		}
		for _, c := range st.customers {
			snap.Customers = append(snap.Customers, c)
		}
	})

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadFile replaces the committed state with the snapshot at path. A
// missing file is not an error: the store simply starts empty.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding snapshot %s: %w", path, err)
	}

	st := newState()
	for _, a := range snap.Accounts {
		st.accounts[a.ID] = a
	}
	for _, t := range snap.Transactions {
		st.transactions[t.ID] = t
		st.txnOrder = append(st.txnOrder, t.ID)
	}
	for _, sh := range snap.Shifts {
		st.shifts[sh.ID] = sh
		st.shiftOrder = append(st.shiftOrder, sh.ID)
	}
	for _, sale := range snap.PartnerSales {
		st.partnerSales[sale.ID] = sale
		st.saleOrder = append(st.saleOrder, sale.ID)
	}
	for _, m := range snap.Staff {
		st.staff[m.ID] = m
	}
	for _, c := range snap.Customers {
		st.customers[c.ID] = c
	}
	for _, tpl := range snap.Templates {
		st.templates[tpl.ID] = tpl
		st.tmplOrder = append(st.tmplOrder, tpl.ID)
	}
	for _, r := range snap.Recurring {
		st.recurring[r.ID] = r
		st.recurOrder = append(st.recurOrder, r.ID)
	}

	s.write(func(committed *state) {
		*committed = *st
	})

	return nil
}
