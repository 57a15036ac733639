// Package memory is the sandbox persistence backend: the full store
// contract over process memory, so the whole system runs without Postgres
// for demos and training. State is lost on shutdown by definition.
package memory

import (
	"context"
	"sync"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

type state struct {
	accounts     map[string]*domain.Account
	transactions map[string]*domain.Transaction
	txnOrder     []string
	shifts       map[string]*domain.Shift
	shiftOrder   []string
	partnerSales map[string]*domain.PartnerSale
	saleOrder    []string
	staff        map[string]*domain.StaffMember
	customers    map[string]*domain.Customer
	templates    map[string]*domain.ExpenseTemplate
	tmplOrder    []string
	recurring    map[string]*domain.RecurringExpense
	recurOrder   []string
	outbox       []*domain.OutboxEvent
}

func newState() *state {
	return &state{
		accounts:     make(map[string]*domain.Account),
		transactions: make(map[string]*domain.Transaction),
		shifts:       make(map[string]*domain.Shift),
		partnerSales: make(map[string]*domain.PartnerSale),
		staff:        make(map[string]*domain.StaffMember),
		customers:    make(map[string]*domain.Customer),
		templates:    make(map[string]*domain.ExpenseTemplate),
		recurring:    make(map[string]*domain.RecurringExpense),
	}
}

func (s *state) clone() *state {
	c := newState()

	for id, a := range s.accounts {
		copied := *a
		c.accounts[id] = &copied
	}
	for id, t := range s.transactions {
		copied := *t
		c.transactions[id] = &copied
	}
	c.txnOrder = append([]string(nil), s.txnOrder...)

	for id, sh := range s.shifts {
		copied := *sh
		c.shifts[id] = &copied
	}
	c.shiftOrder = append([]string(nil), s.shiftOrder...)

	for id, sale := range s.partnerSales {
		copied := *sale
		if sale.Settlement != nil {
			alloc := *sale.Settlement
			copied.Settlement = &alloc
		}
		c.partnerSales[id] = &copied
	}
	c.saleOrder = append([]string(nil), s.saleOrder...)

	for id, m := range s.staff {
		copied := *m
		c.staff[id] = &copied
	}
	for id, cust := range s.customers {
		copied := *cust
		c.customers[id] = &copied
	}
	for id, t := range s.templates {
		copied := *t
		c.templates[id] = &copied
	}
	c.tmplOrder = append([]string(nil), s.tmplOrder...)

	for id, r := range s.recurring {
		copied := *r
		c.recurring[id] = &copied
	}
	c.recurOrder = append([]string(nil), s.recurOrder...)

	c.outbox = make([]*domain.OutboxEvent, len(s.outbox))
	for i, e := range s.outbox {
		copied := *e
		c.outbox[i] = &copied
	}

	return c
}

// Store holds the committed sandbox state. Transactions work on a deep
// copy and swap it in on commit, so a failed workflow leg leaves the
// committed state exactly as it was.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	committed *state
}

// NewStore creates an empty sandbox store.
func NewStore() *Store {
	return &Store{committed: newState()}
}

// Begin starts a sandbox transaction. Transactions are serialized: only
// one may be in flight, which stands in for the row locks the live
// backend takes.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	s.txMu.Lock()

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	return &Tx{store: s, work: work}, nil
}

// Tx is a sandbox transaction over a private copy of the state.
type Tx struct {
	store *Store
	work  *state
	done  bool
}

// Commit swaps the working copy in as the committed state.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	t.store.committed = t.work
	t.store.mu.Unlock()

	t.store.txMu.Unlock()
	return nil
}

// Rollback discards the working copy.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.txMu.Unlock()
	return nil
}

// read runs fn against the committed state under a read lock.
func (s *Store) read(fn func(*state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.committed)
}

// write applies fn to the committed state. It waits for any in-flight
// transaction first so direct writes never race a commit swap.
func (s *Store) write(fn func(*state)) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.committed)
}

// stateFor resolves the working state: the transaction's private copy
// when one is given, the committed state otherwise.
func stateFor(s *Store, tx usecase.Transaction) *state {
	if tx != nil {
		return tx.(*Tx).work
	}
	return s.committed
}
