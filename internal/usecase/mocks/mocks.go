package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	ApplyBalanceDeltaFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	return m.Create(ctx, account)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *MockAccountRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts), nil
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.ApplyBalanceDeltaFunc != nil {
		return m.ApplyBalanceDeltaFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.UpdatedAt = updatedAt
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	order        []string

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
	MarkSettledFunc func(ctx context.Context, tx usecase.Transaction, ids []string) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *t
	m.transactions[t.ID] = &copied
	m.order = append(m.order, t.ID)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Query(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, id := range m.order {
		t := m.transactions[id]
		if matches(t, filter) {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) SumAmount(ctx context.Context, filter usecase.TransactionFilter) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, id := range m.order {
		t := m.transactions[id]
		if matches(t, filter) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (m *MockTransactionRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, ids []string) error {
	if m.MarkSettledFunc != nil {
		return m.MarkSettledFunc(ctx, tx, ids)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		t, ok := m.transactions[id]
		if !ok {
			return domain.ErrTransactionNotFound
		}
		t.Settled = true
	}
	return nil
}

func matches(t *domain.Transaction, filter usecase.TransactionFilter) bool {
	if filter.AccountID != "" && t.FromAccountID != filter.AccountID && t.ToAccountID != filter.AccountID {
		return false
	}
	if filter.FromAccountID != "" && t.FromAccountID != filter.FromAccountID {
		return false
	}
	if filter.ToAccountID != "" && t.ToAccountID != filter.ToAccountID {
		return false
	}
	if len(filter.Categories) > 0 {
		found := false
		for _, c := range filter.Categories {
			if t.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.ShiftID != "" && t.ShiftID != filter.ShiftID {
		return false
	}
	if filter.CustomerID != "" && t.CustomerID != filter.CustomerID {
		return false
	}
	if filter.StaffID != "" && t.StaffID != filter.StaffID {
		return false
	}
	if filter.ContactID != "" && t.ContactID != filter.ContactID {
		return false
	}
	if filter.Settled != nil && t.Settled != *filter.Settled {
		return false
	}
	if filter.Posted != nil && t.Posted != *filter.Posted {
		return false
	}
	if filter.DateFrom != nil && t.Date.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && t.Date.After(*filter.DateTo) {
		return false
	}
	return true
}

// MockShiftRepository is a mock implementation of ShiftRepository.
type MockShiftRepository struct {
	mu     sync.RWMutex
	shifts map[string]*domain.Shift
	order  []string

	CreateFunc func(ctx context.Context, shift *domain.Shift) error
	UpdateFunc func(ctx context.Context, tx usecase.Transaction, shift *domain.Shift) error
}

func NewMockShiftRepository() *MockShiftRepository {
	return &MockShiftRepository{
		shifts: make(map[string]*domain.Shift),
	}
}

func (m *MockShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, shift)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *shift
	m.shifts[shift.ID] = &copied
	m.order = append(m.order, shift.ID)
	return nil
}

func (m *MockShiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.shifts[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrShiftNotFound
}

func (m *MockShiftRepository) Latest(ctx context.Context) (*domain.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.order) == 0 {
		return nil, domain.ErrShiftNotFound
	}
	copied := *m.shifts[m.order[len(m.order)-1]]
	return &copied, nil
}

func (m *MockShiftRepository) Open(ctx context.Context) (*domain.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.shifts[m.order[i]]
		if s.Status == domain.ShiftOpen {
			copied := *s
			return &copied, nil
		}
	}
	return nil, domain.ErrShiftNotOpen
}

func (m *MockShiftRepository) Update(ctx context.Context, tx usecase.Transaction, shift *domain.Shift) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, shift)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[shift.ID]; !ok {
		return domain.ErrShiftNotFound
	}
	copied := *shift
	m.shifts[shift.ID] = &copied
	return nil
}

func (m *MockShiftRepository) List(ctx context.Context, limit, offset int) ([]*domain.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var shifts []*domain.Shift
	for i := len(m.order) - 1; i >= 0; i-- {
		copied := *m.shifts[m.order[i]]
		shifts = append(shifts, &copied)
	}
	return shifts, nil
}

// MockPartnerSaleRepository is a mock implementation of PartnerSaleRepository.
type MockPartnerSaleRepository struct {
	mu    sync.RWMutex
	sales map[string]*domain.PartnerSale
	order []string

	CreateFunc func(ctx context.Context, tx usecase.Transaction, sale *domain.PartnerSale) error
}

func NewMockPartnerSaleRepository() *MockPartnerSaleRepository {
	return &MockPartnerSaleRepository{
		sales: make(map[string]*domain.PartnerSale),
	}
}

func (m *MockPartnerSaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.PartnerSale) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *sale
	m.sales[sale.ID] = &copied
	m.order = append(m.order, sale.ID)
	return nil
}

func (m *MockPartnerSaleRepository) GetByID(ctx context.Context, id string) (*domain.PartnerSale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sales[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrPartnerSaleNotFound
}

func (m *MockPartnerSaleRepository) ListPending(ctx context.Context) ([]*domain.PartnerSale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var pending []*domain.PartnerSale
	for _, id := range m.order {
		if s := m.sales[id]; s.Status == domain.PartnerSalePending {
			copied := *s
			pending = append(pending, &copied)
		}
	}
	return pending, nil
}

func (m *MockPartnerSaleRepository) MarkReconciled(ctx context.Context, tx usecase.Transaction, id, reconciledBy string, at time.Time, alloc domain.PartnerAllocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sales[id]
	if !ok {
		return domain.ErrPartnerSaleNotFound
	}
	s.Status = domain.PartnerSaleReconciled
	s.ReconciledAt = &at
	s.ReconciledBy = reconciledBy
	s.Settlement = &alloc
	return nil
}

// MockStaffRepository is a mock implementation of StaffRepository.
type MockStaffRepository struct {
	mu    sync.RWMutex
	staff map[string]*domain.StaffMember

	UpdateLoanBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error
}

func NewMockStaffRepository() *MockStaffRepository {
	return &MockStaffRepository{
		staff: make(map[string]*domain.StaffMember),
	}
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *staff
	m.staff[staff.ID] = &copied
	return nil
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.staff[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrStaffNotFound
}

func (m *MockStaffRepository) List(ctx context.Context) ([]*domain.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	staff := make([]*domain.StaffMember, 0, len(m.staff))
	for _, s := range m.staff {
		copied := *s
		staff = append(staff, &copied)
	}
	sort.Slice(staff, func(i, j int) bool { return staff[i].ID < staff[j].ID })
	return staff, nil
}

func (m *MockStaffRepository) UpdateLoanBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	if m.UpdateLoanBalanceFunc != nil {
		return m.UpdateLoanBalanceFunc(ctx, tx, id, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return domain.ErrStaffNotFound
	}
	s.LoanBalance = balance
	return nil
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *customer
	m.customers[customer.ID] = &copied
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	customers := make([]*domain.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		copied := *c
		customers = append(customers, &copied)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

// MockExpenseTemplateRepository is a mock implementation of ExpenseTemplateRepository.
type MockExpenseTemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]*domain.ExpenseTemplate
	order     []string
}

func NewMockExpenseTemplateRepository() *MockExpenseTemplateRepository {
	return &MockExpenseTemplateRepository{
		templates: make(map[string]*domain.ExpenseTemplate),
	}
}

func (m *MockExpenseTemplateRepository) Create(ctx context.Context, template *domain.ExpenseTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *template
	m.templates[template.ID] = &copied
	m.order = append(m.order, template.ID)
	return nil
}

func (m *MockExpenseTemplateRepository) List(ctx context.Context) ([]*domain.ExpenseTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var templates []*domain.ExpenseTemplate
	for _, id := range m.order {
		if t, ok := m.templates[id]; ok {
			copied := *t
			templates = append(templates, &copied)
		}
	}
	return templates, nil
}

func (m *MockExpenseTemplateRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(m.templates, id)
	return nil
}

// MockRecurringExpenseRepository is a mock implementation of RecurringExpenseRepository.
type MockRecurringExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.RecurringExpense
	order    []string
}

func NewMockRecurringExpenseRepository() *MockRecurringExpenseRepository {
	return &MockRecurringExpenseRepository{
		expenses: make(map[string]*domain.RecurringExpense),
	}
}

func (m *MockRecurringExpenseRepository) Create(ctx context.Context, expense *domain.RecurringExpense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *expense
	m.expenses[expense.ID] = &copied
	m.order = append(m.order, expense.ID)
	return nil
}

func (m *MockRecurringExpenseRepository) ListActive(ctx context.Context) ([]*domain.RecurringExpense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active []*domain.RecurringExpense
	for _, id := range m.order {
		if e := m.expenses[id]; e.Active {
			copied := *e
			active = append(active, &copied)
		}
	}
	return active, nil
}

func (m *MockRecurringExpenseRepository) UpdateLastGenerated(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.expenses[id]; ok {
		e.LastGenerated = at
	}
	return nil
}

func (m *MockRecurringExpenseRepository) Deactivate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.expenses[id]; ok {
		e.Active = false
	}
	return nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *event
	m.events = append(m.events, &copied)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var unpublished []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			copied := *e
			unpublished = append(unpublished, &copied)
			if len(unpublished) == limit {
				break
			}
		}
	}
	return unpublished, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

// Events returns every event created so far.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*domain.OutboxEvent, len(m.events))
	copy(events, m.events)
	return events
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
