package memory

import (
	"context"
	"sort"

	"github.com/osteria/tillbook/internal/domain"
)

// CustomerRepository implements usecase.CustomerRepository over the sandbox.
type CustomerRepository struct {
	store *Store
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

// Create creates a customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	copied := *customer
	r.store.write(func(s *state) {
		s.customers[customer.ID] = &copied
	})
	return nil
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var (
		found *domain.Customer
		err   error
	)
	r.store.read(func(s *state) {
		customer, ok := s.customers[id]
		if !ok {
			err = domain.ErrCustomerNotFound
			return
		}
		copied := *customer
		found = &copied
	})
	return found, err
}

// List lists customers by name.
func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	r.store.read(func(s *state) {
		for _, customer := range s.customers {
			copied := *customer
			customers = append(customers, &copied)
		}
	})

	sort.Slice(customers, func(i, j int) bool {
		if customers[i].Name == customers[j].Name {
			return customers[i].ID < customers[j].ID
		}
		return customers[i].Name < customers[j].Name
	})

	return customers, nil
}
