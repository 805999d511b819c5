package services

import (
	"stripledger/internal/domain"
	"stripledger/internal/repos"

	"github.com/google/uuid"
)

// CustomerService and BuyerService are thin CRUD wrappers; the interesting
// rules (soft delete keeps history, buyer name uniqueness) live in the
// schema and repos.

type CustomerService struct {
	Customers *repos.CustomerRepo
}

func NewCustomerService(r *repos.CustomerRepo) *CustomerService { return &CustomerService{Customers: r} }

func (s *CustomerService) List(q string, page, pageSize int) ([]domain.Customer, error) {
	limit, offset := paging(page, pageSize)
	return s.Customers.List(q, limit, offset)
}

func (s *CustomerService) Get(id string) (domain.Customer, error) { return s.Customers.Get(id) }

func (s *CustomerService) Create(c domain.Customer) (domain.Customer, error) {
	c.ID = uuid.NewString()
	c.Active = true
	if err := s.Customers.Create(c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Update(c domain.Customer) error { return s.Customers.Update(c) }
func (s *CustomerService) Deactivate(id string) error     { return s.Customers.Deactivate(id) }

type BuyerService struct {
	Buyers *repos.BuyerRepo
}

func NewBuyerService(r *repos.BuyerRepo) *BuyerService { return &BuyerService{Buyers: r} }

func (s *BuyerService) List(q string, page, pageSize int) ([]domain.Buyer, error) {
	limit, offset := paging(page, pageSize)
	return s.Buyers.List(q, limit, offset)
}

func (s *BuyerService) Get(id string) (domain.Buyer, error) { return s.Buyers.Get(id) }

func (s *BuyerService) Create(b domain.Buyer) (domain.Buyer, error) {
	b.ID = uuid.NewString()
	b.Active = true
	if err := s.Buyers.Create(b); err != nil {
		return domain.Buyer{}, err
	}
	return b, nil
}

func (s *BuyerService) Update(b domain.Buyer) error { return s.Buyers.Update(b) }
func (s *BuyerService) Deactivate(id string) error  { return s.Buyers.Deactivate(id) }
