package service

import (
	"context"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, rentalRepo repository.RentalRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, rentalRepo: rentalRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.Name == "" {
		return &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if customer.Email == "" {
		return &domain.ValidationError{Field: "email", Reason: "required"}
	}
	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, *domain.CustomerRentalStats, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.customerRepo.GetRentalStats(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return customer, stats, nil
}

func (s *customerService) ListCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.customerRepo.List(ctx, query, page, pageSize)
}

func (s *customerService) GetRentalHistory(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.Rental, int32, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, 0, err
	}
	return s.rentalRepo.ListByCustomer(ctx, customerID, "", page, pageSize)
}
