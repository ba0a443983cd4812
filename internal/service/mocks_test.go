package service

import (
	"context"
	"time"

	"bikeshop-rental-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBikeRepo
type MockBikeRepo struct {
	mock.Mock
}

func (m *MockBikeRepo) Create(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *MockBikeRepo) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}
func (m *MockBikeRepo) Update(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *MockBikeRepo) UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBikeRepo) Archive(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBikeRepo) List(ctx context.Context, bikeType, size, status string, page, pageSize int32) ([]domain.Bike, int32, error) {
	args := m.Called(ctx, bikeType, size, status, page, pageSize)
	return args.Get(0).([]domain.Bike), args.Get(1).(int32), args.Error(2)
}
func (m *MockBikeRepo) ListRentable(ctx context.Context) ([]domain.Bike, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Bike), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByBike(ctx context.Context, bikeID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, bikeID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByContract(ctx context.Context, contractID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) FindOverlapping(ctx context.Context, bikeID int32, start, end time.Time, excludeID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, bikeID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) MarkOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) Update(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockContractRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Contract, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Contract), args.Get(1).(int32), args.Error(2)
}

// MockPricingRepo
type MockPricingRepo struct {
	mock.Mock
}

func (m *MockPricingRepo) Create(ctx context.Context, rule *domain.PricingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}
func (m *MockPricingRepo) GetByID(ctx context.Context, id int32) (*domain.PricingRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingRule), args.Error(1)
}
func (m *MockPricingRepo) Update(ctx context.Context, rule *domain.PricingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}
func (m *MockPricingRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPricingRepo) List(ctx context.Context) ([]domain.PricingRule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PricingRule), args.Error(1)
}
func (m *MockPricingRepo) Find(ctx context.Context, bikeType domain.BikeType, unit domain.DurationUnit, season domain.Season) (*domain.PricingRule, error) {
	args := m.Called(ctx, bikeType, unit, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingRule), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}
func (m *MockCustomerRepo) GetRentalStats(ctx context.Context, customerID int32) (*domain.CustomerRentalStats, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerRentalStats), args.Error(1)
}

// MockAccessoryRepo
type MockAccessoryRepo struct {
	mock.Mock
}

func (m *MockAccessoryRepo) Create(ctx context.Context, accessory *domain.Accessory) error {
	args := m.Called(ctx, accessory)
	return args.Error(0)
}
func (m *MockAccessoryRepo) GetByID(ctx context.Context, id int32) (*domain.Accessory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accessory), args.Error(1)
}
func (m *MockAccessoryRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.Accessory, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accessory), args.Error(1)
}
func (m *MockAccessoryRepo) List(ctx context.Context) ([]domain.Accessory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Accessory), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.RentalEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalEvent, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalEvent), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalConfirmation(ctx context.Context, email, name, bikeName, rentalRef string, totalCents, depositCents int32) error {
	args := m.Called(ctx, email, name, bikeName, rentalRef, totalCents, depositCents)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, email, name, rentalRef string, lateFeeCents int32) error {
	args := m.Called(ctx, email, name, rentalRef, lateFeeCents)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationNotice(ctx context.Context, email, name, rentalRef, reason string) error {
	args := m.Called(ctx, email, name, rentalRef, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionConfirmation(ctx context.Context, email, name, rentalRef string, newEnd time.Time, extensionCents int32) error {
	args := m.Called(ctx, email, name, rentalRef, newEnd, extensionCents)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueNotice(ctx context.Context, email, name, rentalRef string, overdueDays, lateFeeCents int32) error {
	args := m.Called(ctx, email, name, rentalRef, overdueDays, lateFeeCents)
	return args.Error(0)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CheckAvailability(ctx context.Context, bikeID int32, start, end time.Time, unit domain.DurationUnit, season domain.Season) (*Quote, error) {
	args := m.Called(ctx, bikeID, start, end, unit, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Quote), args.Error(1)
}
func (m *MockRentalService) CreateRental(ctx context.Context, req *CreateRentalRequest) (*domain.Rental, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalService) ConfirmRental(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) StartRental(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ReturnRental(ctx context.Context, id int32, conditionEnd string) (*domain.Rental, error) {
	args := m.Called(ctx, id, conditionEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) CancelRental(ctx context.Context, id int32, reason string) (*domain.Rental, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ReturnDeposit(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ExtendRental(ctx context.Context, id int32, unit domain.DurationUnit, amount int32, discountPercent float64) (*ExtensionResult, error) {
	args := m.Called(ctx, id, unit, amount, discountPercent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExtensionResult), args.Error(1)
}
func (m *MockRentalService) InvoiceLines(ctx context.Context, id int32) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}
func (m *MockRentalService) CreateInvoice(ctx context.Context, id int32) (*domain.Rental, []domain.InvoiceLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).([]domain.InvoiceLine), args.Error(2)
}
func (m *MockRentalService) ListEvents(ctx context.Context, rentalID int32) ([]domain.RentalEvent, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalEvent), args.Error(1)
}
