package service

import (
	"context"
	"time"

	"bikeshop-rental-backend/internal/domain"
)

// CreateRentalRequest carries everything needed to open a reservation.
// Season selects the pricing grid row; empty means the configured default.
type CreateRentalRequest struct {
	BikeID         int32               `json:"bike_id"`
	CustomerID     int32               `json:"customer_id"`
	ContractID     *int32              `json:"contract_id,omitempty"`
	DateStart      time.Time           `json:"date_start"`
	DateEnd        time.Time           `json:"date_end"`
	DurationUnit   domain.DurationUnit `json:"duration_unit"`
	Season         domain.Season       `json:"season,omitempty"`
	AccessoryIDs   []int32             `json:"accessory_ids,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	ConditionStart string              `json:"bike_condition_start,omitempty"`
}

// ExtensionResult reports the outcome of a rental extension. The extension
// price is the delta the customer owes on top of the previous total.
type ExtensionResult struct {
	Rental              *domain.Rental `json:"rental"`
	NewDateEnd          time.Time      `json:"new_date_end"`
	ExtensionPriceCents int32          `json:"extension_price_cents"`
}

// Quote is a priced availability answer for a window that has not been
// booked yet.
type Quote struct {
	Available       bool            `json:"available"`
	Conflicts       []domain.Rental `json:"conflicts,omitempty"`
	Duration        int32           `json:"duration"`
	DurationDisplay string          `json:"duration_display"`
	UnitPriceCents  int32           `json:"unit_price_cents"`
	TotalPriceCents int32           `json:"total_price_cents"`
	DepositCents    int32           `json:"deposit_cents"`
}

type RentalService interface {
	CheckAvailability(ctx context.Context, bikeID int32, start, end time.Time, unit domain.DurationUnit, season domain.Season) (*Quote, error)
	CreateRental(ctx context.Context, req *CreateRentalRequest) (*domain.Rental, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ConfirmRental(ctx context.Context, id int32) (*domain.Rental, error)
	StartRental(ctx context.Context, id int32) (*domain.Rental, error)
	ReturnRental(ctx context.Context, id int32, conditionEnd string) (*domain.Rental, error)
	CancelRental(ctx context.Context, id int32, reason string) (*domain.Rental, error)
	ReturnDeposit(ctx context.Context, id int32) (*domain.Rental, error)
	ExtendRental(ctx context.Context, id int32, unit domain.DurationUnit, amount int32, discountPercent float64) (*ExtensionResult, error)
	InvoiceLines(ctx context.Context, id int32) ([]domain.InvoiceLine, error)
	CreateInvoice(ctx context.Context, id int32) (*domain.Rental, []domain.InvoiceLine, error)
	ListEvents(ctx context.Context, rentalID int32) ([]domain.RentalEvent, error)
}

type ContractService interface {
	CreateContract(ctx context.Context, customerID int32, contractType domain.ContractType, dateStart time.Time, discountPercent float64, notes string) (*domain.Contract, error)
	GetContract(ctx context.Context, id int32) (*domain.Contract, []domain.Rental, error)
	ListContracts(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error)
	RecomputeContract(ctx context.Context, id int32) (*domain.Contract, error)
	ConfirmContract(ctx context.Context, id int32) (*domain.Contract, error)
	ActivateContract(ctx context.Context, id int32) (*domain.Contract, error)
	CompleteContract(ctx context.Context, id int32) (*domain.Contract, error)
	CancelContract(ctx context.Context, id int32) (*domain.Contract, error)
	RecordPayment(ctx context.Context, id int32, amountCents int32) (*domain.Contract, error)
	AcceptTerms(ctx context.Context, id int32) (*domain.Contract, error)
}

type PricingService interface {
	GetPrice(ctx context.Context, bikeType domain.BikeType, unit domain.DurationUnit, season domain.Season) (*domain.PricingRule, error)
	CreateRule(ctx context.Context, rule *domain.PricingRule) error
	UpdateRule(ctx context.Context, rule *domain.PricingRule) error
	DeleteRule(ctx context.Context, id int32) error
	ListRules(ctx context.Context) ([]domain.PricingRule, error)
}

type CatalogService interface {
	AddBike(ctx context.Context, bike *domain.Bike) error
	GetBike(ctx context.Context, id int32) (*domain.Bike, error)
	UpdateBike(ctx context.Context, bike *domain.Bike) error
	ArchiveBike(ctx context.Context, id int32) error
	ListBikes(ctx context.Context, bikeType, size, status string, page, pageSize int32) ([]domain.Bike, int32, error)
	ListRentableBikes(ctx context.Context) ([]domain.Bike, error)
	SetMaintenance(ctx context.Context, id int32, inMaintenance bool) (*domain.Bike, error)
	ListAccessories(ctx context.Context) ([]domain.Accessory, error)
	AddAccessory(ctx context.Context, accessory *domain.Accessory) error
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, *domain.CustomerRentalStats, error)
	ListCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
	GetRentalHistory(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.Rental, int32, error)
}

type EmailService interface {
	SendRentalConfirmation(ctx context.Context, email, name, bikeName, rentalRef string, totalCents, depositCents int32) error
	SendReturnConfirmation(ctx context.Context, email, name, rentalRef string, lateFeeCents int32) error
	SendCancellationNotice(ctx context.Context, email, name, rentalRef, reason string) error
	SendExtensionConfirmation(ctx context.Context, email, name, rentalRef string, newEnd time.Time, extensionCents int32) error
	SendOverdueNotice(ctx context.Context, email, name, rentalRef string, overdueDays, lateFeeCents int32) error
}
