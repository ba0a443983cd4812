package repository

import (
	"context"
	"time"

	"bikeshop-rental-backend/internal/domain"
)

type BikeRepository interface {
	Create(ctx context.Context, bike *domain.Bike) error
	GetByID(ctx context.Context, id int32) (*domain.Bike, error)
	Update(ctx context.Context, bike *domain.Bike) error
	UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error
	Archive(ctx context.Context, id int32) error
	List(ctx context.Context, bikeType, size, status string, page, pageSize int32) ([]domain.Bike, int32, error)
	ListRentable(ctx context.Context) ([]domain.Bike, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByBike(ctx context.Context, bikeID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByContract(ctx context.Context, contractID int32) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)

	// FindOverlapping returns non-terminal rentals on the bike whose window
	// intersects [start, end). Touching windows do not intersect. excludeID
	// keeps a rental from colliding with itself during extension.
	FindOverlapping(ctx context.Context, bikeID int32, start, end time.Time, excludeID int32) ([]domain.Rental, error)

	// MarkOverdue flips every ONGOING rental whose end is strictly before
	// now to OVERDUE and returns the transitioned rows. The predicate is
	// re-checked inside the UPDATE so repeated runs are no-ops.
	MarkOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error)
}

type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id int32) (*domain.Contract, error)
	Update(ctx context.Context, contract *domain.Contract) error
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Contract, error)
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error)
}

type PricingRepository interface {
	Create(ctx context.Context, rule *domain.PricingRule) error
	GetByID(ctx context.Context, id int32) (*domain.PricingRule, error)
	Update(ctx context.Context, rule *domain.PricingRule) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.PricingRule, error)

	// Find returns the active rule for the exact tuple, or ErrNoRows-style
	// not found when the grid has no entry.
	Find(ctx context.Context, bikeType domain.BikeType, unit domain.DurationUnit, season domain.Season) (*domain.PricingRule, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
	GetRentalStats(ctx context.Context, customerID int32) (*domain.CustomerRentalStats, error)
}

type AccessoryRepository interface {
	Create(ctx context.Context, accessory *domain.Accessory) error
	GetByID(ctx context.Context, id int32) (*domain.Accessory, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Accessory, error)
	List(ctx context.Context) ([]domain.Accessory, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.RentalEvent) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalEvent, error)
}
