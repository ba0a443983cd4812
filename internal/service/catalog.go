package service

import (
	"context"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/logger"
	"bikeshop-rental-backend/internal/repository"
)

var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

type catalogService struct {
	bikeRepo      repository.BikeRepository
	accessoryRepo repository.AccessoryRepository
	rentalRepo    repository.RentalRepository
}

func NewCatalogService(
	bikeRepo repository.BikeRepository,
	accessoryRepo repository.AccessoryRepository,
	rentalRepo repository.RentalRepository,
) CatalogService {
	return &catalogService{
		bikeRepo:      bikeRepo,
		accessoryRepo: accessoryRepo,
		rentalRepo:    rentalRepo,
	}
}

func (s *catalogService) AddBike(ctx context.Context, bike *domain.Bike) error {
	if bike.Name == "" {
		return &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if bike.Reference == "" {
		return &domain.ValidationError{Field: "reference", Reason: "required"}
	}
	if bike.Status == "" {
		bike.Status = domain.BikeStatusAvailable
	}
	bike.Active = true
	return s.bikeRepo.Create(ctx, bike)
}

func (s *catalogService) GetBike(ctx context.Context, id int32) (*domain.Bike, error) {
	return s.bikeRepo.GetByID(ctx, id)
}

func (s *catalogService) UpdateBike(ctx context.Context, bike *domain.Bike) error {
	if _, err := s.bikeRepo.GetByID(ctx, bike.ID); err != nil {
		return err
	}
	return s.bikeRepo.Update(ctx, bike)
}

// ArchiveBike retires the bike from the catalog. Open rentals block the
// archive; history is kept.
func (s *catalogService) ArchiveBike(ctx context.Context, id int32) error {
	if _, err := s.bikeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	// An unbounded window matches every non-terminal rental on the bike.
	open, err := s.rentalRepo.FindOverlapping(ctx, id, time.Time{}, farFuture, 0)
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return &domain.ValidationError{Field: "bike_id", Reason: "bike has open rentals"}
	}
	return s.bikeRepo.Archive(ctx, id)
}

func (s *catalogService) ListBikes(ctx context.Context, bikeType, size, status string, page, pageSize int32) ([]domain.Bike, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bikeRepo.List(ctx, bikeType, size, status, page, pageSize)
}

func (s *catalogService) ListRentableBikes(ctx context.Context) ([]domain.Bike, error) {
	return s.bikeRepo.ListRentable(ctx)
}

func (s *catalogService) SetMaintenance(ctx context.Context, id int32, inMaintenance bool) (*domain.Bike, error) {
	bike, err := s.bikeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if inMaintenance {
		if bike.Status == domain.BikeStatusRented {
			return nil, &domain.ValidationError{Field: "status", Reason: "bike is currently rented out"}
		}
		bike.Status = domain.BikeStatusMaintenance
	} else {
		if bike.Status != domain.BikeStatusMaintenance {
			return nil, &domain.ValidationError{Field: "status", Reason: "bike is not in maintenance"}
		}
		bike.Status = domain.BikeStatusAvailable
	}

	if err := s.bikeRepo.UpdateStatus(ctx, id, bike.Status); err != nil {
		return nil, err
	}
	logger.Info("Bike maintenance toggled", "bike_ref", bike.Reference, "status", bike.Status)
	return bike, nil
}

func (s *catalogService) ListAccessories(ctx context.Context) ([]domain.Accessory, error) {
	return s.accessoryRepo.List(ctx)
}

func (s *catalogService) AddAccessory(ctx context.Context, accessory *domain.Accessory) error {
	if accessory.Name == "" {
		return &domain.ValidationError{Field: "name", Reason: "required"}
	}
	accessory.Active = true
	return s.accessoryRepo.Create(ctx, accessory)
}
