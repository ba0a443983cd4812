package postgres

import (
	"database/sql"

	"bikeshop-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BikeRepository
	repository.RentalRepository
	repository.ContractRepository
	repository.PricingRepository
	repository.CustomerRepository
	repository.AccessoryRepository
	repository.EventRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		BikeRepository:      NewBikeRepository(db),
		RentalRepository:    NewRentalRepository(db),
		ContractRepository:  NewContractRepository(db),
		PricingRepository:   NewPricingRepository(db),
		CustomerRepository:  NewCustomerRepository(db),
		AccessoryRepository: NewAccessoryRepository(db),
		EventRepository:     NewEventRepository(db),
	}
}
