package service

import (
	"context"
	"strings"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/logger"
	"bikeshop-rental-backend/internal/repository"

	"github.com/google/uuid"
)

type contractService struct {
	contractRepo repository.ContractRepository
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
	rentalSvc    RentalService

	maxDiscount float64
}

func NewContractService(
	contractRepo repository.ContractRepository,
	rentalRepo repository.RentalRepository,
	customerRepo repository.CustomerRepository,
	rentalSvc RentalService,
	maxDiscount float64,
) ContractService {
	if maxDiscount <= 0 {
		maxDiscount = 100
	}
	return &contractService{
		contractRepo: contractRepo,
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
		rentalSvc:    rentalSvc,
		maxDiscount:  maxDiscount,
	}
}

func newContractReference() string {
	return "CTR-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *contractService) CreateContract(ctx context.Context, customerID int32, contractType domain.ContractType, dateStart time.Time, discountPercent float64, notes string) (*domain.Contract, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	if discountPercent < 0 || discountPercent > s.maxDiscount {
		return nil, &domain.ValidationError{Field: "discount_percent", Reason: "out of range"}
	}
	switch contractType {
	case domain.ContractTypeShort, domain.ContractTypeMedium, domain.ContractTypeLong, domain.ContractTypeSubscription:
	default:
		return nil, &domain.ValidationError{Field: "contract_type", Reason: "unknown contract type"}
	}

	now := time.Now()
	if dateStart.IsZero() {
		dateStart = now
	}
	contract := &domain.Contract{
		Reference:       newContractReference(),
		CustomerID:      customerID,
		ContractType:    contractType,
		DateContract:    now,
		DateStart:       dateStart,
		DateEnd:         dateStart.Add(contractType.DefaultWindow()),
		DiscountPercent: discountPercent,
		Status:          domain.ContractStatusDraft,
		Notes:           notes,
	}
	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) GetContract(ctx context.Context, id int32) (*domain.Contract, []domain.Rental, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rentals, err := s.rentalRepo.ListByContract(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return contract, rentals, nil
}

func (s *contractService) ListContracts(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error) {
	return s.contractRepo.List(ctx, status, page, pageSize)
}

func (s *contractService) RecomputeContract(ctx context.Context, id int32) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.RecomputeTotals(rentals)
	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// ConfirmContract confirms the contract and cascades to its draft member
// rentals. The cascade stops at the first member failure so a booking
// conflict surfaces instead of being skipped over.
func (s *contractService) ConfirmContract(ctx context.Context, id int32) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractStatusDraft {
		return nil, invalidContractTransition(contract, "confirm")
	}
	if !contract.TermsAccepted {
		return nil, &domain.ValidationError{Field: "terms_accepted", Reason: "terms must be accepted before confirmation"}
	}

	rentals, err := s.rentalRepo.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, &domain.ValidationError{Field: "rentals", Reason: "contract must contain at least one rental"}
	}
	for i := range rentals {
		if rentals[i].Status != domain.RentalStatusDraft {
			continue
		}
		if _, err := s.rentalSvc.ConfirmRental(ctx, rentals[i].ID); err != nil {
			return nil, err
		}
	}

	contract.Status = domain.ContractStatusConfirmed
	if err := s.updateWithRollup(ctx, contract); err != nil {
		return nil, err
	}
	logger.Info("Contract confirmed", "contract_ref", contract.Reference)
	return contract, nil
}

// ActivateContract starts every confirmed member rental.
func (s *contractService) ActivateContract(ctx context.Context, id int32) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractStatusConfirmed {
		return nil, invalidContractTransition(contract, "activate")
	}

	rentals, err := s.rentalRepo.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		if rentals[i].Status != domain.RentalStatusConfirmed {
			continue
		}
		if _, err := s.rentalSvc.StartRental(ctx, rentals[i].ID); err != nil {
			return nil, err
		}
	}

	contract.Status = domain.ContractStatusActive
	if err := s.updateWithRollup(ctx, contract); err != nil {
		return nil, err
	}
	logger.Info("Contract activated", "contract_ref", contract.Reference)
	return contract, nil
}

// CompleteContract closes the contract once every member rental is back.
func (s *contractService) CompleteContract(ctx context.Context, id int32) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractStatusActive {
		return nil, invalidContractTransition(contract, "complete")
	}

	rentals, err := s.rentalRepo.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		if !rentals[i].Terminal() {
			return nil, &domain.ValidationError{Field: "rentals", Reason: "all rentals must be returned or cancelled first"}
		}
	}

	contract.Status = domain.ContractStatusDone
	if err := s.updateWithRollup(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// CancelContract cancels the contract and every non-terminal member rental.
func (s *contractService) CancelContract(ctx context.Context, id int32) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status == domain.ContractStatusDone || contract.Status == domain.ContractStatusCancelled {
		return nil, invalidContractTransition(contract, "cancel")
	}

	rentals, err := s.rentalRepo.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		if rentals[i].Terminal() {
			continue
		}
		if _, err := s.rentalSvc.CancelRental(ctx, rentals[i].ID, "contract cancelled"); err != nil {
			return nil, err
		}
	}

	contract.Status = domain.ContractStatusCancelled
	if err := s.updateWithRollup(ctx, contract); err != nil {
		return nil, err
	}
	logger.Info("Contract cancelled", "contract_ref", contract.Reference)
	return contract, nil
}

func (s *contractService) RecordPayment(ctx context.Context, id int32, amountCents int32) (*domain.Contract, error) {
	if amountCents <= 0 {
		return nil, &domain.ValidationError{Field: "amount_cents", Reason: "must be greater than 0"}
	}
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status == domain.ContractStatusCancelled {
		return nil, invalidContractTransition(contract, "record payment")
	}

	contract.AmountPaidCents += amountCents
	if err := s.updateWithRollup(ctx, contract); err != nil {
		return nil, err
	}
	logger.Info("Contract payment recorded", "contract_ref", contract.Reference, "amount_cents", amountCents)
	return contract, nil
}

func (s *contractService) AcceptTerms(ctx context.Context, id int32) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.TermsAccepted = true
	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) updateWithRollup(ctx context.Context, contract *domain.Contract) error {
	rentals, err := s.rentalRepo.ListByContract(ctx, contract.ID)
	if err != nil {
		return err
	}
	contract.RecomputeTotals(rentals)
	return s.contractRepo.Update(ctx, contract)
}

func invalidContractTransition(c *domain.Contract, op string) error {
	return &domain.InvalidTransitionError{Ref: c.Reference, From: string(c.Status), Op: op}
}
