package service

import (
	"context"
	"testing"
	"time"

	"bikeshop-rental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type contractFixture struct {
	contractRepo *MockContractRepo
	rentalRepo   *MockRentalRepo
	customerRepo *MockCustomerRepo
	rentalSvc    *MockRentalService
	svc          ContractService
}

func newContractFixture() *contractFixture {
	f := &contractFixture{
		contractRepo: new(MockContractRepo),
		rentalRepo:   new(MockRentalRepo),
		customerRepo: new(MockCustomerRepo),
		rentalSvc:    new(MockRentalService),
	}
	f.svc = NewContractService(f.contractRepo, f.rentalRepo, f.customerRepo, f.rentalSvc, 100)
	return f
}

func TestContractService_CreateContract(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		f := newContractFixture()
		f.customerRepo.On("GetByID", ctx, int32(3)).Return(&domain.Customer{ID: 3}, nil)
		f.contractRepo.On("Create", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)

		c, err := f.svc.CreateContract(ctx, 3, domain.ContractTypeMedium, start, 10, "corporate fleet")
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusDraft, c.Status)
		assert.Equal(t, start.Add(28*24*time.Hour), c.DateEnd)
		assert.NotEmpty(t, c.Reference)
		assert.False(t, c.TermsAccepted)
	})

	t.Run("DiscountOutOfRange", func(t *testing.T) {
		f := newContractFixture()
		f.customerRepo.On("GetByID", ctx, int32(3)).Return(&domain.Customer{ID: 3}, nil)

		_, err := f.svc.CreateContract(ctx, 3, domain.ContractTypeShort, start, 120, "")
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = f.svc.CreateContract(ctx, 3, domain.ContractTypeShort, start, -1, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("UnknownType", func(t *testing.T) {
		f := newContractFixture()
		f.customerRepo.On("GetByID", ctx, int32(3)).Return(&domain.Customer{ID: 3}, nil)

		_, err := f.svc.CreateContract(ctx, 3, domain.ContractType("weekend"), start, 0, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		f := newContractFixture()
		f.customerRepo.On("GetByID", ctx, int32(99)).Return(nil, &domain.NotFoundError{Entity: "customer", ID: 99})

		_, err := f.svc.CreateContract(ctx, 99, domain.ContractTypeShort, start, 0, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestContractService_ConfirmContract(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesToDraftMembers", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusDraft, TermsAccepted: true}
		members := []domain.Rental{
			{ID: 1, Status: domain.RentalStatusDraft, TotalPriceCents: 2000},
			{ID: 2, Status: domain.RentalStatusConfirmed, TotalPriceCents: 3000},
		}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
		f.rentalRepo.On("ListByContract", ctx, int32(11)).Return(members, nil)
		f.rentalSvc.On("ConfirmRental", ctx, int32(1)).Return(&domain.Rental{ID: 1, Status: domain.RentalStatusConfirmed}, nil)
		f.contractRepo.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)

		c, err := f.svc.ConfirmContract(ctx, 11)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusConfirmed, c.Status)
		// Already-confirmed member is left alone.
		f.rentalSvc.AssertNotCalled(t, "ConfirmRental", ctx, int32(2))
		// Rollup ran over the member totals.
		assert.Equal(t, int32(5000), c.SubtotalCents)
	})

	t.Run("EmptyContractRejected", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusDraft, TermsAccepted: true}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
		f.rentalRepo.On("ListByContract", ctx, int32(11)).Return([]domain.Rental{}, nil)

		_, err := f.svc.ConfirmContract(ctx, 11)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, domain.ContractStatusDraft, contract.Status)
		f.contractRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("TermsNotAccepted", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusDraft}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)

		_, err := f.svc.ConfirmContract(ctx, 11)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("MemberConflictStopsCascade", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusDraft, TermsAccepted: true}
		members := []domain.Rental{
			{ID: 1, Status: domain.RentalStatusDraft},
			{ID: 2, Status: domain.RentalStatusDraft},
		}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
		f.rentalRepo.On("ListByContract", ctx, int32(11)).Return(members, nil)
		f.rentalSvc.On("ConfirmRental", ctx, int32(1)).Return(nil, &domain.ConflictError{BikeID: 7, RentalIDs: []int32{9}})

		_, err := f.svc.ConfirmContract(ctx, 11)
		assert.ErrorIs(t, err, domain.ErrConflict)
		f.rentalSvc.AssertNotCalled(t, "ConfirmRental", ctx, int32(2))
		f.contractRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("WrongState", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusActive, TermsAccepted: true}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)

		_, err := f.svc.ConfirmContract(ctx, 11)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestContractService_ActivateContract(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusConfirmed}
	members := []domain.Rental{
		{ID: 1, Status: domain.RentalStatusConfirmed},
		{ID: 2, Status: domain.RentalStatusCancelled},
	}
	f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
	f.rentalRepo.On("ListByContract", ctx, int32(11)).Return(members, nil)
	f.rentalSvc.On("StartRental", ctx, int32(1)).Return(&domain.Rental{ID: 1, Status: domain.RentalStatusOngoing}, nil)
	f.contractRepo.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)

	c, err := f.svc.ActivateContract(ctx, 11)
	assert.NoError(t, err)
	assert.Equal(t, domain.ContractStatusActive, c.Status)
	f.rentalSvc.AssertNotCalled(t, "StartRental", ctx, int32(2))
}

func TestContractService_CompleteContract(t *testing.T) {
	ctx := context.Background()

	t.Run("BlockedByOpenRental", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusActive}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
		f.rentalRepo.On("ListByContract", ctx, int32(11)).Return([]domain.Rental{
			{ID: 1, Status: domain.RentalStatusOngoing},
		}, nil)

		_, err := f.svc.CompleteContract(ctx, 11)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("AllMembersBack", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusActive}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
		f.rentalRepo.On("ListByContract", ctx, int32(11)).Return([]domain.Rental{
			{ID: 1, Status: domain.RentalStatusReturned, TotalPriceCents: 4000},
			{ID: 2, Status: domain.RentalStatusCancelled},
		}, nil)
		f.contractRepo.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)

		c, err := f.svc.CompleteContract(ctx, 11)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusDone, c.Status)
		assert.Equal(t, int32(4000), c.SubtotalCents)
	})
}

func TestContractService_CancelContract(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesToOpenMembers", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusConfirmed}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
		f.rentalRepo.On("ListByContract", ctx, int32(11)).Return([]domain.Rental{
			{ID: 1, Status: domain.RentalStatusConfirmed},
			{ID: 2, Status: domain.RentalStatusReturned},
		}, nil)
		f.rentalSvc.On("CancelRental", ctx, int32(1), "contract cancelled").Return(&domain.Rental{ID: 1, Status: domain.RentalStatusCancelled}, nil)
		f.contractRepo.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)

		c, err := f.svc.CancelContract(ctx, 11)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusCancelled, c.Status)
		f.rentalSvc.AssertNotCalled(t, "CancelRental", ctx, int32(2), mock.Anything)
	})

	t.Run("DoneCannotBeCancelled", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusDone}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)

		_, err := f.svc.CancelContract(ctx, 11)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestContractService_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesBalance", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusActive, DiscountPercent: 0}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
		f.rentalRepo.On("ListByContract", ctx, int32(11)).Return([]domain.Rental{
			{Status: domain.RentalStatusOngoing, TotalPriceCents: 10000},
		}, nil)
		f.contractRepo.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)

		c, err := f.svc.RecordPayment(ctx, 11, 4000)
		assert.NoError(t, err)
		assert.Equal(t, int32(4000), c.AmountPaidCents)
		assert.Equal(t, int32(6000), c.BalanceDueCents)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		f := newContractFixture()
		_, err := f.svc.RecordPayment(ctx, 11, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("RejectsCancelledContract", func(t *testing.T) {
		f := newContractFixture()
		contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusCancelled}
		f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)

		_, err := f.svc.RecordPayment(ctx, 11, 1000)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestContractService_AcceptTerms(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	contract := &domain.Contract{ID: 11, Reference: "CTR-A", Status: domain.ContractStatusDraft}
	f.contractRepo.On("GetByID", ctx, int32(11)).Return(contract, nil)
	f.contractRepo.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)

	c, err := f.svc.AcceptTerms(ctx, 11)
	assert.NoError(t, err)
	assert.True(t, c.TermsAccepted)
}
