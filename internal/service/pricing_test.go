package service

import (
	"context"
	"testing"

	"bikeshop-rental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func validPricingRule() *domain.PricingRule {
	return &domain.PricingRule{
		BikeType:     domain.BikeTypeMountain,
		DurationUnit: domain.DurationUnitDay,
		Season:       domain.SeasonHigh,
		PriceCents:   2500,
		DepositCents: 5000,
	}
}

func TestPricingService_GetPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("SeasonalRuleWins", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)
		repo.On("Find", ctx, domain.BikeTypeMountain, domain.DurationUnitDay, domain.SeasonHigh).
			Return(&domain.PricingRule{PriceCents: 3000}, nil)

		rule, err := svc.GetPrice(ctx, domain.BikeTypeMountain, domain.DurationUnitDay, domain.SeasonHigh)
		assert.NoError(t, err)
		assert.Equal(t, int32(3000), rule.PriceCents)
	})

	t.Run("FallsBackToAllSeason", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)
		repo.On("Find", ctx, domain.BikeTypeMountain, domain.DurationUnitDay, domain.SeasonLow).
			Return(nil, &domain.PricingGapError{BikeType: domain.BikeTypeMountain, DurationUnit: domain.DurationUnitDay, Season: domain.SeasonLow})
		repo.On("Find", ctx, domain.BikeTypeMountain, domain.DurationUnitDay, domain.SeasonAll).
			Return(&domain.PricingRule{PriceCents: 2000}, nil)

		rule, err := svc.GetPrice(ctx, domain.BikeTypeMountain, domain.DurationUnitDay, domain.SeasonLow)
		assert.NoError(t, err)
		assert.Equal(t, int32(2000), rule.PriceCents)
	})

	t.Run("EmptySeasonMeansAll", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)
		repo.On("Find", ctx, domain.BikeTypeMountain, domain.DurationUnitDay, domain.SeasonAll).
			Return(&domain.PricingRule{PriceCents: 2000}, nil)

		rule, err := svc.GetPrice(ctx, domain.BikeTypeMountain, domain.DurationUnitDay, "")
		assert.NoError(t, err)
		assert.Equal(t, int32(2000), rule.PriceCents)
	})

	t.Run("GapInBothSurfaces", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)
		repo.On("Find", ctx, domain.BikeTypeMountain, domain.DurationUnitWeek, domain.SeasonHigh).
			Return(nil, &domain.PricingGapError{BikeType: domain.BikeTypeMountain, DurationUnit: domain.DurationUnitWeek, Season: domain.SeasonHigh})
		repo.On("Find", ctx, domain.BikeTypeMountain, domain.DurationUnitWeek, domain.SeasonAll).
			Return(nil, &domain.PricingGapError{BikeType: domain.BikeTypeMountain, DurationUnit: domain.DurationUnitWeek, Season: domain.SeasonAll})

		_, err := svc.GetPrice(ctx, domain.BikeTypeMountain, domain.DurationUnitWeek, domain.SeasonHigh)
		assert.ErrorIs(t, err, domain.ErrPricingGap)
	})
}

func TestPricingService_CreateRule(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)
		rule := validPricingRule()
		repo.On("Find", ctx, rule.BikeType, rule.DurationUnit, rule.Season).
			Return(nil, &domain.PricingGapError{BikeType: rule.BikeType, DurationUnit: rule.DurationUnit, Season: rule.Season})
		repo.On("Create", ctx, rule).Return(nil)

		assert.NoError(t, svc.CreateRule(ctx, rule))
	})

	t.Run("DuplicateTupleRejected", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)
		rule := validPricingRule()
		repo.On("Find", ctx, rule.BikeType, rule.DurationUnit, rule.Season).
			Return(&domain.PricingRule{ID: 5}, nil)

		err := svc.CreateRule(ctx, rule)
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Create", ctx, rule)
	})

	t.Run("Validation", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)

		rule := validPricingRule()
		rule.PriceCents = 0
		assert.ErrorIs(t, svc.CreateRule(ctx, rule), domain.ErrValidation)

		rule = validPricingRule()
		rule.MinDuration = -1
		assert.ErrorIs(t, svc.CreateRule(ctx, rule), domain.ErrValidation)

		rule = validPricingRule()
		rule.Season = "monsoon"
		assert.ErrorIs(t, svc.CreateRule(ctx, rule), domain.ErrValidation)

		rule = validPricingRule()
		rule.DurationUnit = "fortnight"
		assert.ErrorIs(t, svc.CreateRule(ctx, rule), domain.ErrValidation)
	})
}

func TestPricingService_UpdateRule(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownRule", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)
		rule := validPricingRule()
		rule.ID = 9
		repo.On("GetByID", ctx, int32(9)).Return(nil, &domain.NotFoundError{Entity: "pricing rule", ID: 9})

		assert.ErrorIs(t, svc.UpdateRule(ctx, rule), domain.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockPricingRepo)
		svc := NewPricingService(repo)
		rule := validPricingRule()
		rule.ID = 9
		repo.On("GetByID", ctx, int32(9)).Return(&domain.PricingRule{ID: 9}, nil)
		repo.On("Update", ctx, rule).Return(nil)

		assert.NoError(t, svc.UpdateRule(ctx, rule))
	})
}
