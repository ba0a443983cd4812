package service

import (
	"context"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type pricingService struct {
	pricingRepo repository.PricingRepository
}

func NewPricingService(pricingRepo repository.PricingRepository) PricingService {
	return &pricingService{pricingRepo: pricingRepo}
}

// GetPrice looks up the rate for the tuple, falling back to the all-season
// row when the seasonal one is missing. A gap in both is an error.
func (s *pricingService) GetPrice(ctx context.Context, bikeType domain.BikeType, unit domain.DurationUnit, season domain.Season) (*domain.PricingRule, error) {
	if season == "" {
		season = domain.SeasonAll
	}
	rule, err := s.pricingRepo.Find(ctx, bikeType, unit, season)
	if err != nil && season != domain.SeasonAll {
		rule, err = s.pricingRepo.Find(ctx, bikeType, unit, domain.SeasonAll)
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *pricingService) CreateRule(ctx context.Context, rule *domain.PricingRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	// The grid admits one rule per tuple; a duplicate is rejected, never
	// silently merged.
	if existing, err := s.pricingRepo.Find(ctx, rule.BikeType, rule.DurationUnit, rule.Season); err == nil && existing != nil {
		return &domain.ValidationError{Field: "pricing_rule", Reason: "a rule already exists for this bike type, duration unit and season"}
	}
	return s.pricingRepo.Create(ctx, rule)
}

func (s *pricingService) UpdateRule(ctx context.Context, rule *domain.PricingRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	if _, err := s.pricingRepo.GetByID(ctx, rule.ID); err != nil {
		return err
	}
	return s.pricingRepo.Update(ctx, rule)
}

func (s *pricingService) DeleteRule(ctx context.Context, id int32) error {
	if _, err := s.pricingRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.pricingRepo.Delete(ctx, id)
}

func (s *pricingService) ListRules(ctx context.Context) ([]domain.PricingRule, error) {
	return s.pricingRepo.List(ctx)
}

func validateRule(rule *domain.PricingRule) error {
	if rule.PriceCents <= 0 {
		return &domain.ValidationError{Field: "price_cents", Reason: "must be greater than 0"}
	}
	if rule.MinDuration < 0 {
		return &domain.ValidationError{Field: "min_duration", Reason: "must not be negative"}
	}
	if rule.DepositCents < 0 {
		return &domain.ValidationError{Field: "deposit_cents", Reason: "must not be negative"}
	}
	switch rule.Season {
	case domain.SeasonAll, domain.SeasonHigh, domain.SeasonLow:
	default:
		return &domain.ValidationError{Field: "season", Reason: "unknown season"}
	}
	switch rule.DurationUnit {
	case domain.DurationUnitHour, domain.DurationUnitDay, domain.DurationUnitWeek, domain.DurationUnitMonth:
	default:
		return &domain.ValidationError{Field: "duration_unit", Reason: "unknown duration unit"}
	}
	return nil
}
