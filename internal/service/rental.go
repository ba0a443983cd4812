package service

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/logger"
	"bikeshop-rental-backend/internal/repository"
	"bikeshop-rental-backend/internal/utils"

	"github.com/google/uuid"
)

type rentalService struct {
	rentalRepo    repository.RentalRepository
	bikeRepo      repository.BikeRepository
	pricingRepo   repository.PricingRepository
	contractRepo  repository.ContractRepository
	accessoryRepo repository.AccessoryRepository
	customerRepo  repository.CustomerRepository
	eventRepo     repository.EventRepository
	emailSvc      EmailService

	depositFactor int32
	defaultSeason domain.Season

	// One mutex per bike so the overlap check and the insert that follows
	// it cannot interleave for the same bike. Different bikes proceed in
	// parallel.
	bikeLocks sync.Map
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	bikeRepo repository.BikeRepository,
	pricingRepo repository.PricingRepository,
	contractRepo repository.ContractRepository,
	accessoryRepo repository.AccessoryRepository,
	customerRepo repository.CustomerRepository,
	eventRepo repository.EventRepository,
	emailSvc EmailService,
	depositFactor int32,
	defaultSeason domain.Season,
) RentalService {
	if depositFactor <= 0 {
		depositFactor = 2
	}
	if defaultSeason == "" {
		defaultSeason = domain.SeasonAll
	}
	return &rentalService{
		rentalRepo:    rentalRepo,
		bikeRepo:      bikeRepo,
		pricingRepo:   pricingRepo,
		contractRepo:  contractRepo,
		accessoryRepo: accessoryRepo,
		customerRepo:  customerRepo,
		eventRepo:     eventRepo,
		emailSvc:      emailSvc,
		depositFactor: depositFactor,
		defaultSeason: defaultSeason,
	}
}

func (s *rentalService) lockBike(bikeID int32) func() {
	v, _ := s.bikeLocks.LoadOrStore(bikeID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func newRentalReference() string {
	return "RENT-" + strings.ToUpper(uuid.NewString()[:8])
}

// resolvePricing picks the unit price and deposit for a bike and unit. The
// bike's own rate wins; otherwise the grid is consulted for the requested
// season, falling back to the all-season row. A missing rate is an error,
// never a zero price.
func (s *rentalService) resolvePricing(ctx context.Context, bike *domain.Bike, unit domain.DurationUnit, season domain.Season) (unitPrice, deposit, minDuration int32, err error) {
	if season == "" {
		season = s.defaultSeason
	}

	if own := bike.RentalPriceFor(unit); own > 0 {
		return own, own * s.depositFactor, 0, nil
	}

	rule, err := s.pricingRepo.Find(ctx, bike.BikeType, unit, season)
	if err != nil && season != domain.SeasonAll {
		rule, err = s.pricingRepo.Find(ctx, bike.BikeType, unit, domain.SeasonAll)
	}
	if err != nil {
		return 0, 0, 0, err
	}

	deposit = rule.DepositCents
	if deposit == 0 {
		deposit = rule.PriceCents * s.depositFactor
	}
	return rule.PriceCents, deposit, rule.MinDuration, nil
}

func (s *rentalService) CheckAvailability(ctx context.Context, bikeID int32, start, end time.Time, unit domain.DurationUnit, season domain.Season) (*Quote, error) {
	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if err != nil {
		return nil, err
	}
	if !bike.Rentable() {
		return nil, &domain.ValidationError{Field: "bike_id", Reason: "bike is not available for rent"}
	}

	duration, display, err := utils.ComputeDuration(start, end, unit)
	if err != nil {
		return nil, err
	}

	unitPrice, deposit, _, err := s.resolvePricing(ctx, bike, unit, season)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.rentalRepo.FindOverlapping(ctx, bikeID, start, end, 0)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Available:       len(conflicts) == 0,
		Conflicts:       conflicts,
		Duration:        duration,
		DurationDisplay: display,
		UnitPriceCents:  unitPrice,
		TotalPriceCents: duration * unitPrice,
		DepositCents:    deposit,
	}, nil
}

func (s *rentalService) CreateRental(ctx context.Context, req *CreateRentalRequest) (*domain.Rental, error) {
	bike, err := s.bikeRepo.GetByID(ctx, req.BikeID)
	if err != nil {
		return nil, err
	}
	if !bike.Rentable() {
		return nil, &domain.ValidationError{Field: "bike_id", Reason: "bike is not available for rent"}
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	duration, display, err := utils.ComputeDuration(req.DateStart, req.DateEnd, req.DurationUnit)
	if err != nil {
		return nil, err
	}

	unitPrice, deposit, minDuration, err := s.resolvePricing(ctx, bike, req.DurationUnit, req.Season)
	if err != nil {
		return nil, err
	}
	if minDuration > 0 && duration < minDuration {
		return nil, &domain.ValidationError{Field: "duration", Reason: "below the minimum for this rate"}
	}

	if len(req.AccessoryIDs) > 0 {
		accessories, err := s.accessoryRepo.GetByIDs(ctx, req.AccessoryIDs)
		if err != nil {
			return nil, err
		}
		if len(accessories) != len(req.AccessoryIDs) {
			return nil, &domain.ValidationError{Field: "accessory_ids", Reason: "unknown accessory"}
		}
	}

	if req.ContractID != nil {
		if _, err := s.contractRepo.GetByID(ctx, *req.ContractID); err != nil {
			return nil, err
		}
	}

	unlock := s.lockBike(req.BikeID)
	defer unlock()

	conflicts, err := s.rentalRepo.FindOverlapping(ctx, req.BikeID, req.DateStart, req.DateEnd, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, conflictError(req.BikeID, conflicts)
	}

	rental := &domain.Rental{
		Reference:          newRentalReference(),
		BikeID:             req.BikeID,
		CustomerID:         req.CustomerID,
		ContractID:         req.ContractID,
		DateStart:          req.DateStart,
		DateEnd:            req.DateEnd,
		DurationUnit:       req.DurationUnit,
		Duration:           duration,
		DurationDisplay:    display,
		UnitPriceCents:     unitPrice,
		DepositCents:       deposit,
		Status:             domain.RentalStatusDraft,
		Notes:              req.Notes,
		BikeConditionStart: req.ConditionStart,
		AccessoryIDs:       req.AccessoryIDs,
	}
	rental.RecomputeTotal()

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}

	s.emitTransition(ctx, rental, "", domain.RentalStatusDraft, nil)
	s.recomputeContract(ctx, rental.ContractID)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rental.RefreshOverdue(time.Now())
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *rentalService) ConfirmRental(ctx context.Context, id int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusDraft {
		return nil, &domain.InvalidTransitionError{Ref: rental.Reference, From: string(rental.Status), Op: "confirm"}
	}

	unlock := s.lockBike(rental.BikeID)
	defer unlock()

	// The window may have been taken by another booking while this one sat
	// in draft.
	conflicts, err := s.rentalRepo.FindOverlapping(ctx, rental.BikeID, rental.DateStart, rental.DateEnd, rental.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, conflictError(rental.BikeID, conflicts)
	}

	old := rental.Status
	rental.Status = domain.RentalStatusConfirmed
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	if err := s.bikeRepo.UpdateStatus(ctx, rental.BikeID, domain.BikeStatusReserved); err != nil {
		return nil, err
	}

	s.emitTransition(ctx, rental, old, rental.Status, nil)
	s.notifyConfirmation(ctx, rental)
	return rental, nil
}

func (s *rentalService) StartRental(ctx context.Context, id int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusConfirmed {
		return nil, &domain.InvalidTransitionError{Ref: rental.Reference, From: string(rental.Status), Op: "start"}
	}

	old := rental.Status
	now := time.Now()

	if !rental.DateEnd.After(now) {
		return nil, &domain.ValidationError{Field: "date_end", Reason: "rental window already elapsed"}
	}

	// Pickup resets the clock: the billed window runs from the actual
	// handover, not the reservation time.
	rental.DateStart = now
	duration, display, err := utils.ComputeDuration(rental.DateStart, rental.DateEnd, rental.DurationUnit)
	if err != nil {
		return nil, err
	}
	rental.Duration = duration
	rental.DurationDisplay = display
	rental.RecomputeTotal()
	rental.Status = domain.RentalStatusOngoing

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	if err := s.bikeRepo.UpdateStatus(ctx, rental.BikeID, domain.BikeStatusRented); err != nil {
		return nil, err
	}

	s.emitTransition(ctx, rental, old, rental.Status, nil)
	s.recomputeContract(ctx, rental.ContractID)
	return rental, nil
}

func (s *rentalService) ReturnRental(ctx context.Context, id int32, conditionEnd string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusOngoing && rental.Status != domain.RentalStatusOverdue {
		return nil, &domain.InvalidTransitionError{Ref: rental.Reference, From: string(rental.Status), Op: "return"}
	}

	old := rental.Status
	now := time.Now()
	rental.DateReturned = &now
	rental.BikeConditionEnd = conditionEnd
	rental.Status = domain.RentalStatusReturned
	rental.RefreshOverdue(now)

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	if err := s.bikeRepo.UpdateStatus(ctx, rental.BikeID, domain.BikeStatusAvailable); err != nil {
		return nil, err
	}

	s.emitTransition(ctx, rental, old, rental.Status, nil)
	s.recomputeContract(ctx, rental.ContractID)

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		_ = s.emailSvc.SendReturnConfirmation(ctx, customer.Email, customer.Name, rental.Reference, rental.LateFeeCents)
	}
	return rental, nil
}

func (s *rentalService) CancelRental(ctx context.Context, id int32, reason string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.Terminal() {
		return nil, &domain.InvalidTransitionError{Ref: rental.Reference, From: string(rental.Status), Op: "cancel"}
	}

	old := rental.Status
	releaseBike := old == domain.RentalStatusConfirmed || old == domain.RentalStatusOngoing || old == domain.RentalStatusOverdue

	rental.Status = domain.RentalStatusCancelled
	if reason != "" {
		if rental.Notes != "" {
			rental.Notes += "\n"
		}
		rental.Notes += "Cancelled: " + reason
	}

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	if releaseBike {
		if err := s.bikeRepo.UpdateStatus(ctx, rental.BikeID, domain.BikeStatusAvailable); err != nil {
			return nil, err
		}
	}

	s.emitTransition(ctx, rental, old, rental.Status, nil)
	s.recomputeContract(ctx, rental.ContractID)

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		_ = s.emailSvc.SendCancellationNotice(ctx, customer.Email, customer.Name, rental.Reference, reason)
	}
	return rental, nil
}

func (s *rentalService) ReturnDeposit(ctx context.Context, id int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusReturned {
		return nil, &domain.InvalidTransitionError{Ref: rental.Reference, From: string(rental.Status), Op: "return deposit"}
	}
	if rental.DepositReturned {
		return rental, nil
	}

	rental.DepositReturned = true
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// ExtendRental pushes the end of the window out by amount units. The unit is
// free to differ from the one the rental was opened with; the added time is
// billed at that unit's rate and the charge goes on top of the running total,
// optionally reduced by a discount percent.
func (s *rentalService) ExtendRental(ctx context.Context, id int32, unit domain.DurationUnit, amount int32, discountPercent float64) (*ExtensionResult, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch rental.Status {
	case domain.RentalStatusConfirmed, domain.RentalStatusOngoing, domain.RentalStatusOverdue:
	default:
		return nil, &domain.InvalidTransitionError{Ref: rental.Reference, From: string(rental.Status), Op: "extend"}
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, &domain.ValidationError{Field: "discount_percent", Reason: "out of range"}
	}

	delta, err := utils.ExtensionDelta(unit, amount)
	if err != nil {
		return nil, err
	}
	newEnd := rental.DateEnd.Add(delta)

	unitPrice := rental.UnitPriceCents
	if unit != rental.DurationUnit {
		bike, err := s.bikeRepo.GetByID(ctx, rental.BikeID)
		if err != nil {
			return nil, err
		}
		unitPrice, _, _, err = s.resolvePricing(ctx, bike, unit, s.defaultSeason)
		if err != nil {
			return nil, err
		}
	}
	extensionPrice := int32(math.Round(float64(unitPrice) * float64(amount) * (1 - discountPercent/100)))

	unlock := s.lockBike(rental.BikeID)
	defer unlock()

	// Only the added tail can collide; the current window is already ours.
	conflicts, err := s.rentalRepo.FindOverlapping(ctx, rental.BikeID, rental.DateEnd, newEnd, rental.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, conflictError(rental.BikeID, conflicts)
	}

	old := rental.Status

	rental.DateEnd = newEnd
	if unit == rental.DurationUnit {
		duration, display, err := utils.ComputeDuration(rental.DateStart, rental.DateEnd, rental.DurationUnit)
		if err != nil {
			return nil, err
		}
		rental.Duration = duration
		rental.DurationDisplay = display
	}
	rental.TotalPriceCents += extensionPrice

	now := time.Now()
	if rental.Status == domain.RentalStatusOverdue && newEnd.After(now) {
		rental.Status = domain.RentalStatusOngoing
	}
	rental.RefreshOverdue(now)

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}

	metric := amount
	s.emit(ctx, domain.EventKindExtension, rental, old, rental.Status, &metric)
	s.recomputeContract(ctx, rental.ContractID)

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		_ = s.emailSvc.SendExtensionConfirmation(ctx, customer.Email, customer.Name, rental.Reference, newEnd, extensionPrice)
	}

	return &ExtensionResult{
		Rental:              rental,
		NewDateEnd:          newEnd,
		ExtensionPriceCents: extensionPrice,
	}, nil
}

func (s *rentalService) InvoiceLines(ctx context.Context, id int32) ([]domain.InvoiceLine, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rental.RefreshOverdue(time.Now())

	names, err := s.accessoryNames(ctx, rental)
	if err != nil {
		return nil, err
	}
	return rental.InvoiceLines(names), nil
}

func newInvoiceReference() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateInvoice hands the returned rental over to billing exactly once. The
// stored invoice reference is what blocks a second invoice.
func (s *rentalService) CreateInvoice(ctx context.Context, id int32) (*domain.Rental, []domain.InvoiceLine, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if rental.Status != domain.RentalStatusReturned {
		return nil, nil, &domain.InvalidTransitionError{Ref: rental.Reference, From: string(rental.Status), Op: "invoice"}
	}
	if rental.InvoiceRef != "" {
		return nil, nil, &domain.ValidationError{Field: "invoice_ref", Reason: "rental has already been invoiced"}
	}

	names, err := s.accessoryNames(ctx, rental)
	if err != nil {
		return nil, nil, err
	}

	rental.InvoiceRef = newInvoiceReference()
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, nil, err
	}
	logger.Info("Rental invoiced", "rental_ref", rental.Reference, "invoice_ref", rental.InvoiceRef)
	return rental, rental.InvoiceLines(names), nil
}

func (s *rentalService) accessoryNames(ctx context.Context, rental *domain.Rental) ([]string, error) {
	if len(rental.AccessoryIDs) == 0 {
		return nil, nil
	}
	accessories, err := s.accessoryRepo.GetByIDs(ctx, rental.AccessoryIDs)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(accessories))
	for _, a := range accessories {
		names = append(names, a.Name)
	}
	return names, nil
}

func (s *rentalService) ListEvents(ctx context.Context, rentalID int32) ([]domain.RentalEvent, error) {
	return s.eventRepo.ListByRental(ctx, rentalID)
}

func (s *rentalService) emitTransition(ctx context.Context, rental *domain.Rental, from, to domain.RentalStatus, metric *int32) {
	s.emit(ctx, domain.EventKindTransition, rental, from, to, metric)
}

func (s *rentalService) emit(ctx context.Context, kind domain.EventKind, rental *domain.Rental, from, to domain.RentalStatus, metric *int32) {
	event := &domain.RentalEvent{
		Kind:       kind,
		RentalID:   rental.ID,
		RentalRef:  rental.Reference,
		OldStatus:  from,
		NewStatus:  to,
		Metric:     metric,
		OccurredAt: time.Now(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		logger.Error("Failed to record rental event", "rental_ref", rental.Reference, "kind", kind, "error", err)
	}
	logger.Info("Rental transition", "rental_ref", rental.Reference, "from", from, "to", to)
}

func (s *rentalService) recomputeContract(ctx context.Context, contractID *int32) {
	if contractID == nil {
		return
	}
	contract, err := s.contractRepo.GetByID(ctx, *contractID)
	if err != nil {
		logger.Error("Failed to load contract for rollup", "contract_id", *contractID, "error", err)
		return
	}
	rentals, err := s.rentalRepo.ListByContract(ctx, *contractID)
	if err != nil {
		logger.Error("Failed to list contract rentals for rollup", "contract_id", *contractID, "error", err)
		return
	}
	contract.RecomputeTotals(rentals)
	if err := s.contractRepo.Update(ctx, contract); err != nil {
		logger.Error("Failed to persist contract rollup", "contract_id", *contractID, "error", err)
	}
}

func (s *rentalService) notifyConfirmation(ctx context.Context, rental *domain.Rental) {
	customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID)
	if err != nil {
		return
	}
	bikeName := ""
	if bike, err := s.bikeRepo.GetByID(ctx, rental.BikeID); err == nil {
		bikeName = bike.Name
	}
	_ = s.emailSvc.SendRentalConfirmation(ctx, customer.Email, customer.Name, bikeName, rental.Reference,
		rental.TotalPriceCents, rental.DepositCents)
}

func conflictError(bikeID int32, conflicts []domain.Rental) *domain.ConflictError {
	e := &domain.ConflictError{BikeID: bikeID}
	for i := range conflicts {
		e.RentalIDs = append(e.RentalIDs, conflicts[i].ID)
		e.RentalRefs = append(e.RentalRefs, conflicts[i].Reference)
	}
	return e
}
