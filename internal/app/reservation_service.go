package app

import (
	"context"
	"time"

	"github.com/MillyinVR/tovis-app-sub004/internal/clock"
	"github.com/MillyinVR/tovis-app-sub004/internal/domain"
	"github.com/MillyinVR/tovis-app-sub004/internal/localtime"
	"github.com/MillyinVR/tovis-app-sub004/internal/schedule"
	"github.com/google/uuid"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOffering(ctx context.Context, offeringID string) (domain.Offering, error)
	GetLocation(ctx context.Context, professionalID, locationID string) (domain.Location, error)
	DefaultLocation(ctx context.Context, professionalID string, mode domain.LocationType) (domain.Location, error)
	DeleteExpiredHolds(ctx context.Context, professionalID string, now time.Time) error
	FindActiveHold(ctx context.Context, professionalID, locationID string, mode domain.LocationType, start, now time.Time) (*domain.Hold, error)
	BookingsBetween(ctx context.Context, professionalID, locationID string, mode domain.LocationType, from, to time.Time) ([]domain.Booking, error)
	CreateHold(ctx context.Context, hold domain.Hold) error
}

const (
	defaultHoldTTL = 10 * time.Minute
	// futureBuffer rejects starts that have effectively already begun.
	futureBuffer = 5 * time.Minute
	// defaultDurationMinutes applies when an offering's per-mode duration
	// was never configured or is non-positive.
	defaultDurationMinutes = 60
	fallbackTimeZone       = "UTC"
)

type ReservationService struct {
	repo    ReservationRepository
	clock   clock.Clock
	holdTTL time.Duration
}

func NewReservationService(repo ReservationRepository, clk clock.Clock, opts ...ReservationServiceOption) *ReservationService {
	svc := &ReservationService{
		repo:    repo,
		clock:   clk,
		holdTTL: defaultHoldTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ReservationServiceOption func(*ReservationService)

// WithHoldTTL overrides the default TTL for new holds.
func WithHoldTTL(d time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

type ReserveInput struct {
	ClientID     string
	OfferingID   string
	ScheduledFor time.Time
	LocationType domain.LocationType
	// LocationID optionally pins a specific location; empty selects the
	// professional's default for the mode.
	LocationID string
}

// Reserve attempts to place a hold on one appointment slot. On success it
// returns the hold and whether it was newly created; a false created flag
// means the requesting client already owned an unexpired hold for the same
// slot and it was re-issued unchanged.
//
// All reads and the write run inside one transaction: the transaction, plus
// the unique index on active hold tuples, is the serialization point for
// clients racing on the same slot. No in-process locks are taken.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (domain.Hold, bool, error) {
	now := s.clock.Now()
	// Slot starts are minute-truncated everywhere so sub-minute drift can
	// never make two requests for the same slot look different.
	start := in.ScheduledFor.UTC().Truncate(time.Minute)

	if start.Before(now.Add(futureBuffer)) {
		return domain.Hold{}, false, domain.ErrFutureTimeRequired
	}

	var (
		result  domain.Hold
		created bool
	)
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		offering, err := s.repo.GetOffering(txCtx, in.OfferingID)
		if err != nil {
			return err
		}
		if !offering.Active {
			return domain.ErrOfferingInactive
		}
		if !offering.SupportsMode(in.LocationType) {
			return domain.ErrModeNotSupported
		}
		duration := offering.DurationMinutes(in.LocationType)
		if duration <= 0 {
			duration = defaultDurationMinutes
		}
		end := start.Add(time.Duration(duration) * time.Minute)

		location, err := s.resolveLocation(txCtx, offering.ProfessionalID, in.LocationType, in.LocationID)
		if err != nil {
			return err
		}
		zone := localtime.Sanitize(location.TimeZone, fallbackTimeZone)

		if err := schedule.Validate(start, end, location.WorkingHours, zone); err != nil {
			return err
		}

		// Every request self-heals the table; expiration needs no sweeper.
		if err := s.repo.DeleteExpiredHolds(txCtx, offering.ProfessionalID, now); err != nil {
			return err
		}

		existing, err := s.repo.FindActiveHold(txCtx, offering.ProfessionalID, location.ID, in.LocationType, start, now)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.ClientID == in.ClientID {
				result = *existing
				return nil
			}
			return domain.ErrSlotHeld
		}

		// The read set is the full local calendar day at the location's
		// zone, so a long booking that starts hours earlier is still seen.
		from, to := localtime.DayWindow(start, zone)
		bookings, err := s.repo.BookingsBetween(txCtx, offering.ProfessionalID, location.ID, in.LocationType, from, to)
		if err != nil {
			return err
		}
		if conflictsWithBookings(bookings, start, end) {
			return domain.ErrSlotBooked
		}

		hold := domain.Hold{
			ID:             uuid.NewString(),
			ClientID:       in.ClientID,
			ProfessionalID: offering.ProfessionalID,
			OfferingID:     offering.ID,
			LocationID:     location.ID,
			LocationType:   in.LocationType,
			ScheduledFor:   start,
			ExpiresAt:      now.Add(s.holdTTL),
			Address:        location.Address,
			Latitude:       location.Latitude,
			Longitude:      location.Longitude,
			TimeZone:       zone.String(),
			CreatedAt:      now,
		}

		if err := s.repo.CreateHold(txCtx, hold); err != nil {
			// A concurrent transaction won the insert. Re-read so an
			// idempotent retry by the same client still succeeds.
			if err == domain.ErrSlotHeld {
				winner, findErr := s.repo.FindActiveHold(txCtx, offering.ProfessionalID, location.ID, in.LocationType, start, now)
				if findErr != nil {
					return findErr
				}
				if winner != nil && winner.ClientID == in.ClientID {
					result = *winner
					return nil
				}
			}
			return err
		}

		result = hold
		created = true
		return nil
	})
	if err != nil {
		return domain.Hold{}, false, err
	}

	return result, created, nil
}

// resolveLocation selects the one location record governing the reservation.
// An explicit id must belong to the professional, be bookable, and match the
// requested mode; otherwise the default is the primary bookable location for
// the mode, falling back to the earliest-created one.
func (s *ReservationService) resolveLocation(ctx context.Context, professionalID string, mode domain.LocationType, locationID string) (domain.Location, error) {
	if locationID == "" {
		return s.repo.DefaultLocation(ctx, professionalID, mode)
	}
	location, err := s.repo.GetLocation(ctx, professionalID, locationID)
	if err != nil {
		return domain.Location{}, err
	}
	if !location.Bookable || location.Mode != mode {
		return domain.Location{}, domain.ErrNoBookableLocation
	}
	return location, nil
}
