package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/MillyinVR/tovis-app-sub004/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ReservationRepository) GetOffering(ctx context.Context, offeringID string) (domain.Offering, error) {
	const query = `
SELECT id, professional_id, active, in_person, traveling, in_person_duration_min, traveling_duration_min
FROM offerings
WHERE id = $1`

	var o domain.Offering
	err := r.queryRow(ctx, query, offeringID).
		Scan(&o.ID, &o.ProfessionalID, &o.Active, &o.InPerson, &o.Traveling, &o.InPersonDurationMin, &o.TravelingDurationMin)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Offering{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Offering{}, domain.ErrOfferingNotFound
		}
		return domain.Offering{}, fmt.Errorf("get offering: %w", err)
	}
	return o, nil
}

const locationColumns = `id, professional_id, location_type, bookable, is_primary, address, latitude, longitude, time_zone, working_hours, created_at`

func (r *ReservationRepository) GetLocation(ctx context.Context, professionalID, locationID string) (domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1 AND professional_id = $2`

	loc, err := scanLocation(r.queryRow(ctx, query, locationID, professionalID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Location{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Location{}, domain.ErrLocationNotFound
		}
		return domain.Location{}, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// DefaultLocation picks the professional's primary bookable location for the
// mode, falling back to the earliest-created one.
func (r *ReservationRepository) DefaultLocation(ctx context.Context, professionalID string, mode domain.LocationType) (domain.Location, error) {
	query := `
SELECT ` + locationColumns + `
FROM locations
WHERE professional_id = $1 AND location_type = $2 AND bookable
ORDER BY is_primary DESC, created_at ASC
LIMIT 1`

	loc, err := scanLocation(r.queryRow(ctx, query, professionalID, mode))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Location{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Location{}, domain.ErrNoBookableLocation
		}
		return domain.Location{}, fmt.Errorf("default location: %w", err)
	}
	return loc, nil
}

func (r *ReservationRepository) DeleteExpiredHolds(ctx context.Context, professionalID string, now time.Time) error {
	const stmt = `DELETE FROM holds WHERE professional_id = $1 AND expires_at <= $2`
	if _, err := r.exec(ctx, stmt, professionalID, now); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete expired holds: %w", err)
	}
	return nil
}

func (r *ReservationRepository) FindActiveHold(ctx context.Context, professionalID, locationID string, mode domain.LocationType, start, now time.Time) (*domain.Hold, error) {
	const query = `
SELECT id, client_id, professional_id, offering_id, location_id, location_type,
       scheduled_for, expires_at, address, latitude, longitude, time_zone, created_at
FROM holds
WHERE professional_id = $1 AND location_id = $2 AND location_type = $3
  AND scheduled_for = $4 AND expires_at > $5`

	var h domain.Hold
	err := r.queryRow(ctx, query, professionalID, locationID, mode, start, now).
		Scan(&h.ID, &h.ClientID, &h.ProfessionalID, &h.OfferingID, &h.LocationID, &h.LocationType,
			&h.ScheduledFor, &h.ExpiresAt, &h.Address, &h.Latitude, &h.Longitude, &h.TimeZone, &h.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find active hold: %w", err)
	}
	return &h, nil
}

// BookingsBetween reads the blocking bookings whose start falls in the
// half-open [from, to) window. Bookings cannot span midnight, so the local
// day window always contains every booking that could overlap a slot on
// that day.
func (r *ReservationRepository) BookingsBetween(ctx context.Context, professionalID, locationID string, mode domain.LocationType, from, to time.Time) ([]domain.Booking, error) {
	const query = `
SELECT id, professional_id, location_id, location_type, scheduled_for, duration_minutes, buffer_minutes, status
FROM bookings
WHERE professional_id = $1 AND location_id = $2 AND location_type = $3
  AND scheduled_for >= $4 AND scheduled_for < $5
  AND status IN ('PENDING', 'ACCEPTED')`

	rows, err := r.query(ctx, query, professionalID, locationID, mode, from, to)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("bookings between: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.ProfessionalID, &b.LocationID, &b.LocationType,
			&b.ScheduledFor, &b.DurationMinutes, &b.BufferMinutes, &b.Status); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings between: %w", err)
	}
	return bookings, nil
}

func (r *ReservationRepository) CreateHold(ctx context.Context, hold domain.Hold) error {
	// DO NOTHING instead of letting the unique index raise 23505: an error
	// would abort the enclosing transaction, and callers losing the race
	// still need to re-read the winning hold in that same transaction.
	const stmt = `
INSERT INTO holds (id, client_id, professional_id, offering_id, location_id, location_type,
                   scheduled_for, expires_at, address, latitude, longitude, time_zone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (professional_id, location_id, location_type, scheduled_for) DO NOTHING`

	tag, err := r.exec(ctx, stmt,
		hold.ID,
		hold.ClientID,
		hold.ProfessionalID,
		hold.OfferingID,
		hold.LocationID,
		hold.LocationType,
		hold.ScheduledFor,
		hold.ExpiresAt,
		hold.Address,
		hold.Latitude,
		hold.Longitude,
		hold.TimeZone,
		hold.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create hold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotHeld
	}
	return nil
}

func scanLocation(row pgx.Row) (domain.Location, error) {
	var l domain.Location
	err := row.Scan(&l.ID, &l.ProfessionalID, &l.Mode, &l.Bookable, &l.Primary,
		&l.Address, &l.Latitude, &l.Longitude, &l.TimeZone, &l.WorkingHours, &l.CreatedAt)
	if err != nil {
		return domain.Location{}, err
	}
	return l, nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
