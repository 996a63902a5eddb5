package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Blocks reports whether a booking in this status occupies its slot.
// Cancelled and completed bookings never block a new reservation.
func (s BookingStatus) Blocks() bool {
	return s == BookingPending || s == BookingAccepted
}

// Booking is a confirmed appointment, read-only to the reservation engine.
type Booking struct {
	ID              string
	ProfessionalID  string
	LocationID      string
	LocationType    LocationType
	ScheduledFor    time.Time
	DurationMinutes int
	BufferMinutes   int
	Status          BookingStatus
}

// OccupiedUntil is the exclusive end of the booking's occupied window:
// service duration plus any buffer during which the professional is still
// considered busy.
func (b Booking) OccupiedUntil() time.Time {
	return b.ScheduledFor.Add(time.Duration(b.DurationMinutes+b.BufferMinutes) * time.Minute)
}
