package app

import (
	"time"

	"github.com/MillyinVR/tovis-app-sub004/internal/domain"
)

// conflictsWithBookings reports whether the proposed [start, end) window
// overlaps any blocking booking's occupied window. Intervals are half-open,
// so touching endpoints never conflict. It only answers yes/no; which
// booking conflicts is another client's business.
func conflictsWithBookings(bookings []domain.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if !b.Status.Blocks() {
			continue
		}
		if b.ScheduledFor.Before(end) && b.OccupiedUntil().After(start) {
			return true
		}
	}
	return false
}
