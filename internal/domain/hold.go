package domain

import "time"

// Hold is a short-lived claim on one (professional, location, mode,
// minute-truncated start) slot by one client. The address/coordinates/zone
// fields snapshot the location at creation time so a later location edit
// cannot change what an issued hold displays.
type Hold struct {
	ID             string
	ClientID       string
	ProfessionalID string
	OfferingID     string
	LocationID     string
	LocationType   LocationType
	ScheduledFor   time.Time
	ExpiresAt      time.Time
	Address        string
	Latitude       *float64
	Longitude      *float64
	TimeZone       string
	CreatedAt      time.Time
}

// Active reports whether the hold still blocks its slot at the given instant.
func (h Hold) Active(now time.Time) bool {
	return h.ExpiresAt.After(now)
}
