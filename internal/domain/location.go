package domain

import (
	"encoding/json"
	"time"
)

type LocationType string

const (
	LocationInPerson  LocationType = "IN_PERSON"
	LocationTraveling LocationType = "TRAVELING"
)

// ParseLocationType reports whether s names a known location type.
func ParseLocationType(s string) (LocationType, bool) {
	switch LocationType(s) {
	case LocationInPerson, LocationTraveling:
		return LocationType(s), true
	}
	return "", false
}

// Location is a bookable place belonging to a professional. WorkingHours is
// the raw per-weekday schedule document as stored; it is edited by end users
// and must be treated as untrusted until parsed.
type Location struct {
	ID             string
	ProfessionalID string
	Mode           LocationType
	Bookable       bool
	Primary        bool
	Address        string
	Latitude       *float64
	Longitude      *float64
	TimeZone       string
	WorkingHours   json.RawMessage
	CreatedAt      time.Time
}
