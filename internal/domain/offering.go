package domain

// Offering is a service a professional sells, in-person and/or traveling,
// with an independent duration per mode. Read-only to the reservation engine.
type Offering struct {
	ID                   string
	ProfessionalID       string
	Active               bool
	InPerson             bool
	Traveling            bool
	InPersonDurationMin  int
	TravelingDurationMin int
}

func (o Offering) SupportsMode(mode LocationType) bool {
	switch mode {
	case LocationInPerson:
		return o.InPerson
	case LocationTraveling:
		return o.Traveling
	}
	return false
}

// DurationMinutes returns the configured duration for the mode, which may be
// zero or negative when the record was never filled in; the caller decides
// the fallback.
func (o Offering) DurationMinutes(mode LocationType) int {
	if mode == LocationTraveling {
		return o.TravelingDurationMin
	}
	return o.InPersonDurationMin
}
