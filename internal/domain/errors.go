package domain

import "errors"

// Error strings double as the user-facing rejection reasons; the UI renders
// them verbatim, so they must stay stable across releases.
var (
	ErrFutureTimeRequired  = errors.New("future time required")
	ErrOfferingNotFound    = errors.New("offering not found")
	ErrOfferingInactive    = errors.New("offering inactive")
	ErrModeNotSupported    = errors.New("offering not available for requested location type")
	ErrLocationNotFound    = errors.New("location not found")
	ErrNoBookableLocation  = errors.New("no bookable location")
	ErrNoWorkingHours      = errors.New("no working hours set")
	ErrOutsideWorkingHours = errors.New("outside working hours")
	ErrMisconfiguredHours  = errors.New("misconfigured hours")
	ErrSlotHeld            = errors.New("someone is already holding that time")
	ErrSlotBooked          = errors.New("that time was just taken")
	ErrInvalidID           = errors.New("invalid id")
)
