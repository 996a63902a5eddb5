// Package localtime converts between UTC instants and wall-clock time in an
// arbitrary IANA zone, using the tz database shipped with the Go runtime so
// daylight-saving transitions are respected.
package localtime

import "time"

// Sanitize resolves candidate as an IANA zone name, falling back to fallback
// and finally to UTC. Location records are user-edited, so an unresolvable
// zone must degrade rather than fail the request.
func Sanitize(candidate, fallback string) *time.Location {
	if candidate != "" {
		if loc, err := time.LoadLocation(candidate); err == nil {
			return loc
		}
	}
	if fallback != "" {
		if loc, err := time.LoadLocation(fallback); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ToUTC interprets the given wall-clock fields in loc and returns the UTC
// instant.
func ToUTC(year int, month time.Month, day, hour, minute, sec int, loc *time.Location) time.Time {
	return time.Date(year, month, day, hour, minute, sec, 0, loc).UTC()
}

// WallClock is the local calendar/clock reading of an instant in some zone.
type WallClock struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

func At(t time.Time, loc *time.Location) WallClock {
	lt := t.In(loc)
	return WallClock{
		Year:   lt.Year(),
		Month:  lt.Month(),
		Day:    lt.Day(),
		Hour:   lt.Hour(),
		Minute: lt.Minute(),
		Second: lt.Second(),
	}
}

func WeekdayAt(t time.Time, loc *time.Location) time.Weekday {
	return t.In(loc).Weekday()
}

// MinutesSinceMidnight returns the local wall-clock minute of day, 0..1439.
func MinutesSinceMidnight(t time.Time, loc *time.Location) int {
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}

// DayWindow returns the UTC instants of the local calendar day containing t:
// local midnight through the following local midnight, half-open. The window
// length varies on daylight-saving days; both edges are real local midnights.
func DayWindow(t time.Time, loc *time.Location) (from, to time.Time) {
	lt := t.In(loc)
	from = time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	to = time.Date(lt.Year(), lt.Month(), lt.Day()+1, 0, 0, 0, 0, loc)
	return from.UTC(), to.UTC()
}
