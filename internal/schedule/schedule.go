// Package schedule validates proposed appointment windows against a
// location's per-weekday working hours, expressed in the location's own
// wall-clock time.
package schedule

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/MillyinVR/tovis-app-sub004/internal/domain"
	"github.com/MillyinVR/tovis-app-sub004/internal/localtime"
)

// DayRule is one weekday's working hours. Start and End are "HH:MM" in the
// location's local time; Start must precede End, schedules spanning midnight
// are not supported.
type DayRule struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Weekly maps weekday keys ("sun".."sat") to day rules.
type Weekly map[string]DayRule

var dayKeys = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// DayKey returns the schedule key for a weekday.
func DayKey(w time.Weekday) string {
	return dayKeys[int(w)%7]
}

// Parse decodes a raw working-hours document into its strict shape. The
// document is end-user-edited and never trusted: a missing/empty/null
// document parses to nil with no error, anything that fails strict decoding
// is reported as misconfigured.
func Parse(raw []byte) (Weekly, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var weekly Weekly
	if err := dec.Decode(&weekly); err != nil {
		return nil, domain.ErrMisconfiguredHours
	}
	return weekly, nil
}

// Validate decides whether the proposed [start, end) window is admissible
// under the raw working-hours document, evaluated at loc. Failure reasons
// are distinct and user-facing; callers surface them verbatim.
func Validate(start, end time.Time, raw []byte, loc *time.Location) error {
	weekly, err := Parse(raw)
	if err != nil {
		return err
	}
	if len(weekly) == 0 {
		return domain.ErrNoWorkingHours
	}

	startDay := localtime.WeekdayAt(start, loc)
	rule, ok := weekly[DayKey(startDay)]
	if !ok || !rule.Enabled {
		return domain.ErrOutsideWorkingHours
	}

	ruleStart, err := parseHHMM(rule.Start)
	if err != nil {
		return domain.ErrMisconfiguredHours
	}
	ruleEnd, err := parseHHMM(rule.End)
	if err != nil {
		return domain.ErrMisconfiguredHours
	}
	if ruleEnd <= ruleStart {
		return domain.ErrMisconfiguredHours
	}

	// No cross-midnight bookings: the window must close on the same local
	// weekday it opens.
	if localtime.WeekdayAt(end, loc) != startDay {
		return domain.ErrOutsideWorkingHours
	}

	startMin := localtime.MinutesSinceMidnight(start, loc)
	endMin := localtime.MinutesSinceMidnight(end, loc)
	if startMin < ruleStart || endMin > ruleEnd {
		return domain.ErrOutsideWorkingHours
	}
	return nil
}

// parseHHMM parses a strict 24h "HH:MM" string into minutes since midnight.
func parseHHMM(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, domain.ErrMisconfiguredHours
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, domain.ErrMisconfiguredHours
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
