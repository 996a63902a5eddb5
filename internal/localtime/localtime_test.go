package localtime

import (
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("resolves valid zone", func(t *testing.T) {
		loc := Sanitize("America/New_York", "UTC")
		if loc.String() != "America/New_York" {
			t.Fatalf("expected America/New_York, got %s", loc)
		}
	})

	t.Run("falls back on garbage", func(t *testing.T) {
		loc := Sanitize("Not/A_Zone", "America/Chicago")
		if loc.String() != "America/Chicago" {
			t.Fatalf("expected fallback America/Chicago, got %s", loc)
		}
	})

	t.Run("empty candidate uses fallback", func(t *testing.T) {
		loc := Sanitize("", "America/Chicago")
		if loc.String() != "America/Chicago" {
			t.Fatalf("expected fallback America/Chicago, got %s", loc)
		}
	})

	t.Run("utc when both unresolvable", func(t *testing.T) {
		loc := Sanitize("Not/A_Zone", "Also/Not_One")
		if loc != time.UTC {
			t.Fatalf("expected UTC, got %s", loc)
		}
	})
}

func TestToUTC_RespectsDST(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	// EST: UTC-5.
	winter := ToUTC(2025, time.January, 15, 9, 0, 0, ny)
	if want := time.Date(2025, time.January, 15, 14, 0, 0, 0, time.UTC); !winter.Equal(want) {
		t.Fatalf("winter: expected %v, got %v", want, winter)
	}

	// EDT: UTC-4.
	summer := ToUTC(2025, time.July, 15, 9, 0, 0, ny)
	if want := time.Date(2025, time.July, 15, 13, 0, 0, 0, time.UTC); !summer.Equal(want) {
		t.Fatalf("summer: expected %v, got %v", want, summer)
	}
}

func TestAt_RoundTrips(t *testing.T) {
	t.Parallel()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	instant := ToUTC(2025, time.March, 10, 16, 30, 0, la)
	wc := At(instant, la)
	if wc.Year != 2025 || wc.Month != time.March || wc.Day != 10 || wc.Hour != 16 || wc.Minute != 30 {
		t.Fatalf("unexpected wall clock: %+v", wc)
	}
}

func TestWeekdayAt_CrossesDateLine(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	// 23:00 UTC Tuesday is already Wednesday morning in Tokyo.
	instant := time.Date(2025, time.June, 10, 23, 0, 0, 0, time.UTC)
	if got := WeekdayAt(instant, time.UTC); got != time.Tuesday {
		t.Fatalf("expected Tuesday in UTC, got %s", got)
	}
	if got := WeekdayAt(instant, tokyo); got != time.Wednesday {
		t.Fatalf("expected Wednesday in Tokyo, got %s", got)
	}
}

func TestMinutesSinceMidnight(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	instant := ToUTC(2025, time.June, 10, 14, 45, 30, ny)
	if got := MinutesSinceMidnight(instant, ny); got != 14*60+45 {
		t.Fatalf("expected %d, got %d", 14*60+45, got)
	}
	if got := MinutesSinceMidnight(time.Date(2025, time.June, 10, 0, 0, 59, 0, time.UTC), time.UTC); got != 0 {
		t.Fatalf("expected 0 just after midnight, got %d", got)
	}
}

func TestDayWindow(t *testing.T) {
	t.Parallel()

	t.Run("utc day", func(t *testing.T) {
		instant := time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)
		from, to := DayWindow(instant, time.UTC)
		if want := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC); !from.Equal(want) {
			t.Fatalf("expected from %v, got %v", want, from)
		}
		if want := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC); !to.Equal(want) {
			t.Fatalf("expected to %v, got %v", want, to)
		}
	})

	t.Run("spring-forward day is 23 hours", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Fatalf("load zone: %v", err)
		}
		// 2025-03-09 is the US spring-forward date.
		instant := ToUTC(2025, time.March, 9, 12, 0, 0, ny)
		from, to := DayWindow(instant, ny)
		if got := to.Sub(from); got != 23*time.Hour {
			t.Fatalf("expected 23h window, got %s", got)
		}
	})

	t.Run("window tracks local day not utc day", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		if err != nil {
			t.Fatalf("load zone: %v", err)
		}
		// Tuesday 23:00 UTC = Wednesday 08:00 Tokyo; window must be the
		// Tokyo Wednesday.
		instant := time.Date(2025, time.June, 10, 23, 0, 0, 0, time.UTC)
		from, to := DayWindow(instant, tokyo)
		if want := ToUTC(2025, time.June, 11, 0, 0, 0, tokyo); !from.Equal(want) {
			t.Fatalf("expected from %v, got %v", want, from)
		}
		if want := ToUTC(2025, time.June, 12, 0, 0, 0, tokyo); !to.Equal(want) {
			t.Fatalf("expected to %v, got %v", want, to)
		}
	})
}
