package common

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestToUTCAcrossDST(t *testing.T) {
	loc, err := LoadZone("America/Chicago")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2024-03-10: spring forward, offset changes from -6 to -5
	cases := []struct {
		date     Date
		clock    Minutes
		expected time.Time
	}{
		{
			date:     NewDate(2024, time.March, 9),
			clock:    9 * 60,
			expected: time.Date(2024, time.March, 9, 15, 0, 0, 0, time.UTC),
		},
		{
			date:     NewDate(2024, time.March, 11),
			clock:    9 * 60,
			expected: time.Date(2024, time.March, 11, 14, 0, 0, 0, time.UTC),
		},
		// 2024-11-03: fall back, offset changes from -5 to -6
		{
			date:     NewDate(2024, time.November, 2),
			clock:    9 * 60,
			expected: time.Date(2024, time.November, 2, 14, 0, 0, 0, time.UTC),
		},
		{
			date:     NewDate(2024, time.November, 4),
			clock:    9 * 60,
			expected: time.Date(2024, time.November, 4, 15, 0, 0, 0, time.UTC),
		},
	}

	for _, c := range cases {
		got := ToUTC(c.date, c.clock, loc)
		if !got.Equal(c.expected) {
			t.Fatalf("%s %s: expected %v, got %v", c.date.ISO(), c.clock, c.expected, got)
		}

		backDate, backClock := FromUTC(got, loc)
		if backDate != c.date || backClock != c.clock {
			t.Fatalf("round trip of %s %s gave %s %s", c.date.ISO(), c.clock, backDate.ISO(), backClock)
		}
	}
}

func TestLoadZone(t *testing.T) {
	if _, err := LoadZone("America/New_York"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, bad := range []string{"", "Not/AZone", "CST"} {
		_, err := LoadZone(bad)
		if bad == "CST" && err == nil {
			// abbreviations resolve on some platforms; identifiers are what we store
			continue
		}
		if bad != "CST" && !errors.Is(err, ErrInvalidTimeZone) {
			t.Fatalf("expected ErrInvalidTimeZone for %q, got %v", bad, err)
		}
	}
}

func TestZoneOrDefault(t *testing.T) {
	logger := zerolog.Nop()

	loc := ZoneOrDefault("America/Denver", "America/Chicago", logger)
	if loc.String() != "America/Denver" {
		t.Fatalf("expected America/Denver, got %s", loc)
	}

	loc = ZoneOrDefault("Not/AZone", "America/Chicago", logger)
	if loc.String() != "America/Chicago" {
		t.Fatalf("expected fallback America/Chicago, got %s", loc)
	}

	loc = ZoneOrDefault("Not/AZone", "Also/Bogus", logger)
	if loc != time.UTC {
		t.Fatalf("expected UTC, got %s", loc)
	}
}

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		name     string
		expected time.Weekday
		fails    bool
	}{
		{name: "monday", expected: time.Monday},
		{name: "Monday", expected: time.Monday},
		{name: "SUNDAY", expected: time.Sunday},
		{name: " Friday ", expected: time.Friday},
		{name: "mon", fails: true},
		{name: "", fails: true},
	}

	for _, c := range cases {
		wd, err := ParseWeekday(c.name)
		if c.fails {
			if err == nil {
				t.Fatalf("expected error for %q", c.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", c.name, err)
		}
		if wd != c.expected {
			t.Fatalf("expected %s for %q, got %s", c.expected, c.name, wd)
		}
	}
}
