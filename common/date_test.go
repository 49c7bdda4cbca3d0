package common

import (
	"testing"
	"time"
)

func TestAddDaysNormalizes(t *testing.T) {
	cases := []struct {
		date     Date
		days     int
		expected Date
	}{
		{
			date:     NewDate(2024, time.January, 31),
			days:     1,
			expected: NewDate(2024, time.February, 1),
		},
		{
			date:     NewDate(2024, time.December, 31),
			days:     1,
			expected: NewDate(2025, time.January, 1),
		},
		{
			date:     NewDate(2024, time.February, 28),
			days:     1,
			expected: NewDate(2024, time.February, 29), // leap year
		},
		{
			date:     NewDate(2024, time.March, 1),
			days:     -1,
			expected: NewDate(2024, time.February, 29),
		},
		{
			date:     NewDate(2024, time.June, 3),
			days:     14,
			expected: NewDate(2024, time.June, 17),
		},
	}

	for _, c := range cases {
		got := c.date.AddDays(c.days)
		if got != c.expected {
			t.Fatalf("%s + %d days: expected %s, got %s", c.date.ISO(), c.days, c.expected.ISO(), got.ISO())
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := NewDate(2024, time.June, 3)
	b := NewDate(2024, time.June, 17)

	if got := DaysBetween(a, b); got != 14 {
		t.Fatalf("expected 14, got %d", got)
	}
	if got := DaysBetween(b, a); got != -14 {
		t.Fatalf("expected -14, got %d", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != NewDate(2024, time.June, 3) {
		t.Fatalf("unexpected date %s", d.ISO())
	}
	if d.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %s", d.Weekday())
	}
	if d.ISO() != "2024-06-03" {
		t.Fatalf("round trip gave %s", d.ISO())
	}

	for _, bad := range []string{"", "2024-6-3", "06/03/2024", "2024-13-01"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.June, 3)
	b := NewDate(2024, time.June, 4)

	if !a.Before(b) || b.Before(a) {
		t.Fatal("Before is wrong")
	}
	if !b.After(a) || a.After(b) {
		t.Fatal("After is wrong")
	}
	if a.Before(a) || a.After(a) {
		t.Fatal("a date must not order against itself")
	}
}
