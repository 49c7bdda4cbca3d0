package service

import (
	"errors"
	"testing"
	"time"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

func TestExpandSeriesPreservesWallClock(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2024-03-04 10:00 local, CST (-6). The second instance lands after the
	// 2024-03-10 spring-forward transition.
	anchor := data.Appointment{
		ClientID:    "client-1",
		ClinicianID: "clinician-1",
		StartAt:     time.Date(2024, time.March, 4, 16, 0, 0, 0, time.UTC),
		EndAt:       time.Date(2024, time.March, 4, 17, 0, 0, 0, time.UTC),
		Type:        "therapy_session",
		Status:      data.StatusScheduled,
	}

	instances, err := expandSeries(anchor, FreqEvery2Weeks, 6, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instances) != 6 {
		t.Fatalf("expected 6 instances, got %d", len(instances))
	}

	seen := make(map[string]struct{})
	expectedDates := []string{
		"2024-03-04", "2024-03-18", "2024-04-01",
		"2024-04-15", "2024-04-29", "2024-05-13",
	}
	for n, instance := range instances {
		if instance.SeriesID != instances[0].SeriesID {
			t.Fatal("instances must share one series id")
		}
		if _, dup := seen[instance.ID]; dup || instance.ID == "" {
			t.Fatalf("instance %d has a bad id %q", n, instance.ID)
		}
		seen[instance.ID] = struct{}{}

		day, startClock := common.FromUTC(instance.StartAt, loc)
		if day.ISO() != expectedDates[n] {
			t.Fatalf("instance %d: expected %s, got %s", n, expectedDates[n], day.ISO())
		}
		if startClock != 10*60 {
			t.Fatalf("instance %d: local start drifted to %s", n, startClock)
		}
		_, endClock := common.FromUTC(instance.EndAt, loc)
		if endClock != 11*60 {
			t.Fatalf("instance %d: local end drifted to %s", n, endClock)
		}
	}

	// the UTC offset actually changed across the transition
	if instances[1].StartAt.Sub(instances[0].StartAt) == 14*24*time.Hour {
		t.Fatal("expected the DST transition to shift the UTC gap")
	}
}

func TestExpandSeriesCrossMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 23:00 to 00:30 local
	anchor := data.Appointment{
		ClientID:    "client-1",
		ClinicianID: "clinician-1",
		StartAt:     common.ToUTC(common.NewDate(2024, time.June, 3), 23*60, loc),
		EndAt:       common.ToUTC(common.NewDate(2024, time.June, 4), 30, loc),
	}

	instances, err := expandSeries(anchor, FreqWeekly, 4, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for n, instance := range instances {
		startDay, _ := common.FromUTC(instance.StartAt, loc)
		endDay, endClock := common.FromUTC(instance.EndAt, loc)
		if common.DaysBetween(startDay, endDay) != 1 {
			t.Fatalf("instance %d: expected the end on the next local day", n)
		}
		if endClock != 30 {
			t.Fatalf("instance %d: local end drifted to %s", n, endClock)
		}
	}
}

func TestExpandSeriesValidation(t *testing.T) {
	loc := time.UTC
	anchor := data.Appointment{
		StartAt: time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		freq  Frequency
		count int
	}{
		{freq: FreqWeekly, count: 3},
		{freq: FreqWeekly, count: 51},
		{freq: FreqWeekly, count: 0},
		{freq: Frequency("daily"), count: 10},
		{freq: Frequency(""), count: 10},
	}
	for _, c := range cases {
		if _, err := expandSeries(anchor, c.freq, c.count, loc); !errors.Is(err, ErrValidation) {
			t.Fatalf("freq=%q count=%d: expected validation error, got %v", c.freq, c.count, err)
		}
	}

	inverted := anchor
	inverted.EndAt = inverted.StartAt
	if _, err := expandSeries(inverted, FreqWeekly, 4, loc); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for inverted window, got %v", err)
	}
}

func TestStrideDays(t *testing.T) {
	cases := map[Frequency]int{
		FreqWeekly:      7,
		FreqEvery2Weeks: 14,
		FreqEvery3Weeks: 21,
		FreqEvery4Weeks: 28,
	}
	for freq, expected := range cases {
		stride, ok := freq.strideDays()
		if !ok || stride != expected {
			t.Fatalf("%s: expected %d, got %d (%v)", freq, expected, stride, ok)
		}
	}
	if _, ok := Frequency("monthly").strideDays(); ok {
		t.Fatal("expected monthly to be rejected")
	}
}

func TestParseScope(t *testing.T) {
	cases := []struct {
		value    string
		expected Scope
		fails    bool
	}{
		{value: "", expected: ScopeSingle},
		{value: "single", expected: ScopeSingle},
		{value: "this_and_future", expected: ScopeThisAndFuture},
		{value: "series", expected: ScopeSeries},
		{value: "all", fails: true},
		{value: "Single", fails: true},
	}

	for _, c := range cases {
		scope, err := ParseScope(c.value)
		if c.fails {
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error for %q, got %v", c.value, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", c.value, err)
		}
		if scope != c.expected {
			t.Fatalf("expected %s for %q, got %s", c.expected, c.value, scope)
		}
	}
}
