package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalidTimeZone reports an unrecognized IANA zone identifier.
var ErrInvalidTimeZone = errors.New("invalid time zone")

// LoadZone resolves an IANA zone identifier. All wall-clock to instant
// conversions go through a *time.Location so DST is handled per date instead
// of with a fixed offset.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidTimeZone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, name)
	}
	return loc, nil
}

// ZoneOrDefault resolves name, substituting fallback (and logging the
// substitution) when name is unknown. A bad zone must never take the
// scheduling pipeline down.
func ZoneOrDefault(name, fallback string, logger zerolog.Logger) *time.Location {
	loc, err := LoadZone(name)
	if err == nil {
		return loc
	}

	logger.Warn().
		Str("zone", name).
		Str("fallback", fallback).
		Msg("unknown time zone, substituting default")

	loc, err = LoadZone(fallback)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ToUTC anchors a wall-clock time on a calendar day in loc and returns the
// UTC instant. The conversion is evaluated for that specific date, so a
// range spanning a DST transition gets a correct offset for every day.
func ToUTC(d Date, m Minutes, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, int(m), 0, 0, loc).UTC()
}

// FromUTC splits a UTC instant into the calendar day and wall-clock time it
// falls on in loc.
func FromUTC(t time.Time, loc *time.Location) (Date, Minutes) {
	local := t.In(loc)
	return DateOf(local), Minutes(local.Hour()*60 + local.Minute())
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday matches a day name against the fixed Sunday..Saturday list,
// case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("invalid weekday %q", name)
	}
	return wd, nil
}
