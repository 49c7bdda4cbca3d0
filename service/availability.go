package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

// Interval is an opaque non-bookable block rendered alongside availability.
// Busy blocks are never subtracted from slots; conflict checks consult them
// as a parallel list.
type Interval struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Label   string    `json:"label"`
	Source  string    `json:"source"` // "synced_event" or "blocked_time"
}

// DayAvailability is the materialized structure for one calendar day.
type DayAvailability struct {
	Slots   []AvailabilitySlot `json:"slots"`
	Blocked []Interval         `json:"blocked"`
}

type availabilityService struct {
	dao    *data.DAO
	cache  *rangeCache
	logger zerolog.Logger

	defaultZone  string
	fetchTimeout time.Duration
}

// Materialize computes the per-day availability map for every calendar day
// in [start, end] inclusive. The weekly pattern is the baseline; any date
// with exception coverage is replaced (not merged) by its non-deleted
// exceptions; busy blocks ride alongside. Wall-clock times are anchored per
// day in the clinician's zone, so ranges spanning a DST transition convert
// each day with its own offset.
//
// A failing sub-fetch fails the whole call with a single normalized error;
// no partial day map is ever returned or cached.
func (s *availabilityService) Materialize(ctx context.Context, clinicianID string, start, end common.Date, zone string) (map[string]DayAvailability, error) {
	if clinicianID == "" {
		return nil, validationf("clinician id is required")
	}
	if end.Before(start) {
		return nil, validationf("range end %s precedes start %s", end.ISO(), start.ISO())
	}

	rangeSig := start.ISO() + ".." + end.ISO() + "." + zone
	key := s.cache.key(clinicianID, rangeSig)
	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	var clinician data.Clinician
	err := withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		clinician, err = s.dao.Clinicians.GetOne(clinicianID)
		return err
	})
	if err != nil {
		s.logFailure(clinicianID, rangeSig, "clinician fetch", err)
		return nil, normalizeFetchErr("clinician "+clinicianID, err)
	}

	if zone == "" {
		zone = clinician.TimeZone
	}
	loc := common.ZoneOrDefault(zone, s.defaultZone, s.logger)

	var exceptions []data.AvailabilityException
	err = withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		exceptions, err = s.dao.Exceptions.GetRange(clinicianID, start.ISO(), end.ISO())
		return err
	})
	if err != nil {
		s.logFailure(clinicianID, rangeSig, "exception fetch", err)
		return nil, normalizeFetchErr("exceptions", err)
	}

	// widen the instant window by a day on each side so blocks that start
	// on a neighbouring UTC day still land on a local day in range
	windowFrom := common.ToUTC(start.AddDays(-1), 0, loc)
	windowTo := common.ToUTC(end.AddDays(2), 0, loc)

	var appointments []data.Appointment
	err = withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		appointments, err = s.dao.Appointments.GetRange(clinicianID, windowFrom, windowTo)
		return err
	})
	if err != nil {
		s.logFailure(clinicianID, rangeSig, "appointment fetch", err)
		return nil, normalizeFetchErr("appointments", err)
	}

	var busyEvents []data.SyncedEvent
	err = withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		busyEvents, err = s.dao.SyncedEvents.BusyRange(clinicianID, windowFrom, windowTo)
		return err
	})
	if err != nil {
		s.logFailure(clinicianID, rangeSig, "synced event fetch", err)
		return nil, normalizeFetchErr("synced events", err)
	}

	pattern := decodeWeekly(&clinician)
	excepted, overrides := groupExceptions(exceptions)

	days := make(map[string]DayAvailability)
	for d := start; !end.Before(d); d = d.AddDays(1) {
		iso := d.ISO()

		var slots []AvailabilitySlot
		if _, has := excepted[iso]; has {
			slots = overrides[iso]
		} else {
			slots = pattern.slotsOn(d.Weekday())
		}

		anchored := make([]AvailabilitySlot, 0, len(slots))
		for _, slot := range slots {
			slot.StartAt = common.ToUTC(d, slot.StartTime, loc)
			slot.EndAt = common.ToUTC(d, slot.EndTime, loc)
			anchored = append(anchored, slot)
		}

		days[iso] = DayAvailability{Slots: anchored, Blocked: []Interval{}}
	}

	mergeBlocked(days, appointments, busyEvents, loc)

	s.cache.put(key, days)
	return days, nil
}

// groupExceptions splits exception rows by date. Any row, deleted or not,
// marks its date as excepted, so a date whose rows are all soft-deleted
// resolves to zero availability instead of silently falling back to the
// weekly pattern. Only non-deleted rows with valid times become slots.
func groupExceptions(exceptions []data.AvailabilityException) (map[string]struct{}, map[string][]AvailabilitySlot) {
	excepted := make(map[string]struct{})
	overrides := make(map[string][]AvailabilitySlot)

	for _, exc := range exceptions {
		excepted[exc.SpecificDate] = struct{}{}
		if exc.IsDeleted {
			continue
		}

		start, err := common.ParseClock(exc.StartTime)
		if err != nil {
			continue
		}
		end, err := common.ParseClock(exc.EndTime)
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}

		overrides[exc.SpecificDate] = append(overrides[exc.SpecificDate], AvailabilitySlot{
			StartTime:   start,
			EndTime:     end,
			IsException: true,
		})
	}

	return excepted, overrides
}

// mergeBlocked folds internal blocked time and external busy events into the
// day entries as opaque intervals, keyed by the local calendar day each
// block starts on. Days outside the requested range are ignored.
func mergeBlocked(days map[string]DayAvailability, appointments []data.Appointment, events []data.SyncedEvent, loc *time.Location) {
	add := func(startAt, endAt time.Time, label, source string) {
		day, _ := common.FromUTC(startAt, loc)
		entry, ok := days[day.ISO()]
		if !ok {
			return
		}
		entry.Blocked = append(entry.Blocked, Interval{
			StartAt: startAt,
			EndAt:   endAt,
			Label:   label,
			Source:  source,
		})
		days[day.ISO()] = entry
	}

	for _, appt := range appointments {
		if Classify(appt) != KindBlockedTime {
			continue
		}
		add(appt.StartAt, appt.EndAt, data.BusyLabel, "blocked_time")
	}

	for _, ev := range events {
		add(ev.StartAt, ev.EndAt, data.BusyLabel, "synced_event")
	}
}

// Invalidate drops cached ranges for a clinician after an
// availability-affecting write.
func (s *availabilityService) Invalidate(clinicianID string) {
	s.cache.invalidate(clinicianID)
}

func (s *availabilityService) logFailure(clinicianID, rangeSig, op string, err error) {
	s.logger.Error().
		Str("clinician_id", clinicianID).
		Str("range", rangeSig).
		Str("op", op).
		Err(err).
		Msg("availability materialization failed")
}
