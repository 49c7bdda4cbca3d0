package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

// Frequency is the recurrence cadence of a series: weekly with an N-week
// stride, nothing more general.
type Frequency string

const (
	FreqWeekly      Frequency = "weekly"
	FreqEvery2Weeks Frequency = "every_2_weeks"
	FreqEvery3Weeks Frequency = "every_3_weeks"
	FreqEvery4Weeks Frequency = "every_4_weeks"
)

func (f Frequency) strideDays() (int, bool) {
	switch f {
	case FreqWeekly:
		return 7, true
	case FreqEvery2Weeks:
		return 14, true
	case FreqEvery3Weeks:
		return 21, true
	case FreqEvery4Weeks:
		return 28, true
	}
	return 0, false
}

// Occurrence count bounds for a recurring booking.
const (
	MinOccurrences = 4
	MaxOccurrences = 50
)

// Scope selects how much of a series an edit or delete touches.
type Scope string

const (
	ScopeSingle        Scope = "single"
	ScopeThisAndFuture Scope = "this_and_future"
	ScopeSeries        Scope = "series"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeSingle:
		return ScopeSingle, nil
	case ScopeThisAndFuture:
		return ScopeThisAndFuture, nil
	case ScopeSeries:
		return ScopeSeries, nil
	}
	return "", validationf("invalid scope %q", s)
}

// expandSeries generates the concrete instances for a recurring booking.
// The anchor's wall-clock start/end are re-resolved through the zone for
// every instance, so a series crossing a DST transition keeps its local
// times instead of drifting by the UTC-offset change. All instances share
// one series tag. Counts outside [MinOccurrences, MaxOccurrences] are
// rejected before any expansion.
func expandSeries(anchor data.Appointment, freq Frequency, count int, loc *time.Location) ([]data.Appointment, error) {
	stride, ok := freq.strideDays()
	if !ok {
		return nil, validationf("invalid frequency %q", freq)
	}
	if count < MinOccurrences || count > MaxOccurrences {
		return nil, validationf("occurrence count %d outside [%d, %d]", count, MinOccurrences, MaxOccurrences)
	}
	if !anchor.StartAt.Before(anchor.EndAt) {
		return nil, validationf("appointment start must precede end")
	}

	startDate, startClock := common.FromUTC(anchor.StartAt, loc)
	endDate, endClock := common.FromUTC(anchor.EndAt, loc)
	endOffset := common.DaysBetween(startDate, endDate) // nonzero for sessions crossing local midnight

	seriesID := uuid.NewString()
	now := data.Now()

	instances := make([]data.Appointment, count)
	for n := 0; n < count; n++ {
		day := startDate.AddDays(n * stride)

		instance := anchor
		instance.ID = uuid.NewString()
		instance.SeriesID = seriesID
		instance.StartAt = common.ToUTC(day, startClock, loc)
		instance.EndAt = common.ToUTC(day.AddDays(endOffset), endClock, loc)
		instance.CreatedAt = now
		instance.UpdatedAt = now

		instances[n] = instance
	}

	return instances, nil
}

// seriesInstances resolves which stored instances a scope covers, anchored
// on the targeted appointment.
func (s *appointmentsService) seriesInstances(target data.Appointment, scope Scope) ([]data.Appointment, error) {
	if target.SeriesID == "" || scope == ScopeSingle {
		return []data.Appointment{target}, nil
	}

	switch scope {
	case ScopeThisAndFuture:
		return s.dao.Appointments.GetSeriesFrom(target.SeriesID, target.StartAt)
	case ScopeSeries:
		return s.dao.Appointments.GetSeries(target.SeriesID)
	}
	return nil, validationf("invalid scope %q", scope)
}
