package service

import (
	"time"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

// AvailabilitySlot is one bookable window in clinician-local wall-clock
// time. StartAt/EndAt carry the UTC instants once the slot has been anchored
// on a concrete calendar day by the materializer.
type AvailabilitySlot struct {
	StartTime   common.Minutes `json:"start_time"`
	EndTime     common.Minutes `json:"end_time"`
	IsException bool           `json:"is_exception"`

	StartAt time.Time `json:"start_at,omitempty"`
	EndAt   time.Time `json:"end_at,omitempty"`
}

// WeeklyPattern is the decoded recurring availability: up to three slots per
// weekday, in slot-number order. Slots may overlap; they are independent
// intervals and are never merged.
type WeeklyPattern map[time.Weekday][]AvailabilitySlot

// decodeWeekly expands the clinician's column-encoded pattern. A slot is
// included iff both ends are present, parse, and start < end; a pair with
// one missing or malformed end is dropped rather than defaulted.
func decodeWeekly(c *data.Clinician) WeeklyPattern {
	pattern := make(WeeklyPattern, 7)

	for weekday, columns := range c.WeeklyColumns() {
		slots := make([]AvailabilitySlot, 0, len(columns))
		for _, col := range columns {
			if col.Start == "" || col.End == "" {
				continue
			}

			start, err := common.ParseClock(col.Start)
			if err != nil {
				continue
			}
			end, err := common.ParseClock(col.End)
			if err != nil {
				continue
			}
			if start >= end {
				continue
			}

			slots = append(slots, AvailabilitySlot{
				StartTime: start,
				EndTime:   end,
			})
		}

		pattern[weekday] = slots
	}

	return pattern
}

// slotsOn returns the weekly-pattern baseline for one weekday. Order is
// slot-number order only; callers never assume sorting.
func (p WeeklyPattern) slotsOn(weekday time.Weekday) []AvailabilitySlot {
	return p[weekday]
}
