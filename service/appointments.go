package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

type appointmentsService struct {
	dao          *data.DAO
	availability *availabilityService
	logger       zerolog.Logger

	defaultZone  string
	fetchTimeout time.Duration
}

// AppointmentKind classifies a row as exactly one of a real client booking
// or internal blocked time.
type AppointmentKind int

const (
	KindClientBooking AppointmentKind = iota
	KindBlockedTime
)

// Classify resolves the kind from either historical encoding: the reserved
// client id on legacy rows, or the type tag on newer ones. Every filter in
// the system goes through here so the two encodings are never checked
// independently at call sites.
func Classify(appt data.Appointment) AppointmentKind {
	if appt.ClientID == data.BlockedClientID || appt.Type == data.BlockedType {
		return KindBlockedTime
	}
	return KindClientBooking
}

// FilterReal removes blocked-time rows (both encodings) from a client-facing
// list. Real bookings pass through unchanged, including rows with an empty
// type.
func FilterReal(appts []data.Appointment) []data.Appointment {
	real := make([]data.Appointment, 0, len(appts))
	for _, appt := range appts {
		if Classify(appt) == KindClientBooking {
			real = append(real, appt)
		}
	}
	return real
}

// BookingRequest is a single appointment creation request.
type BookingRequest struct {
	ClientID    string    `json:"client_id"`
	ClinicianID string    `json:"clinician_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Type        string    `json:"type"`
}

// RecurringRequest books a series: the anchor plus its recurrence rule.
type RecurringRequest struct {
	BookingRequest
	Frequency       Frequency `json:"frequency"`
	OccurrenceCount int       `json:"occurrence_count"`
}

func (r BookingRequest) validate() error {
	if r.ClinicianID == "" {
		return validationf("clinician_id is required")
	}
	if r.ClientID == "" {
		return validationf("client_id is required")
	}
	if !r.StartAt.Before(r.EndAt) {
		return validationf("start must precede end")
	}
	return nil
}

func (s *appointmentsService) newAppointment(r BookingRequest) data.Appointment {
	apptType := r.Type
	if apptType == "" {
		apptType = "therapy_session"
	}
	return data.Appointment{
		ID:          uuid.NewString(),
		ClientID:    r.ClientID,
		ClinicianID: r.ClinicianID,
		StartAt:     r.StartAt.UTC(),
		EndAt:       r.EndAt.UTC(),
		Type:        apptType,
		Status:      data.StatusScheduled,
		CreatedAt:   data.Now(),
		UpdatedAt:   data.Now(),
	}
}

// Book creates a single appointment after checking for conflicts against
// existing appointments (blocked time included) and external busy events.
func (s *appointmentsService) Book(ctx context.Context, r BookingRequest) (data.Appointment, error) {
	if err := r.validate(); err != nil {
		return data.Appointment{}, err
	}
	if err := s.checkConflicts(ctx, r.ClinicianID, r.StartAt, r.EndAt, nil); err != nil {
		return data.Appointment{}, err
	}

	appt := s.newAppointment(r)
	if err := s.dao.Appointments.Add(&appt); err != nil {
		return data.Appointment{}, normalizeFetchErr("appointment create", err)
	}

	s.availability.Invalidate(r.ClinicianID)
	return appt, nil
}

// BookRecurring expands the anchor into its series and stores all instances
// atomically. Conflicts are checked per instance before anything is written.
func (s *appointmentsService) BookRecurring(ctx context.Context, r RecurringRequest) ([]data.Appointment, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	clinician, err := s.dao.Clinicians.GetOne(r.ClinicianID)
	if err != nil {
		return nil, normalizeFetchErr("clinician "+r.ClinicianID, err)
	}
	loc := common.ZoneOrDefault(clinician.TimeZone, s.defaultZone, s.logger)

	anchor := s.newAppointment(r.BookingRequest)
	instances, err := expandSeries(anchor, r.Frequency, r.OccurrenceCount, loc)
	if err != nil {
		return nil, err
	}

	for _, instance := range instances {
		if err := s.checkConflicts(ctx, r.ClinicianID, instance.StartAt, instance.EndAt, nil); err != nil {
			return nil, err
		}
	}

	if err := s.dao.Appointments.AddBatch(instances); err != nil {
		return nil, normalizeFetchErr("series create", err)
	}

	s.availability.Invalidate(r.ClinicianID)
	return instances, nil
}

// BlockTime reserves an internal non-bookable interval on the clinician's
// calendar using the current sentinel encoding.
func (s *appointmentsService) BlockTime(ctx context.Context, clinicianID string, startAt, endAt time.Time) (data.Appointment, error) {
	if clinicianID == "" {
		return data.Appointment{}, validationf("clinician_id is required")
	}
	if !startAt.Before(endAt) {
		return data.Appointment{}, validationf("start must precede end")
	}

	appt := data.Appointment{
		ID:          uuid.NewString(),
		ClientID:    data.BlockedClientID,
		ClinicianID: clinicianID,
		StartAt:     startAt.UTC(),
		EndAt:       endAt.UTC(),
		Type:        data.BlockedType,
		Status:      data.StatusScheduled,
		CreatedAt:   data.Now(),
		UpdatedAt:   data.Now(),
	}
	if err := s.dao.Appointments.Add(&appt); err != nil {
		return data.Appointment{}, normalizeFetchErr("blocked time create", err)
	}

	s.availability.Invalidate(clinicianID)
	return appt, nil
}

// List returns appointments in range. Client-facing callers get blocked time
// filtered out; the clinician's own calendar view passes includeBlocked.
func (s *appointmentsService) List(ctx context.Context, clinicianID string, from, to time.Time, includeBlocked bool) ([]data.Appointment, error) {
	var appts []data.Appointment
	err := withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		appts, err = s.dao.Appointments.GetRange(clinicianID, from, to)
		return err
	})
	if err != nil {
		return nil, normalizeFetchErr("appointments", err)
	}

	if !includeBlocked {
		appts = FilterReal(appts)
	}
	return appts, nil
}

// Reschedule moves an appointment, or a scope of its series, to a new time.
// For series scopes the day delta and new wall-clock are applied per
// instance through the zone, preserving local times across DST.
func (s *appointmentsService) Reschedule(ctx context.Context, id string, scope Scope, newStart, newEnd time.Time) ([]data.Appointment, error) {
	if !newStart.Before(newEnd) {
		return nil, validationf("start must precede end")
	}

	target, err := s.dao.Appointments.GetOne(id)
	if err != nil {
		return nil, normalizeFetchErr("appointment "+id, err)
	}

	clinician, err := s.dao.Clinicians.GetOne(target.ClinicianID)
	if err != nil {
		return nil, normalizeFetchErr("clinician "+target.ClinicianID, err)
	}
	loc := common.ZoneOrDefault(clinician.TimeZone, s.defaultZone, s.logger)

	oldDate, _ := common.FromUTC(target.StartAt, loc)
	newDate, startClock := common.FromUTC(newStart.UTC(), loc)
	endDate, endClock := common.FromUTC(newEnd.UTC(), loc)
	dayDelta := common.DaysBetween(oldDate, newDate)
	endOffset := common.DaysBetween(newDate, endDate)

	instances, err := s.seriesInstances(target, scope)
	if err != nil {
		return nil, normalizeFetchErr("series "+target.SeriesID, err)
	}

	// every instance being moved is excluded from conflict checks; the new
	// windows may legitimately land on siblings' old windows
	moving := make(map[string]struct{}, len(instances))
	for _, instance := range instances {
		moving[instance.ID] = struct{}{}
	}

	// compute and conflict-check every instance before writing any of them
	updated := make([]data.Appointment, 0, len(instances))
	for _, instance := range instances {
		day, _ := common.FromUTC(instance.StartAt, loc)
		day = day.AddDays(dayDelta)

		instance.StartAt = common.ToUTC(day, startClock, loc)
		instance.EndAt = common.ToUTC(day.AddDays(endOffset), endClock, loc)

		if err := s.checkConflicts(ctx, instance.ClinicianID, instance.StartAt, instance.EndAt, moving); err != nil {
			return nil, err
		}
		updated = append(updated, instance)
	}

	for i := range updated {
		if err := s.dao.Appointments.Update(&updated[i]); err != nil {
			return nil, normalizeFetchErr("appointment update", err)
		}
	}

	s.availability.Invalidate(target.ClinicianID)
	return updated, nil
}

// Cancel soft-deletes by status. Scope semantics match delete: single, this
// and future, or the whole series.
func (s *appointmentsService) Cancel(ctx context.Context, id string, scope Scope) error {
	target, err := s.dao.Appointments.GetOne(id)
	if err != nil {
		return normalizeFetchErr("appointment "+id, err)
	}

	instances, err := s.seriesInstances(target, scope)
	if err != nil {
		return normalizeFetchErr("series "+target.SeriesID, err)
	}

	for _, instance := range instances {
		if err := s.dao.Appointments.UpdateStatus(instance.ID, data.StatusCancelled); err != nil {
			return normalizeFetchErr("appointment cancel", err)
		}
	}

	s.availability.Invalidate(target.ClinicianID)
	return nil
}

// Delete hard-deletes the targeted scope.
func (s *appointmentsService) Delete(ctx context.Context, id string, scope Scope) error {
	target, err := s.dao.Appointments.GetOne(id)
	if err != nil {
		return normalizeFetchErr("appointment "+id, err)
	}

	if target.SeriesID == "" || scope == ScopeSingle {
		err = s.dao.Appointments.Delete(target.ID)
	} else {
		switch scope {
		case ScopeThisAndFuture:
			err = s.dao.Appointments.DeleteSeriesFrom(target.SeriesID, target.StartAt)
		case ScopeSeries:
			err = s.dao.Appointments.DeleteSeries(target.SeriesID)
		default:
			return validationf("invalid scope %q", scope)
		}
	}
	if err != nil {
		return normalizeFetchErr("appointment delete", err)
	}

	s.availability.Invalidate(target.ClinicianID)
	return nil
}

// UpdateStatus applies a status transition to one instance.
func (s *appointmentsService) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case data.StatusScheduled, data.StatusCompleted, data.StatusCancelled, data.StatusNoShow:
	default:
		return validationf("invalid status %q", status)
	}

	if err := s.dao.Appointments.UpdateStatus(id, status); err != nil {
		return normalizeFetchErr("appointment "+id, err)
	}
	return nil
}

// checkConflicts rejects a window overlapping any non-cancelled appointment
// (blocked time included) or external busy event. exclude holds the ids of
// rows being moved in the same operation: a series shift must not collide
// with its own old instance windows.
func (s *appointmentsService) checkConflicts(ctx context.Context, clinicianID string, startAt, endAt time.Time, exclude map[string]struct{}) error {
	appts, err := s.dao.Appointments.GetRange(clinicianID, startAt, endAt)
	if err != nil {
		return normalizeFetchErr("conflict check", err)
	}
	for _, appt := range appts {
		if _, moving := exclude[appt.ID]; moving {
			continue
		}
		return validationf("time conflicts with an existing appointment")
	}

	events, err := s.dao.SyncedEvents.BusyRange(clinicianID, startAt, endAt)
	if err != nil {
		return normalizeFetchErr("conflict check", err)
	}
	if len(events) > 0 {
		return validationf("time conflicts with a calendar event")
	}

	return nil
}
