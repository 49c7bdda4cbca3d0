package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

type eventsService struct {
	dao          *data.DAO
	availability *availabilityService
	logger       zerolog.Logger

	fetchTimeout time.Duration
}

// SyncedEventInput is one validated row handed over by the external
// calendar-sync collaborator. Transport and signature checking happen before
// this boundary; only the projection arrives here.
type SyncedEventInput struct {
	GoogleCalendarEventID string    `json:"google_calendar_event_id"`
	StartAt               time.Time `json:"start_at"`
	EndAt                 time.Time `json:"end_at"`
	IsBusy                bool      `json:"is_busy"`
}

// List returns the clinician's synced events. Titles are never stored; the
// fixed generic label is all a caller ever sees.
func (s *eventsService) List(ctx context.Context, clinicianID string) ([]data.SyncedEvent, error) {
	var events []data.SyncedEvent
	err := withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		events, err = s.dao.SyncedEvents.GetAll(clinicianID)
		return err
	})
	if err != nil {
		return nil, normalizeFetchErr("synced events", err)
	}
	return events, nil
}

// Ingest applies a full sync batch: upsert every row keyed by the external
// event id, then drop rows missing from the batch. The whole batch counts as
// one refresh trigger for the availability cache.
func (s *eventsService) Ingest(ctx context.Context, clinicianID string, rows []SyncedEventInput) (int, error) {
	if clinicianID == "" {
		return 0, validationf("clinician_id is required")
	}

	if _, err := s.dao.Clinicians.GetOne(clinicianID); err != nil {
		return 0, normalizeFetchErr("clinician "+clinicianID, err)
	}

	keep := make([]string, 0, len(rows))
	applied := 0
	for _, row := range rows {
		if row.GoogleCalendarEventID == "" || !row.StartAt.Before(row.EndAt) {
			s.logger.Warn().
				Str("clinician_id", clinicianID).
				Str("event_id", row.GoogleCalendarEventID).
				Msg("skipping malformed synced event")
			continue
		}

		ev := data.SyncedEvent{
			ID:                    uuid.NewString(),
			ClinicianID:           clinicianID,
			GoogleCalendarEventID: row.GoogleCalendarEventID,
			StartAt:               row.StartAt.UTC(),
			EndAt:                 row.EndAt.UTC(),
			IsBusy:                row.IsBusy,
		}
		if err := s.dao.SyncedEvents.Upsert(&ev); err != nil {
			return applied, normalizeFetchErr("synced event upsert", err)
		}

		keep = append(keep, row.GoogleCalendarEventID)
		applied++
	}

	if err := s.dao.SyncedEvents.DeleteMissing(clinicianID, keep); err != nil {
		return applied, normalizeFetchErr("synced event prune", err)
	}

	s.availability.Invalidate(clinicianID)
	return applied, nil
}
