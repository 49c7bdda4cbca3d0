package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIngestUpsertsAndPrunes(t *testing.T) {
	svc, dao := newTestService(t)
	c := seedClinician(t, dao, "America/Chicago")
	ctx := context.Background()

	applied, err := svc.Events.Ingest(ctx, c.ID, []SyncedEventInput{
		{
			GoogleCalendarEventID: "evt-1",
			StartAt:               time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC),
			EndAt:                 time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC),
			IsBusy:                true,
		},
		{
			GoogleCalendarEventID: "evt-2",
			StartAt:               time.Date(2024, time.June, 4, 14, 0, 0, 0, time.UTC),
			EndAt:                 time.Date(2024, time.June, 4, 15, 0, 0, 0, time.UTC),
			IsBusy:                false,
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, applied)

	events, err := svc.Events.List(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// a later batch moves evt-1 and drops evt-2
	applied, err = svc.Events.Ingest(ctx, c.ID, []SyncedEventInput{{
		GoogleCalendarEventID: "evt-1",
		StartAt:               time.Date(2024, time.June, 3, 16, 0, 0, 0, time.UTC),
		EndAt:                 time.Date(2024, time.June, 3, 17, 0, 0, 0, time.UTC),
		IsBusy:                true,
	}})
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	events, err = svc.Events.List(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "evt-1", events[0].GoogleCalendarEventID)
	require.True(t, events[0].StartAt.Equal(time.Date(2024, time.June, 3, 16, 0, 0, 0, time.UTC)))
}

func TestIngestSkipsMalformedRows(t *testing.T) {
	svc, dao := newTestService(t)
	c := seedClinician(t, dao, "America/Chicago")
	ctx := context.Background()

	applied, err := svc.Events.Ingest(ctx, c.ID, []SyncedEventInput{
		{
			// missing external id
			StartAt: time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC),
			IsBusy:  true,
		},
		{
			// inverted window
			GoogleCalendarEventID: "evt-bad",
			StartAt:               time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC),
			EndAt:                 time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC),
			IsBusy:                true,
		},
		{
			GoogleCalendarEventID: "evt-ok",
			StartAt:               time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC),
			EndAt:                 time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC),
			IsBusy:                true,
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	events, err := svc.Events.List(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "evt-ok", events[0].GoogleCalendarEventID)
}

func TestIngestValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Events.Ingest(ctx, "", nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Events.Ingest(ctx, "missing", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNonBusyEventsNeverBlock(t *testing.T) {
	svc, dao := newTestService(t)
	c := seedClinician(t, dao, "America/Chicago")
	ctx := context.Background()

	// transparent event inside the Monday slot
	_, err := svc.Events.Ingest(ctx, c.ID, []SyncedEventInput{{
		GoogleCalendarEventID: "evt-free",
		StartAt:               time.Date(2024, time.June, 3, 14, 30, 0, 0, time.UTC),
		EndAt:                 time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC),
		IsBusy:                false,
	}})
	require.NoError(t, err)

	days, err := svc.Availability.Materialize(ctx, c.ID, mustDate(t, "2024-06-03"), mustDate(t, "2024-06-03"), "")
	require.NoError(t, err)
	require.Empty(t, days["2024-06-03"].Blocked)

	// booking over the transparent event succeeds
	_, err = svc.Appointments.Book(ctx, BookingRequest{
		ClientID:    "client-1",
		ClinicianID: c.ID,
		StartAt:     time.Date(2024, time.June, 3, 14, 30, 0, 0, time.UTC),
		EndAt:       time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}
