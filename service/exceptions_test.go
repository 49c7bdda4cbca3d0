package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExceptionFormValidation(t *testing.T) {
	svc, dao := newTestService(t)
	c := seedClinician(t, dao, "America/Chicago")
	ctx := context.Background()

	cases := []ExceptionForm{
		{SpecificDate: "2024-06-03", StartTime: "13:00", EndTime: "15:00"},                    // missing clinician
		{ClinicianID: c.ID, SpecificDate: "June 3rd", StartTime: "13:00", EndTime: "15:00"},   // bad date
		{ClinicianID: c.ID, SpecificDate: "2024-06-03", StartTime: "1pm", EndTime: "15:00"},   // bad start
		{ClinicianID: c.ID, SpecificDate: "2024-06-03", StartTime: "13:00", EndTime: ""},      // missing end
		{ClinicianID: c.ID, SpecificDate: "2024-06-03", StartTime: "15:00", EndTime: "13:00"}, // inverted
		{ClinicianID: c.ID, SpecificDate: "2024-06-03", StartTime: "13:00", EndTime: "13:00"}, // zero length
	}

	for _, form := range cases {
		_, err := svc.Exceptions.Add(ctx, form)
		require.ErrorIs(t, err, ErrValidation, "%+v", form)
	}
}

func TestExceptionUpdateAndList(t *testing.T) {
	svc, dao := newTestService(t)
	c := seedClinician(t, dao, "America/Chicago")
	ctx := context.Background()

	exc, err := svc.Exceptions.Add(ctx, ExceptionForm{
		ClinicianID:  c.ID,
		SpecificDate: "2024-06-03",
		StartTime:    "13:00",
		EndTime:      "15:00",
	})
	require.NoError(t, err)

	// form without a clinician id: the stored row supplies it
	updated, err := svc.Exceptions.Update(ctx, exc.ID, ExceptionForm{
		SpecificDate: "2024-06-03",
		StartTime:    "14:00",
		EndTime:      "16:00",
	})
	require.NoError(t, err)
	require.Equal(t, "14:00", updated.StartTime)
	require.Equal(t, c.ID, updated.ClinicianID)

	listed, err := svc.Exceptions.List(ctx, c.ID, "2024-06-01", "2024-06-07")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "14:00", listed[0].StartTime)

	// soft delete keeps the row, flagged
	require.NoError(t, svc.Exceptions.Delete(ctx, exc.ID))
	listed, err = svc.Exceptions.List(ctx, c.ID, "2024-06-01", "2024-06-07")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.True(t, listed[0].IsDeleted)

	_, err = svc.Exceptions.Update(ctx, "missing", ExceptionForm{})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Exceptions.Delete(ctx, "missing"), ErrNotFound)
}

func TestUpdateWeeklySlot(t *testing.T) {
	svc, dao := newTestService(t)
	c := seedClinician(t, dao, "America/Chicago")
	ctx := context.Background()

	require.NoError(t, svc.Exceptions.UpdateWeeklySlot(ctx, c.ID, WeeklySlotForm{
		Day:       "Tuesday",
		Slot:      2,
		StartTime: "10:00",
		EndTime:   "14:00",
	}))

	stored, err := dao.Clinicians.GetOne(c.ID)
	require.NoError(t, err)
	require.Equal(t, "10:00", stored.TuesdayStart2)
	require.Equal(t, "14:00", stored.TuesdayEnd2)

	// both ends empty clears the slot
	require.NoError(t, svc.Exceptions.UpdateWeeklySlot(ctx, c.ID, WeeklySlotForm{
		Day:  "monday",
		Slot: 1,
	}))
	stored, err = dao.Clinicians.GetOne(c.ID)
	require.NoError(t, err)
	require.Empty(t, stored.MondayStart1)
	require.Empty(t, stored.MondayEnd1)

	require.ErrorIs(t, svc.Exceptions.UpdateWeeklySlot(ctx, c.ID, WeeklySlotForm{
		Day: "someday", Slot: 1, StartTime: "09:00", EndTime: "12:00",
	}), ErrValidation)
	require.ErrorIs(t, svc.Exceptions.UpdateWeeklySlot(ctx, c.ID, WeeklySlotForm{
		Day: "monday", Slot: 4, StartTime: "09:00", EndTime: "12:00",
	}), ErrValidation)
	require.ErrorIs(t, svc.Exceptions.UpdateWeeklySlot(ctx, c.ID, WeeklySlotForm{
		Day: "monday", Slot: 1, StartTime: "12:00", EndTime: "09:00",
	}), ErrValidation)
	require.ErrorIs(t, svc.Exceptions.UpdateWeeklySlot(ctx, "missing", WeeklySlotForm{
		Day: "monday", Slot: 1, StartTime: "09:00", EndTime: "12:00",
	}), ErrNotFound)
}
