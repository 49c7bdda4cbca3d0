package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

type exceptionsService struct {
	dao          *data.DAO
	availability *availabilityService
	logger       zerolog.Logger

	fetchTimeout time.Duration
}

// ExceptionForm is a date-specific override entry: one slot on one calendar
// day. Posting a form for a date with no other rows turns that date into an
// exception day.
type ExceptionForm struct {
	ClinicianID  string `json:"clinician_id"`
	SpecificDate string `json:"specific_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

func (f ExceptionForm) validate() error {
	if f.ClinicianID == "" {
		return validationf("clinician_id is required")
	}
	if _, err := common.ParseDate(f.SpecificDate); err != nil {
		return validationf("invalid specific_date %q", f.SpecificDate)
	}

	start, err := common.ParseClock(f.StartTime)
	if err != nil {
		return validationf("invalid start_time %q", f.StartTime)
	}
	end, err := common.ParseClock(f.EndTime)
	if err != nil {
		return validationf("invalid end_time %q", f.EndTime)
	}
	if start >= end {
		return validationf("start_time must precede end_time")
	}
	return nil
}

func (s *exceptionsService) List(ctx context.Context, clinicianID, from, to string) ([]data.AvailabilityException, error) {
	var excs []data.AvailabilityException
	err := withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		excs, err = s.dao.Exceptions.GetRange(clinicianID, from, to)
		return err
	})
	if err != nil {
		return nil, normalizeFetchErr("exceptions", err)
	}
	return excs, nil
}

func (s *exceptionsService) Add(ctx context.Context, form ExceptionForm) (data.AvailabilityException, error) {
	if err := form.validate(); err != nil {
		return data.AvailabilityException{}, err
	}

	exc := data.AvailabilityException{
		ID:           uuid.NewString(),
		ClinicianID:  form.ClinicianID,
		SpecificDate: form.SpecificDate,
		StartTime:    form.StartTime,
		EndTime:      form.EndTime,
	}
	if err := s.dao.Exceptions.Add(&exc); err != nil {
		return data.AvailabilityException{}, normalizeFetchErr("exception create", err)
	}

	s.availability.Invalidate(form.ClinicianID)
	return exc, nil
}

func (s *exceptionsService) Update(ctx context.Context, id string, form ExceptionForm) (data.AvailabilityException, error) {
	exc, err := s.dao.Exceptions.GetOne(id)
	if err != nil {
		return data.AvailabilityException{}, normalizeFetchErr("exception "+id, err)
	}

	form.ClinicianID = exc.ClinicianID
	if err := form.validate(); err != nil {
		return data.AvailabilityException{}, err
	}

	exc.SpecificDate = form.SpecificDate
	exc.StartTime = form.StartTime
	exc.EndTime = form.EndTime
	if err := s.dao.Exceptions.Update(&exc); err != nil {
		return data.AvailabilityException{}, normalizeFetchErr("exception update", err)
	}

	s.availability.Invalidate(exc.ClinicianID)
	return exc, nil
}

// Delete soft-deletes the row. The date keeps its exception coverage, so a
// date whose rows are all deleted is an explicit day off.
func (s *exceptionsService) Delete(ctx context.Context, id string) error {
	exc, err := s.dao.Exceptions.GetOne(id)
	if err != nil {
		return normalizeFetchErr("exception "+id, err)
	}

	if err := s.dao.Exceptions.SoftDelete(id); err != nil {
		return normalizeFetchErr("exception delete", err)
	}

	s.availability.Invalidate(exc.ClinicianID)
	return nil
}

// WeeklySlotForm updates one slot pair of the recurring pattern. Day names
// are matched case-insensitively against Sunday..Saturday.
type WeeklySlotForm struct {
	Day       string `json:"day"`
	Slot      int    `json:"slot"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *exceptionsService) UpdateWeeklySlot(ctx context.Context, clinicianID string, form WeeklySlotForm) error {
	weekday, err := common.ParseWeekday(form.Day)
	if err != nil {
		return validationf("invalid day %q", form.Day)
	}
	if form.Slot < 1 || form.Slot > 3 {
		return validationf("slot %d outside 1..3", form.Slot)
	}

	// both ends empty clears the slot; otherwise both must be valid
	if form.StartTime != "" || form.EndTime != "" {
		start, err := common.ParseClock(form.StartTime)
		if err != nil {
			return validationf("invalid start_time %q", form.StartTime)
		}
		end, err := common.ParseClock(form.EndTime)
		if err != nil {
			return validationf("invalid end_time %q", form.EndTime)
		}
		if start >= end {
			return validationf("start_time must precede end_time")
		}
	}

	if err := s.dao.Clinicians.UpdateWeeklySlot(clinicianID, weekday, form.Slot, form.StartTime, form.EndTime); err != nil {
		return normalizeFetchErr("clinician "+clinicianID, err)
	}

	s.availability.Invalidate(clinicianID)
	return nil
}
