package data

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func dataDown(tx *gorm.DB) {
	must(tx.Exec("DELETE FROM `clinicians`").Error)
	must(tx.Exec("DELETE FROM `availability_exceptions`").Error)
	must(tx.Exec("DELETE FROM `appointments`").Error)
	must(tx.Exec("DELETE FROM `synced_events`").Error)
}

func dataUp(tx *gorm.DB) {
	today := DateNow() // date only
	tWeekDay := int(today.Weekday())

	nextWeekDay := func(day int, weeks ...int) time.Time {
		var week int
		if len(weeks) > 0 {
			week = weeks[0]
		}

		next := (7 + day - tWeekDay) % 7
		return today.AddDate(0, 0, next+7*week)
	}

	newAppointment := func(clinicianID string, date time.Time, from, dur int) Appointment {
		return Appointment{
			ID:          uuid.NewString(),
			ClientID:    uuid.NewString(),
			ClinicianID: clinicianID,
			StartAt:     date.Add(time.Duration(from) * time.Minute),
			EndAt:       date.Add(time.Duration(from+dur) * time.Minute),
			Type:        "therapy_session",
			Status:      StatusScheduled,
			CreatedAt:   Now(),
			UpdatedAt:   Now(),
		}
	}

	newBlockedTime := func(clinicianID string, date time.Time, from, dur int) Appointment {
		a := newAppointment(clinicianID, date, from, dur)
		a.ClientID = BlockedClientID
		a.Type = BlockedType
		return a
	}

	newBusyEvent := func(clinicianID string, date time.Time, from, dur int) SyncedEvent {
		return SyncedEvent{
			ID:                    uuid.NewString(),
			ClinicianID:           clinicianID,
			GoogleCalendarEventID: fmt.Sprintf("gcal-%d", rand.Intn(1_000_000)),
			StartAt:               date.Add(time.Duration(from) * time.Minute),
			EndAt:                 date.Add(time.Duration(from+dur) * time.Minute),
			IsBusy:                true,
		}
	}

	hubbardID := uuid.NewString()
	weeksID := uuid.NewString()
	muellerID := uuid.NewString()

	clinicians := []Clinician{
		{
			ID:        hubbardID,
			FirstName: "Conrad",
			LastName:  "Hubbard",
			Email:     demoEmail("Conrad", "Hubbard"),
			TimeZone:  "America/Chicago",
			IsActive:  true,

			// weekdays 9:00-12:00 and 13:00-17:00
			MondayStart1: "09:00", MondayEnd1: "12:00",
			MondayStart2: "13:00", MondayEnd2: "17:00",
			TuesdayStart1: "09:00", TuesdayEnd1: "12:00",
			TuesdayStart2: "13:00", TuesdayEnd2: "17:00",
			WednesdayStart1: "09:00", WednesdayEnd1: "12:00",
			WednesdayStart2: "13:00", WednesdayEnd2: "17:00",
			ThursdayStart1: "09:00", ThursdayEnd1: "12:00",
			ThursdayStart2: "13:00", ThursdayEnd2: "17:00",
			FridayStart1: "09:00", FridayEnd1: "15:00",
		},
		{
			ID:        weeksID,
			FirstName: "Debra",
			LastName:  "Weeks",
			Email:     demoEmail("Debra", "Weeks"),
			TimeZone:  "America/New_York",
			IsActive:  true,

			// mon, wed 7:00-15:00; tue, thu 12:00-20:00
			MondayStart1: "07:00", MondayEnd1: "15:00",
			WednesdayStart1: "07:00", WednesdayEnd1: "15:00",
			TuesdayStart1: "12:00", TuesdayEnd1: "20:00",
			ThursdayStart1: "12:00", ThursdayEnd1: "20:00",
			// short saturday morning with an evening block
			SaturdayStart1: "09:00", SaturdayEnd1: "12:00",
			SaturdayStart2: "18:00", SaturdayEnd2: "21:00",
		},
		{
			ID:        muellerID,
			FirstName: "Barnett",
			LastName:  "Mueller",
			Email:     demoEmail("Barnett", "Mueller"),
			TimeZone:  "America/Los_Angeles",
			IsActive:  true,

			// mon, wed, fri 10:00-18:00
			MondayStart1: "10:00", MondayEnd1: "18:00",
			WednesdayStart1: "10:00", WednesdayEnd1: "18:00",
			FridayStart1: "10:00", FridayEnd1: "18:00",
		},
	}

	must(tx.Create(clinicians).Error)

	exceptions := []AvailabilityException{
		// next monday Hubbard works the afternoon only
		{
			ID:           uuid.NewString(),
			ClinicianID:  hubbardID,
			SpecificDate: nextWeekDay(1).Format("2006-01-02"),
			StartTime:    "13:00",
			EndTime:      "17:00",
		},
		// the monday after that is a day off: the only row is soft-deleted
		{
			ID:           uuid.NewString(),
			ClinicianID:  hubbardID,
			SpecificDate: nextWeekDay(1, 1).Format("2006-01-02"),
			StartTime:    "09:00",
			EndTime:      "12:00",
			IsDeleted:    true,
		},
		// Weeks swaps next thursday to a morning shift
		{
			ID:           uuid.NewString(),
			ClinicianID:  weeksID,
			SpecificDate: nextWeekDay(4).Format("2006-01-02"),
			StartTime:    "08:00",
			EndTime:      "13:00",
		},
	}

	must(tx.Create(exceptions).Error)

	appointments := []Appointment{
		newAppointment(hubbardID, nextWeekDay(2), 9*60+30, 50),  // next tue 9:30
		newAppointment(hubbardID, nextWeekDay(3), 14*60, 50),    // next wed 14:00
		newAppointment(weeksID, nextWeekDay(1), 8*60, 50),       // next mon 8:00
		newAppointment(weeksID, nextWeekDay(4, 1), 13*60, 50),   // after next thu 13:00
		newBlockedTime(hubbardID, nextWeekDay(4), 12*60, 60),    // next thu lunch block
		newBlockedTime(muellerID, nextWeekDay(5), 15*60, 120),   // next fri afternoon block
	}

	must(tx.Create(appointments).Error)

	events := []SyncedEvent{
		newBusyEvent(hubbardID, nextWeekDay(3), 16*60, 60),  // next wed 16:00
		newBusyEvent(weeksID, nextWeekDay(2), 18*60, 90),    // next tue 18:00
		newBusyEvent(muellerID, nextWeekDay(1), 11*60, 120), // next mon 11:00
	}

	must(tx.Create(events).Error)
}

func demoEmail(first, last string) string {
	return fmt.Sprintf("%s.%s@valorwell.demo", strings.ToLower(first), strings.ToLower(last))
}
