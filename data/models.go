package data

import (
	"time"
)

// Clinician carries identity plus the recurring weekly availability encoded
// as flat columns: three independent start/end pairs per weekday, stored as
// "HH:MM" strings with empty meaning "no slot".
type Clinician struct {
	ID        string `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	TimeZone  string `json:"time_zone"`
	IsActive  bool   `json:"is_active"`

	MondayStart1    string `json:"monday_start_1" gorm:"column:monday_start_1"`
	MondayEnd1      string `json:"monday_end_1" gorm:"column:monday_end_1"`
	MondayStart2    string `json:"monday_start_2" gorm:"column:monday_start_2"`
	MondayEnd2      string `json:"monday_end_2" gorm:"column:monday_end_2"`
	MondayStart3    string `json:"monday_start_3" gorm:"column:monday_start_3"`
	MondayEnd3      string `json:"monday_end_3" gorm:"column:monday_end_3"`
	TuesdayStart1   string `json:"tuesday_start_1" gorm:"column:tuesday_start_1"`
	TuesdayEnd1     string `json:"tuesday_end_1" gorm:"column:tuesday_end_1"`
	TuesdayStart2   string `json:"tuesday_start_2" gorm:"column:tuesday_start_2"`
	TuesdayEnd2     string `json:"tuesday_end_2" gorm:"column:tuesday_end_2"`
	TuesdayStart3   string `json:"tuesday_start_3" gorm:"column:tuesday_start_3"`
	TuesdayEnd3     string `json:"tuesday_end_3" gorm:"column:tuesday_end_3"`
	WednesdayStart1 string `json:"wednesday_start_1" gorm:"column:wednesday_start_1"`
	WednesdayEnd1   string `json:"wednesday_end_1" gorm:"column:wednesday_end_1"`
	WednesdayStart2 string `json:"wednesday_start_2" gorm:"column:wednesday_start_2"`
	WednesdayEnd2   string `json:"wednesday_end_2" gorm:"column:wednesday_end_2"`
	WednesdayStart3 string `json:"wednesday_start_3" gorm:"column:wednesday_start_3"`
	WednesdayEnd3   string `json:"wednesday_end_3" gorm:"column:wednesday_end_3"`
	ThursdayStart1  string `json:"thursday_start_1" gorm:"column:thursday_start_1"`
	ThursdayEnd1    string `json:"thursday_end_1" gorm:"column:thursday_end_1"`
	ThursdayStart2  string `json:"thursday_start_2" gorm:"column:thursday_start_2"`
	ThursdayEnd2    string `json:"thursday_end_2" gorm:"column:thursday_end_2"`
	ThursdayStart3  string `json:"thursday_start_3" gorm:"column:thursday_start_3"`
	ThursdayEnd3    string `json:"thursday_end_3" gorm:"column:thursday_end_3"`
	FridayStart1    string `json:"friday_start_1" gorm:"column:friday_start_1"`
	FridayEnd1      string `json:"friday_end_1" gorm:"column:friday_end_1"`
	FridayStart2    string `json:"friday_start_2" gorm:"column:friday_start_2"`
	FridayEnd2      string `json:"friday_end_2" gorm:"column:friday_end_2"`
	FridayStart3    string `json:"friday_start_3" gorm:"column:friday_start_3"`
	FridayEnd3      string `json:"friday_end_3" gorm:"column:friday_end_3"`
	SaturdayStart1  string `json:"saturday_start_1" gorm:"column:saturday_start_1"`
	SaturdayEnd1    string `json:"saturday_end_1" gorm:"column:saturday_end_1"`
	SaturdayStart2  string `json:"saturday_start_2" gorm:"column:saturday_start_2"`
	SaturdayEnd2    string `json:"saturday_end_2" gorm:"column:saturday_end_2"`
	SaturdayStart3  string `json:"saturday_start_3" gorm:"column:saturday_start_3"`
	SaturdayEnd3    string `json:"saturday_end_3" gorm:"column:saturday_end_3"`
	SundayStart1    string `json:"sunday_start_1" gorm:"column:sunday_start_1"`
	SundayEnd1      string `json:"sunday_end_1" gorm:"column:sunday_end_1"`
	SundayStart2    string `json:"sunday_start_2" gorm:"column:sunday_start_2"`
	SundayEnd2      string `json:"sunday_end_2" gorm:"column:sunday_end_2"`
	SundayStart3    string `json:"sunday_start_3" gorm:"column:sunday_start_3"`
	SundayEnd3      string `json:"sunday_end_3" gorm:"column:sunday_end_3"`

	Exceptions   []AvailabilityException `json:"-" gorm:"foreignKey:ClinicianID"`
	Appointments []Appointment           `json:"-" gorm:"foreignKey:ClinicianID"`
	SyncedEvents []SyncedEvent           `json:"-" gorm:"foreignKey:ClinicianID"`
}

// SlotColumn is one raw start/end column pair before any parsing.
type SlotColumn struct {
	Start string
	End   string
}

// WeeklyColumns maps the flat slot columns into a fixed-size structure keyed
// by weekday. This is the only place in the repository that touches the
// column names; everything downstream works with the decoded form.
func (c *Clinician) WeeklyColumns() map[time.Weekday][3]SlotColumn {
	return map[time.Weekday][3]SlotColumn{
		time.Monday: {
			{Start: c.MondayStart1, End: c.MondayEnd1},
			{Start: c.MondayStart2, End: c.MondayEnd2},
			{Start: c.MondayStart3, End: c.MondayEnd3},
		},
		time.Tuesday: {
			{Start: c.TuesdayStart1, End: c.TuesdayEnd1},
			{Start: c.TuesdayStart2, End: c.TuesdayEnd2},
			{Start: c.TuesdayStart3, End: c.TuesdayEnd3},
		},
		time.Wednesday: {
			{Start: c.WednesdayStart1, End: c.WednesdayEnd1},
			{Start: c.WednesdayStart2, End: c.WednesdayEnd2},
			{Start: c.WednesdayStart3, End: c.WednesdayEnd3},
		},
		time.Thursday: {
			{Start: c.ThursdayStart1, End: c.ThursdayEnd1},
			{Start: c.ThursdayStart2, End: c.ThursdayEnd2},
			{Start: c.ThursdayStart3, End: c.ThursdayEnd3},
		},
		time.Friday: {
			{Start: c.FridayStart1, End: c.FridayEnd1},
			{Start: c.FridayStart2, End: c.FridayEnd2},
			{Start: c.FridayStart3, End: c.FridayEnd3},
		},
		time.Saturday: {
			{Start: c.SaturdayStart1, End: c.SaturdayEnd1},
			{Start: c.SaturdayStart2, End: c.SaturdayEnd2},
			{Start: c.SaturdayStart3, End: c.SaturdayEnd3},
		},
		time.Sunday: {
			{Start: c.SundayStart1, End: c.SundayEnd1},
			{Start: c.SundayStart2, End: c.SundayEnd2},
			{Start: c.SundayStart3, End: c.SundayEnd3},
		},
	}
}

// AvailabilityException replaces the weekly pattern for one calendar day.
// Non-deleted rows for a date are the complete availability for that date;
// a date whose rows are all soft-deleted has zero availability.
type AvailabilityException struct {
	ID           string `json:"id" gorm:"primaryKey"`
	ClinicianID  string `json:"clinician_id" gorm:"index"`
	SpecificDate string `json:"specific_date" gorm:"index"` // "2006-01-02"
	StartTime    string `json:"start_time"`                 // "HH:MM"
	EndTime      string `json:"end_time"`
	IsDeleted    bool   `json:"is_deleted"`
}

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Internal blocked time has two historical encodings: older rows carry the
// reserved client id, newer rows carry the type tag. Both must keep working.
const (
	BlockedClientID = "00000000-0000-0000-0000-000000000001"
	BlockedType     = "blocked_time"
)

// BusyLabel is the only text ever shown for externally synced events.
const BusyLabel = "Busy"

type Appointment struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ClientID    string    `json:"client_id" gorm:"index"`
	ClinicianID string    `json:"clinician_id" gorm:"index"`
	StartAt     time.Time `json:"start_at" gorm:"index"` // UTC
	EndAt       time.Time `json:"end_at"`                // UTC
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	SeriesID    string    `json:"series_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SyncedEvent is a read-only projection of an external calendar event. Only
// busy events participate in scheduling, and the original title is never
// stored or exposed.
type SyncedEvent struct {
	ID                    string    `json:"id" gorm:"primaryKey"`
	ClinicianID           string    `json:"clinician_id" gorm:"uniqueIndex:idx_synced_clinician_event"`
	GoogleCalendarEventID string    `json:"google_calendar_event_id" gorm:"uniqueIndex:idx_synced_clinician_event"`
	StartAt               time.Time `json:"start_at" gorm:"index"` // UTC
	EndAt                 time.Time `json:"end_at"`                // UTC
	IsBusy                bool      `json:"is_busy"`
}
