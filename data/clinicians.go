package data

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type cliniciansDAO struct {
	db *gorm.DB
}

func newCliniciansDAO(db *gorm.DB) *cliniciansDAO {
	return &cliniciansDAO{db}
}

func (d *cliniciansDAO) Add(c *Clinician) error {
	return d.db.Create(c).Error
}

func (d *cliniciansDAO) GetOne(id string) (Clinician, error) {
	clinician := Clinician{}
	err := d.db.First(&clinician, "id = ?", id).Error
	return clinician, err
}

func (d *cliniciansDAO) GetAll(activeOnly bool) ([]Clinician, error) {
	clinicians := make([]Clinician, 0)
	q := d.db
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&clinicians).Error
	return clinicians, err
}

// weekday column prefixes, indexed by time.Weekday
var weekdayColumns = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// UpdateWeeklySlot writes one start/end column pair of the recurring
// pattern. Empty strings clear the slot. Slot numbers run 1..3.
func (d *cliniciansDAO) UpdateWeeklySlot(id string, weekday time.Weekday, slot int, start, end string) error {
	if slot < 1 || slot > 3 {
		return fmt.Errorf("slot number %d out of range", slot)
	}

	prefix := weekdayColumns[weekday]
	updates := map[string]interface{}{
		fmt.Sprintf("%s_start_%d", prefix, slot): start,
		fmt.Sprintf("%s_end_%d", prefix, slot):   end,
	}

	res := d.db.Model(&Clinician{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *cliniciansDAO) UpdateTimeZone(id, zone string) error {
	res := d.db.Model(&Clinician{}).Where("id = ?", id).Update("time_zone", zone)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
