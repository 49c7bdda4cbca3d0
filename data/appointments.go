package data

import (
	"time"

	"gorm.io/gorm"
)

type appointmentsDAO struct {
	db *gorm.DB
}

func newAppointmentsDAO(db *gorm.DB) *appointmentsDAO {
	return &appointmentsDAO{db}
}

func (d *appointmentsDAO) GetOne(id string) (Appointment, error) {
	appt := Appointment{}
	err := d.db.First(&appt, "id = ?", id).Error
	return appt, err
}

// GetRange returns non-cancelled appointments overlapping [from, to).
func (d *appointmentsDAO) GetRange(clinicianID string, from, to time.Time) ([]Appointment, error) {
	appts := make([]Appointment, 0)
	err := d.db.
		Where("clinician_id = ?", clinicianID).
		Where("status <> ?", StatusCancelled).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at").
		Find(&appts).Error
	return appts, err
}

func (d *appointmentsDAO) GetSeries(seriesID string) ([]Appointment, error) {
	appts := make([]Appointment, 0)
	err := d.db.
		Where("series_id = ?", seriesID).
		Order("start_at").
		Find(&appts).Error
	return appts, err
}

// GetSeriesFrom returns series instances whose start is at or after from.
func (d *appointmentsDAO) GetSeriesFrom(seriesID string, from time.Time) ([]Appointment, error) {
	appts := make([]Appointment, 0)
	err := d.db.
		Where("series_id = ? AND start_at >= ?", seriesID, from).
		Order("start_at").
		Find(&appts).Error
	return appts, err
}

func (d *appointmentsDAO) Add(appt *Appointment) error {
	return d.db.Create(appt).Error
}

// AddBatch inserts a set of expanded series instances atomically: either the
// whole series exists or none of it does.
func (d *appointmentsDAO) AddBatch(appts []Appointment) (err error) {
	tx := d.db.Begin()
	defer func() {
		if err == nil {
			tx.Commit()
		} else {
			tx.Rollback()
		}
	}()

	for i := range appts {
		if err = tx.Create(&appts[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (d *appointmentsDAO) Update(appt *Appointment) error {
	res := d.db.Model(&Appointment{}).Where("id = ?", appt.ID).Updates(map[string]interface{}{
		"start_at": appt.StartAt,
		"end_at":   appt.EndAt,
		"type":     appt.Type,
		"status":   appt.Status,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *appointmentsDAO) UpdateStatus(id, status string) error {
	res := d.db.Model(&Appointment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *appointmentsDAO) Delete(id string) error {
	return d.db.Delete(&Appointment{}, "id = ?", id).Error
}

func (d *appointmentsDAO) DeleteSeries(seriesID string) error {
	return d.db.Delete(&Appointment{}, "series_id = ?", seriesID).Error
}

// DeleteSeriesFrom removes the targeted instance and every later one in the
// same series.
func (d *appointmentsDAO) DeleteSeriesFrom(seriesID string, from time.Time) error {
	return d.db.Delete(&Appointment{}, "series_id = ? AND start_at >= ?", seriesID, from).Error
}
