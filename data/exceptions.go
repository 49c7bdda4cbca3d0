package data

import (
	"gorm.io/gorm"
)

type exceptionsDAO struct {
	db *gorm.DB
}

func newExceptionsDAO(db *gorm.DB) *exceptionsDAO {
	return &exceptionsDAO{db}
}

func (d *exceptionsDAO) GetOne(id string) (AvailabilityException, error) {
	exc := AvailabilityException{}
	err := d.db.First(&exc, "id = ?", id).Error
	return exc, err
}

// GetRange returns every exception row, deleted ones included, whose date
// falls in [from, to]. Soft-deleted rows still mark a date as excepted.
func (d *exceptionsDAO) GetRange(clinicianID, from, to string) ([]AvailabilityException, error) {
	excs := make([]AvailabilityException, 0)
	err := d.db.
		Where("clinician_id = ?", clinicianID).
		Where("specific_date >= ? AND specific_date <= ?", from, to).
		Order("specific_date, start_time").
		Find(&excs).Error
	return excs, err
}

func (d *exceptionsDAO) Add(exc *AvailabilityException) error {
	return d.db.Create(exc).Error
}

func (d *exceptionsDAO) Update(exc *AvailabilityException) error {
	res := d.db.Model(&AvailabilityException{}).Where("id = ?", exc.ID).Updates(map[string]interface{}{
		"specific_date": exc.SpecificDate,
		"start_time":    exc.StartTime,
		"end_time":      exc.EndTime,
		"is_deleted":    exc.IsDeleted,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete keeps the row so the date stays excepted instead of silently
// falling back to the weekly pattern.
func (d *exceptionsDAO) SoftDelete(id string) error {
	res := d.db.Model(&AvailabilityException{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
