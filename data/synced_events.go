package data

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type syncedEventsDAO struct {
	db *gorm.DB
}

func newSyncedEventsDAO(db *gorm.DB) *syncedEventsDAO {
	return &syncedEventsDAO{db}
}

func (d *syncedEventsDAO) GetAll(clinicianID string) ([]SyncedEvent, error) {
	events := make([]SyncedEvent, 0)
	err := d.db.
		Where("clinician_id = ?", clinicianID).
		Order("start_at").
		Find(&events).Error
	return events, err
}

// BusyRange returns busy events overlapping [from, to). Non-busy events never
// participate in scheduling.
func (d *syncedEventsDAO) BusyRange(clinicianID string, from, to time.Time) ([]SyncedEvent, error) {
	events := make([]SyncedEvent, 0)
	err := d.db.
		Where("clinician_id = ? AND is_busy = ?", clinicianID, true).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at").
		Find(&events).Error
	return events, err
}

// Upsert keys on (clinician_id, google_calendar_event_id) so re-syncing the
// same external event updates the stored times instead of duplicating rows.
func (d *syncedEventsDAO) Upsert(ev *SyncedEvent) error {
	return d.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "clinician_id"}, {Name: "google_calendar_event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"start_at", "end_at", "is_busy",
		}),
	}).Create(ev).Error
}

// DeleteMissing drops rows whose external event id was absent from the most
// recent sync batch.
func (d *syncedEventsDAO) DeleteMissing(clinicianID string, keep []string) error {
	q := d.db.Where("clinician_id = ?", clinicianID)
	if len(keep) > 0 {
		q = q.Where("google_calendar_event_id NOT IN ?", keep)
	}
	return q.Delete(&SyncedEvent{}).Error
}
