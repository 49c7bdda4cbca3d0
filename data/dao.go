package data

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DAO aggregates the per-model data access objects over one connection.
type DAO struct {
	db *gorm.DB

	Clinicians   *cliniciansDAO
	Exceptions   *exceptionsDAO
	Appointments *appointmentsDAO
	SyncedEvents *syncedEventsDAO
}

func NewDAO(path string) *DAO {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	must(err)

	must(db.AutoMigrate(
		&Clinician{},
		&AvailabilityException{},
		&Appointment{},
		&SyncedEvent{},
	))

	return newDAO(db)
}

func newDAO(db *gorm.DB) *DAO {
	return &DAO{
		db:           db,
		Clinicians:   newCliniciansDAO(db),
		Exceptions:   newExceptionsDAO(db),
		Appointments: newAppointmentsDAO(db),
		SyncedEvents: newSyncedEventsDAO(db),
	}
}

// RestartData wipes the tables and reloads the demo dataset.
func (d *DAO) RestartData() {
	tx := d.db.Begin()
	dataDown(tx)
	dataUp(tx)
	must(tx.Commit().Error)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
