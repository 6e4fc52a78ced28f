package database

import (
	"log"

	"github.com/unievents/venue-booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Equipment{},
		&models.Booking{},
		&models.BookingEquipment{},
		&models.Notification{},
		&models.AuditLog{},
		&models.MaintenanceRequest{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Exclusion constraint: two approved bookings on the same venue can never
	// hold overlapping [start, end) windows, even if application-level checks
	// are bypassed. Half-open range, so touching boundaries are allowed.
	// Startup fails if either statement does (e.g. the DB role cannot create
	// extensions); running without the constraint is not an option.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_double_approval
			EXCLUDE USING gist (
				venue_id WITH =,
				tsrange(start_datetime, end_datetime, '[)') WITH &&
			) WHERE (status = 'approved' AND deleted_at IS NULL);
		EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
		END $$
	`).Error; err != nil {
		log.Fatalf("failed to create booking exclusion constraint: %v", err)
	}

	return db
}
