//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/unievents/venue-booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "venue_booking_test"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	dropTables()

	if err := testDB.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Equipment{},
		&models.Booking{},
		&models.BookingEquipment{},
		&models.Notification{},
		&models.AuditLog{},
		&models.MaintenanceRequest{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist")
	testDB.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_double_approval
			EXCLUDE USING gist (
				venue_id WITH =,
				tsrange(start_datetime, end_datetime, '[)') WITH &&
			) WHERE (status = 'approved' AND deleted_at IS NULL);
		EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
		END $$
	`)

	code := m.Run()

	dropTables()
	os.Exit(code)
}

func dropTables() {
	for _, table := range []string{
		"maintenance_requests", "audit_logs", "notifications",
		"booking_equipment", "bookings", "equipment", "venues", "users",
	} {
		testDB.Exec("DROP TABLE IF EXISTS " + table)
	}
}

func cleanTables() {
	for _, table := range []string{
		"maintenance_requests", "audit_logs", "notifications",
		"booking_equipment", "bookings",
	} {
		testDB.Exec("DELETE FROM " + table)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
