package db

import (
	"log"
	"time"

	"github.com/estudiobarber/turnos-api/internal/config"
	"github.com/estudiobarber/turnos-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barber{},
		&models.Service{},
		&models.Customer{},
		&models.User{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// The database is the arbiter for concurrent bookings: two non-cancelled
	// appointments for the same barber must never hold overlapping intervals,
	// even if both requests pass the pre-insert check at the same time.
	// Booting without the constraint would silently allow overbooking, so any
	// failure here is fatal.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to enable btree_gist: %v", err)
	}
	if err := db.Exec(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`).Error; err != nil {
		log.Fatalf("failed to drop overlap constraint: %v", err)
	}
	if err := db.Exec(overlapConstraintDDL).Error; err != nil {
		log.Fatalf("failed to install overlap constraint: %v", err)
	}

	return db
}

// start_time/end_time migrate as timestamptz, so the range type must be
// tstzrange.
const overlapConstraintDDL = `
    ALTER TABLE appointments
    ADD CONSTRAINT appointments_no_overlap
    EXCLUDE USING gist (
        barber_id WITH =,
        tstzrange(start_time, end_time) WITH &&
    )
    WHERE (status <> 'cancelado')
`
