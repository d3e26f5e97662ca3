package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-core/internal/config"
	"github.com/BruksfildServices01/booking-core/internal/models"
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
		&models.Tenant{},
		&models.Staff{},
		&models.Service{},
		&models.AvailabilityRule{},
		&models.TimeOffException{},
		&models.Booking{},
		&models.BookingHold{},
		&models.WaitlistEntry{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := db.Exec(`
        UPDATE tenants
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `).Error; err != nil {
		log.Printf("timezone backfill failed: %v", err)
	}

	// Exclusão por sobreposição de faixa em holds e em bookings
	// ocupantes. Sob READ COMMITTED duas transações podem contar
	// zero conflitos e inserir as duas; a constraint é quem garante
	// vencedor único. Sem ela o processo não pode subir.
	mustExec(db, `CREATE EXTENSION IF NOT EXISTS btree_gist`)

	mustExec(db, `
        ALTER TABLE booking_holds
        DROP CONSTRAINT IF EXISTS booking_holds_no_overlap
    `)
	mustExec(db, `
        ALTER TABLE booking_holds
        ADD CONSTRAINT booking_holds_no_overlap
        EXCLUDE USING gist (
            tenant_id WITH =,
            staff_id WITH =,
            tsrange(start_time, end_time) WITH &&
        )
    `)

	mustExec(db, `
        ALTER TABLE bookings
        DROP CONSTRAINT IF EXISTS bookings_no_overlap
    `)
	mustExec(db, `
        ALTER TABLE bookings
        ADD CONSTRAINT bookings_no_overlap
        EXCLUDE USING gist (
            tenant_id WITH =,
            staff_id WITH =,
            tsrange(start_time, end_time) WITH &&
        ) WHERE (status IN ('pending', 'confirmed'))
    `)

	return db
}

func mustExec(db *gorm.DB, sql string) {
	if err := db.Exec(sql).Error; err != nil {
		log.Fatalf("failed to install db constraint: %v", err)
	}
}
