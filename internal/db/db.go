package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Open connects to PostgreSQL and sizes the pool from cfg. Driver errors are
// translated so unique violations surface as gorm.ErrDuplicatedKey.
func Open(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDev() {
		level = gormlogger.Info
	}

	gl := log.With().Str("component", "gorm").Logger()

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger: gormlogger.New(&gl, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates or updates every table and index the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Hospital{},
		&models.Doctor{},
		&models.Booking{},
		&models.ClinicChat{},
		&models.ClinicChatMessage{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
