package database

import (
	"fmt"
	"time"

	"hospital-backend/internal/config"
	"hospital-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect initializes and returns a GORM database connection
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.GinMode == "release" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database instance")
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().Str("database", cfg.Database.Database).Msg("connected to database")

	return db
}

// Migrate creates or updates the schema for all registered models
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Patient{},
		&models.Appointment{},
		&models.Consultation{},
		&models.Ward{},
		&models.Bed{},
		&models.Admission{},
		&models.Medicine{},
		&models.DrugInteraction{},
		&models.Prescription{},
		&models.PrescriptionItem{},
		&models.LabTest{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.HospitalConfig{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to run schema migration")
	}
}
