package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"sublet_backend/internal/config"
	"sublet_backend/internal/logger"
	"sublet_backend/internal/models"
)

// Справочники, которые ожидает клиент. Порядок задает id на чистой базе.
var (
	defaultBuildingTypes = []string{"Apartment", "House", "Condo"}
	defaultAmenities     = []string{"WiFi", "AC", "Laundry", "Parking", "Gym"}
)

// Connect открывает пул соединений с настройками из config.yaml
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.Server.Env != "development" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей. Порядок важен для внешних ключей.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Amenity{},
		&models.BuildingType{},
		&models.Location{},
		&models.Listing{},
		&models.Photo{},
		&models.RenterProfile{},
		&models.RenterSwipe{},
		&models.ListingSwipe{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}

// Seed заполняет справочники; повторный запуск ничего не меняет
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range defaultBuildingTypes {
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
				Create(&models.BuildingType{Name: name}).Error; err != nil {
				return fmt.Errorf("seed building type %q: %w", name, err)
			}
		}
		for _, name := range defaultAmenities {
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
				Create(&models.Amenity{Name: name}).Error; err != nil {
				return fmt.Errorf("seed amenity %q: %w", name, err)
			}
		}
		return nil
	})
}
