package database

import (
	"log"

	"github.com/nuestraboda/wedding-rsvp-api/internal/config"
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.Family{},
		&models.Guest{},
		&models.Rsvp{},
		&models.Host{},
		&models.APIKey{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
