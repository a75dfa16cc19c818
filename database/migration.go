package database

import (
	"log"

	"github.com/CaptnR/football-jersey-store/models"
	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return err
	}

	log.Println("AutoMigrate completed")
	return nil
}
