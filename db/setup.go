package db

import (
	"github.com/sura-dev/sura/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.NGO{},
		&models.Restaurant{},
		&models.Donation{},
		&models.DonationEvent{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedNGOs inserts the initial NGO directory when the table is empty.
// The directory is immutable after seeding.
func SeedNGOs() error {
	var count int64

	if err := DB.Model(&models.NGO{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	ngos := []models.NGO{
		{Name: "Helping Hands", Location: "Tambaram", Email: "contact@helpinghands.org", Contact: "9876543210"},
		{Name: "Smile Foundation", Location: "Pallavaram", Email: "hello@smilefoundation.org", Contact: "9554862315"},
		{Name: "Food for all", Location: "Gundiy", Email: "team@foodforall.org", Contact: "8777564354"},
		{Name: "Hope Home", Location: "Tambaram", Email: "pickup@hopehome.org", Contact: "6655884426"},
		{Name: "Care & Share", Location: "Tambaram", Email: "ops@careandshare.org", Contact: "7765894159"},
	}

	return DB.Create(&ngos).Error
}
