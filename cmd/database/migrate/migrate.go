package migration

import (
	"fmt"
	"log"

	"MediPlan-Backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MedicalReport{}); err != nil {
		log.Fatalf("Error migrating medical report database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DietPlan{}); err != nil {
		log.Fatalf("Error migrating diet plan database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
