package migration

import (
	"fmt"
	"log"

	"Recipe-Share-Backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RefreshToken{}); err != nil {
		log.Fatalf("Error migrating refresh token database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Fatalf("Error migrating category database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Favorite{}); err != nil {
		log.Fatalf("Error migrating favorite database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Rating{}); err != nil {
		log.Fatalf("Error migrating rating database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Comment{}); err != nil {
		log.Fatalf("Error migrating comment database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
