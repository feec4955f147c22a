package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/models"
)

// Init opens the postgres connection from DATABASE_URL or the discrete DB_*
// variables and migrates the schema.
func Init() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	} else {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	return db
}

// Migrate runs AutoMigrate for every entity. Shared with the test setup so
// the in-memory schema matches production.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Supplement{},
		&models.ProductSupplement{},
		&models.Cart{},
		&models.CartItem{},
		&models.CartItemSupplement{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
}
