package database

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/models"
)

// Seed loads a small development catalog and an admin account when SEED=true.
// It is a no-op if any product already exists.
func Seed(db *gorm.DB) {
	if os.Getenv("SEED") != "true" {
		return
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return
	}

	classics := models.Category{Name: "Classics", Position: 1}
	specials := models.Category{Name: "Specials", Position: 2}
	db.Create(&classics)
	db.Create(&specials)

	products := []models.Product{
		{Name: "Margherita", Description: "Tomato, mozzarella, basil", PriceCents: 900, CategoryID: &classics.ID, Featured: true, Available: true},
		{Name: "Marinara", Description: "Tomato, garlic, oregano", PriceCents: 800, CategoryID: &classics.ID, Available: true},
		{Name: "Quattro Formaggi", Description: "Four cheeses", PriceCents: 1250, CategoryID: &specials.ID, Available: true},
		{Name: "Diavola", Description: "Spicy salami, chili oil", PriceCents: 1150, CategoryID: &specials.ID, Featured: true, Available: true},
	}
	if err := db.Create(&products).Error; err != nil {
		log.Printf("❌ Seed products failed: %v", err)
		return
	}

	supplements := []models.Supplement{
		{Name: "Extra cheese", PriceCents: 150, Available: true, Active: true},
		{Name: "Mushrooms", PriceCents: 120, Available: true, Active: true},
		{Name: "Burrata", PriceCents: 300, Available: true, Active: true},
	}
	if err := db.Create(&supplements).Error; err != nil {
		log.Printf("❌ Seed supplements failed: %v", err)
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(os.Getenv("SEED_ADMIN_PASSWORD")), bcrypt.DefaultCost)
	admin := models.User{
		Email:        "admin@fornodoro.local",
		PasswordHash: string(hash),
		Name:         "Seed Admin",
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ Seed admin failed: %v", err)
		return
	}

	log.Println("✅ Seeded development catalog and admin user")
}
