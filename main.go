package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	checkoutControllers "github.com/fornodoro/pizzeria-api/controllers/checkout"
	"github.com/fornodoro/pizzeria-api/database"
	"github.com/fornodoro/pizzeria-api/models"
	"github.com/fornodoro/pizzeria-api/routes"
)

// Carts untouched for this long get swept by the nightly cleanup.
const staleCartAge = 30 * 24 * time.Hour

func main() {
	log.Println("✅ Starting pizzeria API...")

	// Load environment variables
	_ = godotenv.Load()

	db := database.Init()
	database.Seed(db)

	// Gin setup
	r := gin.Default()

	// CORS settings: storefront and admin dashboard are external consumers
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, checkoutControllers.NewStripeProvider())

	// Sweep stale carts nightly at 3 AM
	go startDailySweepAtFixedTime(db, 3, 0)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// startDailySweepAtFixedTime removes stale cart items daily at a fixed hour.
func startDailySweepAtFixedTime(db *gorm.DB, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next cart sweep scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		sweepStaleCarts(db)
	}
}

// sweepStaleCarts deletes cart items that have not been touched within
// staleCartAge. Orders are never affected; they own their own snapshots.
func sweepStaleCarts(db *gorm.DB) {
	cutoff := time.Now().Add(-staleCartAge)

	result := db.Where("added_at < ?", cutoff).Delete(&models.CartItem{})
	if result.Error != nil {
		log.Printf("❌ Cart sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("🗑️ Swept %d stale cart items", result.RowsAffected)
	}
}
