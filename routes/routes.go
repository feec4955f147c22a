package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	checkoutControllers "github.com/fornodoro/pizzeria-api/controllers/checkout"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, provider checkoutControllers.PaymentProvider) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog reads
	SetupCatalogRoutes(r, db)

	// Bearer-token user routes (profile, addresses, cart, orders)
	SetupUserRoutes(r, db)

	// Checkout + payment webhook
	SetupCheckoutRoutes(r, db, provider)

	// Admin routes (bearer token + role re-check)
	SetupAdminRoutes(r, db)
}
