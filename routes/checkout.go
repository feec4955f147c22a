package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	checkoutControllers "github.com/fornodoro/pizzeria-api/controllers/checkout"
	"github.com/fornodoro/pizzeria-api/middleware"
)

// SetupCheckoutRoutes registers checkout and the provider webhook. The
// webhook is unauthenticated; it is verified by signature inside the
// handler.
func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, provider checkoutControllers.PaymentProvider) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("/webhook", checkoutControllers.HandleWebhook(db))

		authed := checkout.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.POST("/start", checkoutControllers.StartCheckout(db, provider))
			authed.GET("/orders/:id", checkoutControllers.GetCheckoutOrder(db))
		}
	}
}
