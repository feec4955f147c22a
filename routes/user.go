package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/fornodoro/pizzeria-api/controllers/admin"
	cartControllers "github.com/fornodoro/pizzeria-api/controllers/cart"
	orderControllers "github.com/fornodoro/pizzeria-api/controllers/order"
	userControllers "github.com/fornodoro/pizzeria-api/controllers/user"
	"github.com/fornodoro/pizzeria-api/middleware"
)

// SetupUserRoutes registers the JWT-protected customer endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("", userControllers.UpdateUser(db))

		addresses := userGroup.Group("/addresses")
		{
			addresses.GET("", userControllers.GetAddresses(db))
			addresses.POST("", userControllers.CreateAddress(db))
			addresses.PUT("/:id", userControllers.UpdateAddress(db))
			addresses.DELETE("/:id", userControllers.DeleteAddress(db))
		}
	}

	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.POST("/items", cartControllers.AddItem(db))
		cartGroup.PATCH("/items/:id", cartControllers.UpdateQuantity(db))
		cartGroup.PUT("/items/:id/supplements", cartControllers.SetSupplements(db))
		cartGroup.DELETE("/items/:id", cartControllers.RemoveItem(db))
		cartGroup.DELETE("", cartControllers.ClearCart(db))
	}

	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.ValidateToken)
	{
		// /orders/admin must be registered before /orders/:id so gin does
		// not treat "admin" as an order id.
		orderGroup.GET("/admin", middleware.RequireAdmin(db), adminControllers.GetOrders(db))
		orderGroup.GET("", orderControllers.GetUserOrders(db))
		orderGroup.GET("/:id", orderControllers.GetUserOrderByID(db))
	}
}
