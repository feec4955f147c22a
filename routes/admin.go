package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/fornodoro/pizzeria-api/controllers/admin"
	catalogControllers "github.com/fornodoro/pizzeria-api/controllers/catalog"
	orderControllers "github.com/fornodoro/pizzeria-api/controllers/order"
	"github.com/fornodoro/pizzeria-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Every route requires
// a valid bearer token plus a role check re-read from storage.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin(db))
	{
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", catalogControllers.CreateProduct(db))
			productAdmin.PUT("/:id", catalogControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", catalogControllers.DeleteProduct(db))
			productAdmin.GET("/export-excel", adminControllers.ExportProductsToExcel(db))
		}

		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", catalogControllers.CreateCategory(db))
			categoryAdmin.PUT("/reorder", catalogControllers.ReorderCategories(db))
			categoryAdmin.PUT("/:id", catalogControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", catalogControllers.DeleteCategory(db))
		}

		supplementAdmin := adminGroup.Group("/supplements")
		{
			supplementAdmin.POST("", catalogControllers.CreateSupplement(db))
			supplementAdmin.PUT("/:id", catalogControllers.UpdateSupplement(db))
			supplementAdmin.DELETE("/:id", catalogControllers.DeleteSupplement(db))
			supplementAdmin.PUT("/:id/products/:productId", catalogControllers.LinkSupplementToProduct(db))
			supplementAdmin.DELETE("/:id/products/:productId", catalogControllers.UnlinkSupplementFromProduct(db))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", adminControllers.GetOrders(db))
			orderAdmin.GET("/export-excel", adminControllers.ExportOrdersToExcel(db))
			orderAdmin.GET("/ws", orderControllers.OrderFeedHandler)
			orderAdmin.GET("/:id", adminControllers.GetOrderByID(db))
			orderAdmin.PATCH("/:id/status", orderControllers.UpdateOrderStatus(db))
		}

		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", adminControllers.GetUsers(db))
			userAdmin.PATCH("/:id/role", adminControllers.UpdateUserRole(db))
			userAdmin.DELETE("/:id", adminControllers.DeleteUser(db))
		}

		adminGroup.GET("/analytics", adminControllers.GetAnalytics(db))
		adminGroup.GET("/search", adminControllers.Search(db))
	}
}
