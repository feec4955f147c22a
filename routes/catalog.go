package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogControllers "github.com/fornodoro/pizzeria-api/controllers/catalog"
)

// SetupCatalogRoutes registers the public catalog reads.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", catalogControllers.GetProducts(db))
	r.GET("/products/:id", catalogControllers.GetProductByID(db))
	r.GET("/categories", catalogControllers.GetCategories(db))
	r.GET("/supplements", catalogControllers.GetSupplements(db))
	r.GET("/supplements/product/:id", catalogControllers.GetProductSupplements(db))
}
