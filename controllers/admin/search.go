package adminControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/models"
)

const searchLimit = 20

// GET /admin/search?q=
//
// Cross-entity substring search for the back-office omnibox.
func Search(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		likePattern := "%" + strings.ToLower(q) + "%"

		var products []models.Product
		if err := db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", likePattern, likePattern).
			Limit(searchLimit).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}

		var orders []models.Order
		if err := db.Where("LOWER(ref) LIKE ? OR LOWER(ship_city) LIKE ?", likePattern, likePattern).
			Limit(searchLimit).Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}

		var users []models.User
		if err := db.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", likePattern, likePattern).
			Limit(searchLimit).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"orders":   orders,
			"users":    users,
		})
	}
}
