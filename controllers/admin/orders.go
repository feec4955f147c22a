package adminControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/models"
)

var orderSortKeys = map[string]string{
	"total":      "total_cents",
	"created_at": "created_at",
}

// GET /admin/orders (also serves GET /orders/admin)
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := ParsePage(c)

		query := db.Model(&models.Order{}).Preload("Items")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", strings.ToUpper(status))
		}
		if search := c.Query("search"); search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(ref) LIKE ? OR LOWER(ship_city) LIKE ?", likePattern, likePattern)
		}

		var orders []models.Order
		total, err := Paginate(query, page, pageSize, ParseSort(c, orderSortKeys), &orders)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, PageResult{Page: page, PageSize: pageSize, Total: total, Items: orders})
	}
}

// GET /admin/orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := db.Preload("Items").Where("id = ? OR ref = ?", id, id).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var payment models.Payment
		if err := db.Where("intent_id = ?", order.PaymentIntentID).First(&payment).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"order": order, "payment": payment})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
