package adminControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/models"
)

// paidStatuses are the order states that count as realized revenue.
var paidStatuses = []models.OrderStatus{
	models.OrderStatusPaid,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
}

// GET /admin/analytics?days=30
//
// Aggregate revenue and order counts over the trailing period.
func GetAnalytics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
		if err != nil || days < 1 || days > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days"})
			return
		}
		since := time.Now().AddDate(0, 0, -days)

		var revenueCents int64
		if err := db.Model(&models.Order{}).
			Where("status IN ? AND created_at >= ?", paidStatuses, since).
			Select("COALESCE(SUM(total_cents), 0)").
			Scan(&revenueCents).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}

		var orderCount int64
		if err := db.Model(&models.Order{}).
			Where("created_at >= ?", since).
			Count(&orderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		type statusCount struct {
			Status models.OrderStatus `json:"status"`
			Count  int64              `json:"count"`
		}
		var byStatus []statusCount
		if err := db.Model(&models.Order{}).
			Where("created_at >= ?", since).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&byStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to group orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"days":          days,
			"revenue_cents": revenueCents,
			"order_count":   orderCount,
			"by_status":     byStatus,
		})
	}
}
