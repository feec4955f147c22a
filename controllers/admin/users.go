package adminControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/models"
)

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required"`
}

var userSortKeys = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

// GET /admin/users
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := ParsePage(c)

		query := db.Model(&models.User{})
		if search := c.Query("search"); search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", likePattern, likePattern)
		}
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", strings.ToUpper(role))
		}

		var users []models.User
		total, err := Paginate(query, page, pageSize, ParseSort(c, userSortKeys), &users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(http.StatusOK, PageResult{Page: page, PageSize: pageSize, Total: total, Items: users})
	}
}

// PATCH /admin/users/:id/role
//
// Role elevation/demotion. Self-demotion is rejected so an instance can
// never lose its last reachable admin by accident.
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.MustGet("user_id").(uint)

		var input UpdateRoleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": gin.H{"binding": err.Error()}})
			return
		}

		role := models.Role(strings.ToUpper(input.Role))
		if role != models.RoleUser && role != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}

		targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}

		if uint(targetID) == callerID && role != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot demote yourself"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if err := db.Model(&user).Update("role", role).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DELETE /admin/users/:id
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.MustGet("user_id").(uint)

		targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		if uint(targetID) == callerID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete yourself"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if err := db.Delete(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
