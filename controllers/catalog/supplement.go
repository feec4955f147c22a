package catalogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/models"
)

type SupplementInput struct {
	Name       string `json:"name" binding:"required"`
	PriceCents *int64 `json:"price_cents" binding:"required,min=0"`
	Available  *bool  `json:"available"`
	Active     *bool  `json:"active"`
}

type LinkSupplementInput struct {
	OverridePriceCents *int64 `json:"override_price_cents"`
}

// GET /supplements
func GetSupplements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supplements []models.Supplement
		if err := db.Where("available = ? AND active = ?", true, true).
			Order("name ASC").Find(&supplements).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch supplements"})
			return
		}
		c.JSON(http.StatusOK, supplements)
	}
}

// GET /supplements/product/:id
//
// Supplements linked to a product, with the per-product override applied.
func GetProductSupplements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var links []models.ProductSupplement
		if err := db.Preload("Supplement").Where("product_id = ?", product.ID).Find(&links).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch supplements"})
			return
		}

		out := make([]gin.H, 0, len(links))
		for _, link := range links {
			if link.Supplement == nil || !link.Supplement.Active || !link.Supplement.Available {
				continue
			}
			out = append(out, gin.H{
				"id":          link.Supplement.ID,
				"name":        link.Supplement.Name,
				"price_cents": link.EffectivePriceCents(),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /admin/supplements
func CreateSupplement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SupplementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": gin.H{"binding": err.Error()}})
			return
		}

		supplement := models.Supplement{
			Name:       input.Name,
			PriceCents: *input.PriceCents,
			Available:  true,
			Active:     true,
		}
		if input.Available != nil {
			supplement.Available = *input.Available
		}
		if input.Active != nil {
			supplement.Active = *input.Active
		}

		if err := db.Create(&supplement).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplement"})
			return
		}
		c.JSON(http.StatusCreated, supplement)
	}
}

// PUT /admin/supplements/:id
func UpdateSupplement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supplement models.Supplement
		if err := db.First(&supplement, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplement not found"})
			return
		}

		var input SupplementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": gin.H{"binding": err.Error()}})
			return
		}

		supplement.Name = input.Name
		supplement.PriceCents = *input.PriceCents
		if input.Available != nil {
			supplement.Available = *input.Available
		}
		if input.Active != nil {
			supplement.Active = *input.Active
		}

		if err := db.Save(&supplement).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplement"})
			return
		}
		c.JSON(http.StatusOK, supplement)
	}
}

// DELETE /admin/supplements/:id
func DeleteSupplement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supplement models.Supplement
		if err := db.First(&supplement, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplement not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("supplement_id = ?", supplement.ID).
				Delete(&models.ProductSupplement{}).Error; err != nil {
				return err
			}
			return tx.Delete(&supplement).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplement"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Supplement deleted successfully"})
	}
}

// PUT /admin/supplements/:id/products/:productId
//
// Links a supplement to a product, optionally with an override price.
// Re-linking updates the override.
func LinkSupplementToProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supplement models.Supplement
		if err := db.First(&supplement, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplement not found"})
			return
		}
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("productId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input LinkSupplementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": gin.H{"binding": err.Error()}})
			return
		}

		var link models.ProductSupplement
		err := db.Where("product_id = ? AND supplement_id = ?", product.ID, supplement.ID).First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			link = models.ProductSupplement{
				ProductID:          product.ID,
				SupplementID:       supplement.ID,
				OverridePriceCents: input.OverridePriceCents,
			}
			if err := db.Create(&link).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link supplement"})
				return
			}
			c.JSON(http.StatusCreated, link)
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch link"})
			return
		}

		link.OverridePriceCents = input.OverridePriceCents
		if err := db.Save(&link).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update link"})
			return
		}
		c.JSON(http.StatusOK, link)
	}
}

// DELETE /admin/supplements/:id/products/:productId
func UnlinkSupplementFromProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("product_id = ? AND supplement_id = ?", c.Param("productId"), c.Param("id")).
			Delete(&models.ProductSupplement{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlink supplement"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Supplement unlinked"})
	}
}
