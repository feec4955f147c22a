package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fornodoro/pizzeria-api/models"
)

type AddItemInput struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	Cooking       string `json:"cooking"`
	SupplementIDs []uint `json:"supplement_ids"`
}

type UpdateQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

type SetSupplementsInput struct {
	SupplementIDs []uint `json:"supplement_ids"`
}

// CartItemView is a cart line item with its computed line total.
type CartItemView struct {
	models.CartItem
	LineTotalCents int64 `json:"line_total_cents"`
}

type CartView struct {
	ID         uint           `json:"id"`
	Items      []CartItemView `json:"items"`
	TotalCents int64          `json:"total_cents"`
}

// GetOrCreateCart returns the user's cart with items and supplement
// snapshots preloaded, creating an empty cart on first access.
func GetOrCreateCart(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items.Supplements").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return cart, err
		}
		return cart, nil
	}
	return cart, err
}

// buildCartView recomputes totals: (product price snapshot + Σ supplement
// snapshot prices) × quantity per line. Only snapshots ever enter a total;
// live catalog prices are irrelevant to carts that already hold an item.
func buildCartView(cart models.Cart) CartView {
	view := CartView{ID: cart.ID, Items: []CartItemView{}}

	for _, item := range cart.Items {
		unit := item.UnitPriceCents
		for _, s := range item.Supplements {
			unit += s.PriceCents
		}
		lineTotal := unit * int64(item.Quantity)
		view.Items = append(view.Items, CartItemView{
			CartItem:       item,
			LineTotalCents: lineTotal,
		})
		view.TotalCents += lineTotal
	}
	return view
}

func respondCart(c *gin.Context, db *gorm.DB, userID uint, status int) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(status, buildCartView(cart))
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(uint)
		respondCart(c, db, userID, http.StatusOK)
	}
}

// POST /cart/items
//
// Upserts the (cart, product, cooking) line: an existing row gets its
// quantity incremented, a missing one is created. Requested supplements are
// resolved up front; inactive ones are skipped silently, unknown ids fail
// the whole request before any write.
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(uint)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": gin.H{"binding": err.Error()}})
			return
		}

		cooking := models.CookingNormal
		if input.Cooking != "" {
			switch models.CookingLevel(input.Cooking) {
			case models.CookingNormal, models.CookingWellDone, models.CookingExtraCrispy:
				cooking = models.CookingLevel(input.Cooking)
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cooking level"})
				return
			}
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		cart, err := GetOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		supplements, missing, err := resolveSupplements(db, input.SupplementIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate supplements"})
			return
		}
		if len(missing) > 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplement not found", "details": gin.H{"supplement_ids": missing}})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var item models.CartItem
			err := tx.Preload("Supplements").
				Where("cart_id = ? AND product_id = ? AND cooking = ?", cart.ID, product.ID, cooking).
				First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				item = models.CartItem{
					CartID:         cart.ID,
					ProductID:      product.ID,
					ProductName:    product.Name,
					UnitPriceCents: product.PriceCents,
					Cooking:        cooking,
					Quantity:       input.Quantity,
					AddedAt:        time.Now(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			} else {
				item.Quantity += input.Quantity
				item.Cooking = cooking // last write wins
				item.AddedAt = time.Now()
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}

			attached := make(map[uint]bool, len(item.Supplements))
			for _, s := range item.Supplements {
				attached[s.SupplementID] = true
			}
			for _, s := range supplements {
				if attached[s.ID] || !s.Active {
					continue
				}
				snap := models.CartItemSupplement{
					CartItemID:   item.ID,
					SupplementID: s.ID,
					Name:         s.Name,
					PriceCents:   s.PriceCents,
				}
				if err := tx.Create(&snap).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		respondCart(c, db, userID, http.StatusCreated)
	}
}

// PATCH /cart/items/:id
//
// Quantity zero removes the line item.
func UpdateQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(uint)

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": gin.H{"binding": err.Error()}})
			return
		}

		item, ok := ownedItem(c, db, userID)
		if !ok {
			return
		}

		if *input.Quantity == 0 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
				return
			}
		} else {
			item.Quantity = *input.Quantity
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		}

		respondCart(c, db, userID, http.StatusOK)
	}
}

// PUT /cart/items/:id/supplements
//
// Replaces the full supplement set for a line item. All requested ids are
// resolved before anything is written, then the symmetric difference is
// applied in one transaction: removed links deleted, added ones snapshotted
// (inactive supplements skipped silently).
func SetSupplements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(uint)

		var input SetSupplementsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": gin.H{"binding": err.Error()}})
			return
		}

		item, ok := ownedItem(c, db, userID)
		if !ok {
			return
		}

		supplements, missing, err := resolveSupplements(db, input.SupplementIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate supplements"})
			return
		}
		if len(missing) > 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplement not found", "details": gin.H{"supplement_ids": missing}})
			return
		}

		requested := make(map[uint]models.Supplement, len(supplements))
		for _, s := range supplements {
			requested[s.ID] = s
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var current []models.CartItemSupplement
			if err := tx.Where("cart_item_id = ?", item.ID).Find(&current).Error; err != nil {
				return err
			}

			have := make(map[uint]bool, len(current))
			for _, link := range current {
				have[link.SupplementID] = true
				if _, keep := requested[link.SupplementID]; !keep {
					if err := tx.Delete(&models.CartItemSupplement{}, link.ID).Error; err != nil {
						return err
					}
				}
			}

			for _, s := range supplements {
				if have[s.ID] || !s.Active {
					continue
				}
				snap := models.CartItemSupplement{
					CartItemID:   item.ID,
					SupplementID: s.ID,
					Name:         s.Name,
					PriceCents:   s.PriceCents,
				}
				if err := tx.Create(&snap).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplements"})
			return
		}

		respondCart(c, db, userID, http.StatusOK)
	}
}

// DELETE /cart/items/:id
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(uint)

		item, ok := ownedItem(c, db, userID)
		if !ok {
			return
		}

		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
			return
		}

		respondCart(c, db, userID, http.StatusOK)
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(uint)

		cart, err := GetOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// ownedItem loads the :id line item and checks it belongs to the caller's
// cart. Writes the error response itself when the item cannot be used.
func ownedItem(c *gin.Context, db *gorm.DB, userID uint) (models.CartItem, bool) {
	var item models.CartItem

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return item, false
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return item, false
	}

	if err := db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
		}
		return item, false
	}
	return item, true
}

// resolveSupplements fetches the requested supplements and reports ids that
// do not resolve. Validation happens before any cart write.
func resolveSupplements(db *gorm.DB, ids []uint) ([]models.Supplement, []uint, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	var supplements []models.Supplement
	if err := db.Where("id IN ?", ids).Find(&supplements).Error; err != nil {
		return nil, nil, err
	}

	found := make(map[uint]bool, len(supplements))
	for _, s := range supplements {
		found[s.ID] = true
	}
	var missing []uint
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return supplements, missing, nil
}
