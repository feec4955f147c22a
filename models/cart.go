package models

import "time"

type CookingLevel string

const (
	CookingNormal      CookingLevel = "NORMAL"
	CookingWellDone    CookingLevel = "WELL_DONE"
	CookingExtraCrispy CookingLevel = "EXTRA_CRISPY"
)

type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is keyed by (cart, product, cooking): adding the same product at
// the same cooking level increments quantity instead of inserting a row.
// ProductName and UnitPriceCents are snapshots taken when the line is
// created; later catalog edits do not change a cart that already holds it.
type CartItem struct {
	ID             uint                 `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID         uint                 `gorm:"uniqueIndex:idx_cart_product_cooking;index" json:"cart_id"`
	ProductID      uint                 `gorm:"uniqueIndex:idx_cart_product_cooking;not null" json:"product_id"`
	ProductName    string               `json:"product_name"`
	UnitPriceCents int64                `json:"unit_price_cents"`
	Cooking        CookingLevel         `gorm:"uniqueIndex:idx_cart_product_cooking;type:VARCHAR(20);default:'NORMAL'" json:"cooking"`
	Quantity       int                  `gorm:"not null" json:"quantity"`
	Supplements    []CartItemSupplement `gorm:"foreignKey:CartItemID;constraint:OnDelete:CASCADE" json:"supplements"`
	AddedAt        time.Time            `json:"added_at"`
}

// CartItemSupplement snapshots the supplement's name and price at attach
// time. Later catalog price changes do not reach carts already holding it.
type CartItemSupplement struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CartItemID   uint   `gorm:"uniqueIndex:idx_item_supplement;index" json:"cart_item_id"`
	SupplementID uint   `gorm:"uniqueIndex:idx_item_supplement;not null" json:"supplement_id"`
	Name         string `json:"name"`
	PriceCents   int64  `json:"price_cents"`
}
