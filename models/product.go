package models

import (
	"time"

	"gorm.io/gorm"
)

// Product prices are integer minor currency units (cents). Cart and order
// line items copy the price at add/checkout time and never read it back.
type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"`
	CategoryID  *uint          `gorm:"index" json:"category_id"`
	Category    *Category      `json:"category,omitempty"`
	Featured    bool           `json:"featured"`
	Available   bool           `gorm:"default:true" json:"available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Supplement struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	Available  bool      `gorm:"default:true" json:"available"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProductSupplement links a supplement to a product, optionally overriding
// the supplement's base price for that product.
type ProductSupplement struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID          uint   `gorm:"uniqueIndex:idx_product_supplement;not null" json:"product_id"`
	SupplementID       uint   `gorm:"uniqueIndex:idx_product_supplement;not null" json:"supplement_id"`
	Supplement         *Supplement `json:"supplement,omitempty"`
	OverridePriceCents *int64 `json:"override_price_cents"`
}

// EffectivePriceCents is the per-product supplement price: the override when
// set, the supplement's base price otherwise.
func (ps ProductSupplement) EffectivePriceCents() int64 {
	if ps.OverridePriceCents != nil {
		return *ps.OverridePriceCents
	}
	if ps.Supplement != nil {
		return ps.Supplement.PriceCents
	}
	return 0
}
