package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment tracks the provider-side outcome for an order. Rows are upserted
// keyed on the external intent id so redelivered webhooks stay idempotent.
type Payment struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint          `gorm:"index;not null" json:"order_id"`
	IntentID  string        `gorm:"uniqueIndex;not null" json:"intent_id"`
	Provider  string        `json:"provider"`
	Status    PaymentStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
