package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // created at checkout, awaiting payment
	OrderStatusPaid      OrderStatus = "PAID"      // payment confirmed by webhook
	OrderStatusShipped   OrderStatus = "SHIPPED"   // out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // terminal
	OrderStatusCancelled OrderStatus = "CANCELLED" // terminal
	OrderStatusFailed    OrderStatus = "FAILED"    // payment failed, retryable
)

// legalTransitions is the full order lifecycle. DELIVERED and CANCELLED are
// terminal; FAILED -> PENDING allows a payment retry.
var legalTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusFailed:  {OrderStatusPending},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus maps a request string onto a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusPaid:
		return OrderStatusPaid, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	case OrderStatusFailed:
		return OrderStatusFailed, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Order is an immutable snapshot of the cart at checkout time. Only Status
// transitions after creation; items, totals and shipping fields never change.
type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Ref             string      `gorm:"uniqueIndex;not null" json:"ref"`
	UserID          uint        `gorm:"index;not null" json:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalCents      int64       `gorm:"not null" json:"total_cents"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	PaymentIntentID string      `gorm:"index" json:"payment_intent_id"`
	ShipLine1       string      `json:"ship_line1"`
	ShipCity        string      `json:"ship_city"`
	ShipPostalCode  string      `json:"ship_postal_code"`
	ShipPhone       string      `json:"ship_phone"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem holds one row per distinct product in the cart at checkout, with
// name and unit price frozen at that moment.
type OrderItem struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        uint   `gorm:"index" json:"order_id"`
	ProductID      uint   `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}
