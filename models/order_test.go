package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fornodoro/pizzeria-api/models"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderStatusPending, models.OrderStatusPaid, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusFailed, true},
		{models.OrderStatusPending, models.OrderStatusDelivered, false},
		{models.OrderStatusPaid, models.OrderStatusShipped, true},
		{models.OrderStatusPaid, models.OrderStatusPending, false},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, true},
		{models.OrderStatusDelivered, models.OrderStatusPending, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPaid, false},
		{models.OrderStatusFailed, models.OrderStatusPending, true},
		{models.OrderStatusFailed, models.OrderStatusPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := models.ParseOrderStatus("shipped")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, status)

	_, err = models.ParseOrderStatus("TELEPORTED")
	assert.Error(t, err)
}
