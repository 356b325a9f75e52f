package service

import (
	"testing"

	"github.com/siisjewelry/siis-api/internal/constants"
)

func TestNormalizeOrderStatus(t *testing.T) {
	if got := NormalizeOrderStatus(" Shipped "); got != constants.OrderStatusShipped {
		t.Fatalf("normalize want shipped got %q", got)
	}
	if got := NormalizeOrderStatus("unknown"); got != "" {
		t.Fatalf("invalid status should normalize to empty, got %q", got)
	}
}

func TestCanTransitionOrderStatus(t *testing.T) {
	allowed := []struct{ from, to string }{
		{constants.OrderStatusPending, constants.OrderStatusPaid},
		{constants.OrderStatusPending, constants.OrderStatusProcessing},
		{constants.OrderStatusPending, constants.OrderStatusCancelled},
		{constants.OrderStatusPaid, constants.OrderStatusShipped},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered},
		{constants.OrderStatusShipped, constants.OrderStatusCompleted},
		{constants.OrderStatusDelivered, constants.OrderStatusCompleted},
	}
	for _, tc := range allowed {
		if !CanTransitionOrderStatus(tc.from, tc.to) {
			t.Fatalf("transition %s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to string }{
		{constants.OrderStatusPending, constants.OrderStatusDelivered},
		{constants.OrderStatusPaid, constants.OrderStatusPending},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled},
		{constants.OrderStatusCompleted, constants.OrderStatusCancelled},
		{constants.OrderStatusCancelled, constants.OrderStatusPending},
		{constants.OrderStatusShipped, constants.OrderStatusShipped},
	}
	for _, tc := range denied {
		if CanTransitionOrderStatus(tc.from, tc.to) {
			t.Fatalf("transition %s -> %s should be denied", tc.from, tc.to)
		}
	}
}
