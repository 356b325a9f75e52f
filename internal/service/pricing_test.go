package service

import (
	"testing"

	"github.com/siisjewelry/siis-api/internal/config"

	"github.com/shopspring/decimal"
)

func TestShippingFeeForBoundaries(t *testing.T) {
	rule := NewPricingRule(config.CheckoutConfig{FreeShippingOver: 500, ShippingFee: 60})

	cases := []struct {
		name     string
		subtotal string
		want     string
	}{
		{name: "zero", subtotal: "0", want: "60"},
		{name: "below threshold", subtotal: "499.99", want: "60"},
		{name: "exactly threshold", subtotal: "500", want: "60"},
		{name: "just above threshold", subtotal: "500.01", want: "0"},
		{name: "well above threshold", subtotal: "1200", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rule.ShippingFeeFor(decimal.RequireFromString(tc.subtotal))
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("shipping fee for %s want %s got %s", tc.subtotal, want, got)
			}
		})
	}
}
