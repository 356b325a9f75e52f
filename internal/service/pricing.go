package service

import (
	"github.com/shopspring/decimal"

	"github.com/siisjewelry/siis-api/internal/config"
)

// PricingRule 运费规则：小计超过免运门槛时运费为零，否则收固定运费
type PricingRule struct {
	FreeShippingOver decimal.Decimal
	ShippingFee      decimal.Decimal
}

// NewPricingRule 从配置构建运费规则
func NewPricingRule(cfg config.CheckoutConfig) PricingRule {
	return PricingRule{
		FreeShippingOver: decimal.NewFromFloat(cfg.FreeShippingOver),
		ShippingFee:      decimal.NewFromFloat(cfg.ShippingFee),
	}
}

// ShippingFeeFor 按小计计算运费，严格大于门槛才免运
func (r PricingRule) ShippingFeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(r.FreeShippingOver) {
		return decimal.Zero
	}
	return r.ShippingFee
}
