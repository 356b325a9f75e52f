package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/siisjewelry/siis-api/internal/cart"
	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/constants"

	"github.com/shopspring/decimal"
)

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		CustomerName:    "王小姐",
		CustomerEmail:   "wang@example.com",
		CustomerPhone:   "0912345678",
		ShippingAddress: "台北市信義區 1 號",
	}
}

func TestValidateCheckoutInputRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CheckoutInput)
		detail string
	}{
		{name: "missing name", mutate: func(in *CheckoutInput) { in.CustomerName = "  " }, detail: "recipient name"},
		{name: "missing email", mutate: func(in *CheckoutInput) { in.CustomerEmail = "" }, detail: "email"},
		{name: "missing phone", mutate: func(in *CheckoutInput) { in.CustomerPhone = "" }, detail: "phone"},
		{name: "missing address", mutate: func(in *CheckoutInput) { in.ShippingAddress = "" }, detail: "address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCheckoutInput()
			tc.mutate(&input)
			err := validateCheckoutInput(&input)
			if !errors.Is(err, ErrOrderValidation) {
				t.Fatalf("want ErrOrderValidation got %v", err)
			}
			if !strings.Contains(err.Error(), tc.detail) {
				t.Fatalf("error detail want %q got %q", tc.detail, err.Error())
			}
		})
	}
}

func TestValidateCheckoutInputEmailFormat(t *testing.T) {
	input := validCheckoutInput()
	input.CustomerEmail = "a@b"
	if err := validateCheckoutInput(&input); !errors.Is(err, ErrOrderValidation) {
		t.Fatalf("email without dot domain should fail, got %v", err)
	}

	input = validCheckoutInput()
	input.CustomerEmail = "a@b.c"
	if err := validateCheckoutInput(&input); err != nil {
		t.Fatalf("minimal valid email should pass, got %v", err)
	}
}

func TestValidateCheckoutInputPaymentMethod(t *testing.T) {
	input := validCheckoutInput()
	if err := validateCheckoutInput(&input); err != nil {
		t.Fatalf("empty payment method should default, got %v", err)
	}
	if input.PaymentMethod != constants.PaymentMethodCredit {
		t.Fatalf("payment method want credit got %s", input.PaymentMethod)
	}

	input = validCheckoutInput()
	input.PaymentMethod = " LinePay "
	if err := validateCheckoutInput(&input); err != nil {
		t.Fatalf("linepay should be accepted, got %v", err)
	}
	if input.PaymentMethod != constants.PaymentMethodLinePay {
		t.Fatalf("payment method want linepay got %s", input.PaymentMethod)
	}

	input = validCheckoutInput()
	input.PaymentMethod = "bitcoin"
	if err := validateCheckoutInput(&input); !errors.Is(err, ErrOrderValidation) {
		t.Fatalf("unsupported payment method should fail, got %v", err)
	}
}

func TestNewOrderNo(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	if got := newOrderNo(now); got != "ORD-1700000000000" {
		t.Fatalf("order no want ORD-1700000000000 got %s", got)
	}
}

func TestCheckoutQuoteTotals(t *testing.T) {
	svc := NewCheckoutService(config.CheckoutConfig{FreeShippingOver: 500, ShippingFee: 60}, nil, nil, nil, nil)

	over := svc.quote([]cart.Line{
		{ProductID: "p1", Price: decimal.NewFromInt(250), Quantity: 1},
		{ProductID: "p2", Price: decimal.NewFromInt(260), Quantity: 1},
	})
	if !over.Subtotal.Decimal.Equal(decimal.NewFromInt(510)) {
		t.Fatalf("subtotal want 510 got %s", over.Subtotal)
	}
	if !over.ShippingFee.Decimal.IsZero() {
		t.Fatalf("subtotal over threshold should ship free, got %s", over.ShippingFee)
	}
	if !over.Total.Decimal.Equal(decimal.NewFromInt(510)) {
		t.Fatalf("total want 510 got %s", over.Total)
	}

	under := svc.quote([]cart.Line{
		{ProductID: "p3", Price: decimal.RequireFromString("123.45"), Quantity: 2},
	})
	wantSubtotal := decimal.RequireFromString("246.90")
	if !under.Subtotal.Decimal.Equal(wantSubtotal) {
		t.Fatalf("subtotal want 246.90 got %s", under.Subtotal)
	}
	if !under.Total.Decimal.Equal(under.Subtotal.Decimal.Add(under.ShippingFee.Decimal)) {
		t.Fatalf("total must equal subtotal plus shipping fee")
	}
}
