package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartAddMergesSameProduct(t *testing.T) {
	c := New()
	c.Add(Line{ProductID: "1", Name: "戒指", Price: decimal.NewFromInt(100), Quantity: 1})
	c.Add(Line{ProductID: "2", Name: "项链", Price: decimal.NewFromInt(200), Quantity: 2})
	c.Add(Line{ProductID: "1", Name: "戒指", Price: decimal.NewFromInt(100), Quantity: 3})

	if len(c.Lines) != 2 {
		t.Fatalf("lines want 2 got %d", len(c.Lines))
	}
	if c.Lines[0].ProductID != "1" || c.Lines[0].Quantity != 4 {
		t.Fatalf("merged line want id=1 qty=4 got id=%s qty=%d", c.Lines[0].ProductID, c.Lines[0].Quantity)
	}
	if c.TotalQuantity() != 6 {
		t.Fatalf("total quantity want 6 got %d", c.TotalQuantity())
	}
}

func TestCartAddIgnoresEmptyProductID(t *testing.T) {
	c := New()
	c.Add(Line{ProductID: "  ", Quantity: 1})
	if len(c.Lines) != 0 {
		t.Fatalf("empty product id should be ignored, got %d lines", len(c.Lines))
	}
}

func TestCartSetQuantityRemovesOnZero(t *testing.T) {
	c := New()
	c.Add(Line{ProductID: "1", Price: decimal.NewFromInt(100), Quantity: 2})
	c.Add(Line{ProductID: "2", Price: decimal.NewFromInt(50), Quantity: 1})

	c.SetQuantity("1", 5)
	if c.Lines[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", c.Lines[0].Quantity)
	}

	c.SetQuantity("1", 0)
	if len(c.Lines) != 1 || c.Lines[0].ProductID != "2" {
		t.Fatalf("zero quantity should remove line, got %+v", c.Lines)
	}

	c.SetQuantity("2", -3)
	if len(c.Lines) != 0 {
		t.Fatalf("negative quantity should remove line, got %+v", c.Lines)
	}
}

func TestCartSubtotal(t *testing.T) {
	c := New()
	c.Add(Line{ProductID: "1", Price: decimal.RequireFromString("99.99"), Quantity: 2})
	c.Add(Line{ProductID: "2", Price: decimal.RequireFromString("0.01"), Quantity: 3})

	want := decimal.RequireFromString("200.01")
	if !c.Subtotal().Equal(want) {
		t.Fatalf("subtotal want %s got %s", want, c.Subtotal())
	}
}

func TestCoercePrice(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want string
	}{
		{name: "float", in: float64(12.345), want: "12.35"},
		{name: "int", in: 30, want: "30"},
		{name: "string", in: " 88.5 ", want: "88.5"},
		{name: "bad string", in: "abc", want: "0"},
		{name: "nil", in: nil, want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CoercePrice(tc.in)
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("coerce price want %s got %s", want, got)
			}
		})
	}
}

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int
	}{
		{name: "int", in: 3, want: 3},
		{name: "zero", in: 0, want: 1},
		{name: "float", in: float64(4), want: 4},
		{name: "string", in: " 7 ", want: 7},
		{name: "bad string", in: "x", want: 1},
		{name: "nil", in: nil, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoerceQuantity(tc.in); got != tc.want {
				t.Fatalf("coerce quantity want %d got %d", tc.want, got)
			}
		})
	}
}

func TestCoerceQuantityOrRemove(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int
	}{
		{name: "int", in: 3, want: 3},
		{name: "zero kept", in: 0, want: 0},
		{name: "negative kept", in: -1, want: -1},
		{name: "float zero kept", in: float64(0), want: 0},
		{name: "string zero kept", in: "0", want: 0},
		{name: "string", in: " 7 ", want: 7},
		{name: "bad string", in: "x", want: 1},
		{name: "nil", in: nil, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoerceQuantityOrRemove(tc.in); got != tc.want {
				t.Fatalf("coerce quantity want %d got %d", tc.want, got)
			}
		})
	}
}
