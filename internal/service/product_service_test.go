package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db)), db
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestProductCreateValidation(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	base := ProductInput{
		Name:        "经典单钻戒指",
		Category:    "戒指",
		PriceAmount: decimal.NewFromInt(12800),
	}

	cases := []struct {
		name    string
		mutate  func(in *ProductInput)
		wantErr error
	}{
		{
			name:    "missing name",
			mutate:  func(in *ProductInput) { in.Name = "  " },
			wantErr: ErrProductNameRequired,
		},
		{
			name:    "missing category",
			mutate:  func(in *ProductInput) { in.Category = "" },
			wantErr: ErrProductCategoryRequired,
		},
		{
			name:    "zero price",
			mutate:  func(in *ProductInput) { in.PriceAmount = decimal.Zero },
			wantErr: ErrProductPriceInvalid,
		},
		{
			name:    "negative stock",
			mutate:  func(in *ProductInput) { in.Stock = intPtr(-1) },
			wantErr: ErrProductStockInvalid,
		},
		{
			name:    "too many images",
			mutate:  func(in *ProductInput) { in.Images = []string{"/a.jpg", "/b.jpg", "/c.jpg", "/d.jpg"} },
			wantErr: ErrTooManyImages,
		},
	}
	for _, tc := range cases {
		input := base
		tc.mutate(&input)
		if _, err := svc.Create(input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestProductCreateNormalizesFields(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Name:        "  流光锁骨链  ",
		Description: " 18K 金锁骨链 ",
		Category:    " 项链 ",
		PriceAmount: decimal.RequireFromString("680.005"),
		Images:      []string{" /uploads/products/a.jpg ", "", "  "},
		TagText:     " 新品 ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Name != "流光锁骨链" || product.Category != "项链" {
		t.Fatalf("name/category not trimmed: %q %q", product.Name, product.Category)
	}
	if !product.PriceAmount.Decimal.Equal(decimal.RequireFromString("680.01")) {
		t.Fatalf("price not rounded: %s", product.PriceAmount)
	}
	if len(product.Images) != 1 || product.Images[0] != "/uploads/products/a.jpg" {
		t.Fatalf("images not normalized: %v", product.Images)
	}
	if !product.IsActive {
		t.Fatalf("product should default to active")
	}
}

func TestGetPublicByIDHidesInactive(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Name:        "素圈对戒",
		Category:    "戒指",
		PriceAmount: decimal.NewFromInt(2380),
		IsActive:    boolPtr(false),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetPublicByID(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive product should be hidden, got %v", err)
	}
	if _, err := svc.GetAdminByID(product.ID); err != nil {
		t.Fatalf("admin detail should still resolve: %v", err)
	}
}

func TestGetPublicByIDFillsSyntheticRating(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	created, err := svc.Create(ProductInput{
		Name:        "珍珠耳钉",
		Category:    "耳饰",
		PriceAmount: decimal.NewFromInt(420),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	product, err := svc.GetPublicByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.Rating < 3.5 || product.Rating > 4.9 {
		t.Fatalf("synthetic rating out of range: %f", product.Rating)
	}
	if product.Reviews < 15 || product.Reviews >= 215 {
		t.Fatalf("synthetic reviews out of range: %d", product.Reviews)
	}

	again, err := svc.GetPublicByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.Rating != product.Rating || again.Reviews != product.Reviews {
		t.Fatalf("synthetic values should be stable per product")
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	created, err := svc.Create(ProductInput{
		Name:        "玫瑰金手链",
		Category:    "手链",
		PriceAmount: decimal.NewFromInt(1580),
		Stock:       intPtr(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(created.ID, ProductInput{
		Name:        "玫瑰金手链（加宽款）",
		Category:    "手链",
		PriceAmount: decimal.NewFromInt(1680),
		Stock:       intPtr(3),
		IsActive:    boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Stock != 3 || updated.IsActive {
		t.Fatalf("update not applied: stock=%d active=%v", updated.Stock, updated.IsActive)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
	if _, _, err := svc.ListAdmin("", "", 1, 10); err != nil {
		t.Fatalf("list after delete failed: %v", err)
	}
}
