//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
		&models.Member{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Member{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	repo := NewProductRepository(db)
	product := &models.Product{
		Name:        "流光锁骨链",
		Description: "sterling silver pendant necklace",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(680)),
		Category:    "项链",
		Stock:       10,
		IsActive:    true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := repo.List(ProductListFilter{Page: 1, Search: "锁骨"})
	if err != nil {
		t.Fatalf("product search by name failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search by name want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(ProductListFilter{Page: 1, Search: "PENDANT"})
	if err != nil {
		t.Fatalf("product search by description failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search by description want 1 got total=%d len=%d", total, len(rows))
	}

	categories, err := repo.ListCategories(true)
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 1 || categories[0] != "项链" {
		t.Fatalf("categories want [项链] got %v", categories)
	}
}

func TestPostgresDashboardOverview(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewDashboardRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	member := &models.Member{
		Email:        "pg-member@example.com",
		PasswordHash: "hash",
		MemberLevel:  constants.MemberLevelBronze,
		Status:       constants.MemberStatusActive,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("create member failed: %v", err)
	}

	product := &models.Product{
		Name:        "珍珠耳钉",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(420)),
		Category:    "耳饰",
		Stock:       2,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	orders := []models.Order{
		{
			OrderNo:         "ORD-PG-1",
			MemberID:        member.ID,
			CustomerName:    "測試",
			CustomerEmail:   member.Email,
			CustomerPhone:   "0912345678",
			ShippingAddress: "台北市",
			Subtotal:        models.NewMoneyFromDecimal(decimal.NewFromInt(420)),
			ShippingFee:     models.NewMoneyFromDecimal(decimal.NewFromInt(60)),
			TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(480)),
			Status:          constants.OrderStatusCompleted,
			PaymentMethod:   constants.PaymentMethodCredit,
			PaymentStatus:   constants.PaymentStatusPaid,
			CreatedAt:       now,
		},
		{
			OrderNo:         "ORD-PG-2",
			MemberID:        member.ID,
			CustomerName:    "測試",
			CustomerEmail:   member.Email,
			CustomerPhone:   "0912345678",
			ShippingAddress: "台北市",
			Subtotal:        models.NewMoneyFromDecimal(decimal.NewFromInt(680)),
			ShippingFee:     models.NewMoneyFromDecimal(decimal.NewFromInt(60)),
			TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(740)),
			Status:          constants.OrderStatusPending,
			PaymentMethod:   constants.PaymentMethodCredit,
			PaymentStatus:   constants.PaymentStatusPaid,
			CreatedAt:       now,
		},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	overview, err := repo.Overview(5)
	if err != nil {
		t.Fatalf("dashboard overview failed: %v", err)
	}
	if overview.ProductCount != 1 || overview.ActiveProducts != 1 {
		t.Fatalf("product counts want 1/1 got %d/%d", overview.ProductCount, overview.ActiveProducts)
	}
	if overview.LowStockProducts != 1 {
		t.Fatalf("low stock want 1 got %d", overview.LowStockProducts)
	}
	if overview.OrderCount != 2 || overview.PendingOrders != 1 {
		t.Fatalf("order counts want 2/1 got %d/%d", overview.OrderCount, overview.PendingOrders)
	}
	if overview.MemberCount != 1 {
		t.Fatalf("member count want 1 got %d", overview.MemberCount)
	}
	if !overview.CompletedRevenue.Decimal.Equal(decimal.NewFromInt(480)) {
		t.Fatalf("completed revenue want 480 got %s", overview.CompletedRevenue)
	}
}
