package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupMemberServiceTest(t *testing.T) (*MemberService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Member{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewMemberService(repository.NewMemberRepository(db), repository.NewOrderRepository(db))
	return svc, db
}

func TestLevelForTotalSpent(t *testing.T) {
	cases := []struct {
		spent string
		want  string
	}{
		{spent: "0", want: constants.MemberLevelBronze},
		{spent: "9999.99", want: constants.MemberLevelBronze},
		{spent: "10000", want: constants.MemberLevelSilver},
		{spent: "49999.99", want: constants.MemberLevelSilver},
		{spent: "50000", want: constants.MemberLevelGold},
		{spent: "149999.99", want: constants.MemberLevelGold},
		{spent: "150000", want: constants.MemberLevelPlatinum},
		{spent: "999999", want: constants.MemberLevelPlatinum},
	}
	for _, tc := range cases {
		if got := LevelForTotalSpent(decimal.RequireFromString(tc.spent)); got != tc.want {
			t.Fatalf("level for %s want %s got %s", tc.spent, tc.want, got)
		}
	}
}

func TestApplyPurchaseAggregatesOnce(t *testing.T) {
	svc, db := setupMemberServiceTest(t)

	member := &models.Member{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		MemberLevel:  constants.MemberLevelBronze,
		Status:       constants.MemberStatusActive,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("create member failed: %v", err)
	}

	order := &models.Order{
		OrderNo:         "ORD-TEST-1",
		MemberID:        member.ID,
		CustomerName:    "買家",
		CustomerEmail:   member.Email,
		CustomerPhone:   "0912345678",
		ShippingAddress: "台北市",
		Subtotal:        models.NewMoneyFromFloat(10500),
		ShippingFee:     models.NewMoneyFromFloat(0),
		TotalAmount:     models.NewMoneyFromFloat(10500.75),
		Status:          constants.OrderStatusCompleted,
		PaymentMethod:   constants.PaymentMethodCredit,
		PaymentStatus:   constants.PaymentStatusPaid,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.ApplyPurchase(order.ID); err != nil {
		t.Fatalf("apply purchase failed: %v", err)
	}

	var updated models.Member
	if err := db.First(&updated, member.ID).Error; err != nil {
		t.Fatalf("reload member failed: %v", err)
	}
	if !updated.TotalSpent.Decimal.Equal(decimal.RequireFromString("10500.75")) {
		t.Fatalf("total spent want 10500.75 got %s", updated.TotalSpent)
	}
	if updated.OrderCount != 1 {
		t.Fatalf("order count want 1 got %d", updated.OrderCount)
	}
	if updated.Points != 10500 {
		t.Fatalf("points want 10500 got %d", updated.Points)
	}
	if updated.MemberLevel != constants.MemberLevelSilver {
		t.Fatalf("level want silver got %s", updated.MemberLevel)
	}

	// 重复投递不重复累计
	if err := svc.ApplyPurchase(order.ID); err != nil {
		t.Fatalf("second apply purchase failed: %v", err)
	}
	if err := db.First(&updated, member.ID).Error; err != nil {
		t.Fatalf("reload member failed: %v", err)
	}
	if updated.OrderCount != 1 || updated.Points != 10500 {
		t.Fatalf("aggregation should be idempotent, got count=%d points=%d", updated.OrderCount, updated.Points)
	}
}

func TestApplyPurchaseSkipsNonCompletedOrder(t *testing.T) {
	svc, db := setupMemberServiceTest(t)

	member := &models.Member{
		Email:        "pending@example.com",
		PasswordHash: "hash",
		MemberLevel:  constants.MemberLevelBronze,
		Status:       constants.MemberStatusActive,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("create member failed: %v", err)
	}
	order := &models.Order{
		OrderNo:         "ORD-TEST-2",
		MemberID:        member.ID,
		CustomerName:    "買家",
		CustomerEmail:   member.Email,
		CustomerPhone:   "0912345678",
		ShippingAddress: "台北市",
		TotalAmount:     models.NewMoneyFromFloat(300),
		Status:          constants.OrderStatusPending,
		PaymentMethod:   constants.PaymentMethodCredit,
		PaymentStatus:   constants.PaymentStatusPaid,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.ApplyPurchase(order.ID); err != nil {
		t.Fatalf("apply purchase failed: %v", err)
	}

	var updated models.Member
	if err := db.First(&updated, member.ID).Error; err != nil {
		t.Fatalf("reload member failed: %v", err)
	}
	if updated.OrderCount != 0 || updated.Points != 0 {
		t.Fatalf("pending order should not aggregate, got count=%d points=%d", updated.OrderCount, updated.Points)
	}
}
