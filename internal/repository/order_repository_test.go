package repository

import (
	"testing"
	"time"

	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/models"
)

func seedOrder(t *testing.T, repo *GormOrderRepository, orderNo string, memberID uint, status string, total float64, items []models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:         orderNo,
		MemberID:        memberID,
		CustomerName:    "王小姐",
		CustomerEmail:   "buyer@example.com",
		CustomerPhone:   "0912345678",
		ShippingAddress: "台北市信义区",
		Subtotal:        models.NewMoneyFromFloat(total),
		TotalAmount:     models.NewMoneyFromFloat(total),
		Status:          status,
		PaymentMethod:   constants.PaymentMethodCredit,
		PaymentStatus:   constants.PaymentStatusPending,
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("seed order %s failed: %v", orderNo, err)
	}
	return order
}

func TestOrderCreateWithItems(t *testing.T) {
	db := setupRepositoryTestDB(t, &models.Order{}, &models.OrderItem{})
	repo := NewOrderRepository(db)

	items := []models.OrderItem{
		{ProductID: "101", Name: "经典单钻戒指", UnitPrice: models.NewMoneyFromFloat(12800), Quantity: 1, TotalPrice: models.NewMoneyFromFloat(12800)},
		{ProductID: "102", Name: "珍珠耳钉", UnitPrice: models.NewMoneyFromFloat(420), Quantity: 2, TotalPrice: models.NewMoneyFromFloat(840)},
	}
	created := seedOrder(t, repo, "ORD-1001", 1, constants.OrderStatusPending, 13640, items)

	order, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if order == nil || len(order.Items) != 2 {
		t.Fatalf("order should carry 2 items")
	}
	for _, item := range order.Items {
		if item.OrderID != created.ID {
			t.Fatalf("item not bound to order, got order_id=%d", item.OrderID)
		}
	}

	byNo, err := repo.GetByOrderNo(" ORD-1001 ")
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if byNo == nil || byNo.ID != created.ID {
		t.Fatalf("order no lookup should trim and match")
	}
	missing, err := repo.GetByOrderNo("ORD-NOPE")
	if err != nil || missing != nil {
		t.Fatalf("missing order no should return nil, got %v %v", missing, err)
	}
}

func TestOrderListAdminFilters(t *testing.T) {
	db := setupRepositoryTestDB(t, &models.Order{}, &models.OrderItem{})
	repo := NewOrderRepository(db)

	old := seedOrder(t, repo, "ORD-2001", 1, constants.OrderStatusCompleted, 480, nil)
	seedOrder(t, repo, "ORD-2002", 2, constants.OrderStatusPending, 740, nil)

	lastWeek := time.Now().Add(-7 * 24 * time.Hour)
	if err := db.Model(old).Update("created_at", lastWeek).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}

	all, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || all[0].OrderNo != "ORD-2002" {
		t.Fatalf("newest order should come first, total=%d first=%s", total, all[0].OrderNo)
	}

	_, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Status: constants.OrderStatusPending})
	if err != nil || total != 1 {
		t.Fatalf("status filter want 1, got total=%d err=%v", total, err)
	}

	_, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Search: "ord-2001"})
	if err != nil || total != 1 {
		t.Fatalf("search should be case-insensitive, got total=%d err=%v", total, err)
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	_, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, CreatedFrom: &yesterday})
	if err != nil || total != 1 {
		t.Fatalf("created_from filter want 1, got total=%d err=%v", total, err)
	}
	_, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, CreatedTo: &yesterday})
	if err != nil || total != 1 {
		t.Fatalf("created_to filter want 1, got total=%d err=%v", total, err)
	}
}

func TestOrderListByMember(t *testing.T) {
	db := setupRepositoryTestDB(t, &models.Order{}, &models.OrderItem{})
	repo := NewOrderRepository(db)

	seedOrder(t, repo, "ORD-3001", 7, constants.OrderStatusPending, 300, nil)
	seedOrder(t, repo, "ORD-3002", 8, constants.OrderStatusPending, 500, nil)

	orders, total, err := repo.ListByMember(OrderListFilter{Page: 1, PageSize: 10, MemberID: 7})
	if err != nil {
		t.Fatalf("list by member failed: %v", err)
	}
	if total != 1 || orders[0].OrderNo != "ORD-3001" {
		t.Fatalf("member filter want ORD-3001, got total=%d", total)
	}

	none, total, err := repo.ListByMember(OrderListFilter{Page: 1, PageSize: 10})
	if err != nil || total != 0 || len(none) != 0 {
		t.Fatalf("member id 0 should return empty list")
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	db := setupRepositoryTestDB(t, &models.Order{}, &models.OrderItem{})
	repo := NewOrderRepository(db)

	order := seedOrder(t, repo, "ORD-4001", 1, constants.OrderStatusPending, 980, nil)

	if err := repo.UpdateStatus(order.ID, constants.OrderStatusPaid, map[string]interface{}{
		"payment_status": constants.PaymentStatusPaid,
	}); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	reloaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPaid || reloaded.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("status not updated: %s/%s", reloaded.Status, reloaded.PaymentStatus)
	}
}

func TestOrderMarkAggregatedIdempotent(t *testing.T) {
	db := setupRepositoryTestDB(t, &models.Order{}, &models.OrderItem{})
	repo := NewOrderRepository(db)

	order := seedOrder(t, repo, "ORD-5001", 1, constants.OrderStatusCompleted, 1200, nil)

	now := time.Now()
	marked, err := repo.MarkAggregated(order.ID, map[string]interface{}{"aggregated_at": now})
	if err != nil || !marked {
		t.Fatalf("first mark should succeed, marked=%v err=%v", marked, err)
	}

	marked, err = repo.MarkAggregated(order.ID, map[string]interface{}{"aggregated_at": now})
	if err != nil {
		t.Fatalf("second mark failed: %v", err)
	}
	if marked {
		t.Fatalf("second mark should be a no-op")
	}
}
