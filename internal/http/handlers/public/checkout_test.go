package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/provider"
	"github.com/siisjewelry/siis-api/internal/repository"
	"github.com/siisjewelry/siis-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupConfirmationHandlerTest(t *testing.T, windowMinutes int) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	h := New(&provider.Container{
		Config: &config.Config{
			Checkout: config.CheckoutConfig{ConfirmationWindow: windowMinutes},
		},
		OrderRepo:    orderRepo,
		OrderService: service.NewOrderService(orderRepo, nil, nil),
	})

	r := gin.New()
	r.GET("/api/v1/orders/confirmation/:order_no", func(c *gin.Context) {
		c.Set("member_id", uint(7))
		h.GetOrderConfirmation(c)
	})
	return r, db
}

func seedConfirmationOrder(t *testing.T, db *gorm.DB, orderNo string, memberID uint, createdAt time.Time) {
	t.Helper()
	order := &models.Order{
		OrderNo:         orderNo,
		MemberID:        memberID,
		CustomerName:    "林小姐",
		CustomerEmail:   "lin@example.com",
		CustomerPhone:   "0912345678",
		ShippingAddress: "台北市信义区",
		TotalAmount:     models.NewMoneyFromFloat(12800),
		Status:          constants.OrderStatusPending,
		PaymentMethod:   "credit",
		PaymentStatus:   constants.PaymentStatusPaid,
		CreatedAt:       createdAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func getConfirmation(t *testing.T, r *gin.Engine, orderNo string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/confirmation/"+orderNo, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}

	var envelope struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return envelope.StatusCode, envelope.Msg
}

func TestGetOrderConfirmationWithinWindow(t *testing.T) {
	r, db := setupConfirmationHandlerTest(t, 30)
	seedConfirmationOrder(t, db, "ORD-1001", 7, time.Now().Add(-5*time.Minute))

	code, msg := getConfirmation(t, r, "ORD-1001")
	if code != response.CodeOK {
		t.Fatalf("status_code want 0 got %d (%s)", code, msg)
	}
}

func TestGetOrderConfirmationExpiresAfterWindow(t *testing.T) {
	r, db := setupConfirmationHandlerTest(t, 30)
	seedConfirmationOrder(t, db, "ORD-1002", 7, time.Now().Add(-2*time.Hour))

	code, msg := getConfirmation(t, r, "ORD-1002")
	if code != response.CodeNotFound {
		t.Fatalf("status_code want 404 got %d", code)
	}
	if msg != "confirmation expired" {
		t.Fatalf("msg want confirmation expired got %q", msg)
	}
}

func TestGetOrderConfirmationWindowDisabled(t *testing.T) {
	// 窗口为 0 时不限制订单年龄
	r, db := setupConfirmationHandlerTest(t, 0)
	seedConfirmationOrder(t, db, "ORD-1003", 7, time.Now().Add(-48*time.Hour))

	code, msg := getConfirmation(t, r, "ORD-1003")
	if code != response.CodeOK {
		t.Fatalf("status_code want 0 got %d (%s)", code, msg)
	}
}

func TestGetOrderConfirmationRejectsOtherMember(t *testing.T) {
	r, db := setupConfirmationHandlerTest(t, 30)
	seedConfirmationOrder(t, db, "ORD-1004", 99, time.Now())

	code, _ := getConfirmation(t, r, "ORD-1004")
	if code != response.CodeNotFound {
		t.Fatalf("status_code want 404 got %d", code)
	}
}
