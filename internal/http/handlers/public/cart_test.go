package public

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/siisjewelry/siis-api/internal/cart"
	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/provider"

	"github.com/gin-gonic/gin"
)

type cartEnvelope struct {
	StatusCode int      `json:"status_code"`
	Msg        string   `json:"msg"`
	Data       CartView `json:"data"`
}

func setupCartHandlerTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := New(&provider.Container{
		Config:        &config.Config{},
		CartStore:     cart.NewStore(1),
		ImageResolver: cart.NewImageResolver(""),
	})

	r := gin.New()
	r.GET("/api/v1/cart", h.GetCart)
	r.POST("/api/v1/cart/items", h.AddCartItem)
	r.PUT("/api/v1/cart/items/:id", h.UpdateCartItem)
	r.DELETE("/api/v1/cart/items/:id", h.RemoveCartItem)
	return r
}

func doCartRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, cartEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Cart-Token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope cartEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return w, envelope
}

func TestUpdateCartItemZeroQuantityRemovesLine(t *testing.T) {
	r := setupCartHandlerTest(t)
	token := "cart-token-update"

	_, envelope := doCartRequest(t, r, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": "p-100",
		"name":       "经典单钻戒指",
		"price":      "12800",
		"quantity":   2,
	})
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].Quantity != 2 {
		t.Fatalf("expected one line with qty 2, got %+v", envelope.Data.Items)
	}
	doCartRequest(t, r, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": "p-200",
		"name":       "珍珠耳钉",
		"price":      "880",
		"quantity":   1,
	})

	// 数量 0 等价于移除该行，不能回退成 1
	w, envelope := doCartRequest(t, r, http.MethodPut, "/api/v1/cart/items/p-100", token, map[string]interface{}{
		"quantity": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].ProductID != "p-200" {
		t.Fatalf("zero quantity should remove the line, got %+v", envelope.Data.Items)
	}

	// 负数同样按移除处理
	_, envelope = doCartRequest(t, r, http.MethodPut, "/api/v1/cart/items/p-200", token, map[string]interface{}{
		"quantity": -1,
	})
	if len(envelope.Data.Items) != 0 {
		t.Fatalf("negative quantity should remove the line, got %+v", envelope.Data.Items)
	}

	_, envelope = doCartRequest(t, r, http.MethodGet, "/api/v1/cart", token, nil)
	if len(envelope.Data.Items) != 0 || envelope.Data.TotalQuantity != 0 {
		t.Fatalf("cart should be empty after removals, got %+v", envelope.Data)
	}
}

func TestUpdateCartItemPositiveQuantity(t *testing.T) {
	r := setupCartHandlerTest(t)
	token := "cart-token-set"

	doCartRequest(t, r, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": "p-100",
		"name":       "经典单钻戒指",
		"price":      "12800",
		"quantity":   1,
	})
	_, envelope := doCartRequest(t, r, http.MethodPut, "/api/v1/cart/items/p-100", token, map[string]interface{}{
		"quantity": "5",
	})
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %+v", envelope.Data.Items)
	}
}

func TestGuestCartTokenIssuedOnFirstRequest(t *testing.T) {
	r := setupCartHandlerTest(t)

	// 访客首次写入：响应头签发令牌，写入落在该令牌会话上
	w, envelope := doCartRequest(t, r, http.MethodPost, "/api/v1/cart/items", "", map[string]interface{}{
		"product_id": "p-100",
		"name":       "经典单钻戒指",
		"price":      "12800",
		"quantity":   1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	token := w.Header().Get("X-Cart-Token")
	if token == "" {
		t.Fatal("guest write should issue X-Cart-Token")
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected one line in response, got %+v", envelope.Data.Items)
	}

	// 带令牌回访能看到刚写入的内容
	_, envelope = doCartRequest(t, r, http.MethodGet, "/api/v1/cart", token, nil)
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].ProductID != "p-100" {
		t.Fatalf("cart should survive across requests with issued token, got %+v", envelope.Data.Items)
	}

	// 客户端已持有令牌时不再重复签发
	w, _ = doCartRequest(t, r, http.MethodGet, "/api/v1/cart", token, nil)
	if issued := w.Header().Get("X-Cart-Token"); issued != "" {
		t.Fatalf("existing session should not get a new token, got %s", issued)
	}
}

func TestGuestCartsAreIsolatedByToken(t *testing.T) {
	r := setupCartHandlerTest(t)

	doCartRequest(t, r, http.MethodPost, "/api/v1/cart/items", "guest-a", map[string]interface{}{
		"product_id": "p-100",
		"name":       "经典单钻戒指",
		"price":      "12800",
		"quantity":   1,
	})

	_, envelope := doCartRequest(t, r, http.MethodGet, "/api/v1/cart", "guest-b", nil)
	if len(envelope.Data.Items) != 0 {
		t.Fatalf("another token should see an empty cart, got %+v", envelope.Data.Items)
	}
}
