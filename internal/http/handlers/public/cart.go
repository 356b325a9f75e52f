package public

import (
	"strconv"
	"strings"

	"github.com/siisjewelry/siis-api/internal/cart"
	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CartLineView 购物车行响应结构
type CartLineView struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Price     models.Money `json:"price"`
	Image     string       `json:"image"`
	Quantity  int          `json:"quantity"`
	LineTotal models.Money `json:"line_total"`
}

// CartView 购物车响应结构
type CartView struct {
	Items         []CartLineView `json:"items"`
	TotalQuantity int            `json:"total_quantity"`
	Subtotal      models.Money   `json:"subtotal"`
	ShippingFee   models.Money   `json:"shipping_fee"`
	Total         models.Money   `json:"total"`
}

// AddCartItemRequest 加入购物车请求。
// price 与 quantity 兼容字符串和数字，历史前端两种都会发
type AddCartItemRequest struct {
	ProductID interface{} `json:"product_id"`
	Name      string      `json:"name"`
	Price     interface{} `json:"price"`
	Image     string      `json:"image"`
	ImageURL  string      `json:"image_url"`
	Photo     string      `json:"photo"`
	Quantity  interface{} `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity interface{} `json:"quantity"`
}

func (h *Handler) buildCartView(session string, c *cart.Cart) CartView {
	sources := make(map[string]cart.ImageSource, len(c.Lines))
	for _, line := range c.Lines {
		sources[line.ProductID] = cart.ImageSource{Image: line.Image}
	}
	resolved := h.ImageResolver.ResolveAll(session, c.Lines, sources)

	items := make([]CartLineView, 0, len(c.Lines))
	for _, line := range c.Lines {
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, CartLineView{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     models.NewMoneyFromDecimal(line.Price),
			Image:     resolved[line.ProductID],
			Quantity:  line.Quantity,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
		})
	}

	subtotal := c.Subtotal()
	shipping := decimal.Zero
	if h.CheckoutService != nil {
		shipping = h.CheckoutService.ShippingFeeFor(subtotal)
	}
	return CartView{
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      models.NewMoneyFromDecimal(subtotal),
		ShippingFee:   models.NewMoneyFromDecimal(shipping),
		Total:         models.NewMoneyFromDecimal(subtotal.Add(shipping)),
	}
}

// GetCart 获取当前会话购物车
func (h *Handler) GetCart(c *gin.Context) {
	session := ensureCartSession(c)
	current, err := h.CartStore.Get(c.Request.Context(), session)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	response.Success(c, h.buildCartView(session, current))
}

// AddCartItem 加入购物车。
// 商品编号能映射到在库商品时以数据库价格与名称为准
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	productID := coerceProductID(req.ProductID)
	if productID == "" {
		respondError(c, response.CodeBadRequest, "product_id is required", nil)
		return
	}
	quantity := cart.CoerceQuantity(req.Quantity)

	line := cart.Line{
		ProductID: productID,
		Name:      strings.TrimSpace(req.Name),
		Price:     cart.CoercePrice(req.Price),
		Image:     firstNonEmptyString(req.Image, req.ImageURL, req.Photo),
		Quantity:  quantity,
	}

	if id, err := strconv.ParseUint(productID, 10, 64); err == nil && id > 0 {
		product, err := h.ProductRepo.GetByID(uint(id))
		if err != nil {
			respondError(c, response.CodeInternal, "failed to load product", err)
			return
		}
		if product != nil {
			if !product.Purchasable() {
				respondError(c, response.CodeBadRequest, "product not available", nil)
				return
			}
			line.Name = product.Name
			line.Price = product.PriceAmount.Decimal
			line.Image = product.PrimaryImage()
			if line.Quantity > product.Stock {
				line.Quantity = product.Stock
			}
		}
	}

	session := ensureCartSession(c)
	current, err := h.CartStore.Get(c.Request.Context(), session)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	current.Add(line)
	if err := h.CartStore.Save(c.Request.Context(), session, current); err != nil {
		respondError(c, response.CodeInternal, "failed to save cart", err)
		return
	}
	response.Success(c, h.buildCartView(session, current))
}

// UpdateCartItem 修改购物车行数量，数量小于等于 0 时移除该行
func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	if productID == "" {
		respondError(c, response.CodeBadRequest, "product id is required", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	session := ensureCartSession(c)
	current, err := h.CartStore.Get(c.Request.Context(), session)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	current.SetQuantity(productID, cart.CoerceQuantityOrRemove(req.Quantity))
	if err := h.CartStore.Save(c.Request.Context(), session, current); err != nil {
		respondError(c, response.CodeInternal, "failed to save cart", err)
		return
	}
	response.Success(c, h.buildCartView(session, current))
}

// RemoveCartItem 移除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	if productID == "" {
		respondError(c, response.CodeBadRequest, "product id is required", nil)
		return
	}

	session := ensureCartSession(c)
	current, err := h.CartStore.Get(c.Request.Context(), session)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	current.Remove(productID)
	if err := h.CartStore.Save(c.Request.Context(), session, current); err != nil {
		respondError(c, response.CodeInternal, "failed to save cart", err)
		return
	}
	response.Success(c, h.buildCartView(session, current))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	session := ensureCartSession(c)
	if err := h.CartStore.Clear(c.Request.Context(), session); err != nil {
		respondError(c, response.CodeInternal, "failed to clear cart", err)
		return
	}
	h.ImageResolver.Forget(session)
	response.Success(c, h.buildCartView(session, cart.New()))
}

func coerceProductID(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v <= 0 {
			return ""
		}
		return strconv.FormatInt(int64(v), 10)
	case int:
		if v <= 0 {
			return ""
		}
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func firstNonEmptyString(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
