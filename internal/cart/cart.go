package cart

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Line 购物车行（商品快照）
// 价格与数量从会话存储读回时可能是字符串，统一经过宽松解析
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Cart 会话购物车，同一商品最多一行，保留首次加入顺序
type Cart struct {
	Lines []Line `json:"lines"`
}

// New 创建空购物车
func New() *Cart {
	return &Cart{Lines: make([]Line, 0)}
}

// Add 加入商品：已存在时合并数量，否则追加到末尾
func (c *Cart) Add(line Line) {
	line.ProductID = strings.TrimSpace(line.ProductID)
	if line.ProductID == "" {
		return
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// SetQuantity 设定数量，数量 <= 0 等价于移除
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove 移除商品行
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
}

// TotalQuantity 商品总件数
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Subtotal 商品小计
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c.Lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal.Round(2)
}

// ProductIDs 返回当前行的商品 ID 集合（保持行顺序）
func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

// CoercePrice 宽松解析价格：数字或字符串，解析失败回退 0
func CoercePrice(raw interface{}) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(v).Round(2)
	case float32:
		return decimal.NewFromFloat(float64(v)).Round(2)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d.Round(2)
		}
		return decimal.Zero
	case decimal.Decimal:
		return v.Round(2)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero
		}
		if d, err := decimal.NewFromString(trimmed); err == nil {
			return d.Round(2)
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// CoerceQuantityOrRemove 宽松解析数量但保留显式的非正数，
// 交由 SetQuantity 按移除处理；仅在缺失或解析失败时回退 1
func CoerceQuantityOrRemove(raw interface{}) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		return 1
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		return 1
	default:
		return 1
	}
}

// CoerceQuantity 宽松解析数量：解析失败或非正数回退 1
func CoerceQuantity(raw interface{}) int {
	switch v := raw.(type) {
	case nil:
		return 1
	case int:
		if v > 0 {
			return v
		}
		return 1
	case int64:
		if v > 0 {
			return int(v)
		}
		return 1
	case float64:
		if v > 0 {
			return int(v)
		}
		return 1
	case json.Number:
		if n, err := v.Int64(); err == nil && n > 0 {
			return int(n)
		}
		return 1
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
		return 1
	default:
		return 1
	}
}
