package public

import (
	"strings"

	handlershared "github.com/siisjewelry/siis-api/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func getMemberID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "member_id")
}

// memberIDOrZero 读取会员身份但不强制登录（购物车允许访客使用）
func memberIDOrZero(c *gin.Context) uint {
	value, exists := c.Get("member_id")
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

// cartSession 返回购物车会话标识：已登录用会员身份，否则用 X-Cart-Token
func cartSession(c *gin.Context) string {
	if value, exists := c.Get("cart_session"); exists {
		if session, ok := value.(string); ok && session != "" {
			return session
		}
	}
	return strings.TrimSpace(c.GetHeader("X-Cart-Token"))
}

// ensureCartSession 返回购物车会话标识。访客未带 X-Cart-Token 时
// 签发新令牌并通过响应头回传，当次请求即以该令牌为会话
func ensureCartSession(c *gin.Context) string {
	if session := cartSession(c); session != "" {
		return session
	}
	token := uuid.NewString()
	c.Header("X-Cart-Token", token)
	return token
}
