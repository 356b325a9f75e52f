package public

import (
	"errors"
	"time"

	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitOrderRequest 提交订单请求
type SubmitOrderRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

// StageCheckout 进入结算：写入一次性暂存快照并返回金额概览
func (h *Handler) StageCheckout(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	quote, err := h.CheckoutService.Stage(c.Request.Context(), cartSession(c), memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "cart is empty", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeUnauthorized, "member not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to stage checkout", err)
		}
		return
	}
	response.Success(c, quote)
}

// GetCheckoutState 读取结算暂存（结算页回显收件人与金额）
func (h *Handler) GetCheckoutState(c *gin.Context) {
	if _, ok := getMemberID(c); !ok {
		return
	}
	session := cartSession(c)
	user, err := h.CheckoutService.StagedUser(c.Request.Context(), session)
	if err != nil {
		if errors.Is(err, service.ErrCheckoutExpired) {
			respondError(c, response.CodeNotFound, "checkout staging expired", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load checkout state", err)
		return
	}
	quote, err := h.CheckoutService.Quote(c.Request.Context(), session)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load checkout state", err)
		return
	}
	response.Success(c, gin.H{
		"user":  user,
		"quote": quote,
	})
}

// SubmitOrder 提交订单
func (h *Handler) SubmitOrder(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	order, err := h.CheckoutService.Submit(c.Request.Context(), cartSession(c), memberID, service.CheckoutInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderValidation):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "cart is empty", nil)
		default:
			respondError(c, response.CodeInternal, "failed to submit order", err)
		}
		return
	}
	response.Success(c, order)
}

// GetOrderConfirmation 按订单号获取确认页数据（仅限本人订单）。
// 下单超过确认页保留窗口后不再提供快照，转订单详情查看
func (h *Handler) GetOrderConfirmation(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetByOrderNo(c.Param("order_no"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to get order", err)
		return
	}
	if order.MemberID != memberID {
		respondError(c, response.CodeNotFound, "order not found", nil)
		return
	}
	if window := h.Config.Checkout.ConfirmationWindow; window > 0 {
		if time.Since(order.CreatedAt) > time.Duration(window)*time.Minute {
			respondError(c, response.CodeNotFound, "confirmation expired", nil)
			return
		}
	}
	response.Success(c, order)
}
