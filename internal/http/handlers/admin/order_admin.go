package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 获取订单列表 (Admin)
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var createdFrom, createdTo *time.Time
	if raw := c.Query("created_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "created_from format must be YYYY-MM-DD", nil)
			return
		}
		createdFrom = &t
	}
	if raw := c.Query("created_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "created_to format must be YYYY-MM-DD", nil)
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		createdTo = &end
	}

	orders, total, err := h.OrderService.ListAdmin(c.Query("status"), c.Query("search"), createdFrom, createdTo, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrOrderStatusInvalid) {
			respondError(c, response.CodeBadRequest, "order status invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// AdminGetOrder 获取订单详情 (Admin)
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, svcErr := h.OrderService.GetAdminByID(uint(id))
	if svcErr != nil {
		if errors.Is(svcErr, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to get order", svcErr)
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 按状态机更新订单状态 (Admin)
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	order, svcErr := h.OrderService.UpdateStatus(uint(id), req.Status)
	if svcErr != nil {
		switch {
		case errors.Is(svcErr, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(svcErr, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "order status invalid", nil)
		case errors.Is(svcErr, service.ErrOrderTransitionInvalid):
			respondError(c, response.CodeBadRequest, "order status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update order status", svcErr)
		}
		return
	}

	requestLog(c).Infow("admin_order_status_updated",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", order.Status,
	)
	response.Success(c, order)
}
