package admin

import (
	"github.com/siisjewelry/siis-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取后台概览 (Admin)
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	overview, err := h.DashboardService.Overview()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load dashboard overview", err)
		return
	}
	response.Success(c, overview)
}
