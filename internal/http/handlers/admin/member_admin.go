package admin

import (
	"errors"
	"strconv"

	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/service"

	"github.com/gin-gonic/gin"
)

// MemberUpdateRequest 后台更新会员请求
type MemberUpdateRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Level       *string `json:"member_level"`
	Status      *string `json:"status"`
	Points      *int    `json:"points"`
}

func parseMemberID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid member id", nil)
		return 0, false
	}
	return uint(id), true
}

// AdminListMembers 获取会员列表 (Admin)
func (h *Handler) AdminListMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	members, total, err := h.MemberService.ListAdmin(c.Query("search"), c.Query("level"), c.Query("status"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list members", err)
		return
	}

	response.SuccessWithPage(c, members, response.NewPagination(page, pageSize, total))
}

// AdminGetMember 获取会员详情 (Admin)
func (h *Handler) AdminGetMember(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}
	member, err := h.MemberService.GetAdminByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "member not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to get member", err)
		return
	}
	response.Success(c, member)
}

// AdminUpdateMember 更新会员资料 (Admin)
func (h *Handler) AdminUpdateMember(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}
	var req MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	member, err := h.MemberService.UpdateAdmin(id, service.MemberUpdateInput{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Address:     req.Address,
		Level:       req.Level,
		Status:      req.Status,
		Points:      req.Points,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "member not found", nil)
		case errors.Is(err, service.ErrOrderValidation):
			respondError(c, response.CodeBadRequest, "invalid member level or status", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update member", err)
		}
		return
	}

	requestLog(c).Infow("admin_member_updated", "member_id", member.ID)
	response.Success(c, member)
}

// AdminDeleteMember 删除会员 (Admin)
func (h *Handler) AdminDeleteMember(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}
	if err := h.MemberService.DeleteAdmin(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "member not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete member", err)
		return
	}
	requestLog(c).Infow("admin_member_deleted", "member_id", id)
	response.Success(c, nil)
}
