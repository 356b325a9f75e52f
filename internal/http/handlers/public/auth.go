package public

import (
	"errors"

	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/http/handlers/shared"
	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	shared.CaptchaPayloadRequest
}

// MemberView 会员响应结构（不含敏感字段）
type MemberView struct {
	ID          uint         `json:"id"`
	Email       string       `json:"email"`
	DisplayName string       `json:"display_name"`
	Phone       string       `json:"phone"`
	Address     string       `json:"address"`
	MemberLevel string       `json:"member_level"`
	TotalSpent  models.Money `json:"total_spent"`
	OrderCount  int          `json:"order_count"`
	Points      int          `json:"points"`
	Status      string       `json:"status"`
}

func buildMemberView(member *models.Member) MemberView {
	return MemberView{
		ID:          member.ID,
		Email:       member.Email,
		DisplayName: member.DisplayName,
		Phone:       member.Phone,
		Address:     member.Address,
		MemberLevel: member.MemberLevel,
		TotalSpent:  member.TotalSpent,
		OrderCount:  member.OrderCount,
		Points:      member.Points,
		Status:      member.Status,
	}
}

// Register 会员注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	member, err := h.MemberAuthService.Register(service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInvalid):
			respondError(c, response.CodeBadRequest, "email format is invalid", nil)
		case errors.Is(err, service.ErrPasswordTooWeak):
			respondError(c, response.CodeBadRequest, "password too weak", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "email already registered", nil)
		default:
			respondError(c, response.CodeInternal, "register failed", err)
		}
		return
	}
	response.Success(c, buildMemberView(member))
}

// Login 会员登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.ToServicePayload()); err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaRequired):
			respondError(c, response.CodeBadRequest, "captcha required", nil)
		case errors.Is(err, service.ErrCaptchaInvalid):
			respondError(c, response.CodeBadRequest, "captcha invalid", nil)
		default:
			respondError(c, response.CodeInternal, "captcha verify failed", err)
		}
		return
	}

	member, token, expiresAt, err := h.MemberAuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
		case errors.Is(err, service.ErrMemberDisabled):
			respondError(c, response.CodeForbidden, "member disabled", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	requestLog(c).Infow("member_login", "member_id", member.ID, "email", member.Email)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"member":     buildMemberView(member),
	})
}

// Logout 会员登出：清空会话购物车并使旧 token 失效
func (h *Handler) Logout(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	if err := h.MemberAuthService.Logout(c.Request.Context(), memberID, cartSession(c)); err != nil {
		respondError(c, response.CodeInternal, "logout failed", err)
		return
	}
	response.Success(c, nil)
}
