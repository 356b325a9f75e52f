package public

import (
	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaConfig 获取验证码场景配置（前端据此决定是否展示验证码）
func (h *Handler) GetCaptchaConfig(c *gin.Context) {
	response.Success(c, gin.H{
		"enabled": h.CaptchaService.Enabled(),
		"scenes": gin.H{
			"login":       h.CaptchaService.SceneEnabled(constants.CaptchaSceneLogin),
			"admin_login": h.CaptchaService.SceneEnabled(constants.CaptchaSceneAdminLogin),
		},
	})
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeBadRequest, "captcha unavailable", err)
		return
	}
	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
