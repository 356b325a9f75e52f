package admin

import (
	"errors"

	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadImages 上传商品图片 (Admin)。
// multipart 字段名 files，单次最多 3 张，任何一张非法则整批拒绝
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid multipart form", err)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		if single, ferr := c.FormFile("file"); ferr == nil && single != nil {
			files = append(files, single)
		}
	}
	if len(files) == 0 {
		respondError(c, response.CodeBadRequest, "no file uploaded", nil)
		return
	}

	urls, err := h.UploadService.SaveImages(files, c.DefaultPostForm("scene", "products"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyImages):
			respondError(c, response.CodeBadRequest, "at most 3 images per upload", nil)
		case errors.Is(err, service.ErrUploadTypeInvalid):
			respondError(c, response.CodeBadRequest, "only jpeg, png and webp images are allowed", nil)
		case errors.Is(err, service.ErrUploadTooLarge):
			respondError(c, response.CodeBadRequest, "image exceeds size limit", nil)
		default:
			respondError(c, response.CodeInternal, "failed to save upload", err)
		}
		return
	}

	requestLog(c).Infow("admin_images_uploaded", "count", len(urls))
	response.Success(c, gin.H{"urls": urls})
}
