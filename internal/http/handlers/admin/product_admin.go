package admin

import (
	"errors"
	"strconv"

	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	PriceAmount models.Money `json:"price_amount"`
	Category    string       `json:"category"`
	Stock       *int         `json:"stock"`
	Images      []string     `json:"images"`
	TagText     string       `json:"tag_text"`
	TagColor    string       `json:"tag_color"`
	IsActive    *bool        `json:"is_active"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		PriceAmount: r.PriceAmount.Decimal,
		Category:    r.Category,
		Stock:       r.Stock,
		Images:      r.Images,
		TagText:     r.TagText,
		TagColor:    r.TagColor,
		IsActive:    r.IsActive,
	}
}

func respondProductError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrProductNameRequired):
		respondError(c, response.CodeBadRequest, "product name is required", nil)
	case errors.Is(err, service.ErrProductCategoryRequired):
		respondError(c, response.CodeBadRequest, "product category is required", nil)
	case errors.Is(err, service.ErrProductPriceInvalid):
		respondError(c, response.CodeBadRequest, "product price must be positive", nil)
	case errors.Is(err, service.ErrProductStockInvalid):
		respondError(c, response.CodeBadRequest, "product stock must not be negative", nil)
	case errors.Is(err, service.ErrTooManyImages):
		respondError(c, response.CodeBadRequest, "at most 3 product images", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return 0, false
	}
	return uint(id), true
}

// AdminListProducts 获取商品列表 (Admin)
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.ListAdmin(c.Query("category"), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// AdminGetProduct 获取商品详情 (Admin)
func (h *Handler) AdminGetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondProductError(c, err, "failed to get product")
		return
	}
	response.Success(c, product)
}

// AdminCreateProduct 创建商品 (Admin)
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err, "failed to create product")
		return
	}
	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "name", product.Name)
	response.Success(c, product)
}

// AdminUpdateProduct 更新商品 (Admin)。
// 图片替换顺序：新文件先上传并写入记录，记录落库后才删除被换下的旧文件
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	before, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondProductError(c, err, "failed to get product")
		return
	}
	oldImages := append([]string(nil), before.Images...)

	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductError(c, err, "failed to update product")
		return
	}

	for _, removed := range removedImages(oldImages, product.Images) {
		h.UploadService.DeleteImageByURL(removed)
	}

	requestLog(c).Infow("admin_product_updated", "product_id", product.ID)
	response.Success(c, product)
}

// AdminDeleteProduct 删除商品 (Admin)
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondProductError(c, err, "failed to delete product")
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", id)
	response.Success(c, nil)
}

// removedImages 返回旧列表中不再出现在新列表里的图片
func removedImages(before, after []string) []string {
	kept := make(map[string]struct{}, len(after))
	for _, img := range after {
		kept[img] = struct{}{}
	}
	removed := make([]string, 0)
	for _, img := range before {
		if _, ok := kept[img]; !ok {
			removed = append(removed, img)
		}
	}
	return removed
}
