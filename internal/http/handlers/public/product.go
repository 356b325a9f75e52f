package public

import (
	"errors"
	"strconv"

	"github.com/siisjewelry/siis-api/internal/cart"
	"github.com/siisjewelry/siis-api/internal/http/handlers/shared"
	"github.com/siisjewelry/siis-api/internal/http/response"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductView 前台商品响应结构
type ProductView struct {
	models.Product
	Images      []string `json:"images"`
	Image       string   `json:"image"`
	Purchasable bool     `json:"purchasable"`
}

func (h *Handler) buildProductView(product *models.Product) ProductView {
	id := strconv.FormatUint(uint64(product.ID), 10)
	images := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, h.ImageResolver.Resolve(id, cart.ImageSource{StoragePath: img}))
	}
	if len(images) == 0 {
		images = append(images, h.ImageResolver.Resolve(id, cart.ImageSource{}))
	}
	return ProductView{
		Product:     *product,
		Images:      images,
		Image:       images[0],
		Purchasable: product.Purchasable(),
	}
}

// ListProducts 获取商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	category := c.Query("category")
	search := c.Query("search")

	products, total, err := h.ProductService.ListPublic(category, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, h.buildProductView(&products[i]))
	}

	response.SuccessWithPage(c, views, response.NewPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	product, err := h.ProductService.GetPublicByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to get product", err)
		return
	}
	response.Success(c, h.buildProductView(product))
}

// ListCategories 获取在售商品分类
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.ProductService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list categories", err)
		return
	}
	response.Success(c, categories)
}
