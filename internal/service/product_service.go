package service

import (
	"strconv"
	"strings"

	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name        string
	Description string
	PriceAmount decimal.Decimal
	Category    string
	Stock       *int
	Images      []string
	TagText     string
	TagColor    string
	IsActive    *bool
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   category,
		Search:     search,
		OnlyActive: true,
	}
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range products {
		s.fillSyntheticRating(&products[i])
	}
	return products, total, nil
}

// GetPublicByID 获取公开商品详情
func (s *ProductService) GetPublicByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	s.fillSyntheticRating(product)
	return product, nil
}

// ListCategories 获取在售商品分类（去重）
func (s *ProductService) ListCategories() ([]string, error) {
	return s.repo.ListCategories(true)
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   category,
		Search:     search,
		OnlyActive: false,
	}
	return s.repo.List(filter)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, ErrProductCategoryRequired
	}
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	stock := 0
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrProductStockInvalid
		}
		stock = *input.Stock
	}
	images, err := normalizeProductImages(input.Images)
	if err != nil {
		return nil, err
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		PriceAmount: models.NewMoneyFromDecimal(priceAmount),
		Category:    category,
		Stock:       stock,
		Images:      images,
		TagText:     strings.TrimSpace(input.TagText),
		TagColor:    strings.TrimSpace(input.TagColor),
		IsActive:    isActive,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, ErrProductCategoryRequired
	}
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	images, err := normalizeProductImages(input.Images)
	if err != nil {
		return nil, err
	}

	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.PriceAmount = models.NewMoneyFromDecimal(priceAmount)
	product.Category = category
	product.Images = images
	product.TagText = strings.TrimSpace(input.TagText)
	product.TagColor = strings.TrimSpace(input.TagColor)
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrProductStockInvalid
		}
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// fillSyntheticRating 评分或评价数缺失时补上稳定的合成值
func (s *ProductService) fillSyntheticRating(product *models.Product) {
	id := strconv.FormatUint(uint64(product.ID), 10)
	if product.Rating <= 0 {
		product.Rating = SyntheticRating(id)
	}
	if product.Reviews <= 0 {
		product.Reviews = SyntheticReviews(id)
	}
}

// normalizeProductImages 去掉空白条目并限制张数
func normalizeProductImages(raw []string) (models.StringArray, error) {
	images := make(models.StringArray, 0, len(raw))
	for _, item := range raw {
		value := strings.TrimSpace(item)
		if value == "" {
			continue
		}
		images = append(images, value)
	}
	if len(images) > constants.MaxProductImages {
		return nil, ErrTooManyImages
	}
	return images, nil
}
