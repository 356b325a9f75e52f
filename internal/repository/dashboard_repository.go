package repository

import (
	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardOverview 仪表盘总览数据
type DashboardOverview struct {
	ProductCount     int64        `json:"product_count"`
	ActiveProducts   int64        `json:"active_products"`
	LowStockProducts int64        `json:"low_stock_products"`
	OrderCount       int64        `json:"order_count"`
	PendingOrders    int64        `json:"pending_orders"`
	MemberCount      int64        `json:"member_count"`
	CompletedRevenue models.Money `json:"completed_revenue"`
}

// DashboardRepository 仪表盘数据访问接口
type DashboardRepository interface {
	Overview(lowStockThreshold int) (*DashboardOverview, error)
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// Overview 聚合仪表盘总览数据
func (r *GormDashboardRepository) Overview(lowStockThreshold int) (*DashboardOverview, error) {
	overview := &DashboardOverview{}

	if err := r.db.Model(&models.Product{}).Count(&overview.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&overview.ActiveProducts).Error; err != nil {
		return nil, err
	}
	if lowStockThreshold > 0 {
		if err := r.db.Model(&models.Product{}).
			Where("stock <= ?", lowStockThreshold).
			Count(&overview.LowStockProducts).Error; err != nil {
			return nil, err
		}
	}
	if err := r.db.Model(&models.Order{}).Count(&overview.OrderCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", constants.OrderStatusPending).
		Count(&overview.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Member{}).Count(&overview.MemberCount).Error; err != nil {
		return nil, err
	}

	var revenue struct {
		Total decimal.Decimal
	}
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status = ?", constants.OrderStatusCompleted).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	overview.CompletedRevenue = models.NewMoneyFromDecimal(revenue.Total)

	return overview, nil
}
