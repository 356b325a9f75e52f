package service

import (
	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/repository"
)

// DashboardService 后台概览服务
type DashboardService struct {
	cfg  config.DashboardConfig
	repo repository.DashboardRepository
}

// NewDashboardService 创建后台概览服务
func NewDashboardService(cfg config.DashboardConfig, repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{cfg: cfg, repo: repo}
}

// Overview 汇总商品、订单、会员与营收数据
func (s *DashboardService) Overview() (*repository.DashboardOverview, error) {
	threshold := s.cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}
	return s.repo.Overview(threshold)
}
