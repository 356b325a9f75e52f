package service

import (
	"strings"
	"time"

	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/logger"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	memberLevelSilverThreshold   = decimal.NewFromInt(10000)
	memberLevelGoldThreshold     = decimal.NewFromInt(50000)
	memberLevelPlatinumThreshold = decimal.NewFromInt(150000)
)

// MemberService 会员业务服务
type MemberService struct {
	memberRepo repository.MemberRepository
	orderRepo  repository.OrderRepository
}

// NewMemberService 创建会员服务
func NewMemberService(memberRepo repository.MemberRepository, orderRepo repository.OrderRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo, orderRepo: orderRepo}
}

// MemberUpdateInput 后台更新会员输入
type MemberUpdateInput struct {
	DisplayName *string
	Phone       *string
	Address     *string
	Level       *string
	Status      *string
	Points      *int
}

// ListAdmin 查询后台会员列表
func (s *MemberService) ListAdmin(search, level, status string, page, pageSize int) ([]models.Member, int64, error) {
	filter := repository.MemberListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Level:    normalizeMemberLevel(level),
		Status:   normalizeMemberStatus(status),
	}
	return s.memberRepo.List(filter)
}

// GetAdminByID 获取后台会员详情
func (s *MemberService) GetAdminByID(id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}

// UpdateAdmin 后台更新会员资料
func (s *MemberService) UpdateAdmin(id uint, input MemberUpdateInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	if input.DisplayName != nil {
		member.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Phone != nil {
		member.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		member.Address = strings.TrimSpace(*input.Address)
	}
	if input.Level != nil {
		level := normalizeMemberLevel(*input.Level)
		if level == "" {
			return nil, ErrOrderValidation
		}
		member.MemberLevel = level
	}
	if input.Status != nil {
		status := normalizeMemberStatus(*input.Status)
		if status == "" {
			return nil, ErrOrderValidation
		}
		member.Status = status
	}
	if input.Points != nil && *input.Points >= 0 {
		member.Points = *input.Points
	}
	if err := s.memberRepo.Update(member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteAdmin 后台删除会员（软删除）
func (s *MemberService) DeleteAdmin(id uint) error {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotFound
	}
	return s.memberRepo.Delete(id)
}

// ApplyPurchase 将已完成订单累计到会员消费汇总。
// 通过订单上的汇总标记保证幂等，重复调用不会重复累计
func (s *MemberService) ApplyPurchase(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.MemberID == 0 {
		return nil
	}
	if order.Status != constants.OrderStatusCompleted {
		return nil
	}

	now := time.Now()
	marked, err := s.orderRepo.MarkAggregated(order.ID, map[string]interface{}{
		"aggregated_at": now,
		"updated_at":    now,
	})
	if err != nil {
		return err
	}
	if !marked {
		return nil
	}

	member, err := s.memberRepo.GetByID(order.MemberID)
	if err != nil {
		return err
	}
	if member == nil {
		logger.Warnw("member_purchase_aggregate_member_missing",
			"order_id", order.ID,
			"member_id", order.MemberID,
		)
		return nil
	}

	total := order.TotalAmount.Decimal
	member.TotalSpent = models.NewMoneyFromDecimal(member.TotalSpent.Decimal.Add(total))
	member.OrderCount++
	member.Points += int(total.IntPart())
	member.MemberLevel = LevelForTotalSpent(member.TotalSpent.Decimal)
	if err := s.memberRepo.Update(member); err != nil {
		return err
	}

	logger.Infow("member_purchase_aggregated",
		"order_id", order.ID,
		"member_id", member.ID,
		"total_spent", member.TotalSpent.String(),
		"member_level", member.MemberLevel,
	)
	return nil
}

// LevelForTotalSpent 按累计消费计算会员等级
func LevelForTotalSpent(totalSpent decimal.Decimal) string {
	switch {
	case totalSpent.GreaterThanOrEqual(memberLevelPlatinumThreshold):
		return constants.MemberLevelPlatinum
	case totalSpent.GreaterThanOrEqual(memberLevelGoldThreshold):
		return constants.MemberLevelGold
	case totalSpent.GreaterThanOrEqual(memberLevelSilverThreshold):
		return constants.MemberLevelSilver
	default:
		return constants.MemberLevelBronze
	}
}

func normalizeMemberLevel(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, level := range constants.MemberLevels {
		if value == level {
			return level
		}
	}
	return ""
}

func normalizeMemberStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.MemberStatusActive:
		return constants.MemberStatusActive
	case constants.MemberStatusDisabled:
		return constants.MemberStatusDisabled
	default:
		return ""
	}
}
