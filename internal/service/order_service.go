package service

import (
	"time"

	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/logger"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/queue"
	"github.com/siisjewelry/siis-api/internal/repository"
)

// OrderService 订单业务服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	memberService *MemberService
	queueClient   *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, memberService *MemberService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		memberService: memberService,
		queueClient:   queueClient,
	}
}

// ListAdmin 查询后台订单列表
func (s *OrderService) ListAdmin(status, search string, createdFrom, createdTo *time.Time, page, pageSize int) ([]models.Order, int64, error) {
	if status != "" {
		normalized := NormalizeOrderStatus(status)
		if normalized == "" {
			return nil, 0, ErrOrderStatusInvalid
		}
		status = normalized
	}
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      status,
		Search:      search,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}
	return s.orderRepo.ListAdmin(filter)
}

// GetAdminByID 获取后台订单详情
func (s *OrderService) GetAdminByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListForMember 查询会员订单列表
func (s *OrderService) ListForMember(memberID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		MemberID: memberID,
		Status:   NormalizeOrderStatus(status),
	}
	return s.orderRepo.ListByMember(filter)
}

// GetForMember 获取会员订单详情（只允许查看本人订单）
func (s *OrderService) GetForMember(memberID, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.MemberID != memberID {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetByOrderNo 根据订单号获取订单
func (s *OrderService) GetByOrderNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdateStatus 按状态机推进订单状态
func (s *OrderService) UpdateStatus(id uint, rawStatus string) (*models.Order, error) {
	newStatus := NormalizeOrderStatus(rawStatus)
	if newStatus == "" {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !CanTransitionOrderStatus(order.Status, newStatus) {
		return nil, ErrOrderTransitionInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch newStatus {
	case constants.OrderStatusPaid:
		updates["payment_status"] = constants.PaymentStatusPaid
	case constants.OrderStatusCancelled:
		if order.PaymentStatus == constants.PaymentStatusPaid {
			updates["payment_status"] = constants.PaymentStatusRefunded
		}
	}
	if err := s.orderRepo.UpdateStatus(order.ID, newStatus, updates); err != nil {
		return nil, err
	}
	order.Status = newStatus
	if paymentStatus, ok := updates["payment_status"].(string); ok {
		order.PaymentStatus = paymentStatus
	}
	order.UpdatedAt = now

	if newStatus == constants.OrderStatusCompleted {
		s.dispatchPurchaseAggregate(order)
	}
	return order, nil
}

// dispatchPurchaseAggregate 订单完成后触发会员消费汇总：
// 队列可用时异步处理，否则直接在当前请求内落账
func (s *OrderService) dispatchPurchaseAggregate(order *models.Order) {
	if order.MemberID == 0 {
		return
	}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueMemberPurchaseAggregate(queue.MemberPurchaseAggregatePayload{OrderID: order.ID})
		if err == nil {
			return
		}
		logger.Warnw("member_purchase_aggregate_enqueue_failed",
			"order_id", order.ID,
			"error", err.Error(),
		)
	}
	if s.memberService == nil {
		return
	}
	if err := s.memberService.ApplyPurchase(order.ID); err != nil {
		logger.Errorw("member_purchase_aggregate_inline_failed",
			"order_id", order.ID,
			"error", err.Error(),
		)
	}
}
