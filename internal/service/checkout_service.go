package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/siisjewelry/siis-api/internal/cache"
	"github.com/siisjewelry/siis-api/internal/cart"
	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/logger"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/repository"

	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// CheckoutService 结算业务服务
type CheckoutService struct {
	cfg         config.CheckoutConfig
	pricing     PricingRule
	cartStore   *cart.Store
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	memberRepo  repository.MemberRepository
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(
	cfg config.CheckoutConfig,
	cartStore *cart.Store,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	memberRepo repository.MemberRepository,
) *CheckoutService {
	return &CheckoutService{
		cfg:         cfg,
		pricing:     NewPricingRule(cfg),
		cartStore:   cartStore,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		memberRepo:  memberRepo,
	}
}

// CheckoutUserSnapshot 结算跳转时暂存的会员快照
type CheckoutUserSnapshot struct {
	MemberID    uint   `json:"member_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// CheckoutQuote 结算金额概览
type CheckoutQuote struct {
	Lines       []cart.Line  `json:"items"`
	Subtotal    models.Money `json:"subtotal"`
	ShippingFee models.Money `json:"shipping_fee"`
	Total       models.Money `json:"total"`
}

// CheckoutInput 提交订单输入
type CheckoutInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	PaymentMethod   string
	Notes           string
}

// Stage 进入结算：要求已登录且购物车非空，写入一次性暂存快照
func (s *CheckoutService) Stage(ctx context.Context, session string, memberID uint) (*CheckoutQuote, error) {
	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}

	current, err := s.cartStore.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(current.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	snapshot := CheckoutUserSnapshot{
		MemberID:    member.ID,
		Email:       member.Email,
		DisplayName: member.DisplayName,
		Phone:       member.Phone,
		Address:     member.Address,
	}
	ttlSeconds := s.cfg.StagingTTLMinutes * 60
	if err := cache.StageCheckout(ctx, session, snapshot, current.Lines, ttlSeconds); err != nil {
		return nil, err
	}
	return s.quote(current.Lines), nil
}

// StagedUser 读取暂存的会员快照（结算页回显）
func (s *CheckoutService) StagedUser(ctx context.Context, session string) (*CheckoutUserSnapshot, error) {
	var snapshot CheckoutUserSnapshot
	hit, err := cache.GetStagedCheckoutUser(ctx, session, &snapshot)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, ErrCheckoutExpired
	}
	return &snapshot, nil
}

// Submit 提交订单：校验收件信息，按暂存（或实时）购物车生成订单
func (s *CheckoutService) Submit(ctx context.Context, session string, memberID uint, input CheckoutInput) (*models.Order, error) {
	if err := validateCheckoutInput(&input); err != nil {
		return nil, err
	}

	lines, err := s.resolveLines(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	quote := s.quote(lines)
	now := time.Now()
	order := &models.Order{
		OrderNo:         newOrderNo(now),
		MemberID:        memberID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		Subtotal:        quote.Subtotal,
		ShippingFee:     quote.ShippingFee,
		TotalAmount:     quote.Total,
		Status:          constants.OrderStatusPending,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   constants.PaymentStatusPaid,
		Notes:           input.Notes,
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		unitPrice := models.NewMoneyFromDecimal(line.Price)
		items = append(items, models.OrderItem{
			ProductID:  line.ProductID,
			Name:       line.Name,
			UnitPrice:  unitPrice,
			Quantity:   line.Quantity,
			Image:      line.Image,
			TotalPrice: models.NewMoneyFromDecimal(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))),
		})
	}

	if err := s.orderRepo.Create(order, items); err != nil {
		return nil, err
	}
	order.Items = items

	s.deductStock(lines)

	if err := s.cartStore.Clear(ctx, session); err != nil {
		logger.Warnw("checkout_cart_clear_failed", "session", session, "error", err.Error())
	}
	if err := cache.ClearCheckoutStaging(ctx, session); err != nil {
		logger.Warnw("checkout_staging_clear_failed", "session", session, "error", err.Error())
	}

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"member_id", order.MemberID,
		"total", order.TotalAmount.String(),
		"payment_method", order.PaymentMethod,
	)
	return order, nil
}

// ShippingFeeFor 暴露运费规则给展示层复用
func (s *CheckoutService) ShippingFeeFor(subtotal decimal.Decimal) decimal.Decimal {
	return s.pricing.ShippingFeeFor(subtotal)
}

// Quote 按当前购物车实时计算金额（购物车页合计栏）
func (s *CheckoutService) Quote(ctx context.Context, session string) (*CheckoutQuote, error) {
	current, err := s.cartStore.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.quote(current.Lines), nil
}

// resolveLines 优先使用暂存快照，过期则回退到实时购物车
func (s *CheckoutService) resolveLines(ctx context.Context, session string) ([]cart.Line, error) {
	var staged []cart.Line
	hit, err := cache.GetStagedCheckoutCart(ctx, session, &staged)
	if err != nil {
		return nil, err
	}
	if hit && len(staged) > 0 {
		return staged, nil
	}
	current, err := s.cartStore.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	return current.Lines, nil
}

func (s *CheckoutService) quote(lines []cart.Line) *CheckoutQuote {
	c := cart.Cart{Lines: lines}
	subtotal := c.Subtotal()
	shipping := s.pricing.ShippingFeeFor(subtotal)
	return &CheckoutQuote{
		Lines:       lines,
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		ShippingFee: models.NewMoneyFromDecimal(shipping),
		Total:       models.NewMoneyFromDecimal(subtotal.Add(shipping)),
	}
}

// deductStock 对能映射到库存商品的行扣减库存，失败只记录不阻断下单
func (s *CheckoutService) deductStock(lines []cart.Line) {
	for _, line := range lines {
		id, err := strconv.ParseUint(line.ProductID, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		if err := s.productRepo.AdjustStock(uint(id), -line.Quantity); err != nil {
			logger.Warnw("order_stock_deduct_failed",
				"product_id", line.ProductID,
				"quantity", line.Quantity,
				"error", err.Error(),
			)
		}
	}
}

func validateCheckoutInput(input *CheckoutInput) error {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	input.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	input.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
	input.Notes = strings.TrimSpace(input.Notes)

	if input.CustomerName == "" {
		return fmt.Errorf("%w: recipient name is required", ErrOrderValidation)
	}
	if !emailPattern.MatchString(input.CustomerEmail) {
		return fmt.Errorf("%w: email format is invalid", ErrOrderValidation)
	}
	if input.CustomerPhone == "" {
		return fmt.Errorf("%w: phone is required", ErrOrderValidation)
	}
	if input.ShippingAddress == "" {
		return fmt.Errorf("%w: shipping address is required", ErrOrderValidation)
	}

	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method == "" {
		method = constants.PaymentMethodCredit
	}
	valid := false
	for _, m := range constants.PaymentMethods {
		if method == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: payment method is not supported", ErrOrderValidation)
	}
	input.PaymentMethod = method
	return nil
}

func newOrderNo(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}
