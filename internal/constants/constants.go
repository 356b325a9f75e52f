package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 支付方式常量
const (
	PaymentMethodCredit   = "credit"
	PaymentMethodLinePay  = "linepay"
	PaymentMethodTransfer = "transfer"
)

// 会员等级常量
const (
	MemberLevelBronze   = "bronze"
	MemberLevelSilver   = "silver"
	MemberLevelGold     = "gold"
	MemberLevelPlatinum = "platinum"
)

// 会员状态常量
const (
	MemberStatusActive   = "active"
	MemberStatusDisabled = "disabled"
)

// 上传场景常量
const (
	UploadSceneProduct = "products"
	UploadSceneCommon  = "common"
)

// 商品图片约束
const (
	MaxProductImages = 3
)

// PlaceholderImage 商品无图时的统一回退路径
const PlaceholderImage = "/uploads/common/placeholder.png"

// 队列名称
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	TaskMemberPurchaseAggregate = "member:purchase_aggregate"
)

// 验证码提供方
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景
const (
	CaptchaSceneLogin      = "login"
	CaptchaSceneAdminLogin = "admin_login"
)

// 结算暂存键名（每个会话一份，桥接一次结算跳转）
const (
	CheckoutStagingUserKey = "checkoutUser"
	CheckoutStagingCartKey = "checkoutCartItems"
)

// OrderStatuses 全量订单状态（校验与筛选用）
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// PaymentMethods 全量支付方式
var PaymentMethods = []string{
	PaymentMethodCredit,
	PaymentMethodLinePay,
	PaymentMethodTransfer,
}

// MemberLevels 全量会员等级（由低到高）
var MemberLevels = []string{
	MemberLevelBronze,
	MemberLevelSilver,
	MemberLevelGold,
	MemberLevelPlatinum,
}
