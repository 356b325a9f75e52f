package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号（ORD-<毫秒时间戳>）
	MemberID        uint           `gorm:"index;not null" json:"member_id,omitempty"`                  // 会员ID
	CustomerName    string         `gorm:"not null" json:"customer_name"`                              // 收件人姓名
	CustomerEmail   string         `gorm:"index;not null" json:"customer_email"`                       // 收件人邮箱
	CustomerPhone   string         `gorm:"not null" json:"customer_phone"`                             // 收件人电话
	ShippingAddress string         `gorm:"type:text;not null" json:"shipping_address"`                 // 收货地址
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`      // 商品小计
	ShippingFee     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`  // 运费
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`  // 实付金额（小计+运费）
	Status          string         `gorm:"index;not null" json:"status"`                               // 订单状态
	PaymentMethod   string         `gorm:"type:varchar(20);not null" json:"payment_method"`            // 支付方式（credit/linepay/transfer）
	PaymentStatus   string         `gorm:"type:varchar(20);not null;index" json:"payment_status"`      // 支付状态
	Notes           string         `gorm:"type:text" json:"notes"`                                     // 备注
	AggregatedAt    *time.Time     `gorm:"index" json:"-"`                                             // 会员消费汇总时间（幂等标记）
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
