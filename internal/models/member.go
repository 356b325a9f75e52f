package models

import (
	"time"

	"gorm.io/gorm"
)

// Member 会员表
type Member struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                     // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`                        // 邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                                        // 密码哈希（不返回给前端）
	DisplayName        string         `gorm:"default:''" json:"display_name"`                           // 昵称
	Phone              string         `gorm:"type:varchar(50)" json:"phone"`                            // 电话
	Address            string         `gorm:"type:text" json:"address"`                                 // 默认收货地址
	Birthday           *time.Time     `json:"birthday"`                                                 // 生日
	MemberLevel        string         `gorm:"type:varchar(20);not null;default:'bronze'" json:"member_level"` // 会员等级
	TotalSpent         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_spent"` // 累计消费
	OrderCount         int            `gorm:"not null;default:0" json:"order_count"`                    // 累计订单数
	Points             int            `gorm:"not null;default:0" json:"points"`                         // 积分
	Status             string         `gorm:"default:'active'" json:"status"`                           // 账号状态
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                              // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                           // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                                            // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (Member) TableName() string {
	return "members"
}
