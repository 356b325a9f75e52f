package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string         `gorm:"not null;index" json:"name"`                                // 商品名称
	Description string         `gorm:"type:text" json:"description"`                              // 商品描述
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格金额
	Category    string         `gorm:"type:varchar(100);not null;index" json:"category"`          // 分类（自由文本）
	Stock       int            `gorm:"not null;default:0" json:"stock"`                           // 库存数量
	Images      StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组（最多 3 张，首张为主图）
	TagText     string         `gorm:"type:varchar(50)" json:"tag_text"`                          // 角标文字（可选）
	TagColor    string         `gorm:"type:varchar(50)" json:"tag_color"`                         // 角标颜色（可选）
	Rating      float64        `gorm:"not null;default:5" json:"rating"`                          // 展示评分
	Reviews     int            `gorm:"not null;default:0" json:"reviews"`                         // 展示评价数
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// Purchasable 上架且库存大于 0 才可购买
func (p *Product) Purchasable() bool {
	return p != nil && p.IsActive && p.Stock > 0
}

// PrimaryImage 返回主图，无图时返回空串
func (p *Product) PrimaryImage() string {
	if p == nil || len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
