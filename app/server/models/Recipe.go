package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 基础信息
	UserID      uint            `gorm:"column:user_id;not null;index"`           // 所属用户，创建后不可更改
	Title       string          `gorm:"column:title;size:255;not null"`          // 标题
	Description string          `gorm:"column:description"`                      // 描述
	Price       decimal.Decimal `gorm:"column:price;type:numeric(5,2);not null"` // 价格，两位小数
	TimeMinutes uint            `gorm:"column:time_minutes;not null"`            // 耗时（分钟）
	Link        string          `gorm:"column:link;size:255"`                    // 外部链接
	Image       *string         `gorm:"column:image;size:255"`                   // 图片相对 MediaRoot 的路径， NULL 表示没有上传

	// 连接模型时使用
	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients"`
}
