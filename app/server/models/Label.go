package models

import "time"

// Label 是 Tag 和 Ingredient 共用的行结构，查询时用 Table() 指定具体的表
type Label struct {
	ID        uint      `gorm:"column:id;primarykey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	UserID uint   `gorm:"column:user_id"`
	Name   string `gorm:"column:name"`
}
