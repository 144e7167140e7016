package models

import "time"

type Tag struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID uint   `gorm:"column:user_id;not null;uniqueIndex:idx_tags_user_name"`       // 所属用户
	Name   string `gorm:"column:name;size:255;not null;uniqueIndex:idx_tags_user_name"` // 名称，同一用户内唯一

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
