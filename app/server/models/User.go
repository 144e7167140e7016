package models

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	// 基础信息
	Email    string `gorm:"column:email;size:255;uniqueIndex;not null"` // 邮箱，全局唯一，域名部分统一小写
	Name     string `gorm:"column:name;size:255"`                       // 显示名称
	IsActive bool   `gorm:"column:is_active;not null;default:true"`     // 是否启用：停用的用户不能登录
	IsStaff  bool   `gorm:"column:is_staff;not null;default:false"`     // 是否为管理人员

	// 登录与授权认证相关
	Password string `gorm:"column:password;not null"` // 密码，使用 argon2id 储存
}

// NormalizeEmail 去掉首尾空白并把域名部分转成小写，本地部分保持原样
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
