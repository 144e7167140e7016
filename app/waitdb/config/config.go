package config

import (
	"time"
)

type Config struct {
	// 基础配置
	IsProd bool

	// 数据库连接配置
	DBConnectionString string
	WaitInterval       time.Duration // 两次尝试之间的间隔
	WaitTimeout        time.Duration // 超过这个时间仍然连不上就放弃
}
