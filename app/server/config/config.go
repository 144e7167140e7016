package config

import "time"

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
	}
	Security struct {
		SignatureSecretKey string        // 签名密钥，用于签发 token ，更新会导致旧有会话失效
		TokenTTL           time.Duration // token 有效期
		AdminEmail         string        // 初始管理员邮箱，为空则不创建
		AdminPassword      string        // 初始管理员密码
	}
	Media struct {
		Root string // 上传文件的存储根目录
		URL  string // 对外访问上传文件的路径前缀
	}
}
