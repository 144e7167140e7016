package types

// AuthUser 认证中间件放进请求上下文（以及 Redis 缓存）的用户信息
type AuthUser struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}
