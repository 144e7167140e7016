package handlers

import (
	"recipe-app-api/app/server/jwt"
	"recipe-app-api/app/server/media"
	"recipe-app-api/app/server/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	l   *zap.Logger   // 日志
	rdb *redis.Client // Redis ，缓存已认证的用户信息
	jwt *jwt.JWT      // JWT ，用于无状态验证

	users   store.UserStore
	labels  store.LabelStore
	recipes store.RecipeStore

	media *media.Storage // 上传的图片
}

func NewApp(l *zap.Logger, rdb *redis.Client, j *jwt.JWT, s *store.Store, m *media.Storage) *App {
	return &App{
		l:       l,
		rdb:     rdb,
		jwt:     j,
		users:   s.Users,
		labels:  s.Labels,
		recipes: s.Recipes,
		media:   m,
	}
}
