package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/jwt"
	"recipe-app-api/app/server/store"
	"recipe-app-api/app/server/types"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ContextKeyToken = "token" // *jwt.User
	ContextKeyUser  = "user"  // *types.AuthUser
)

// UserAuth 解析 Bearer token 并加载对应的用户，用户信息优先从 Redis 缓存读取
func UserAuth(j *jwt.JWT, users store.UserStore, rdb *redis.Client, l *zap.Logger) echo.MiddlewareFunc {
	parseToken := echojwt.WithConfig(echojwt.Config{
		ContextKey: ContextKeyToken,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized).SetInternal(err)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parseToken(func(c echo.Context) error {
			jwtUser, ok := c.Get(ContextKeyToken).(*jwt.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized)
			}

			user, err := loadUser(c.Request().Context(), jwtUser.ID, users, rdb, l)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized).SetInternal(err)
				}
				l.Error("failed to load user", zap.Uint("id", jwtUser.ID), zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
			}

			// 停用的用户视同 token 无效
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized)
			}

			// 设置 context
			c.Set(ContextKeyUser, user)

			// 继续处理
			return next(c)
		})
	}
}

func loadUser(ctx context.Context, id uint, users store.UserStore, rdb *redis.Client, l *zap.Logger) (*types.AuthUser, error) {
	var user types.AuthUser

	// 查询缓存
	cacheKey := fmt.Sprintf(constants.CacheKeyUserInfo, id)
	if cacheBytes, err := rdb.Get(ctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			l.Error("failed to query cache for user info", zap.Uint("id", id), zap.Error(err))
		}
	} else if err = json.Unmarshal(cacheBytes, &user); err != nil {
		l.Error("failed to unmarshal user info", zap.Uint("id", id), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		rdb.Del(ctx, cacheKey)
	} else {
		return &user, nil
	}

	// 查询数据库
	u, err := users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user = types.AuthUser{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		IsActive: u.IsActive,
		IsStaff:  u.IsStaff,
	}

	// 格式化并加入缓存，方便下一次查询
	if cacheBytes, err := json.Marshal(&user); err != nil {
		l.Error("failed to marshal user info", zap.Uint("id", id), zap.Error(err))
	} else {
		rdb.Set(ctx, cacheKey, cacheBytes, constants.CacheExpireUserInfo)
	}

	return &user, nil
}

// ForgetUser 用户信息变更后清理缓存
func ForgetUser(ctx context.Context, rdb *redis.Client, id uint) error {
	return rdb.Del(ctx, fmt.Sprintf(constants.CacheKeyUserInfo, id)).Err()
}
