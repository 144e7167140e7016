package main

import (
	"context"
	"fmt"
	"log"
	"recipe-app-api/app/server/apidocs"
	"recipe-app-api/app/server/handlers"
	"recipe-app-api/app/server/inits"
	"recipe-app-api/app/server/jwt"
	"recipe-app-api/app/server/media"
	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/store"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString, cfg.Security.AdminEmail, cfg.Security.AdminPassword)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey, cfg.Security.TokenTTL)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 初始化上传文件存储
	m, err := media.New(cfg.Media.Root, cfg.Media.URL)
	if err != nil {
		l.Fatal("error initializing media storage", zap.Error(err))
	}

	// 准备 handler app
	s := store.New(db)
	handlerApp := handlers.NewApp(l, rdb, j, s, m)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 绑定 echo 服务
	handlers.RegisterHandlers(e, handlerApp, middlewares.UserAuth(j, s.Users, rdb, l))
	e.Static(strings.TrimSuffix(cfg.Media.URL, "/"), cfg.Media.Root)

	// 添加 API 文档
	if !cfg.System.IsProd {
		if swgJson, err := apidocs.Spec(context.Background()); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(apidocs.Doc("/api/docs", swgJson))
		}
	}

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
