package main

import (
	"context"
	"fmt"
	"log"
	"recipe-app-api/app/waitdb/handlers"
	"recipe-app-api/app/waitdb/inits"

	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	// 准备数据库连接池
	db, err := inits.DB(cfg.DBConnectionString)
	if err != nil {
		l.Fatal("error preparing DB connection", zap.Error(err))
	}
	defer db.Close()

	// 等待数据库可用
	if err = handlers.NewApp(cfg, l, db).Wait(context.Background()); err != nil {
		l.Fatal("database did not become available", zap.Error(err))
	}
}
