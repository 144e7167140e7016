package handlers

import (
	"context"
	"fmt"
	"recipe-app-api/app/waitdb/config"
	"time"

	"go.uber.org/zap"
)

// Pinger 检查数据库是否可以连接， *sql.DB 即满足
type Pinger interface {
	PingContext(ctx context.Context) error
}

type App struct {
	cfg *config.Config
	l   *zap.Logger
	db  Pinger
}

func NewApp(cfg *config.Config, l *zap.Logger, db Pinger) *App {
	return &App{
		cfg: cfg,
		l:   l,
		db:  db,
	}
}

// Wait 按间隔反复检查数据库，直到可以连接或超时
func (a *App) Wait(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.WaitTimeout)
	defer cancel()

	ticker := time.NewTicker(a.cfg.WaitInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := a.ping(ctx)
		if err == nil {
			a.l.Info("database available", zap.Int("attempt", attempt))
			return nil
		}
		a.l.Info("database unavailable, waiting", zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return fmt.Errorf("database still unavailable after %d attempts: %w", attempt, err)
		}
	}
}

func (a *App) ping(ctx context.Context) error {
	// 单次检查不超过一个间隔，避免卡在连接上
	pingCtx, cancel := context.WithTimeout(ctx, a.cfg.WaitInterval)
	defer cancel()
	return a.db.PingContext(pingCtx)
}
