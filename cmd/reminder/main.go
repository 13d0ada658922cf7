// 截止提醒一次性扫描入口，供外部调度器（cron / systemd timer）周期执行。
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"assignhub/backend/config"
	"assignhub/backend/internal/repository"
	"assignhub/backend/internal/service"
	"assignhub/backend/pkg/database"
	applogger "assignhub/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	repo := repository.NewRepository(db)
	reminder := service.NewReminderService(cfg, repo, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created, err := reminder.Sweep(ctx)
	if err != nil {
		logger.Fatal("截止提醒扫描失败", zap.Error(err))
	}

	logger.Info("截止提醒扫描完成",
		zap.Int("created", created),
		zap.Duration("window", cfg.Reminder.Window),
	)
}
