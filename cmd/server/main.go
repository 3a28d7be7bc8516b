package main

import (
	"log/slog"
	"os"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/handler"
	"github.com/devfolio/internal/mailer"
	"github.com/devfolio/internal/router"
	"github.com/devfolio/internal/storage"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.MustLoad()

	// 初始化数据库
	if err := db.Init(cfg.DB.Path); err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	// 对象存储可选，未配置时上传接口返回 503
	var uploads *storage.Client
	if cfg.MinIO.Endpoint != "" {
		client, err := storage.NewClient(cfg.MinIO)
		if err != nil {
			slog.Error("failed to initialize object storage", "error", err)
			os.Exit(1)
		}
		uploads = client
	} else {
		slog.Warn("object storage not configured, uploads disabled")
	}

	api := handler.NewAPI(db.DB, cfg, uploads, mailer.NewSMTPNotifier(cfg.SMTP))

	r := router.SetupRouter(cfg, api)
	slog.Info("server starting", "addr", cfg.API.ListenAddr)
	if err := r.Run(cfg.API.ListenAddr); err != nil {
		slog.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}
