package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidora/backend/internal/auth"
	"github.com/vidora/backend/internal/cache/redis"
	"github.com/vidora/backend/internal/config"
	"github.com/vidora/backend/internal/ctrl"
	"github.com/vidora/backend/internal/hdl/http"
	"github.com/vidora/backend/internal/observability/metrics/prometheus"
	"github.com/vidora/backend/internal/observability/tracing/jaeger"
	"github.com/vidora/backend/internal/repo/db"
	"github.com/vidora/backend/internal/repo/s3"
	"github.com/vidora/backend/internal/smtp"
	"go.uber.org/zap"
)

const configPath = "configs/local.config.yaml"

func mustRegisterLogger(mode string) {
	switch mode {
	case "prod":
		zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	case "dev":
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
	}
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			zap.L().Panic("panic occurred", zap.Any("error", err))
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.MustLoad(configPath)
	mustRegisterLogger(conf.Server.Mode)

	go prometheus.New(conf.Server.Port + 5).Start(ctx)
	go jaeger.Start(ctx, conf.ServiceName, conf.Jaeger)

	au := auth.New(conf.Auth)
	cache := redis.New(conf.Redis)
	repo := db.New(conf)
	media := s3.New(conf.Minio)

	var mail ctrl.EmailService
	if conf.Email.Enabled {
		mail = smtp.New(conf)
	}

	svc := ctrl.New(au, repo, cache, media, mail)
	h := http.New(au, svc, conf.Server.Mode)

	go h.Start(conf.Server.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-c

	zap.L().Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := h.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing handler", zap.Error(err))
	}

	if err := cache.Close(); err != nil {
		zap.L().Warn("Failed to close connection to Redis: ", zap.Error(err))
	}

	if err := repo.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing repository", zap.Error(err))
	}

	os.Exit(0)
}
