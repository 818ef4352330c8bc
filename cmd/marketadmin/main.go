// Package main запускает терминальную админ-консоль маркетплейса.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/marketplace-admin/internal/adminapi"
	"github.com/mmeshcher/marketplace-admin/internal/config"
	"github.com/mmeshcher/marketplace-admin/internal/console"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	client := adminapi.NewClient(cfg.APIAddress, cfg.AdminToken, time.Duration(cfg.RequestTimeout)*time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sugar.Infow("starting admin console", "api", cfg.APIAddress)

	c := console.New(client, logger, os.Stdin, os.Stdout, cfg.PageLimit)
	if err := c.Run(ctx); err != nil && err != context.Canceled {
		sugar.Fatalw("console terminated with error", "error", err)
	}
}
