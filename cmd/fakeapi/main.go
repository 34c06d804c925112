package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/postlist/internal/app"
	"github.com/samvad-hq/postlist/internal/config"
	"github.com/samvad-hq/postlist/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fakeapi start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.InfoObj("fakeapi starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := app.NewFakeAPI(cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize fakeapi", "error", err)
		return err
	}

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("fakeapi run: %w", err)
	}
	return nil
}
