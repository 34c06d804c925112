package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/postlist/internal/app"
	"github.com/samvad-hq/postlist/internal/config"
	"github.com/samvad-hq/postlist/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "postlist failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("postlist", pflag.ContinueOnError)
	userID := flags.Int("user", 0, "show the feed of this user id")
	postID := flags.Int("post", 0, "show this post with its comments")
	baseURL := flags.String("base-url", "", "override API_BASE_URL")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *baseURL != "" {
		if cfg, err = cfg.WithBaseURL(*baseURL); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// Logs go to stderr so stdout carries only the rendered view.
	log := logger.New(cfg, os.Stderr)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	browser, err := app.NewBrowser(cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize browser", "error", err)
		return err
	}

	return browser.Run(ctx, app.Query{UserID: *userID, PostID: *postID}, os.Stdout)
}
