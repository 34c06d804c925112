package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samvad-hq/postlist/internal/config"
	"github.com/samvad-hq/postlist/internal/feed"
	"github.com/samvad-hq/postlist/internal/logger"
	"github.com/samvad-hq/postlist/pkg/api"
	"github.com/samvad-hq/postlist/pkg/domain"
	"github.com/samvad-hq/postlist/pkg/httpclient"
	"gopkg.in/yaml.v3"
)

// Query selects which view the browser renders.
// Zero values mean "not set"; PostID wins over UserID.
type Query struct {
	UserID int
	PostID int
}

// Browser renders posts, users and comments fetched from the configured backend.
type Browser struct {
	cfg  *config.Config
	feed *feed.Service
	log  logger.Logger
}

// NewBrowser builds the HTTP client and resource groups from config.
func NewBrowser(cfg *config.Config, log logger.Logger) (*Browser, error) {
	if cfg == nil {
		return nil, errors.New("config must not be nil")
	}
	log = logger.Ensure(log)

	client, err := httpclient.NewRestyClient(httpclient.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("init http client: %w", err)
	}
	log.InfoObj("api client initialized", "api_client", map[string]any{
		"base_url":        cfg.APIBaseURL,
		"timeout_seconds": int(cfg.HTTPTimeout.Seconds()),
	})

	return &Browser{
		cfg:  cfg,
		feed: feed.NewFromAPI(api.New(client), log),
		log:  log,
	}, nil
}

// Run fetches the view selected by q and writes it to w as YAML.
func (b *Browser) Run(ctx context.Context, q Query, w io.Writer) error {
	if b == nil || b.feed == nil {
		return errors.New("browser is not initialized")
	}

	var view any
	switch {
	case q.PostID > 0:
		thread, err := b.feed.PostThread(ctx, q.PostID)
		if err != nil {
			return err
		}
		view = thread
	case q.UserID > 0:
		f, err := b.feed.UserFeed(ctx, q.UserID)
		if err != nil {
			return err
		}
		view = f
	default:
		users, err := b.feed.Users(ctx)
		if err != nil {
			return err
		}
		view = struct {
			Users []domain.User `yaml:"users"`
		}{Users: users}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("render view: %w", err)
	}
	return enc.Close()
}
