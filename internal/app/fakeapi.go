package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/samvad-hq/postlist/internal/backend"
	"github.com/samvad-hq/postlist/internal/config"
	"github.com/samvad-hq/postlist/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// FakeAPI serves the seeded development backend.
type FakeAPI struct {
	cfg    *config.Config
	store  *backend.Store
	server *http.Server
	log    logger.Logger
	ready  chan struct{}
	addr   net.Addr
}

// NewFakeAPI opens the store, applies the seed file and builds the HTTP server.
func NewFakeAPI(cfg *config.Config, log logger.Logger) (*FakeAPI, error) {
	if cfg == nil {
		return nil, errors.New("config must not be nil")
	}
	log = logger.Ensure(log)

	seed, err := backend.LoadSeed(cfg.FakeAPISeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	store, err := backend.OpenStore(cfg.FakeAPIDBPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err := store.Reset(seed); err != nil {
		store.Close()
		return nil, fmt.Errorf("apply seed: %w", err)
	}
	log.InfoObj("fake api seeded", "seed_meta", map[string]any{
		"db_path":  cfg.FakeAPIDBPath,
		"seed":     cfg.FakeAPISeedFile,
		"users":    len(seed.Users),
		"posts":    len(seed.Posts),
		"comments": len(seed.Comments),
	})

	return &FakeAPI{
		cfg:   cfg,
		store: store,
		server: &http.Server{
			Addr:              cfg.FakeAPIAddr,
			Handler:           backend.NewHandler(store, log),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log:   log,
		ready: make(chan struct{}),
	}, nil
}

// Ready is closed once the listener is bound.
func (f *FakeAPI) Ready() <-chan struct{} { return f.ready }

// Addr returns the bound address; valid after Ready is closed.
func (f *FakeAPI) Addr() net.Addr { return f.addr }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (f *FakeAPI) Run(ctx context.Context) error {
	if f == nil || f.server == nil {
		return errors.New("fake api is not initialized")
	}
	defer f.closeStore()

	ln, err := net.Listen("tcp", f.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", f.server.Addr, err)
	}
	f.addr = ln.Addr()
	close(f.ready)
	f.log.InfoObj("fake api listening", "addr", f.addr.String())

	errCh := make(chan error, 1)
	go func() { errCh <- f.server.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		f.log.InfoObj("fake api shutting down", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := f.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// closeStore closes the storage backend, logging any errors encountered.
func (f *FakeAPI) closeStore() {
	if f == nil || f.store == nil {
		return
	}
	if err := f.store.Close(); err != nil {
		f.log.ErrorObj("storage close failed", "error", err)
	}
}
