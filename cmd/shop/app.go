package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/session"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

// app holds the wired client-side components for one command invocation.
type app struct {
	cfg      *config.ClientConfig
	logger   zerolog.Logger
	store    storage.Store
	sessions *session.Manager
	catalog  catalog.Service
	notifier *cart.Notifier
	cart     *cart.Reconciler
}

func newApp(ctx context.Context, cfg *config.ClientConfig, logOut io.Writer) (*app, error) {
	logger := config.NewLoggerTo(cfg.Logger, logOut)

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeout) * time.Second}
	api, err := client.New(cfg.APIURL, httpClient, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	sessions := session.NewManager(store, api, logger)
	notifier := cart.NewNotifier()

	logger.Debug().
		Str("api_url", cfg.APIURL).
		Str("store_driver", cfg.StoreDriver).
		Msg("storefront client ready")

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		sessions: sessions,
		catalog:  catalog.NewService(api, cfg.MaxPriceCeiling, logger),
		notifier: notifier,
		cart:     cart.NewReconciler(store, api, sessions, notifier, logger),
	}, nil
}

func (a *app) Close() error {
	a.notifier.Close()
	return a.store.Close()
}
