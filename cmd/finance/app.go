package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/smart-finance/internal/api"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/config"
	"github.com/Veraticus/smart-finance/internal/dashboard"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/ocr"
	"github.com/Veraticus/smart-finance/internal/session"
	"github.com/Veraticus/smart-finance/internal/storage"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// app is everything a command needs, wired once per invocation.
type app struct {
	cfg       *config.Config
	sessions  *session.Cell
	auth      *session.Service
	client    *api.Client
	dashboard *dashboard.Dashboard
	scan      *ocr.Scan
	closers   []func() error
}

// newApp builds the application from the loaded viper configuration.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return buildApp(ctx, cfg, nil)
}

// buildApp wires the application. transport replaces the network when set.
func buildApp(ctx context.Context, cfg *config.Config, transport http.RoundTripper) (*app, error) {
	a := &app{cfg: cfg}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.sessions = session.NewCell(ctx, store)

	a.client, err = api.NewClient(api.Config{
		Transport: transport,
		Logger:    slog.Default(),
		BaseURL:   cfg.API.BaseURL,
		RateLimit: cfg.API.RateLimit,
		Timeout:   cfg.API.Timeout,
		Burst:     cfg.API.Burst,
	}, a.sessions)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	a.auth = session.NewService(a.client, a.sessions)
	a.dashboard = dashboard.New(a.client, a.sessions)
	a.scan = ocr.NewScan(a.client)

	// Logging out drops everything loaded for the previous user.
	unsubscribe := a.sessions.Subscribe(func(s *model.Session) {
		if s == nil {
			a.dashboard.Reset()
		}
	})
	a.closers = append(a.closers, func() error {
		unsubscribe()
		return nil
	})

	return a, nil
}

func (a *app) openStore(ctx context.Context) (session.Store, error) {
	switch a.cfg.Session.Backend {
	case config.BackendSQLite:
		db, err := storage.OpenSQLiteStorage(ctx, a.cfg.Session.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open session database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return db.Slot(a.cfg.Session.Slot), nil
	default:
		return session.NewFileStore(a.cfg.Session.Path), nil
	}
}

// currentSession returns the logged-in session.
func (a *app) currentSession() (model.Session, error) {
	sess, ok := a.sessions.Current()
	if !ok {
		return model.Session{}, common.ErrNotAuthenticated
	}
	return sess, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			common.LogError(err, "Failed to release resource", common.Fields{"session_backend": a.cfg.Session.Backend})
		}
	}
	a.closers = nil
}
