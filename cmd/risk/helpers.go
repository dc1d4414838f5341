package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/app"
	"github.com/Veraticus/credit-risk-console/internal/certs"
	"github.com/Veraticus/credit-risk-console/internal/config"
	"github.com/Veraticus/credit-risk-console/internal/scoring"
	"github.com/Veraticus/credit-risk-console/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// initStorage opens the history database. Callers must Close it.
func initStorage(ctx context.Context, cfg config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

func newClient(cfg config.Config) (*scoring.Client, error) {
	opts := []scoring.Option{scoring.WithTimeout(cfg.API.Timeout)}
	if cfg.API.CAFile != "" {
		pool, err := certs.LoadPool(cfg.API.CAFile)
		if err != nil {
			return nil, err
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
		opts = append(opts, scoring.WithHTTPClient(&http.Client{Transport: transport}))
	}
	if cfg.API.OAuthEnabled() {
		opts = append(opts, scoring.WithClientCredentials(cfg.API.ClientID, cfg.API.ClientSecret, cfg.API.TokenURL))
	}
	return scoring.New(cfg.API.BaseURL, opts...), nil
}

// session bundles what every command that talks to the service needs.
type session struct {
	cfg    config.Config
	store  *storage.SQLiteStorage
	client *scoring.Client
	coord  *app.Coordinator
}

// openSession loads config, storage and the scoring client. The coordinator
// is created but not initialized.
func openSession(ctx context.Context, opts ...app.Option) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := newClient(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &session{
		cfg:    cfg,
		store:  store,
		client: client,
		coord:  app.New(client, store, opts...),
	}, nil
}

func (s *session) Close() {
	s.coord.Close()
	if err := s.store.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}

// startMetrics serves /metrics on addr until ctx is done. An empty addr
// disables it.
func startMetrics(ctx context.Context, addr string) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
