package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/certs"
	"github.com/Veraticus/credit-risk-console/internal/config"
	"github.com/Veraticus/credit-risk-console/internal/stubapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func serveStubCmd() *cobra.Command {
	var (
		addr    string
		useTLS  bool
		certDir string
	)

	cmd := &cobra.Command{
		Use:   "serve-stub",
		Short: "Run a local stand-in for the scoring service",
		Long: `Run a local stand-in for the scoring service. It implements the same API
with a fixed logistic heuristic so the console can be used without the real
model. Metrics are served on /metrics.

With --tls the stub serves HTTPS using a self-signed localhost certificate.
Point api.ca_file at the printed certificate path so clients trust it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var manager *certs.FileManager
			if useTLS {
				manager = certs.NewFileManager(config.ExpandPath(certDir))
			}
			return serveStub(cmd.Context(), addr, manager)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "listen address")
	cmd.Flags().BoolVar(&useTLS, "tls", false, "serve HTTPS with a self-signed certificate")
	cmd.Flags().StringVar(&certDir, "cert-dir", filepath.Join(config.DataDir(), "certs"), "directory holding the stub certificate")
	return cmd
}

// serveStub blocks until ctx is done. A nil manager serves plain HTTP.
func serveStub(ctx context.Context, addr string, manager *certs.FileManager) error {
	r := stubapi.New().Routes()
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	scheme := "http"
	if manager != nil {
		cert, err := manager.GetOrCreateCertificate()
		if err != nil {
			return fmt.Errorf("failed to prepare certificate: %w", err)
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
		scheme = "https"
		slog.Info("Using self-signed certificate", "ca_file", manager.CertFile())
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving stub scoring API", "addr", addr, "base_url", fmt.Sprintf("%s://%s/api/v1", scheme, addr))
		if manager != nil {
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down stub server: %w", err)
	}
	slog.Info("Stub server stopped")
	return nil
}
