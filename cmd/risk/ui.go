package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/credit-risk-console/internal/common"
	"github.com/Veraticus/credit-risk-console/internal/tui"
	"github.com/Veraticus/credit-risk-console/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive console",
		Long: `Open the interactive console. The assessment view scores a client profile
entered in the form; the dashboard view summarizes the last predictions.`,
		RunE: runUI,
	}

	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := common.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	closer, err := common.RedirectLogToFile(cfg.Logging.File, level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to redirect logs: %w", err)
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			slog.Warn("Failed to close log file", "error", cerr)
		}
	}()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	startMetrics(ctx, s.cfg.Metrics.Addr)

	slog.Info("Starting console", "api", s.client.BaseURL(), "db", s.store.Path())
	return tui.Run(ctx, s.coord,
		tui.WithTheme(themes.GetTheme(s.cfg.UI.Theme)),
		tui.WithExampleSource(s.client),
		tui.WithRequestTimeout(s.cfg.API.Timeout),
	)
}
