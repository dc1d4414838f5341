package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/cli"
	"github.com/Veraticus/credit-risk-console/internal/common"
	"github.com/Veraticus/credit-risk-console/internal/config"
	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/service"
	"github.com/Veraticus/credit-risk-console/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the prediction history",
	}
	cmd.AddCommand(exportSheetsCmd())
	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var spreadsheetID string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write the prediction history and a summary to Google Sheets",
		Long: `Write the prediction history and a summary to Google Sheets.

Credentials come from the sheets section of the config file or the
GOOGLE_SHEETS_* environment variables: either a service account key file or
an OAuth client ID, secret and refresh token.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if spreadsheetID != "" {
				viper.Set("sheets.spreadsheet_id", spreadsheetID)
			}
			sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
			if err != nil {
				return common.NewUserError("Google Sheets is not configured", err)
			}

			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records := store.LoadHistory(ctx)
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No predictions stored. Nothing to export.")
				return nil
			}

			writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to create sheets writer: %w", err)
			}
			return exportReport(cmd, writer, records)
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "write to this spreadsheet instead of creating one")
	return cmd
}

func exportReport(cmd *cobra.Command, w service.ReportWriter, records []model.PredictionRecord) error {
	summary := service.NewReportSummary(records, time.Now())
	if err := w.Write(cmd.Context(), records, summary); err != nil {
		return fmt.Errorf("failed to export history: %w", err)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d predictions", len(records))))
	return err
}
