package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/credit-risk-console/internal/app"
	"github.com/Veraticus/credit-risk-console/internal/cli"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the stored prediction history",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyStatsCmd())
	cmd.AddCommand(historyClearCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored predictions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records := store.LoadHistory(cmd.Context())
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			_, err = fmt.Fprintln(out, cli.RenderHistory(records))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored records as JSON")
	return cmd
}

func historyStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the stored predictions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderStats(store.LoadHistory(cmd.Context())))
			return err
		},
	}
}

func historyClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored prediction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx, app.WithNotificationTTL(0))
			if err != nil {
				return err
			}
			defer s.Close()

			count := len(s.store.LoadHistory(ctx))
			if count == 0 {
				fmt.Fprintln(out, "No predictions stored. Nothing to clear.")
				return nil
			}

			if !force {
				fmt.Fprintf(out, "This will delete %d stored predictions.\n", count)
				fmt.Fprint(out, "\nAre you sure you want to continue? [y/N]: ")

				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.ToLower(strings.TrimSpace(response))
				if response != "y" && response != "yes" {
					fmt.Fprintln(out, "Clear canceled.")
					return nil
				}
			}

			if err := s.coord.ClearHistory(ctx); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess(app.MsgHistoryCleared))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
