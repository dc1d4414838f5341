package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/credit-risk-console/internal/cli"
	"github.com/Veraticus/credit-risk-console/internal/common"
	"github.com/spf13/cobra"
)

func apiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Query the scoring service directly",
	}

	cmd.AddCommand(apiHealthCmd())
	cmd.AddCommand(apiModelCmd())
	cmd.AddCommand(apiFeaturesCmd())
	cmd.AddCommand(apiExampleCmd())

	return cmd
}

func apiHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the scoring service is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			health, err := client.CheckHealth(cmd.Context())
			if err != nil {
				return common.NewUserError(fmt.Sprintf("%s at %s", common.ErrServiceUnavailable, client.BaseURL()), err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderHealth(client.BaseURL(), health))
			return err
		},
	}
}

func apiModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show the deployed model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			details, err := client.ModelInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch model info: %w", err)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Name:      %s\n", details.ModelName)
			fmt.Fprintf(&b, "Version:   %s\n", details.ModelVersion)
			if details.Algorithm != "" {
				fmt.Fprintf(&b, "Algorithm: %s\n", details.Algorithm)
			}
			if details.TrainedAt != "" {
				fmt.Fprintf(&b, "Trained:   %s\n", details.TrainedAt)
			}
			fmt.Fprintf(&b, "Features:  %d\n", details.FeaturesUsed)

			names := make([]string, 0, len(details.Metrics))
			for name := range details.Metrics {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(&b, "  %-12s %.3f\n", name, details.Metrics[name])
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Model", strings.TrimRight(b.String(), "\n")))
			return err
		},
	}
}

func apiFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the inputs the model accepts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			features, err := client.Features(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch features: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, f := range features {
				line := fmt.Sprintf("%-32s %-12s", f.Name, f.Type)
				switch {
				case len(f.Values) > 0:
					line += " " + strings.Join(f.Values, ", ")
				case f.Min != nil && f.Max != nil:
					line += fmt.Sprintf(" %g to %g", *f.Min, *f.Max)
				}
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
}

func apiExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print the service's sample profile as JSON",
		Long: `Print the service's sample profile as JSON. The output can be edited and
passed back to "risk score --file".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			profile, err := client.Example(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch example: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(profile)
		},
	}
}
