package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/credit-risk-console/internal/app"
	"github.com/Veraticus/credit-risk-console/internal/cli"
	"github.com/Veraticus/credit-risk-console/internal/common"
	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/scoring"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func scoreCmd() *cobra.Command {
	var (
		profile    = model.DefaultProfile()
		file       string
		skipChecks bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a client profile",
		Long: `Score one client profile built from flags, or every profile in a JSON file.

Flags start from the same defaults as the interactive form. Each successful
prediction is added to the history.`,
		Example: `  risk score --age 42 --income 85000 --loan-amount 20000 --loan-intent MEDICAL
  risk score --file applicants.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				profiles, err := loadProfiles(file)
				if err != nil {
					return err
				}
				return runBatch(cmd, profiles, skipChecks)
			}
			return runScore(cmd, profile, skipChecks)
		},
	}

	addProfileFlags(cmd.Flags(), &profile)
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding a profile or an array of profiles")
	cmd.Flags().BoolVar(&skipChecks, "no-validate", false, "send profiles without checking input ranges")

	return cmd
}

func addProfileFlags(fs *pflag.FlagSet, p *model.ClientProfile) {
	fs.IntVar(&p.Age, "age", p.Age, "applicant age (18-100)")
	fs.StringVar(&p.Gender, "gender", p.Gender, "Male or Female")
	fs.StringVar(&p.Education, "education", p.Education, "High School, Associate, Bachelor, Master or Doctorate")
	fs.Float64Var(&p.Income, "income", p.Income, "annual income")
	fs.IntVar(&p.EmploymentYears, "employment-years", p.EmploymentYears, "years of employment experience")
	fs.StringVar(&p.HomeOwnership, "home-ownership", p.HomeOwnership, "RENT, OWN, MORTGAGE or OTHER")
	fs.Float64Var(&p.LoanAmount, "loan-amount", p.LoanAmount, "requested loan amount")
	fs.StringVar(&p.LoanIntent, "loan-intent", p.LoanIntent, "PERSONAL, EDUCATION, MEDICAL, VENTURE, HOMEIMPROVEMENT or DEBTCONSOLIDATION")
	fs.Float64Var(&p.InterestRate, "interest-rate", p.InterestRate, "loan interest rate in percent")
	fs.Float64Var(&p.LoanPercentIncome, "loan-percent-income", p.LoanPercentIncome, "loan amount as a fraction of income")
	fs.IntVar(&p.CreditHistoryYears, "credit-history", p.CreditHistoryYears, "credit history length in years")
	fs.IntVar(&p.CreditScore, "credit-score", p.CreditScore, "credit score (300-850)")
	fs.StringVar(&p.PriorDefaults, "prior-defaults", p.PriorDefaults, "previous loan defaults on file: Yes or No")
}

// loadProfiles reads a single profile object or an array of them.
func loadProfiles(path string) ([]model.ClientProfile, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var p model.ClientProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return []model.ClientProfile{p}, nil
	}

	var profiles []model.ClientProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(profiles) == 0 {
		return nil, common.NewUserError(fmt.Sprintf("%s contains no profiles", path), nil)
	}
	return profiles, nil
}

func runScore(cmd *cobra.Command, profile model.ClientProfile, skipChecks bool) error {
	if !skipChecks {
		if err := profile.Validate(); err != nil {
			return common.NewUserError("Profile rejected before sending", err)
		}
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, app.WithNotificationTTL(0))
	if err != nil {
		return err
	}
	defer s.Close()

	// Load the stored history first so the new record is prepended to it.
	s.coord.Initialize(ctx)

	outcome, err := s.coord.SubmitProfile(ctx, profile)
	if err != nil {
		return err
	}
	return printOutcome(cmd.OutOrStdout(), outcome)
}

func printOutcome(w io.Writer, outcome scoring.Outcome) error {
	switch o := outcome.(type) {
	case scoring.Success:
		_, err := fmt.Fprintln(w, cli.RenderPrediction(o.Record))
		return err
	case scoring.Rejected:
		msg := app.MsgPredictionFailed
		if o.Message != "" {
			msg += ": " + o.Message
		}
		return common.NewUserError(msg, nil)
	case scoring.TransportFailure:
		return common.NewUserError(app.MsgTransportFailure, o.Cause)
	default:
		return fmt.Errorf("unexpected outcome %T", outcome)
	}
}

func runBatch(cmd *cobra.Command, profiles []model.ClientProfile, skipChecks bool) error {
	if !skipChecks {
		var errs []error
		for i, p := range profiles {
			if err := p.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("profile %d: %w", i+1, err))
			}
		}
		if len(errs) > 0 {
			return common.NewUserError("Profiles rejected before sending", errors.Join(errs...))
		}
	}

	s, err := openSession(cmd.Context(), app.WithNotificationTTL(0))
	if err != nil {
		return err
	}
	defer s.Close()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	s.coord.Initialize(ctx)

	result, err := cli.ScoreBatch(ctx, s.coord, profiles, cmd.ErrOrStderr(), handler.SetProgress)
	if err != nil && !handler.WasInterrupted() {
		return err
	}

	out := cmd.OutOrStdout()
	for _, rec := range result.Records {
		fmt.Fprintln(out, cli.RenderPrediction(rec))
	}
	for _, f := range result.Failures {
		fmt.Fprintln(out, cli.FormatWarning(f))
	}
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Scored %d of %d profiles (%d rejected, %d failed)",
		result.Succeeded, len(profiles), result.Rejected, result.Failed)))

	if result.Succeeded == 0 && result.Total() > 0 {
		return common.NewUserError("No profile could be scored", nil)
	}
	return nil
}
