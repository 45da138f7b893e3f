package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/fosrl/posture/internal/config"
	"github.com/fosrl/posture/internal/logger"
	"github.com/fosrl/posture/internal/osquery"
	"github.com/fosrl/posture/internal/platform"
	"github.com/fosrl/posture/internal/posture"
	"github.com/fosrl/posture/internal/report"
	"github.com/fosrl/posture/internal/tui"
	"github.com/spf13/cobra"
)

// ErrChecksFailed is returned in strict mode when any check found nothing.
var ErrChecksFailed = errors.New("one or more posture checks failed")

type CheckCmdOpts struct {
	Output      string
	Parallel    bool
	Engine      string
	Timeout     time.Duration
	Platform    string
	Interactive bool
	TUI         bool
	Strict      bool
}

func CheckCmd() *cobra.Command {
	opts := CheckCmdOpts{}

	cmd := &cobra.Command{
		Use:   "check [encryption|antivirus|screenlock]...",
		Short: "Run security posture checks",
		Long: `Query osquery for disk encryption, antivirus and screen lock status.

With no arguments every check runs. Failing to detect a feature is reported
but is not an error unless --strict is set.`,
		ValidArgs: []string{
			string(posture.CheckDiskEncryption),
			string(posture.CheckAntivirus),
			string(posture.CheckScreenLock),
		},
		// ValidArgs drives completion; ParseChecks validates case-insensitively.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkMain(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.OutputText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "Run checks concurrently")
	cmd.Flags().StringVar(&opts.Engine, "engine", osquery.DefaultEngine, "Path to the osqueryi binary")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Per-query timeout (0 waits indefinitely)")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Override the detected platform: macos, windows or linux")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Choose which checks to run")
	cmd.Flags().BoolVar(&opts.TUI, "tui", false, "Show live check progress")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when any check fails")

	return cmd
}

// applyConfig fills every flag the user did not set from the config file.
func applyConfig(cmd *cobra.Command, opts *CheckCmdOpts, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("output") && cfg.Output != "" {
		opts.Output = cfg.Output
	}
	if !flags.Changed("parallel") {
		opts.Parallel = cfg.Parallel
	}
	if !flags.Changed("engine") && cfg.EnginePath != "" {
		opts.Engine = cfg.EnginePath
	}
	if !flags.Changed("timeout") {
		opts.Timeout = cfg.Timeout
	}
	if !flags.Changed("platform") {
		opts.Platform = cfg.Platform
	}
}

func checkMain(cmd *cobra.Command, opts CheckCmdOpts, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	applyConfig(cmd, &opts, config.ConfigFromContext(ctx))

	if err := config.ValidateOutput(opts.Output); err != nil {
		return err
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %v", opts.Timeout)
	}

	checks, err := posture.ParseChecks(args)
	if err != nil {
		return err
	}

	if opts.Interactive {
		if checks, err = selectChecks(checks); err != nil {
			return err
		}
	}

	hostOS, err := platform.Resolve(opts.Platform)
	if err != nil {
		return err
	}

	querier := osquery.QuerierFromContext(ctx)
	if querier == nil {
		querier = osquery.NewClient(opts.Engine)
	}

	logger.Debug("Running %d check(s) for %s with %s", len(checks), hostOS, opts.Engine)

	checker := posture.NewChecker(osquery.NewRunner(querier, opts.Timeout), hostOS)
	out := cmd.OutOrStdout()

	var rep *posture.Report
	switch {
	case opts.TUI:
		rep, err = runTUI(ctx, checker, checks)
		if err != nil {
			return err
		}
		if rep == nil {
			return nil
		}
		if opts.Output != config.OutputText {
			if err := report.Encode(out, rep, opts.Output); err != nil {
				return err
			}
		}

	case opts.Output == config.OutputText:
		rep = runText(ctx, out, checker, checks, opts.Parallel)

	default:
		// Keep stdout parseable; query diagnostics go to stderr.
		defer redirectLogs(cmd.ErrOrStderr())()

		rep = checker.Run(ctx, posture.RunOptions{Checks: checks, Parallel: opts.Parallel})
		if err := report.Encode(out, rep, opts.Output); err != nil {
			return err
		}
	}

	if opts.Strict && !rep.Passed() {
		return ErrChecksFailed
	}
	return nil
}

// runText prints each line as soon as its check finishes so query
// diagnostics stay next to the check that issued them. Parallel runs
// print once everything is done to keep the fixed order.
func runText(ctx context.Context, out io.Writer, checker *posture.Checker, checks []posture.Check, parallel bool) *posture.Report {
	tw := report.NewTextWriter(out)
	tw.Header()

	if parallel {
		rep := checker.Run(ctx, posture.RunOptions{Checks: checks, Parallel: true})
		for _, check := range checks {
			tw.Check(rep, check)
		}
		return rep
	}

	return checker.Run(ctx, posture.RunOptions{
		Checks:     checks,
		OnComplete: tw.Check,
	})
}

func runTUI(ctx context.Context, checker *posture.Checker, checks []posture.Check) (*posture.Report, error) {
	defer redirectLogs(io.Discard)()

	rep, completed, err := tui.RunProgress(ctx, tui.ProgressConfig{
		Header:  "Verifying system security...",
		Checker: checker,
		Checks:  checks,
	})
	if err != nil {
		return nil, fmt.Errorf("error running progress view: %w", err)
	}
	if !completed {
		logger.Warning("Checks cancelled")
		return nil, nil
	}
	return rep, nil
}

// redirectLogs points logger output at w and returns the restore func.
func redirectLogs(w io.Writer) func() {
	l := logger.GetLogger()
	prev := l.Output()
	l.SetOutput(w)
	return func() { l.SetOutput(prev) }
}

// selectChecks prompts for the checks to run, starting from preselected.
func selectChecks(preselected []posture.Check) ([]posture.Check, error) {
	var options []huh.Option[posture.Check]
	for _, c := range posture.AllChecks {
		options = append(options, huh.NewOption(c.Description(), c).Selected(slices.Contains(preselected, c)))
	}

	var selected []posture.Check
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[posture.Check]().
				Title("Select checks to run").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("error selecting checks: %w", err)
	}

	if len(selected) == 0 {
		return nil, errors.New("no checks selected")
	}

	names := make([]string, 0, len(selected))
	for _, c := range selected {
		names = append(names, string(c))
	}
	return posture.ParseChecks(names)
}
