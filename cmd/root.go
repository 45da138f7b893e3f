package cmd

import (
	"context"
	"os"

	"github.com/fosrl/posture/cmd/check"
	"github.com/fosrl/posture/cmd/completion"
	"github.com/fosrl/posture/cmd/queries"
	"github.com/fosrl/posture/cmd/version"
	"github.com/fosrl/posture/internal/config"
	"github.com/fosrl/posture/internal/logger"
	"github.com/spf13/cobra"
)

// Initialize a root Cobra command.
//
// Set initResources to false when generating documentation to avoid
// parsing configuration files. This is to avoid depending on external
// state when doing doc generation.
func RootCommand(initResources bool) (*cobra.Command, error) {
	checkCmd := check.CheckCmd()

	cmd := &cobra.Command{
		Use:   "posture",
		Short: "Security posture checks backed by osquery",
		Long: `Report disk encryption, antivirus and screen lock status of this host
by querying osquery. Running posture without a subcommand runs every check.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// "posture" is equivalent to "posture check"
			checkCmd.SetContext(cmd.Context())
			return checkCmd.RunE(checkCmd, args)
		},
	}

	// Shared flag pointers, so check sees them as changed.
	cmd.Flags().AddFlagSet(checkCmd.Flags())

	cmd.AddCommand(checkCmd)
	cmd.AddCommand(queries.QueriesCmd())
	cmd.AddCommand(version.VersionCmd())
	cmd.AddCommand(completion.CompletionCmd())

	if !initResources {
		return cmd, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.InitLogger(cfg.LogLevel)

	ctx := context.Background()
	ctx = config.WithConfig(ctx, cfg)

	cmd.SetContext(ctx)

	return cmd, nil
}

// Execute is called by main.go
func Execute() {
	cmd, err := RootCommand(true)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		logger.Error("Error: %v", err)
		os.Exit(1)
	}
}
