package version

import (
	"context"
	"fmt"

	"github.com/fosrl/posture/internal/config"
	"github.com/fosrl/posture/internal/logger"
	"github.com/fosrl/posture/internal/osquery"
	versionpkg "github.com/fosrl/posture/internal/version"
	"github.com/spf13/cobra"
)

// engineProber is satisfied by *osquery.Client.
type engineProber interface {
	Engine() string
	EngineVersion(ctx context.Context) (string, error)
}

func VersionCmd() *cobra.Command {
	return newVersionCmd(func(engine string) engineProber {
		return osquery.NewClient(engine)
	})
}

func newVersionCmd(newProber func(engine string) engineProber) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number and the version of the osquery engine",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionpkg.Version)

			cfg := config.ConfigFromContext(cmd.Context())
			reportEngine(cmd, newProber(cfg.EnginePath))
		},
	}
}

func reportEngine(cmd *cobra.Command, prober engineProber) {
	raw, err := prober.EngineVersion(cmd.Context())
	if err != nil {
		// The engine is optional for this command, so only warn
		logger.Warning("Could not determine %s version: %v", prober.Engine(), err)
		return
	}

	v, err := versionpkg.ParseEngineVersion(raw)
	if err != nil {
		logger.Warning("Could not parse %s version: %v", prober.Engine(), err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", prober.Engine(), v)
	if !versionpkg.EngineSupported(v) {
		logger.Warning("\n%s %s is older than the minimum supported version %s", prober.Engine(), v, versionpkg.MinimumEngineVersion)
		logger.Info("Some checks may report nothing until the engine is upgraded")
	}
}
