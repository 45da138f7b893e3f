package queries

import (
	"fmt"
	"strconv"

	"github.com/fosrl/posture/internal/platform"
	"github.com/fosrl/posture/internal/posture"
	"github.com/fosrl/posture/internal/utils"
	"github.com/spf13/cobra"
)

type QueriesCmdOpts struct {
	Platform string
}

func QueriesCmd() *cobra.Command {
	opts := QueriesCmdOpts{}

	cmd := &cobra.Command{
		Use:   "queries",
		Short: "List the osquery queries each check runs",
		Long:  "Print the query table used by every check for a platform, in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			os, err := platform.Resolve(opts.Platform)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\n\n", os)
			return utils.PrintTable(cmd.OutOrStdout(), []string{"CHECK", "ORDER", "QUERY"}, queryRows(posture.ProfileFor(os)))
		},
	}

	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Platform to list: macos, windows or linux (default: this host)")

	return cmd
}

func queryRows(p posture.Profile) [][]string {
	rows := [][]string{
		{string(posture.CheckDiskEncryption), "1", p.DiskEncryption.Query},
	}
	for i, q := range p.Antivirus.Queries {
		rows = append(rows, []string{string(posture.CheckAntivirus), strconv.Itoa(i + 1), q})
	}
	rows = append(rows, []string{string(posture.CheckScreenLock), "1", p.ScreenLock.Query})
	return rows
}
