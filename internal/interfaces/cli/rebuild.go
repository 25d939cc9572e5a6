package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRebuildIndexCmd creates the rebuild-index command: trigger a rebuild
// of the in-memory brand variation index, or inspect its state.
func NewRebuildIndexCmd() *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "rebuild-index",
		Short: "Rebuild the brand variation index",
		Long:  "Trigger a synchronous rebuild of the in-memory brand variation index from the\nknowledge graph. With --status the current index state is shown instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			if statusOnly {
				stats, err := cliCtx.Client.Admin().IndexStatus(cmd.Context())
				if err != nil {
					return err
				}
				return PrintResult(cmd, fmt.Sprintf(
					"index ready=%t brands=%d entries=%d built_at=%s",
					stats.Ready, stats.Brands, stats.Entries, stats.BuiltAt.Format("2006-01-02T15:04:05Z07:00"),
				))
			}

			stats, err := cliCtx.Client.Admin().RebuildIndex(cmd.Context())
			if err != nil {
				return err
			}

			PrintSuccess(cmd, fmt.Sprintf("index rebuilt: %d brands, %d entries", stats.Brands, stats.Entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "show index status without triggering a rebuild")

	return cmd
}

//Personal.AI order the ending
