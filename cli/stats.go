package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/use-agent/tokensaver/paste"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd(root *rootOptions) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show or reset the total characters saved",
		Long: `Prints the characters and estimated tokens saved by "watch" across all
sessions. The total is kept next to the preferences file.`,
		Example: `  tokensaver-clip stats
  tokensaver-clip stats --reset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.session()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if reset {
				if err := s.Reset(); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", successIcon, success("savings counter reset"))
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", info("saved:"), paste.Summary(s.Total()))
			printInfo(out, "file", s.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Zero the saved total")
	return cmd
}
