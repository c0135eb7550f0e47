package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/use-agent/tokensaver/cleaner"
	"github.com/use-agent/tokensaver/prefs"
)

// NewPrefsCmd creates the prefs command group.
func NewPrefsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change paste preferences",
	}
	cmd.AddCommand(newPrefsShowCmd(root))
	cmd.AddCommand(newPrefsSetCmd(root))
	return cmd
}

func newPrefsShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.store()
			if err != nil {
				return err
			}
			printPrefs(cmd, s.Path(), s.Current())
			return nil
		},
	}
}

type prefsSetOptions struct {
	enabled   bool
	intensity string
	minChars  int
}

func newPrefsSetCmd(root *rootOptions) *cobra.Command {
	opts := &prefsSetOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences; only the flags given are updated",
		Example: `  tokensaver-clip prefs set --intensity aggressive
  tokensaver-clip prefs set --enabled=false
  tokensaver-clip prefs set --min-chars 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("enabled") && !flags.Changed("intensity") && !flags.Changed("min-chars") {
				return fmt.Errorf("nothing to set: pass --enabled, --intensity or --min-chars")
			}

			var in cleaner.Intensity
			if flags.Changed("intensity") {
				in = cleaner.Intensity(opts.intensity)
				if !in.Valid() {
					return fmt.Errorf("unknown intensity %q: use soft or aggressive", opts.intensity)
				}
			}
			if flags.Changed("min-chars") && opts.minChars < 0 {
				return fmt.Errorf("min-chars must be >= 0")
			}

			s, err := root.store()
			if err != nil {
				return err
			}
			p, err := s.Update(func(p *prefs.Prefs) {
				if flags.Changed("enabled") {
					p.Enabled = opts.enabled
				}
				if flags.Changed("intensity") {
					p.Intensity = in
				}
				if flags.Changed("min-chars") {
					p.MinChars = opts.minChars
				}
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Preferences saved\n", successIcon)
			printPrefs(cmd, s.Path(), p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.enabled, "enabled", true, "Intercept clipboard copies")
	cmd.Flags().StringVar(&opts.intensity, "intensity", "", "Cleaning intensity: soft or aggressive")
	cmd.Flags().IntVar(&opts.minChars, "min-chars", prefs.DefaultMinChars, "Leave copies shorter than this alone")

	return cmd
}

func printPrefs(cmd *cobra.Command, path string, p prefs.Prefs) {
	w := cmd.OutOrStdout()
	status := success("enabled")
	if !p.Enabled {
		status = warning("paused")
	}
	printInfo(w, "Status", status)
	printInfo(w, "Intensity", info(p.Intensity.String()))
	fmt.Fprintf(w, "    %s\n", dim(prefs.Describe(p.Intensity)))
	printInfo(w, "Min chars", fmt.Sprint(p.MinChars))
	printInfo(w, "File", path)
}
