package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/use-agent/tokensaver/cleaner"
	"github.com/use-agent/tokensaver/mcptools"
	"github.com/use-agent/tokensaver/paste"
)

type cleanOptions struct {
	intensity string
	html      bool
	stats     bool
}

// NewCleanCmd creates the clean command.
func NewCleanCmd(root *rootOptions) *cobra.Command {
	opts := &cleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Clean a file or stdin and print the result",
		Long: `Cleans text once and writes it to stdout.

Without --intensity the intensity from the preferences file is used.
With --html the input is treated as an HTML fragment and converted to
Markdown first. --stats prints what was saved to stderr.`,
		Example: `  pbpaste | tokensaver-clip clean --stats
  tokensaver-clip clean build.log --intensity aggressive
  tokensaver-clip clean page.html --html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.intensity, "intensity", "i", "", "Cleaning intensity: soft or aggressive")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Treat input as HTML")
	cmd.Flags().BoolVarP(&opts.stats, "stats", "s", false, "Print savings to stderr")

	return cmd
}

func runClean(cmd *cobra.Command, root *rootOptions, opts *cleanOptions, args []string) error {
	in, err := resolveIntensity(root, opts.intensity)
	if err != nil {
		return err
	}

	raw, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	var res cleaner.Result
	if opts.html {
		res, err = cleaner.NewHTMLConverter().CleanHTML(raw, in)
		if err != nil {
			return fmt.Errorf("convert html: %w", err)
		}
	} else {
		res = cleaner.Clean(raw, in)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Text)

	if opts.stats {
		w := cmd.ErrOrStderr()
		if res.Changed() {
			fmt.Fprintf(w, "%s %s\n", successIcon, paste.Toast(res))
		} else {
			fmt.Fprintf(w, "%s\n", dim("nothing to clean"))
		}
		fmt.Fprintln(w, dim(strings.TrimPrefix(mcptools.FormatStats(res), "\n---\n")))
	}
	return nil
}

// resolveIntensity validates an explicit flag value, or falls back to the
// preferences file.
func resolveIntensity(root *rootOptions, flag string) (cleaner.Intensity, error) {
	if flag != "" {
		in := cleaner.Intensity(strings.ToLower(strings.TrimSpace(flag)))
		if !in.Valid() {
			return "", fmt.Errorf("unknown intensity %q: use soft or aggressive", flag)
		}
		return in, nil
	}
	s, err := root.store()
	if err != nil {
		return "", err
	}
	return s.Current().Intensity, nil
}

// NewEstimateCmd creates the estimate command.
func NewEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate [file]",
		Short: "Estimate the token count of a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mcptools.FormatEstimate(cleaner.Analyze(raw)))
			return nil
		},
	}
}
