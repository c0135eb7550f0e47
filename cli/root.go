// Package cli implements the tokensaver-clip command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/use-agent/tokensaver/config"
	"github.com/use-agent/tokensaver/logging"
	"github.com/use-agent/tokensaver/prefs"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Output helpers.
	successIcon = color.New(color.FgGreen).Sprint("✓")
	errorIcon   = color.New(color.FgRed).Sprint("✗")

	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	info    = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

// rootOptions are shared by every subcommand.
type rootOptions struct {
	cfg       *config.Config
	prefsPath string
}

func (o *rootOptions) store() (*prefs.Store, error) {
	s, err := prefs.NewStore(o.prefsPath)
	if err != nil {
		return nil, err
	}
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (o *rootOptions) session() (*prefs.SessionStore, error) {
	s, err := prefs.NewSessionStore(prefs.SessionPath(o.prefsPath))
	if err != nil {
		return nil, err
	}
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.Load()}

	rootCmd := &cobra.Command{
		Use:   "tokensaver-clip",
		Short: "Clean pasted text before it reaches an LLM",
		Long: `tokensaver-clip strips redundant whitespace, zero-width characters,
repeated punctuation and decorative lines from text, so fewer tokens are
spent on noise.

Run "watch" to clean clipboard copies as they happen, or "clean" to clean a
file or stdin once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(opts.cfg.Log, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.prefsPath, "prefs", opts.cfg.Paste.PrefsPath, "Preferences file")

	rootCmd.AddCommand(NewWatchCmd(opts))
	rootCmd.AddCommand(NewCleanCmd(opts))
	rootCmd.AddCommand(NewEstimateCmd())
	rootCmd.AddCommand(NewPrefsCmd(opts))
	rootCmd.AddCommand(NewStatsCmd(opts))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tokensaver-clip %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", errorIcon, err.Error())
		return err
	}
	return nil
}

// readInput reads the named file, or in when args is empty or "-".
func readInput(in io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// printInfo prints an info line.
func printInfo(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s: %s\n", dim(label), value)
}
