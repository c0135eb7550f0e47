package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/use-agent/tokensaver/clipboard"
	"github.com/use-agent/tokensaver/paste"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Clean clipboard copies as they happen",
		Long: `Watches the clipboard and replaces each copied text with its cleaned
form, printing a one-line summary per paste. Preferences are re-read when
the preferences file changes. Savings are added to the persisted total
shown by "stats". Press Ctrl+C to stop and print the session total.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := clipboard.NewSystem(root.cfg.Paste.PollInterval)
			return runWatch(ctx, cmd, root, w)
		},
	}
}

func runWatch(ctx context.Context, cmd *cobra.Command, root *rootOptions, w clipboard.Watcher) error {
	s, err := root.store()
	if err != nil {
		return err
	}

	updates, err := s.Watch(ctx)
	if err != nil {
		slog.Warn("preferences will not reload", "error", err)
	} else {
		go func() {
			for p := range updates {
				slog.Info("preferences reloaded", "enabled", p.Enabled, "intensity", p.Intensity, "min_chars", p.MinChars)
			}
		}()
	}

	saved, err := root.session()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	counter := &paste.Counter{}
	ic := &paste.Interceptor{Prefs: s.Current, Counter: counter}

	printPrefs(cmd, s.Path(), s.Current())
	fmt.Fprintln(out, dim("watching clipboard... (Ctrl+C to exit)"))

	err = paste.Run(ctx, w, ic, func(o paste.Outcome) {
		fmt.Fprintf(out, "%s %s\n", successIcon, paste.Toast(o.Result))
		if _, err := saved.Add(int64(o.Result.SavedChars)); err != nil {
			slog.Warn("savings total not persisted", "path", saved.Path(), "error", err)
		}
	})
	if errors.Is(err, clipboard.ErrUnsupported) {
		return fmt.Errorf("watch mode is not supported on this OS yet (darwin only for now)")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s %s\n", info("session:"), paste.Summary(counter.Total()))
	fmt.Fprintf(out, "%s %s\n", info("all time:"), paste.Summary(saved.Total()))
	return nil
}
