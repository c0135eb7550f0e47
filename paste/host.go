package paste

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/use-agent/tokensaver/clipboard"
)

// Run watches w until ctx is done. Each copied text is passed through ic;
// when ic cleans it, the cleaned text is written back to the clipboard and
// notify (if non-nil) is called with the outcome.
func Run(ctx context.Context, w clipboard.Watcher, ic *Interceptor, notify func(Outcome)) error {
	events, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch clipboard: %w", err)
	}

	var lastWritten string
	for range events {
		txt, err := w.ReadText()
		if err != nil {
			slog.Debug("clipboard read failed", "error", err)
			continue
		}
		// Our own write-back, seen again.
		if lastWritten != "" && txt == lastWritten {
			continue
		}

		out, ok := ic.Handle(txt)
		if !ok {
			continue
		}
		if err := w.WriteText(out.Text); err != nil {
			slog.Warn("clipboard write failed", "error", err)
			continue
		}
		lastWritten = out.Text

		slog.Debug("paste cleaned",
			"intensity", out.Result.Intensity,
			"saved_chars", out.Result.SavedChars,
		)
		if notify != nil {
			notify(out)
		}
	}
	return nil
}
