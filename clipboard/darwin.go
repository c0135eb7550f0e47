//go:build darwin

package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DarwinWatcher polls pbpaste and writes through pbcopy.
type DarwinWatcher struct {
	Interval time.Duration

	mu   sync.Mutex
	last string
}

// NewSystem returns the clipboard watcher for this platform.
func NewSystem(interval time.Duration) Watcher {
	return NewDarwinWatcher(interval)
}

func NewDarwinWatcher(interval time.Duration) *DarwinWatcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &DarwinWatcher{Interval: interval}
}

func (w *DarwinWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if _, err := exec.LookPath("pbpaste"); err != nil {
		return nil, fmt.Errorf("pbpaste: %w", err)
	}

	ch := make(chan struct{}, 1)

	// prime initial state so the existing clipboard is not treated as a copy
	if txt, err := w.ReadText(); err == nil {
		w.setLast(txt)
	}

	t := time.NewTicker(w.Interval)

	go func() {
		defer t.Stop()
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				txt, err := w.ReadText()
				if err != nil {
					continue
				}
				if txt != "" && w.swapLast(txt) {
					select {
					case ch <- struct{}{}:
					default:
					}
				}
			}
		}
	}()

	return ch, nil
}

func (w *DarwinWatcher) ReadText() (string, error) {
	cmd := exec.Command("pbpaste")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pbpaste: %w", err)
	}
	return out.String(), nil
}

func (w *DarwinWatcher) WriteText(text string) error {
	cmd := exec.Command("pbcopy")
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pbcopy: %w", err)
	}
	// our own write is not a user copy
	w.setLast(text)
	return nil
}

func (w *DarwinWatcher) setLast(txt string) {
	w.mu.Lock()
	w.last = txt
	w.mu.Unlock()
}

// swapLast stores txt and reports whether it differs from the previous value.
func (w *DarwinWatcher) swapLast(txt string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if txt == w.last {
		return false
	}
	w.last = txt
	return true
}
