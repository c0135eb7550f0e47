// Package clipboard adapts the system clipboard for the paste host.
package clipboard

import (
	"context"
	"errors"
	"time"
)

// DefaultInterval is the polling period used when none is given.
const DefaultInterval = 350 * time.Millisecond

// ErrUnsupported is returned by the system watcher on platforms without a
// clipboard implementation.
var ErrUnsupported = errors.New("clipboard watcher not implemented for this OS yet")

// Watcher emits a signal when the clipboard text may have changed.
// Implementations can poll or subscribe to OS events. A write through
// WriteText does not itself produce a change signal.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
	ReadText() (string, error)
	WriteText(text string) error
}
