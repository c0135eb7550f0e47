//go:build !darwin

package clipboard

import (
	"context"
	"time"
)

type UnsupportedWatcher struct{}

// NewSystem returns the clipboard watcher for this platform.
func NewSystem(interval time.Duration) Watcher {
	_ = interval
	return &UnsupportedWatcher{}
}

func (w *UnsupportedWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	_ = ctx
	return nil, ErrUnsupported
}

func (w *UnsupportedWatcher) ReadText() (string, error) {
	return "", ErrUnsupported
}

func (w *UnsupportedWatcher) WriteText(string) error {
	return ErrUnsupported
}
