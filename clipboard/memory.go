package clipboard

import (
	"context"
	"sync"
)

// Memory is an in-process clipboard. Copy simulates a user copying text;
// WriteText, like a real clipboard write-back, signals nothing.
type Memory struct {
	mu      sync.Mutex
	text    string
	writes  int
	changed chan struct{}
}

func NewMemory() *Memory {
	return &Memory{changed: make(chan struct{}, 1)}
}

// Copy replaces the clipboard text and signals a change.
func (m *Memory) Copy(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()

	select {
	case m.changed <- struct{}{}:
	default:
	}
}

// Writes returns how many times WriteText was called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.changed:
				select {
				case ch <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.writes++
	return nil
}
