package clipboard

import (
	"context"
	"testing"
	"time"
)

var _ Watcher = (*Memory)(nil)

func TestMemory_CopySignals(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := m.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	m.Copy("hello")
	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("no event after Copy")
	}
	if txt, _ := m.ReadText(); txt != "hello" {
		t.Errorf("ReadText = %q", txt)
	}
}

func TestMemory_WriteTextIsSilent(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _ := m.Watch(ctx)
	if err := m.WriteText("cleaned"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	select {
	case <-events:
		t.Fatal("WriteText produced a change event")
	case <-time.After(50 * time.Millisecond):
	}
	if txt, _ := m.ReadText(); txt != "cleaned" || m.Writes() != 1 {
		t.Errorf("ReadText = %q, writes = %d", txt, m.Writes())
	}
}

func TestMemory_WatchClosesOnCancel(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())

	events, _ := m.Watch(ctx)
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("unexpected event after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
