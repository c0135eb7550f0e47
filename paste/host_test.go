package paste

import (
	"context"
	"testing"
	"time"

	"github.com/use-agent/tokensaver/clipboard"
	"github.com/use-agent/tokensaver/prefs"
)

func TestRun_CleansAndWritesBack(t *testing.T) {
	clip := clipboard.NewMemory()
	var c Counter
	ic := &Interceptor{Prefs: prefs.Default, Counter: &c}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcomes := make(chan Outcome, 4)
	done := make(chan error, 1)
	go func() { done <- Run(ctx, clip, ic, func(o Outcome) { outcomes <- o }) }()

	clip.Copy(messy)

	var got Outcome
	select {
	case got = <-outcomes:
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome within 2s")
	}

	if txt, _ := clip.ReadText(); txt != got.Text {
		t.Errorf("clipboard = %q, want cleaned %q", txt, got.Text)
	}
	if c.Total() != int64(got.Result.SavedChars) {
		t.Errorf("counter = %d, want %d", c.Total(), got.Result.SavedChars)
	}

	// Re-copying our own output is ignored.
	clip.Copy(got.Text)
	select {
	case o := <-outcomes:
		t.Errorf("write-back was cleaned again: %+v", o)
	case <-time.After(100 * time.Millisecond):
	}
	if clip.Writes() != 1 {
		t.Errorf("writes = %d, want 1", clip.Writes())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRun_ShortPasteUntouched(t *testing.T) {
	clip := clipboard.NewMemory()
	ic := &Interceptor{Prefs: prefs.Default}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	go clip.Copy("a    b")
	if err := Run(ctx, clip, ic, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if txt, _ := clip.ReadText(); txt != "a    b" || clip.Writes() != 0 {
		t.Errorf("short paste modified: %q, writes %d", txt, clip.Writes())
	}
}
