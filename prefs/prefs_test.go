package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/use-agent/tokensaver/cleaner"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "tokensaver", "prefs.yaml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestLoad_MissingFileIsDefault(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Default() {
		t.Errorf("Load = %+v, want %+v", p, Default())
	}
}

func TestSaveLoad(t *testing.T) {
	s := newTestStore(t)
	want := Prefs{Enabled: false, Intensity: cleaner.Aggressive, MinChars: 250}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other, _ := NewStore(s.Path())
	got, err := other.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoad_PartialAndInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want Prefs
	}{
		{"empty file", "", Default()},
		{"only intensity", "intensity: aggressive\n", Prefs{Enabled: true, Intensity: cleaner.Aggressive, MinChars: 100}},
		{"disabled", "enabled: false\n", Prefs{Enabled: false, Intensity: cleaner.Soft, MinChars: 100}},
		{"unknown intensity", "intensity: extreme\n", Default()},
		{"mixed case intensity", "intensity: Aggressive\n", Prefs{Enabled: true, Intensity: cleaner.Aggressive, MinChars: 100}},
		{"negative min", "min_chars: -5\n", Prefs{Enabled: true, Intensity: cleaner.Soft, MinChars: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.MkdirAll(filepath.Dir(s.Path()), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(s.Path(), []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := s.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != tt.want {
				t.Errorf("Load = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoad_MalformedKeepsCurrent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(Prefs{Enabled: true, Intensity: cleaner.Aggressive, MinChars: 10}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(), []byte("enabled: [not a bool"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(); err == nil {
		t.Fatal("Load succeeded on malformed YAML")
	}
	if got := s.Current(); got.Intensity != cleaner.Aggressive || got.MinChars != 10 {
		t.Errorf("Current after failed load = %+v", got)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Update(func(p *Prefs) { p.Intensity = cleaner.Aggressive })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Intensity != cleaner.Aggressive || !p.Enabled {
		t.Errorf("Update = %+v", p)
	}
	if s.Current() != p {
		t.Errorf("Current = %+v, want %+v", s.Current(), p)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if want := "enabled: true\nintensity: aggressive\nmin_chars: 100\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestWatch(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	other, _ := NewStore(s.Path())
	if err := other.Save(Prefs{Enabled: false, Intensity: cleaner.Aggressive, MinChars: 5}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case p := <-ch:
		if p.Enabled || p.Intensity != cleaner.Aggressive || p.MinChars != 5 {
			t.Errorf("watched prefs = %+v", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}
	if got := s.Current(); got.Enabled {
		t.Errorf("store not refreshed: %+v", got)
	}

	cancel()
	for range ch {
	}
}

func TestDescribe(t *testing.T) {
	if Describe(cleaner.Soft) == "" || Describe(cleaner.Aggressive) == "" {
		t.Error("missing intensity description")
	}
}
