// Package prefs owns the interactive host's user preferences: whether
// paste interception is on, which intensity it uses, and how short a paste
// may be before it is left alone. Preferences live in a YAML file so a
// settings UI (or `tokensaver-clip prefs set`) and a running watcher can
// share them.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/use-agent/tokensaver/cleaner"
	"gopkg.in/yaml.v3"
)

// DefaultMinChars is the paste length, in UTF-16 units, below which pastes
// are not cleaned.
const DefaultMinChars = 100

// Prefs is a snapshot of the user's settings.
type Prefs struct {
	Enabled   bool              `yaml:"enabled"`
	Intensity cleaner.Intensity `yaml:"intensity"`
	MinChars  int               `yaml:"min_chars"`
}

// Default returns enabled, soft, 100.
func Default() Prefs {
	return Prefs{Enabled: true, Intensity: cleaner.Soft, MinChars: DefaultMinChars}
}

// normalize repairs values a hand-edited file may get wrong.
func (p Prefs) normalize() Prefs {
	if !p.Intensity.Valid() {
		p.Intensity = cleaner.ParseIntensity(string(p.Intensity))
	}
	if p.MinChars < 0 {
		p.MinChars = 0
	}
	return p
}

var descriptions = map[cleaner.Intensity]string{
	cleaner.Soft:       "Safe whitespace normalization. Preserves code structure and indentation.",
	cleaner.Aggressive: "Also removes blank lines, decorative separators (====, ----), and repeated words. Best for prose/logs.",
}

// Describe returns a one-sentence explanation of an intensity.
func Describe(in cleaner.Intensity) string {
	return descriptions[in]
}

// Store persists Prefs to a YAML file and keeps the latest snapshot in
// memory. It is safe for concurrent use.
type Store struct {
	path    string
	current atomic.Pointer[Prefs]

	mu sync.Mutex // serialises Save and Update
}

// NewStore returns a store for path holding Default until Load is called.
func NewStore(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	s := &Store{path: abs}
	d := Default()
	s.current.Store(&d)
	return s, nil
}

// Path returns the absolute file path.
func (s *Store) Path() string { return s.path }

// Load reads the file into the store. A missing file yields Default and is
// not an error. Keys absent from the file keep their default values.
func (s *Store) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		p := Default()
		s.current.Store(&p)
		return p, nil
	}
	if err != nil {
		return s.Current(), fmt.Errorf("read prefs %s: %w", s.path, err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return s.Current(), fmt.Errorf("parse prefs %s: %w", s.path, err)
	}
	p = p.normalize()
	s.current.Store(&p)
	return p, nil
}

// Current returns the last loaded or saved snapshot.
func (s *Store) Current() Prefs {
	return *s.current.Load()
}

// Save writes p to the file, creating its directory if needed.
func (s *Store) Save(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(p.normalize())
}

func (s *Store) save(p Prefs) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	s.current.Store(&p)
	return nil
}

// writeAtomic writes data to path via a temporary file and a rename, so a
// concurrent reader never sees a torn file. The directory is created if
// needed.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}

// Update applies fn to the current snapshot and saves the result.
func (s *Store) Update(fn func(*Prefs)) (Prefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.Current()
	fn(&p)
	p = p.normalize()
	if err := s.save(p); err != nil {
		return s.Current(), err
	}
	return p, nil
}

const debounceDelay = 100 * time.Millisecond

// Watch reloads the file whenever it changes and sends each new snapshot.
// The channel is closed when ctx is done. Rapid successive writes are
// coalesced; a reader that falls behind only sees the newest snapshot.
func (s *Store) Watch(ctx context.Context) (<-chan Prefs, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create prefs watcher: %w", err)
	}
	// Watch the directory: editors and Save replace the file by rename.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch prefs dir %s: %w", dir, err)
	}

	ch := make(chan Prefs, 1)
	go s.watchLoop(ctx, watcher, ch)

	slog.Debug("watching prefs", "path", s.path)
	return ch, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, ch chan Prefs) {
	defer close(ch)
	defer watcher.Close()

	name := filepath.Base(s.path)
	timer := time.NewTimer(debounceDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				timer.Reset(debounceDelay)
			}

		case <-timer.C:
			p, err := s.Load()
			if err != nil {
				slog.Warn("prefs reload failed, keeping previous", "path", s.path, "error", err)
				continue
			}
			// Drop a stale pending snapshot in favour of the new one.
			select {
			case <-ch:
			default:
			}
			ch <- p

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("prefs watcher error", "error", err)
		}
	}
}
