package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// SessionFile is the name of the savings file kept next to the prefs file.
const SessionFile = "session.yaml"

// SessionPath returns the savings file that belongs to prefsPath.
func SessionPath(prefsPath string) string {
	return filepath.Join(filepath.Dir(prefsPath), SessionFile)
}

type sessionData struct {
	SavedChars int64 `yaml:"saved_chars"`
}

// SessionStore persists the running total of characters saved by paste
// cleaning, so the total survives restarts of the watcher. It is safe for
// concurrent use within one process.
type SessionStore struct {
	path string

	mu    sync.Mutex
	total int64
}

// NewSessionStore returns a store for path holding zero until Load is
// called.
func NewSessionStore(path string) (*SessionStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	return &SessionStore{path: abs}, nil
}

// Path returns the absolute file path.
func (s *SessionStore) Path() string { return s.path }

// Load reads the total from the file. A missing file is a zero total.
func (s *SessionStore) Load() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.read()
	if err != nil {
		return s.total, err
	}
	s.total = total
	return total, nil
}

func (s *SessionStore) read() (int64, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read session %s: %w", s.path, err)
	}

	var d sessionData
	if err := yaml.Unmarshal(data, &d); err != nil {
		return 0, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	if d.SavedChars < 0 {
		d.SavedChars = 0
	}
	return d.SavedChars, nil
}

// Total returns the last loaded or written total.
func (s *SessionStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Add records n saved characters and returns the new total. The file is
// re-read first so a reset from another process is not overwritten.
func (s *SessionStore) Add(n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.read()
	if err != nil {
		return s.total, err
	}
	if n > 0 {
		total += n
	}
	if err := s.write(total); err != nil {
		return s.total, err
	}
	return total, nil
}

// Reset zeroes the total.
func (s *SessionStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(0)
}

func (s *SessionStore) write(total int64) error {
	data, err := yaml.Marshal(sessionData{SavedChars: total})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.total = total
	return nil
}
