// Package state persists which configuration is selected in each
// workspace.
package state

import (
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/paths"
	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// Entry is the selection of one workspace. Name is kept alongside the
// index so a reordered document can still find the same configuration.
type Entry struct {
	Index int    `toml:"index"`
	Name  string `toml:"name,omitempty"`
}

// Selection loads and saves per-workspace selections.
type Selection interface {
	Load(workspace string) (Entry, bool)
	Save(workspace string, e Entry) error
}

// file is the on-disk layout of the state file.
type file struct {
	Workspaces map[string]Entry `toml:"workspaces"`
}

// FileStore keeps selections in a TOML file.
type FileStore struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// DefaultFileStore stores selections under the XDG state directory.
func DefaultFileStore(fs afero.Fs) *FileStore {
	return NewFileStore(fs, paths.StateFile())
}

// Load implements Selection. A missing or unreadable file means no
// selection.
func (s *FileStore) Load(workspace string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return Entry{}, false
	}
	e, ok := f.Workspaces[workspace]
	return e, ok
}

// Save implements Selection.
func (s *FileStore) Save(workspace string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		// A corrupt state file is replaced rather than blocking selection.
		f = file{}
	}
	if f.Workspaces == nil {
		f.Workspaces = map[string]Entry{}
	}
	f.Workspaces[workspace] = e

	data, err := toml.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "encoding state")
	}
	if err := paths.EnsureDir(s.fs, filepath.Dir(s.path), 0); err != nil {
		return err
	}
	return errors.Wrapf(fileutil.AtomicWriteFile(s.fs, s.path, data, 0o644), "writing %s", s.path)
}

func (s *FileStore) read() (file, error) {
	var f file
	data, err := fileutil.ReadFileWithLimit(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, err
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return file{}, errors.Wrapf(err, "decoding %s", s.path)
	}
	return f, nil
}

// MemoryStore keeps selections in memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]Entry{}}
}

// Load implements Selection.
func (m *MemoryStore) Load(workspace string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[workspace]
	return e, ok
}

// Save implements Selection.
func (m *MemoryStore) Save(workspace string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[workspace] = e
	return nil
}

// All returns a copy of every stored entry.
func (m *MemoryStore) All() map[string]Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.entries)
}
