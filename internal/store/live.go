package store

import (
	"bytes"
	"os"
	"slices"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// SetDocumentOpen records whether the properties file is open in a live
// editor buffer. While it is, file changes wait for the matching
// TextChanged.
func (s *Store) SetDocumentOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentOpen = open
	if !open {
		s.pendingExternalEdit = false
	}
}

// FileChanged handles a change of the properties file on disk. A
// deleted file falls back to the fabricated default.
func (s *Store) FileChanged() error {
	return s.locked(func() error {
		data, err := fileutil.ReadFileWithLimit(s.fs, s.file)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return errors.Wrapf(err, "reading %s", s.file)
			}
			if s.doc == nil || s.fileExists {
				s.logger.Debug("properties file removed", "path", s.file)
				s.fabricateLocked()
			}
			return nil
		}

		if s.documentOpen {
			s.pendingExternalEdit = true
			return nil
		}
		if s.fileExists && bytes.Equal(data, s.text) {
			return nil
		}
		return s.loadLocked(data)
	})
}

// TextChanged handles an edit of the open properties buffer. After an
// external change it reloads from text; otherwise only squiggles are
// recomputed.
func (s *Store) TextChanged(text []byte) error {
	return s.locked(func() error {
		if s.pendingExternalEdit {
			s.pendingExternalEdit = false
			return s.loadLocked(text)
		}
		if s.doc == nil {
			return ErrNotOpen
		}
		s.text = slices.Clone(text)
		s.fileExists = true
		s.squigglesLocked(s.validatorLocked(s.inputs()))
		return nil
	})
}

// PendingExternalEdit reports whether a file change is waiting for the
// editor buffer to catch up.
func (s *Store) PendingExternalEdit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingExternalEdit
}

func (s *Store) onFileEvent(path string) {
	if path == s.file {
		if err := s.FileChanged(); err != nil {
			s.logger.Debug("reloading properties failed", "error", err)
		}
		return
	}
	s.compileCommandsWritten(path)
}

// compileCommandsWritten announces every configuration using path.
func (s *Store) compileCommandsWritten(path string) {
	_ = s.locked(func() error {
		if s.doc == nil {
			return nil
		}
		seen := map[string]bool{}
		for i, c := range s.doc.Configurations {
			if seen[c.Name] || s.compileCommands[c.Name] != path {
				continue
			}
			seen[c.Name] = true
			s.emit(Event{Kind: CompileCommandsChanged, Index: i, Name: c.Name, CompileCommands: path})
		}
		return nil
	})
}
