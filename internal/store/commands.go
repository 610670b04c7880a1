package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/properties"
	"github.com/thoreinstein/ccprops/internal/resolve"
	"github.com/thoreinstein/ccprops/internal/validator"
	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// Select makes the configuration at index current.
func (s *Store) Select(index int) error {
	return s.locked(func() error {
		if s.doc == nil {
			return ErrNotOpen
		}
		if index < 0 || index >= len(s.doc.Configurations) {
			return errors.Wrapf(errors.ErrIndexOutOfRange, "index %d of %d", index, len(s.doc.Configurations))
		}
		s.setCurrentLocked(index)
		s.squigglesLocked(s.validatorLocked(s.inputs()))
		return nil
	})
}

// SelectByName selects the first configuration called name.
func (s *Store) SelectByName(name string) error {
	s.mu.Lock()
	idx := -1
	if s.doc != nil {
		idx = s.doc.IndexOf(name)
	}
	open := s.doc != nil
	s.mu.Unlock()

	if !open {
		return ErrNotOpen
	}
	if idx < 0 {
		return errors.Wrapf(errors.ErrNotFound, "configuration %q", name)
	}
	return s.Select(idx)
}

// AddIncludePath appends path to the include path of the current
// configuration. An unset include path becomes ["${default}", path] so
// the external default keeps applying.
func (s *Store) AddIncludePath(path string) error {
	path = s.preferredSeparators(strings.TrimSpace(path))
	if path == "" {
		return errors.New("include path is empty")
	}
	return s.edit("adding include path", func(doc *properties.Document, i int) (int, error) {
		c := &doc.Configurations[i]
		if slices.Contains(c.IncludePath, path) {
			return i, nil
		}
		if c.IncludePath == nil {
			c.IncludePath = []string{properties.DefaultPlaceholder}
		}
		c.IncludePath = append(c.IncludePath, path)
		return i, nil
	})
}

// SetCompileCommands sets compileCommands of the current configuration.
// An empty path removes the field.
func (s *Store) SetCompileCommands(path string) error {
	return s.edit("setting compile commands", func(doc *properties.Document, i int) (int, error) {
		doc.Configurations[i].CompileCommands = optional(s.preferredSeparators(path))
		return i, nil
	})
}

// SetCompilerPath sets compilerPath of the current configuration. An
// empty path removes the field.
func (s *Store) SetCompilerPath(path string) error {
	return s.edit("setting compiler path", func(doc *properties.Document, i int) (int, error) {
		doc.Configurations[i].CompilerPath = optional(path)
		return i, nil
	})
}

// SetConfigurationProvider sets the custom configuration provider of the
// current configuration. Known ids are stored in canonical form; an
// empty id removes the field.
func (s *Store) SetConfigurationProvider(id string) error {
	id = strings.TrimSpace(id)
	if id != "" {
		if canonical, ok := s.providers.Normalize(id); ok {
			id = canonical
		} else {
			s.logger.Debug("unknown configuration provider", "id", id)
		}
	}
	return s.edit("setting configuration provider", func(doc *properties.Document, i int) (int, error) {
		doc.Configurations[i].ConfigurationProvider = optional(id)
		return i, nil
	})
}

// AddConfiguration appends a configuration filled with platform
// defaults and selects it.
func (s *Store) AddConfiguration(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("configuration name is empty")
	}
	return s.edit("adding configuration", func(doc *properties.Document, _ int) (int, error) {
		if doc.IndexOf(name) >= 0 {
			return 0, errors.Wrapf(ErrConfigurationExists, "%q", name)
		}
		cfg := resolve.NewConfiguration(name)
		resolve.ApplyDefaults(&cfg, s.platformDefaults())
		doc.Configurations = append(doc.Configurations, cfg)
		return len(doc.Configurations) - 1, nil
	})
}

// CurrentErrors converts the findings of the current configuration into
// a validation result.
func (s *Store) CurrentErrors() *validator.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < 0 || s.current >= len(s.errs) {
		return &validator.Result{}
	}
	return s.errs[s.current].Result()
}

// preferredSeparators rewrites the separators of a path ccprops writes to
// the style C_Cpp.preferredPathSeparator asks for.
func (s *Store) preferredSeparators(p string) string {
	if sep := s.settings.PathSeparator(); sep == `\` {
		return strings.ReplaceAll(p, "/", sep)
	}
	return strings.ReplaceAll(p, `\`, "/")
}

func optional(v string) *string {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}
	return properties.String(v)
}

// edit re-reads the file, applies fn to the current configuration of the
// fresh document, writes it and reloads. fn returns the index to select.
func (s *Store) edit(what string, fn func(doc *properties.Document, current int) (int, error)) error {
	return s.locked(func() error {
		if err := s.ensureFileLocked(); err != nil {
			return errors.Wrap(err, what)
		}
		data, err := fileutil.ReadFileWithLimit(s.fs, s.file)
		if err != nil {
			return errors.Wrapf(err, "%s: reading %s", what, s.file)
		}
		doc, _, err := s.prepare(data, false)
		if err != nil {
			s.messenger.Error(fmt.Sprintf(MsgParseFailed, s.file, err))
			return errors.Wrap(err, what)
		}

		idx := -1
		if s.currentName != "" {
			idx = doc.IndexOf(s.currentName)
		}
		if idx < 0 {
			idx = s.platform.PreferredIndex(doc.Names())
		}
		sel, err := fn(doc, idx)
		if err != nil {
			return err
		}

		out, err := properties.Marshal(doc)
		if err != nil {
			return errors.Wrapf(err, "%s: encoding", what)
		}
		if err := s.writeLocked(out); err != nil {
			s.messenger.Warn(fmt.Sprintf(MsgWriteFailed, s.file))
			return errors.Wrapf(err, "%s: writing %s", what, s.file)
		}

		s.doc = doc
		s.text = out
		s.fileExists = true
		s.fabricated = false
		s.migrationHeld = false
		s.setCurrentLocked(sel)
		s.refreshLocked()
		return nil
	})
}
