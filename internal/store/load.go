package store

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/thoreinstein/ccprops/internal/compiler"
	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/migrate"
	"github.com/thoreinstein/ccprops/internal/paths"
	"github.com/thoreinstein/ccprops/internal/properties"
	"github.com/thoreinstein/ccprops/internal/resolve"
	"github.com/thoreinstein/ccprops/internal/squiggle"
	"github.com/thoreinstein/ccprops/internal/state"
	"github.com/thoreinstein/ccprops/internal/telemetry"
	"github.com/thoreinstein/ccprops/internal/validator"
	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// Open loads the properties file. A workspace without one gets a
// fabricated default configuration for the host.
func (s *Store) Open() error {
	return s.locked(s.reloadLocked)
}

// Reload re-reads the properties file.
func (s *Store) Reload() error {
	return s.locked(s.reloadLocked)
}

// LoadText runs the pipeline on text as the new content of the file.
// Empty text changes nothing. On a parse failure the previous document
// is kept and the error returned.
func (s *Store) LoadText(text []byte) error {
	return s.locked(func() error { return s.loadLocked(text) })
}

// SetCompilerDefaults supplies the result of compiler probing. A
// fabricated default is rebuilt with it and finally announced, and a
// document held back before its 3 to 4 migration is loaded again.
func (s *Store) SetCompilerDefaults(d *compiler.Defaults) {
	_ = s.locked(func() error {
		s.compiler = d
		s.compilerPending = false
		switch {
		case s.doc == nil:
		case s.fabricated:
			s.fabricateLocked()
		case s.migrationHeld:
			if err := s.loadLocked(s.text); err != nil {
				s.logger.Debug("loading held document failed", "error", err)
			}
		default:
			s.refreshLocked()
		}
		return nil
	})
}

// EnsureFile writes a default properties file when the workspace has
// none. knownCompilers stays in memory but is not written.
func (s *Store) EnsureFile() error {
	return s.locked(s.ensureFileLocked)
}

func (s *Store) reloadLocked() error {
	data, err := fileutil.ReadFileWithLimit(s.fs, s.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.fabricateLocked()
			return nil
		}
		return errors.Wrapf(err, "reading %s", s.file)
	}
	return s.loadLocked(data)
}

func (s *Store) loadLocked(text []byte) error {
	doc, changed, err := s.prepare(text, s.compilerPending)
	if err != nil {
		if errors.Is(err, properties.ErrEmpty) {
			s.logger.Debug("properties file is empty, keeping previous state", "path", s.file)
			return nil
		}
		s.messenger.Error(fmt.Sprintf(MsgParseFailed, s.file, err))
		s.telemetry.Event(telemetry.EventParseFailure, map[string]string{"error": parseFailureKind(err)}, nil)
		return errors.Wrapf(err, "loading %s", s.file)
	}

	prev := s.currentName
	s.doc = doc
	s.text = slices.Clone(text)
	s.fileExists = true
	s.fabricated = false
	s.migrationHeld = needsMigration(doc) && s.compilerPending
	if s.migrationHeld {
		s.logger.Debug("holding migration until compiler defaults arrive", "path", s.file, "version", doc.Version)
		changed = false
	}
	if changed {
		s.persistLocked()
	}
	s.selectAfterLoad(prev)
	s.refreshLocked()
	return nil
}

// prepare parses text and applies the load-time corrections. changed
// reports whether the corrected document should be written back. With
// holdMigration a known older version is left for a later load.
func (s *Store) prepare(text []byte, holdMigration bool) (*properties.Document, bool, error) {
	doc, err := properties.Parse(text)
	if err != nil {
		return nil, false, err
	}

	changed := false
	for i := range doc.Configurations {
		c := &doc.Configurations[i]
		if c.ConfigurationProvider == nil {
			continue
		}
		if id, ok := s.providers.Normalize(*c.ConfigurationProvider); ok && id != *c.ConfigurationProvider {
			s.logger.Debug("normalized configuration provider", "configuration", c.Name, "from", *c.ConfigurationProvider, "to", id)
			c.ConfigurationProvider = properties.String(id)
			changed = true
		}
	}

	if doc.Env.StripReserved() {
		s.logger.Debug("removed reserved env entries", "path", s.file)
		changed = true
	}

	if doc.Version != properties.CurrentVersion && !(holdMigration && needsMigration(doc)) {
		migrated, res := migrate.Migrate(doc, migrate.Context{
			Platform: s.platform,
			Settings: s.settings,
			Compiler: s.compiler,
		})
		if res.UnknownVersion {
			s.messenger.Warn(MsgUnknownVersion)
			s.telemetry.Event(telemetry.EventUnknownVersion,
				map[string]string{"version": strconv.Itoa(res.FromVersion)}, nil)
		}
		s.logger.Debug("migrated properties", "from", res.FromVersion, "to", res.ToVersion, "steps", res.Applied())
		doc = migrated
		changed = changed || res.Changed()
	}

	// Marshal never writes knownCompilers, so stripping alone is no reason
	// to rewrite the file.
	doc.StripKnownCompilers()
	return doc, changed, nil
}

// needsMigration reports whether doc has a known version older than the
// current one.
func needsMigration(doc *properties.Document) bool {
	return doc.Version >= 0 && doc.Version < properties.CurrentVersion
}

func parseFailureKind(err error) string {
	var pe *properties.ParseError
	switch {
	case errors.Is(err, properties.ErrNoConfigurations):
		return "no configurations"
	case errors.As(err, &pe):
		return "malformed"
	default:
		return "unknown"
	}
}

// persistLocked writes the corrected document. A failure leaves the
// correction in memory only.
func (s *Store) persistLocked() bool {
	data, err := properties.Marshal(s.doc)
	if err == nil {
		err = s.writeLocked(data)
	}
	if err != nil {
		s.logger.Warn("writing corrected properties failed", "path", s.file, "error", err)
		s.messenger.Warn(fmt.Sprintf(MsgWriteFailed, s.file))
		return false
	}
	s.text = data
	return true
}

func (s *Store) writeLocked(data []byte) error {
	if err := paths.EnsureDir(s.fs, filepath.Dir(s.file), 0); err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(s.fs, s.file, data, 0o644)
}

func (s *Store) platformDefaults() resolve.PlatformDefaults {
	return resolve.PlatformDefaults{
		Platform:      s.platform,
		Settings:      s.settings,
		Compiler:      s.compiler,
		VcpkgIncludes: s.vcpkgIncludes,
	}
}

func (s *Store) fabricateLocked() {
	prev := s.currentName
	s.doc = resolve.DefaultDocument(s.platformDefaults())
	s.text = nil
	s.fileExists = false
	s.fabricated = true
	s.migrationHeld = false
	s.selectAfterLoad(prev)
	s.refreshLocked()
}

func (s *Store) ensureFileLocked() error {
	if fileutil.Exists(s.fs, s.file) {
		return nil
	}

	doc := s.doc
	if doc == nil || !s.fabricated {
		doc = resolve.DefaultDocument(s.platformDefaults())
	}
	data, err := properties.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding default properties")
	}
	if err := s.writeLocked(data); err != nil {
		return errors.Wrapf(err, "creating %s", s.file)
	}
	s.logger.Info("created properties file", "path", s.file)

	prev := s.currentName
	s.doc = doc
	s.text = data
	s.fileExists = true
	s.fabricated = false
	s.migrationHeld = false
	s.selectAfterLoad(prev)
	s.refreshLocked()
	return nil
}

// selectAfterLoad keeps the previously selected name when the new
// document still has it. On the first load the remembered selection is
// used. Otherwise the host's configuration, or the last one, is chosen.
func (s *Store) selectAfterLoad(prevName string) {
	idx := -1
	if prevName != "" {
		idx = s.doc.IndexOf(prevName)
	} else if e, ok := s.selection.Load(s.workspaceRoot); ok {
		if e.Name != "" {
			idx = s.doc.IndexOf(e.Name)
		}
		if idx < 0 && e.Index >= 0 && e.Index < len(s.doc.Configurations) {
			idx = e.Index
		}
	}
	if idx < 0 {
		idx = s.platform.PreferredIndex(s.doc.Names())
	}
	s.setCurrentLocked(idx)
}

func (s *Store) setCurrentLocked(idx int) {
	name := s.doc.Configurations[idx].Name
	if idx == s.current && name == s.currentName {
		return
	}
	s.current = idx
	s.currentName = name
	if err := s.selection.Save(s.workspaceRoot, state.Entry{Index: idx, Name: name}); err != nil {
		s.logger.Debug("saving selection failed", "error", err)
	}
	s.emit(Event{Kind: SelectionChanged, Index: idx, Name: name})
}

func (s *Store) inputs() resolve.Inputs {
	return resolve.Inputs{
		Settings:      s.settings,
		WorkspaceRoot: s.workspaceRoot,
		LookupEnv:     s.lookupEnv,
		Home:          s.platform.Home,
	}
}

func (s *Store) validatorLocked(in resolve.Inputs) *validator.Validator {
	opts := []validator.Option{
		validator.WithResolver(resolve.NewResolver(s.doc, in)),
		validator.WithVcpkgRoot(s.vcpkgRoot),
	}
	if s.compiler != nil && s.compiler.RootFS != "" {
		opts = append(opts, validator.WithRootFS(s.compiler.RootFS))
	}
	return validator.New(s.fs, s.platform, s.workspaceRoot, opts...)
}

// refreshLocked runs default-merge, validation and squiggles on the
// loaded document and queues the resulting events.
func (s *Store) refreshLocked() {
	in := s.inputs()
	s.resolved = resolve.Merge(s.doc, in)

	v := s.validatorLocked(in)
	s.errs = make([]validator.ConfigurationErrors, len(s.resolved))
	for i, c := range s.resolved {
		s.errs[i] = v.ValidateConfiguration(c)
	}

	s.trackCompileCommandsLocked(v)
	s.squigglesLocked(v)

	if (s.fabricated && s.compilerPending) || s.migrationHeld {
		s.logger.Debug("holding configurations-changed until compiler defaults arrive")
		return
	}
	s.emit(Event{
		Kind:           ConfigurationsChanged,
		Configurations: slices.Clone(s.resolved),
		Index:          s.current,
		Name:           s.currentName,
	})
}

// trackCompileCommandsLocked announces configurations whose compile
// commands path changed and points the watcher at the current set.
func (s *Store) trackCompileCommandsLocked(v *validator.Validator) {
	next := make(map[string]string, len(s.resolved))
	var watched []string
	for i, c := range s.resolved {
		if _, dup := next[c.Name]; dup {
			continue
		}
		path := v.ResolvePath(c.CompileCommands, s.platform.IsWindows())
		next[c.Name] = path
		if path != "" {
			watched = append(watched, path)
		}
		if prev := s.compileCommands[c.Name]; prev != path {
			s.emit(Event{Kind: CompileCommandsChanged, Index: i, Name: c.Name, CompileCommands: path})
		}
	}
	s.compileCommands = next

	if s.watcher != nil && !s.closed {
		s.watcher.Set(append(watched, s.file))
	}
}

func (s *Store) squigglesEnabled() bool {
	if s.doc.EnableConfigurationSquiggles != nil {
		return *s.doc.EnableConfigurationSquiggles
	}
	return s.settings.SquigglesEnabled()
}

// squigglesLocked maps findings onto the text. A failed pass keeps the
// previous diagnostics.
func (s *Store) squigglesLocked(v *validator.Validator) {
	if !s.fileExists {
		s.diagSink.Set(s.file, nil)
		s.diags, s.diagErr = nil, errors.ErrNoPropertiesFile
		return
	}
	diags, err := s.engine.Run(squiggle.Input{
		Document:  s.file,
		Text:      string(s.text),
		Index:     s.current,
		Validator: v,
		Resolved:  s.resolvedTextLocked(),
		Enabled:   s.squigglesEnabled(),
	})
	if err != nil {
		s.logger.Debug("squiggle pass aborted", "error", err)
		s.diagErr = err
		return
	}
	s.diags, s.diagErr = diags, nil
}

// resolvedTextLocked merges the current configuration as written in the
// text, which may be ahead of the loaded document while it is edited.
func (s *Store) resolvedTextLocked() *resolve.Configuration {
	doc, err := properties.Parse(s.text)
	if err != nil {
		return nil
	}
	configs := resolve.Merge(doc, s.inputs())
	if s.current < 0 || s.current >= len(configs) {
		return nil
	}
	return &configs[s.current]
}
