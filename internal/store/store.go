package store

import (
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/afero"

	"github.com/thoreinstein/ccprops/internal/compiler"
	"github.com/thoreinstein/ccprops/internal/config"
	"github.com/thoreinstein/ccprops/internal/paths"
	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
	"github.com/thoreinstein/ccprops/internal/provider"
	"github.com/thoreinstein/ccprops/internal/resolve"
	"github.com/thoreinstein/ccprops/internal/squiggle"
	"github.com/thoreinstein/ccprops/internal/state"
	"github.com/thoreinstein/ccprops/internal/telemetry"
	"github.com/thoreinstein/ccprops/internal/validator"
	"github.com/thoreinstein/ccprops/internal/watch"
)

// Store holds the properties document of a workspace and everything
// derived from it.
type Store struct {
	fs            afero.Fs
	workspaceRoot string
	file          string
	platform      platform.Descriptor
	settings      *config.Settings
	selection     state.Selection
	providers     *provider.Registry
	messenger     Messenger
	telemetry     telemetry.Sink
	diagSink      squiggle.Sink
	engine        *squiggle.Engine
	logger        *slog.Logger
	lookupEnv     func(string) (string, bool)
	vcpkgRoot     string
	vcpkgIncludes []string
	watchFiles    bool

	mu              sync.Mutex
	compiler        *compiler.Defaults
	compilerPending bool
	// migrationHeld marks a loaded document whose 3 to 4 step waits for
	// compiler defaults. It stays unmigrated and unannounced.
	migrationHeld   bool
	doc             *properties.Document
	text            []byte
	fileExists      bool
	fabricated      bool
	current         int
	currentName     string
	resolved        []resolve.Configuration
	errs            []validator.ConfigurationErrors
	diags           []squiggle.Diagnostic
	diagErr         error
	compileCommands map[string]string

	documentOpen        bool
	pendingExternalEdit bool

	watcher   *watch.Watcher
	observers map[int]Observer
	nextID    int
	queue     []Event
	closed    bool
}

// Option configures a Store.
type Option func(*Store)

// WithPropertiesFile overrides the file location, which defaults to
// .vscode/c_cpp_properties.json under the workspace root.
func WithPropertiesFile(path string) Option {
	return func(s *Store) { s.file = path }
}

// WithPlatform sets the host the document is evaluated for.
func WithPlatform(p platform.Descriptor) Option {
	return func(s *Store) { s.platform = p }
}

// WithSettings sets the external defaults.
func WithSettings(settings *config.Settings) Option {
	return func(s *Store) {
		if settings != nil {
			s.settings = settings
		}
	}
}

// WithSelection sets where the current configuration is remembered.
func WithSelection(sel state.Selection) Option {
	return func(s *Store) {
		if sel != nil {
			s.selection = sel
		}
	}
}

// WithProviders sets the registry used to normalize provider ids.
func WithProviders(r *provider.Registry) Option {
	return func(s *Store) {
		if r != nil {
			s.providers = r
		}
	}
}

// WithMessenger sets where user-visible messages go.
func WithMessenger(m Messenger) Option {
	return func(s *Store) {
		if m != nil {
			s.messenger = m
		}
	}
}

// WithTelemetry sets the telemetry sink.
func WithTelemetry(t telemetry.Sink) Option {
	return func(s *Store) {
		if t != nil {
			s.telemetry = t
		}
	}
}

// WithDiagnostics sets the sink receiving squiggles.
func WithDiagnostics(sink squiggle.Sink) Option {
	return func(s *Store) {
		if sink != nil {
			s.diagSink = sink
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLookupEnv sets the process environment lookup used by ${env:...}.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(s *Store) { s.lookupEnv = fn }
}

// WithVcpkg sets the vcpkg installed root and the include directories
// added to fabricated configurations.
func WithVcpkg(root string, includes []string) Option {
	return func(s *Store) {
		s.vcpkgRoot = root
		s.vcpkgIncludes = includes
	}
}

// WithCompilerDefaults sets compiler defaults known up front.
func WithCompilerDefaults(d *compiler.Defaults) Option {
	return func(s *Store) {
		s.compiler = d
		s.compilerPending = false
	}
}

// WithCompilerPending marks compiler defaults as still being probed.
// Until SetCompilerDefaults is called a fabricated default document does
// not announce itself.
func WithCompilerPending() Option {
	return func(s *Store) { s.compilerPending = true }
}

// WithWatch enables fsnotify watching of the properties file and of
// every compile commands file.
func WithWatch(enabled bool) Option {
	return func(s *Store) { s.watchFiles = enabled }
}

// New creates a store for the workspace at root. Call Open to load.
func New(fs afero.Fs, root string, opts ...Option) *Store {
	s := &Store{
		fs:              fs,
		workspaceRoot:   root,
		file:            paths.PropertiesFile(root),
		platform:        platform.Host(),
		settings:        config.Empty(),
		selection:       state.NewMemoryStore(),
		providers:       provider.DefaultRegistry(),
		telemetry:       telemetry.Nop(),
		diagSink:        squiggle.NewMemorySink(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		current:         -1,
		compileCommands: map[string]string{},
		observers:       map[int]Observer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.messenger == nil {
		s.messenger = LogMessenger{Logger: s.logger}
	}
	s.file = filepath.Clean(s.file)
	s.engine = squiggle.New(s.diagSink, squiggle.WithTelemetry(s.telemetry), squiggle.WithLogger(s.logger))
	if s.watchFiles {
		s.watcher = watch.New(s.onFileEvent, watch.WithLogger(s.logger))
	}
	return s
}

// Subscribe registers obs and returns a function that removes it.
func (s *Store) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = obs
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Close stops file watching. The store keeps answering queries.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Path is the properties file location.
func (s *Store) Path() string { return s.file }

// WorkspaceRoot is the folder ${workspaceFolder} expands to.
func (s *Store) WorkspaceRoot() string { return s.workspaceRoot }

// Platform is the host the store evaluates for.
func (s *Store) Platform() platform.Descriptor { return s.platform }

// Current returns the selected resolved configuration.
func (s *Store) Current() (resolve.Configuration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < 0 || s.current >= len(s.resolved) {
		return resolve.Configuration{}, false
	}
	return s.resolved[s.current], true
}

// CurrentIndex returns the selected index, or -1 before Open.
func (s *Store) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Configurations returns every resolved configuration.
func (s *Store) Configurations() []resolve.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.resolved)
}

// Document returns a copy of the loaded document, with placeholders
// left as written.
func (s *Store) Document() *properties.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Errors returns the validation findings, one entry per configuration.
func (s *Store) Errors() []validator.ConfigurationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.errs)
}

// Diagnostics returns the squiggles of the last successful pass and the
// error of the last pass, if it failed.
func (s *Store) Diagnostics() ([]squiggle.Diagnostic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.diags), s.diagErr
}

// Text returns the text squiggles were computed on.
func (s *Store) Text() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.text)
}

// Fabricated reports whether the document is a default not backed by a file.
func (s *Store) Fabricated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fabricated
}

// Watching returns the files being watched, empty when watching is off.
func (s *Store) Watching() []string {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Watching()
}

// locked runs fn under the lock and then delivers the events it queued.
func (s *Store) locked(fn func() error) error {
	s.mu.Lock()
	err := fn()
	events := s.queue
	s.queue = nil
	ids := slices.Sorted(maps.Keys(s.observers))
	observers := make([]Observer, len(ids))
	for i, id := range ids {
		observers[i] = s.observers[id]
	}
	s.mu.Unlock()

	for _, ev := range events {
		for _, obs := range observers {
			obs(ev)
		}
	}
	return err
}

func (s *Store) emit(ev Event) {
	s.queue = append(s.queue, ev)
}
