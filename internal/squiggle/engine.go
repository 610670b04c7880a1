package squiggle

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/logging"
	"github.com/thoreinstein/ccprops/internal/properties"
	"github.com/thoreinstein/ccprops/internal/resolve"
	"github.com/thoreinstein/ccprops/internal/telemetry"
	"github.com/thoreinstein/ccprops/internal/validator"
	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// MsgCannotFind is the squiggle text for a path that does not exist.
const MsgCannotFind = `Cannot find "%s".`

// ErrIndexOutOfRange is returned when the selected index does not name a
// configuration of the text.
var ErrIndexOutOfRange = errors.ErrIndexOutOfRange

// Input is one squiggle pass.
type Input struct {
	// Document identifies the diagnostic set, usually the file path.
	Document string
	Text     string
	// Index selects the configuration to check.
	Index int
	// Validator resolves and checks paths. Its resolver should carry
	// the document env.
	Validator *validator.Validator
	// Resolved is the merged form of the selected configuration. The mode
	// check reads compilerPath and intelliSenseMode from it, so values
	// coming from ${default} or the settings count. Without it the
	// written values are used.
	Resolved *resolve.Configuration
	// Enabled false clears the diagnostics and does nothing else.
	Enabled bool
}

// Engine computes diagnostics and tracks per-configuration counts.
type Engine struct {
	sink      Sink
	telemetry telemetry.Sink
	logger    *slog.Logger

	mu   sync.Mutex
	prev map[string]Counts
}

// Option configures an Engine.
type Option func(*Engine)

// WithTelemetry sets where count changes are reported.
func WithTelemetry(t telemetry.Sink) Option {
	return func(e *Engine) { e.telemetry = t }
}

// WithLogger sets the logger used for aborted passes.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an Engine writing to sink.
func New(sink Sink, opts ...Option) *Engine {
	e := &Engine{
		sink:      sink,
		telemetry: telemetry.Nop(),
		logger:    slog.Default(),
		prev:      map[string]Counts{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run computes the diagnostics for the selected configuration and
// replaces the sink's set for the document. When the text cannot be
// mapped it returns an error and leaves the previous set in place.
func (e *Engine) Run(in Input) ([]Diagnostic, error) {
	if !in.Enabled {
		e.sink.Set(in.Document, nil)
		return nil, nil
	}

	doc, err := properties.Parse([]byte(Escape(in.Text)))
	if err != nil {
		e.logger.Debug("squiggles skipped", "document", in.Document, "error", err)
		return nil, errors.Wrap(err, "parsing escaped text")
	}
	if in.Index < 0 || in.Index >= len(doc.Configurations) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d of %d", in.Index, len(doc.Configurations))
	}
	cfg := doc.Configurations[in.Index]

	w, err := FindWindow(in.Text, cfg.Name)
	if err != nil {
		e.logger.Debug("squiggles skipped", "document", in.Document, "error", err)
		e.telemetry.Event(telemetry.EventConfigSquiggles, map[string]string{"error": errorKind(err)}, nil)
		return nil, err
	}

	p := newPass(in.Validator, w)
	p.checkMode(cfg, in.Resolved)
	for _, raw := range pathsOfInterest(cfg) {
		p.checkPath(raw, cfg.CompilerPath != nil && raw == *cfg.CompilerPath)
	}

	diags := p.diags
	slices.SortStableFunc(diags, func(a, b Diagnostic) int { return a.Start - b.Start })
	e.sink.Set(in.Document, diags)
	e.report(cfg.Name, Count(diags))
	e.logger.Log(context.Background(), logging.LevelTrace, "squiggle pass",
		"document", in.Document, "configuration", cfg.Name, "diagnostics", len(diags))
	return diags, nil
}

// report sends the categories whose count changed for name.
func (e *Engine) report(name string, cur Counts) {
	e.mu.Lock()
	prev := e.prev[name]
	e.prev[name] = cur
	e.mu.Unlock()

	if changed := Diff(prev, cur); len(changed) > 0 {
		e.telemetry.Event(telemetry.EventConfigSquiggles, nil, changed.Metrics())
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrConfigNotFound):
		return "config name not first"
	case errors.Is(err, ErrAmbiguousBoundary):
		return "next config name not first"
	}
	return err.Error()
}

// pathsOfInterest lists the raw path values of cfg, split on ";" and
// without duplicates, in document field order.
func pathsOfInterest(cfg properties.Configuration) []string {
	var out []string
	add := func(raw string) {
		if raw != "" && raw != properties.DefaultPlaceholder && !slices.Contains(out, raw) {
			out = append(out, raw)
		}
	}
	var browse []string
	if cfg.Browse != nil {
		browse = cfg.Browse.Path
	}
	for _, list := range [][]string{cfg.IncludePath, cfg.MacFrameworkPath, cfg.ForcedInclude, browse} {
		for _, entry := range list {
			for _, part := range strings.Split(entry, ";") {
				add(part)
			}
		}
	}
	add(properties.Deref(cfg.CompileCommands))
	add(properties.Deref(cfg.CompilerPath))
	return out
}

// pass holds the state of one run over a window.
type pass struct {
	v         *validator.Validator
	w         Window
	tokens    []Token
	fileRange []Span
	diags     []Diagnostic
}

func newPass(v *validator.Validator, w Window) *pass {
	p := &pass{v: v, w: w, tokens: Tokenize(w.Text)}
	for _, key := range []string{"forcedInclude", "compileCommands", "compilerPath"} {
		if _, field, ok := Field(p.tokens, key); ok {
			p.fileRange = append(p.fileRange, field)
		}
	}
	return p
}

func (p *pass) add(s Span, cat Category, msg string) {
	abs := p.w.Abs(s)
	p.diags = append(p.diags, Diagnostic{
		Start:    abs.Start,
		End:      abs.End,
		Message:  msg,
		Severity: validator.SeverityWarning,
		Category: cat,
	})
}

func (p *pass) expectsFile(off int) bool {
	return slices.ContainsFunc(p.fileRange, func(s Span) bool { return s.Contains(off) })
}

// checkMode flags an IntelliSense mode that does not fit the compiler.
// Only Windows hosts can have both kinds of compiler, so only they check.
// The squiggle goes on the written intelliSenseMode value.
func (p *pass) checkMode(cfg properties.Configuration, resolved *resolve.Configuration) {
	if !p.v.Platform().IsWindows() {
		return
	}
	value, _, ok := Field(p.tokens, "intelliSenseMode")
	if !ok {
		return
	}
	mode := properties.Deref(cfg.IntelliSenseMode)
	compilerPath := p.v.ResolvePath(properties.Deref(cfg.CompilerPath), true)
	if resolved != nil {
		mode, compilerPath = resolved.IntelliSenseMode, resolved.CompilerPath
	}
	if !p.v.CompilerModeCompatible(compilerPath, mode) {
		p.add(value, CompilerModeMismatch, fmt.Sprintf(validator.MsgIncompatibleMode, mode))
	}
}

// checkPath resolves raw once and classifies each of its occurrences.
func (p *pass) checkPath(raw string, isCompiler bool) {
	windows := p.v.Platform().IsWindows()

	var (
		resolved      string
		found         string
		exists        bool
		missingQuotes bool
	)
	if isCompiler {
		chk := p.v.CheckCompiler(raw)
		if chk.Exempt || chk.Resolved == "" {
			return
		}
		resolved, found, exists, missingQuotes = chk.Resolved, chk.Found, chk.Exists, chk.MissingQuotes
	} else {
		resolved = p.v.ResolvePath(raw, windows)
		if resolved == "" {
			return
		}
		found, exists = p.v.Locate(resolved, false)
	}

	fs := p.v.Fs()
	display := p.v.Platform().NormalizeSeparators(resolved)

	for _, occ := range Occurrences(p.tokens, raw) {
		switch {
		case missingQuotes:
			p.add(occ, CompilerPathMissingQuotes, validator.MsgMissingQuotes)
		case !exists:
			p.add(occ, PathNonExistent, fmt.Sprintf(MsgCannotFind, display))
		case p.expectsFile(occ.Start):
			if !fileutil.IsFile(fs, found) {
				p.add(occ, PathNotAFile, fmt.Sprintf(validator.MsgNotAFile, display))
			}
		default:
			if !fileutil.IsDir(fs, found) {
				p.add(occ, PathNotADirectory, fmt.Sprintf(validator.MsgNotADirectory, display))
			}
		}
	}
}
