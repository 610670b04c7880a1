package squiggle

import (
	"maps"
	"slices"
	"sync"

	"github.com/thoreinstein/ccprops/internal/properties"
	"github.com/thoreinstein/ccprops/internal/validator"
)

// Diagnostic is a finding anchored to document offsets.
type Diagnostic struct {
	Start    int                `json:"start"`
	End      int                `json:"end"`
	Message  string             `json:"message"`
	Severity validator.Severity `json:"severity"`
	Category Category           `json:"category"`
}

// Position is a 1-based line and column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range converts the offsets of d into positions within text.
func (d Diagnostic) Range(text string) (start, end Position) {
	b := []byte(text)
	start.Line, start.Column = properties.LineCol(b, d.Start)
	end.Line, end.Column = properties.LineCol(b, d.End)
	return start, end
}

// Sink receives the diagnostic set of a document. Each call replaces
// the previous set; an empty set clears it.
type Sink interface {
	Set(document string, diags []Diagnostic)
}

// MemorySink keeps the latest set per document. It is safe for
// concurrent use.
type MemorySink struct {
	mu   sync.Mutex
	sets map[string][]Diagnostic
	// Updates counts calls to Set.
	updates int
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{sets: map[string][]Diagnostic{}}
}

// Set implements Sink.
func (s *MemorySink) Set(document string, diags []Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if len(diags) == 0 {
		delete(s.sets, document)
		return
	}
	s.sets[document] = slices.Clone(diags)
}

// Get returns the current set for document.
func (s *MemorySink) Get(document string) []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sets[document])
}

// Documents lists the documents that currently have diagnostics.
func (s *MemorySink) Documents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.sets))
}

// Updates returns how many times Set was called.
func (s *MemorySink) Updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}
