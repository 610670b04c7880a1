package squiggle

import (
	"regexp"
	"strings"

	"github.com/thoreinstein/ccprops/internal/errors"
)

// Window errors. Both abort a run without touching the diagnostics.
var (
	// ErrConfigNotFound means the configuration's opening brace and name
	// could not be found in the text.
	ErrConfigNotFound = errors.New("configuration name is not the first key of its block")
	// ErrAmbiguousBoundary means a following "name" key was found but
	// does not start the next configuration block.
	ErrAmbiguousBoundary = errors.New("next configuration name is not the first key of its block")
)

var (
	nextName = regexp.MustCompile(`"name"\s*:\s*"`)
	boundary = regexp.MustCompile(`\s*\}\s*,\s*\{\s*"name"`)
)

// Window is the part of the text that belongs to one configuration. It
// starts right after the colon of the "name" key and ends before the
// closing brace of the block, or at the end of text for the last block.
type Window struct {
	// Start is the offset of Text within the full document.
	Start int
	Text  string
}

// Abs converts a window-relative span into document offsets.
func (w Window) Abs(s Span) Span {
	return Span{Start: s.Start + w.Start, End: s.End + w.Start}
}

// FindWindow locates the block of the first configuration called name.
// name is the value as decoded from the escaped text, so it matches the
// raw text except for double quotes.
func FindWindow(text, name string) (Window, error) {
	literal := regexp.QuoteMeta(strings.ReplaceAll(name, `"`, `\"`))
	open := regexp.MustCompile(`\{\s*"name"\s*:\s*"` + literal + `"`)

	loc := open.FindStringIndex(text)
	if loc == nil {
		return Window{}, errors.Wrapf(ErrConfigNotFound, "configuration %q", name)
	}

	start := loc[0] + 1
	start += strings.IndexByte(text[start:], ':') + 1
	w := Window{Start: start, Text: text[start:]}

	if next := nextName.FindStringIndex(w.Text); next != nil {
		cut := w.Text[:next[0]+len(`"name"`)]
		b := boundary.FindStringIndex(cut)
		if b == nil {
			return Window{}, errors.Wrapf(ErrAmbiguousBoundary, "after configuration %q", name)
		}
		w.Text = cut[:b[0]]
	}
	return w, nil
}
