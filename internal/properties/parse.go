package properties

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/jsonc"
)

// Sentinel errors returned by Parse.
var (
	// ErrEmpty is returned for empty or whitespace-only text. Editors
	// produce it transiently while creating the file; callers treat it as
	// "no change" rather than a failure.
	ErrEmpty = errors.New("properties text is empty")

	// ErrNoConfigurations is returned when the configurations array is
	// missing or empty.
	ErrNoConfigurations = errors.New("invalid configuration file: there must be at least one configuration present in the array")
)

// ParseError reports malformed JSON with a 1-based position.
type ParseError struct {
	Offset int64
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes properties text. Comments and trailing commas are accepted.
func Parse(text []byte) (*Document, error) {
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, ErrEmpty
	}

	// jsonc.ToJSON keeps every byte offset, so decoder offsets map back to text.
	data := jsonc.ToJSON(text)

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(text, err)
	}
	if len(doc.Configurations) == 0 {
		return nil, ErrNoConfigurations
	}
	return &doc, nil
}

func newParseError(text []byte, err error) error {
	pe := &ParseError{Err: err}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		pe.Offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		pe.Offset = typeErr.Offset
	default:
		return pe
	}
	pe.Line, pe.Column = LineCol(text, int(pe.Offset))
	return pe
}

// LineCol converts a byte offset into a 1-based line and column.
// Offsets outside text are clamped.
func LineCol(text []byte, offset int) (line, col int) {
	offset = max(0, min(offset, len(text)))
	line, col = 1, 1
	for _, b := range text[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
