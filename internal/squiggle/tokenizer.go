package squiggle

import "strings"

// Kind classifies a token.
type Kind int

const (
	// KindString is a double quoted string.
	KindString Kind = iota
	// KindPunct is one of { } [ ] : ,
	KindPunct
	// KindLiteral is a number, true, false or null.
	KindLiteral
)

// Token is a lexical element of the window with its byte offsets.
type Token struct {
	Kind Kind
	// Text is the content between the quotes for strings, exactly as
	// written, and the raw text otherwise.
	Text string
	// Start is the offset of the first byte, the opening quote for
	// strings. End is the offset just past the last byte.
	Start int
	End   int
	// Key is set for strings followed by a colon.
	Key bool
	// Depth is the object and array nesting level the token sits at.
	Depth int
}

// Span is a half-open byte range.
type Span struct {
	Start int
	End   int
}

// Contains reports whether off lies within the span, end included.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off <= s.End
}

// Tokenize splits text into tokens. Comments and whitespace are skipped.
// An unterminated string runs to the end of text.
func Tokenize(text string) []Token {
	var (
		tokens []Token
		depth  int
	)
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
				i += nl + 1
			} else {
				i = len(text)
			}

		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			if end := strings.Index(text[i+2:], "*/"); end >= 0 {
				i += end + 4
			} else {
				i = len(text)
			}

		case c == '"':
			j := i + 1
			for j < len(text) && text[j] != '"' {
				if text[j] == '\\' {
					j++
				}
				j++
			}
			end := min(j+1, len(text))
			content := text[i+1 : min(j, len(text))]
			tokens = append(tokens, Token{Kind: KindString, Text: content, Start: i, End: end, Depth: depth})
			i = end

		case strings.IndexByte("{}[]:,", c) >= 0:
			if c == '}' || c == ']' {
				depth--
			}
			tokens = append(tokens, Token{Kind: KindPunct, Text: string(c), Start: i, End: i + 1, Depth: depth})
			if c == '{' || c == '[' {
				depth++
			}
			i++

		default:
			j := i
			for j < len(text) && strings.IndexByte(" \t\r\n{}[]:,\"/", text[j]) < 0 {
				j++
			}
			if j == i {
				j++
			}
			tokens = append(tokens, Token{Kind: KindLiteral, Text: text[i:j], Start: i, End: j, Depth: depth})
			i = j
		}
	}

	for k := range tokens {
		if tokens[k].Kind == KindString && k+1 < len(tokens) && tokens[k+1].Text == ":" && tokens[k+1].Kind == KindPunct {
			tokens[k].Key = true
		}
	}
	return tokens
}

// Field locates key among the top-level keys of tokens. It returns the
// span of the value and the span from the key to the end of the value.
// Array and object values span up to their closing bracket.
func Field(tokens []Token, key string) (value, field Span, ok bool) {
	for i, tok := range tokens {
		if !tok.Key || tok.Depth != 0 || tok.Text != key || i+2 >= len(tokens) {
			continue
		}
		v := tokens[i+2]
		value = Span{Start: v.Start, End: v.End}
		if v.Kind == KindPunct && (v.Text == "[" || v.Text == "{") {
			value.End = closing(tokens[i+2:])
		}
		return value, Span{Start: tok.Start, End: value.End}, true
	}
	return Span{}, Span{}, false
}

// closing returns the end offset of the bracket that closes tokens[0].
func closing(tokens []Token) int {
	open := tokens[0].Depth
	for _, tok := range tokens[1:] {
		if tok.Kind == KindPunct && (tok.Text == "]" || tok.Text == "}") && tok.Depth == open {
			return tok.End
		}
	}
	return tokens[len(tokens)-1].End
}

// Occurrences finds the string values that contain raw as a whole
// element: at the start of the string or right after a ";", and at the
// end of the string or right before a ";". Each match yields the span of
// its enclosing quoted string. Keys and text after the end of the
// configuration block are never matched.
func Occurrences(tokens []Token, raw string) []Span {
	if raw == "" {
		return nil
	}
	needle := strings.ReplaceAll(raw, `"`, `\"`)

	var out []Span
	for _, tok := range tokens {
		if tok.Kind != KindString || tok.Key || tok.Depth < 0 {
			continue
		}
		if elementIndex(tok.Text, needle) >= 0 {
			out = append(out, Span{Start: tok.Start, End: tok.End})
		}
	}
	return out
}

// elementIndex returns the first index of needle in s that is bounded by
// the string edges or ";" on both sides, or -1.
func elementIndex(s, needle string) int {
	for from := 0; from <= len(s)-len(needle); {
		idx := strings.Index(s[from:], needle)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(needle)
		before := idx == 0 || s[idx-1] == ';'
		after := end == len(s) || s[end] == ';'
		if before && after {
			return idx
		}
		from = idx + 1
	}
	return -1
}
