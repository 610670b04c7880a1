package squiggle

import "strings"

// Escape doubles backslashes so that raw Windows paths parse as JSON and
// decode to exactly the text written in the file. An odd run of
// backslashes before a double quote keeps its last backslash single, as
// that one escapes the quote.
func Escape(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(text)/8)
	for i := 0; i < len(text); {
		if text[i] != '\\' {
			sb.WriteByte(text[i])
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == '\\' {
			j++
		}
		n := j - i
		if j < len(text) && text[j] == '"' && n%2 == 1 {
			sb.WriteString(strings.Repeat(`\`, 2*(n-1)+1))
		} else {
			sb.WriteString(strings.Repeat(`\`, 2*n))
		}
		i = j
	}
	return sb.String()
}
