package compiler

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// PathAndArgs is a compilerPath value split into the executable and the
// arguments that follow it.
type PathAndArgs struct {
	// Path is the executable, without surrounding quotes.
	Path string
	// Name is the file name of Path. It is empty when the input could
	// not be split into a recognizable compiler.
	Name string
	// Args are the trailing arguments.
	Args []string
}

// Split separates a compilerPath value into executable and arguments.
//
// A path ending in cl.exe is taken whole. A leading double quote marks
// the executable explicitly. Otherwise the whole value is used when it
// names an existing file; failing that, spaces are tried from right to
// left until the text before one names an existing file. When nothing
// exists the whole value is returned as the path with no arguments.
func Split(fs afero.Fs, input string) PathAndArgs {
	res := PathAndArgs{Path: input}
	if input == "" {
		return res
	}

	switch {
	case input == "cl.exe" || strings.HasSuffix(input, `\cl.exe`) || strings.HasSuffix(input, "/cl.exe"):
		res.Name = baseName(input)

	case strings.HasPrefix(input, `"`):
		end := strings.Index(input[1:], `"`)
		if end < 0 {
			return res
		}
		end++
		res.Path = input[1:end]
		res.Name = baseName(res.Path)
		res.Args = splitArgs(input[end+1:])

	case fileutil.IsFile(fs, input):
		res.Name = baseName(input)

	default:
		for cut := strings.LastIndex(input, " "); cut > 0; cut = strings.LastIndex(input[:cut], " ") {
			if candidate := input[:cut]; fileutil.IsFile(fs, candidate) {
				res.Path = candidate
				res.Name = baseName(candidate)
				res.Args = splitArgs(input[cut+1:])
				return res
			}
		}
		res.Name = baseName(input)
	}
	return res
}

// splitArgs splits on whitespace outside double quotes. Quotes are removed.
func splitArgs(s string) []string {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case (r == ' ' || r == '\t') && !quoted:
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if pending {
		args = append(args, cur.String())
	}
	return args
}
