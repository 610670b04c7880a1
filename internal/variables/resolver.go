package variables

import (
	"regexp"
	"strings"

	"github.com/thoreinstein/ccprops/internal/properties"
)

// placeholder matches ${name}, ${env:name}, ${env.name}, ${config:name}
// and ${workspaceFolder:name}. An unprefixed name is an env lookup.
var placeholder = regexp.MustCompile(`\$\{(?:(env|config|workspaceFolder)[.:])?(.*?)\}`)

// maxPasses bounds substitution when values keep producing new text.
const maxPasses = 32

// Resolver substitutes placeholders in property values.
type Resolver struct {
	// Env is the document env extended with workspaceFolderBasename.
	Env properties.Environment

	// LookupEnv is consulted when Env has no entry. Usually os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// LookupConfig serves ${config:name}.
	LookupConfig func(string) (string, bool)

	// Home replaces a leading "~".
	Home string
}

// Resolve substitutes every known placeholder in input, repeating until
// the text stops changing. Unknown placeholders, including
// ${workspaceFolder} and ${default}, are left as written.
func (r *Resolver) Resolve(input string) string {
	if input == "" {
		return ""
	}

	seen := map[string]bool{}
	out := input
	for pass := 0; pass < maxPasses && !seen[out]; pass++ {
		seen[out] = true
		out = placeholder.ReplaceAllStringFunc(out, func(match string) string {
			return r.substitute(input, match)
		})
	}

	if strings.HasPrefix(out, "~") && r.Home != "" {
		out = r.Home + out[1:]
	}
	return out
}

func (r *Resolver) substitute(input, match string) string {
	m := placeholder.FindStringSubmatch(match)
	kind, name := m[1], m[2]

	switch kind {
	case "", "env":
		if v, ok := r.Env[name]; ok {
			if !v.IsList() {
				return v.String()
			}
			// A list only substitutes when it is the whole value.
			if input == match {
				return v.String()
			}
		}
		if r.LookupEnv != nil {
			if v, ok := r.LookupEnv(name); ok {
				return v
			}
		}
	case "config":
		if r.LookupConfig != nil {
			if v, ok := r.LookupConfig(name); ok {
				return v
			}
		}
	}
	return match
}

// ResolveScalar returns def when value is absent or ${default}, otherwise
// the substituted value. The result is nil only when both are absent.
func (r *Resolver) ResolveScalar(value, def *string) *string {
	if value == nil || *value == properties.DefaultPlaceholder {
		value = def
	}
	if value == nil {
		return nil
	}
	s := r.Resolve(*value)
	return &s
}

// ResolveBool returns def when value is absent.
func ResolveBool(value, def *bool) *bool {
	if value == nil {
		return def
	}
	return value
}

// ResolveList expands ${default} entries in place with def, substitutes
// every entry and splits the results on ";", dropping empty pieces. An
// absent list resolves def instead. Order is preserved and no
// placeholder-only entry survives for an empty default.
func (r *Resolver) ResolveList(values, def []string) []string {
	if values == nil {
		if def == nil {
			return nil
		}
		values, def = def, nil
	}

	out := []string{}
	for _, entry := range ExpandDefaults(values, def) {
		for _, part := range strings.Split(r.Resolve(entry), ";") {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ExpandDefaults replaces each ${default} entry with def.
func ExpandDefaults(values, def []string) []string {
	out := make([]string, 0, len(values)+len(def))
	for _, v := range values {
		if v == properties.DefaultPlaceholder {
			out = append(out, def...)
			continue
		}
		out = append(out, v)
	}
	return out
}
