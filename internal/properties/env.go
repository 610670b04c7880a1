package properties

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Environment is the document level "env" mapping.
type Environment map[string]EnvValue

// EnvValue is either a single string or a list of strings.
type EnvValue struct {
	str    string
	list   []string
	isList bool
}

// StringValue returns a scalar env value.
func StringValue(s string) EnvValue { return EnvValue{str: s} }

// ListValue returns a list env value.
func ListValue(items ...string) EnvValue {
	if items == nil {
		items = []string{}
	}
	return EnvValue{list: items, isList: true}
}

// IsList reports whether v holds a list.
func (v EnvValue) IsList() bool { return v.isList }

// String returns the scalar value, or the list joined with ";".
func (v EnvValue) String() string {
	if v.isList {
		return strings.Join(v.list, ";")
	}
	return v.str
}

// List returns the list items, or nil for a scalar.
func (v EnvValue) List() []string {
	return slices.Clone(v.list)
}

// UnmarshalJSON accepts a string or an array of strings.
func (v *EnvValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Newf("env value must be a string or an array of strings, got %s", data)
	}
	*v = ListValue(list...)
	return nil
}

// MarshalJSON writes the value in its original shape.
func (v EnvValue) MarshalJSON() ([]byte, error) {
	if v.isList {
		return json.Marshal(v.list)
	}
	return json.Marshal(v.str)
}

// StripReserved deletes the reserved names and reports whether any were present.
func (e Environment) StripReserved() bool {
	removed := false
	for _, name := range ReservedEnvNames {
		if _, ok := e[name]; ok {
			delete(e, name)
			removed = true
		}
	}
	return removed
}

// Clone returns a copy of e.
func (e Environment) Clone() Environment {
	if e == nil {
		return nil
	}
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = EnvValue{str: v.str, list: slices.Clone(v.list), isList: v.isList}
	}
	return out
}

// Keys returns the variable names in sorted order.
func (e Environment) Keys() []string {
	return slices.Sorted(maps.Keys(e))
}
