package properties

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

var (
	documentKeys      = keySet("configurations", "env", "version", "enableConfigurationSquiggles")
	configurationKeys = keySet("name", "includePath", "defines", "macFrameworkPath", "windowsSdkVersion",
		"forcedInclude", "compileCommands", "compilerPath", "cStandard", "cppStandard", "intelliSenseMode",
		"configurationProvider", "knownCompilers", "browse")
	browseKeys = keySet("path", "limitSymbolsToIncludedHeaders", "databaseFilename")
)

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// UnmarshalJSON decodes d and captures unknown keys.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	known, extra, err := splitKeys(data, documentKeys)
	if err != nil {
		return err
	}
	var p plain
	if err := json.Unmarshal(known, &p); err != nil {
		return err
	}
	*d = Document(p)
	d.Extra = extra
	return nil
}

// MarshalJSON encodes d followed by its unknown keys.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return withExtras(plain(d), d.Extra)
}

// UnmarshalJSON decodes c and captures unknown keys.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	type plain Configuration
	known, extra, err := splitKeys(data, configurationKeys)
	if err != nil {
		return err
	}
	var p plain
	if err := json.Unmarshal(known, &p); err != nil {
		return err
	}
	*c = Configuration(p)
	c.Extra = extra
	return nil
}

// MarshalJSON encodes c followed by its unknown keys.
func (c Configuration) MarshalJSON() ([]byte, error) {
	type plain Configuration
	return withExtras(plain(c), c.Extra)
}

// UnmarshalJSON decodes b and captures unknown keys.
func (b *Browse) UnmarshalJSON(data []byte) error {
	type plain Browse
	known, extra, err := splitKeys(data, browseKeys)
	if err != nil {
		return err
	}
	var p plain
	if err := json.Unmarshal(known, &p); err != nil {
		return err
	}
	*b = Browse(p)
	b.Extra = extra
	return nil
}

// MarshalJSON encodes b followed by its unknown keys.
func (b Browse) MarshalJSON() ([]byte, error) {
	type plain Browse
	return withExtras(plain(b), b.Extra)
}

// splitKeys separates the known keys of an object from the rest. Keys
// match with exact case only, so "IncludePath" is an unknown key.
func splitKeys(data []byte, known map[string]bool) ([]byte, map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, nil, err
	}
	fields := make(map[string]json.RawMessage, len(all))
	var extra map[string]json.RawMessage
	for k, v := range all {
		if known[k] {
			fields[k] = v
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return nil, nil, err
		}
		if extra == nil {
			extra = map[string]json.RawMessage{}
		}
		extra[k] = buf.Bytes()
	}
	if all == nil {
		return []byte("null"), nil, nil
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return nil, nil, err
	}
	return out, extra, nil
}

// withExtras encodes v, an object, and appends extra keys in sorted order.
func withExtras(v any, extra map[string]json.RawMessage) ([]byte, error) {
	obj, err := encode(v)
	if err != nil || len(extra) == 0 {
		return obj, err
	}

	var buf bytes.Buffer
	buf.Write(obj[:len(obj)-1])
	needComma := len(bytes.TrimSpace(obj[1:len(obj)-1])) > 0
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		if needComma {
			buf.WriteByte(',')
		}
		needComma = true
		key, err := encode(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode is json.Marshal without HTML escaping, so paths containing
// '<', '>' or '&' are written as typed.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
