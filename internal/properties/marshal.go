package properties

import (
	"bytes"
	"encoding/json"
)

// Marshal renders doc with four-space indentation, the layout editors
// produce for this file. knownCompilers is derived data and is left out;
// doc itself is not modified.
func Marshal(doc *Document) ([]byte, error) {
	out := *doc
	out.Configurations = make([]Configuration, len(doc.Configurations))
	for i, c := range doc.Configurations {
		c.KnownCompilers = nil
		out.Configurations[i] = c
	}

	raw, err := encode(out)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StripKnownCompilers clears knownCompilers from every configuration and
// reports whether any were present.
func (d *Document) StripKnownCompilers() bool {
	stripped := false
	for i := range d.Configurations {
		if d.Configurations[i].KnownCompilers != nil {
			d.Configurations[i].KnownCompilers = nil
			stripped = true
		}
	}
	return stripped
}
