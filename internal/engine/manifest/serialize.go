package manifest

import (
	"bytes"
	"encoding/json"
	"errors"

	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Serialize renders m as a compact nested array literal, one [name, fingerprint, paths] triple
// per entry, suitable for direct injection into a script. HTML characters are not escaped,
// empty path lists render as [] and there is no trailing newline.
func Serialize(m domain.Manifest) ([]byte, error) {
	entries := make([][3]any, 0, len(m.Entries))
	for _, e := range m.Entries {
		paths := e.Paths
		if paths == nil {
			paths = []string{}
		}
		entries = append(entries, [3]any{e.Name, e.Fingerprint, paths})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return nil, errors.Join(domain.ErrManifestEncodeFailed, zerr.Wrap(err, "failed to encode manifest"))
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
