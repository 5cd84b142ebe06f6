package covers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cover-sync/core/fsutil"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// InfoRecord is the per-song side data kept next to the covers.
type InfoRecord struct {
	Artist    string `json:"artist"`
	TitleKana string `json:"title_kana"`
}

// UpsertResult describes what Upsert did to a key.
type UpsertResult int

const (
	InfoUnchanged UpsertResult = iota
	InfoUpdated
	InfoAdded
)

func (r UpsertResult) String() string {
	switch r {
	case InfoAdded:
		return "added"
	case InfoUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// InfoStore is the insertion-ordered info mapping backed by a JSON file.
// Records are only ever added or updated.
type InfoStore struct {
	path    string
	records *orderedmap.OrderedMap[string, InfoRecord]
}

// LoadInfo reads and decodes the info file at path.
func LoadInfo(path string) (*InfoStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read info file: %w", err)
	}
	return DecodeInfo(path, data)
}

// DecodeInfo decodes info JSON, keeping the key order of data.
func DecodeInfo(path string, data []byte) (*InfoStore, error) {
	records := orderedmap.New[string, InfoRecord]()
	if err := json.Unmarshal(data, records); err != nil {
		return nil, fmt.Errorf("failed to decode info file %s: %w", path, err)
	}
	records, err := unescapeKeys(records)
	if err != nil {
		return nil, fmt.Errorf("failed to decode info file %s: %w", path, err)
	}
	return &InfoStore{path: path, records: records}, nil
}

// unescapeKeys resolves JSON escape sequences in keys; the ordered map keeps them raw.
func unescapeKeys(records *orderedmap.OrderedMap[string, InfoRecord]) (*orderedmap.OrderedMap[string, InfoRecord], error) {
	escaped := false
	for pair := records.Oldest(); pair != nil; pair = pair.Next() {
		if strings.Contains(pair.Key, `\`) {
			escaped = true
			break
		}
	}
	if !escaped {
		return records, nil
	}

	out := orderedmap.New[string, InfoRecord](records.Len())
	for pair := records.Oldest(); pair != nil; pair = pair.Next() {
		var key string
		if err := json.Unmarshal([]byte(`"`+pair.Key+`"`), &key); err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", pair.Key, err)
		}
		out.Set(key, pair.Value)
	}
	return out, nil
}

// Upsert overwrites an existing record in place or appends a new one.
func (s *InfoStore) Upsert(key string, record InfoRecord) UpsertResult {
	prev, existed := s.records.Get(key)
	s.records.Set(key, record)
	switch {
	case !existed:
		return InfoAdded
	case prev != record:
		return InfoUpdated
	default:
		return InfoUnchanged
	}
}

// Get returns the record for key.
func (s *InfoStore) Get(key string) (InfoRecord, bool) {
	return s.records.Get(key)
}

// Keys returns all keys in insertion order.
func (s *InfoStore) Keys() []string {
	keys := make([]string, 0, s.records.Len())
	for pair := s.records.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of records.
func (s *InfoStore) Len() int {
	return s.records.Len()
}

// Encode renders the mapping as two-space indented JSON in insertion order,
// with no trailing newline. &, < and > are written as-is.
func (s *InfoStore) Encode() ([]byte, error) {
	if s.records.Len() == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for pair := s.records.Oldest(); pair != nil; pair = pair.Next() {
		key, err := encodeJSON(pair.Key, "")
		if err != nil {
			return nil, fmt.Errorf("failed to encode info key %q: %w", pair.Key, err)
		}
		value, err := encodeJSON(pair.Value, "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode info record %q: %w", pair.Key, err)
		}

		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if pair.Next() != nil {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeJSON encodes v without HTML escaping. A non-empty prefix turns on
// two-space indentation, with prefix starting every line after the first.
func encodeJSON(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if prefix != "" {
		enc.SetIndent(prefix, "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Save atomically rewrites the whole info file.
func (s *InfoStore) Save() error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write info file: %w", err)
	}
	return nil
}
