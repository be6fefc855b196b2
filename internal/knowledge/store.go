package knowledge

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Entry is the attribute map of one celestial object.
type Entry map[string]string

// Store is a read-only catalogue of celestial objects keyed by lowercased name.
type Store struct {
	entries map[string]Entry
}

// New builds a store by merging sources in order; later sources win per field.
func New(sources ...map[string]Entry) *Store {
	s := &Store{entries: make(map[string]Entry)}
	for _, src := range sources {
		for key, entry := range src {
			merged, ok := s.entries[key]
			if !ok {
				merged = make(Entry, len(entry))
				s.entries[key] = merged
			}
			for k, v := range entry {
				merged[k] = v
			}
		}
	}
	return s
}

// Load reads the JSON catalogue and the CSV table and merges them, CSV fields
// overriding JSON fields. A source that fails to load is logged and left empty.
func Load(jsonPath, csvPath string, logger zerolog.Logger) *Store {
	log := logger.With().Str("component", "knowledge").Logger()

	jsonEntries, err := LoadJSON(jsonPath)
	if err != nil {
		log.Warn().Err(err).Str("path", jsonPath).Msg("astronomy data unavailable")
	}
	csvEntries, err := LoadCSV(csvPath, log)
	if err != nil {
		log.Warn().Err(err).Str("path", csvPath).Msg("space objects data unavailable")
	}

	s := New(jsonEntries, csvEntries)
	log.Info().Int("objects", s.Len()).Msg("knowledge store loaded")
	return s
}

// LoadJSON reads a JSON array of objects. Every object needs a "name"; other
// values are kept in their textual form.
func LoadJSON(path string) (map[string]Entry, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read astronomy data: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode astronomy data: %w", err)
	}

	entries := make(map[string]Entry, len(objects))
	for _, obj := range objects {
		entry := make(Entry, len(obj))
		for k, v := range obj {
			entry[k] = stringify(v)
		}
		key := normalizeName(entry["name"])
		if key == "" {
			continue
		}
		entries[key] = entry
	}
	return entries, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(raw)
	}
}

// LoadCSV reads a table whose header row has a "name" column. Rows shorter
// than the header are skipped.
func LoadCSV(path string, logger zerolog.Logger) (map[string]Entry, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open space objects data: %w", err)
	}
	defer f.Close()
	return readCSV(f, logger)
}

func readCSV(src io.Reader, logger zerolog.Logger) (map[string]Entry, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read space objects header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	entries := make(map[string]Entry)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			logger.Warn().Err(err).Int("line", parseErr.Line).Msg("skipping malformed space objects row")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read space objects data: %w", err)
		}
		if len(record) < len(header) {
			line, _ := r.FieldPos(0)
			logger.Warn().Int("line", line).Int("fields", len(record)).Msg("skipping short space objects row")
			continue
		}

		entry := make(Entry, len(header))
		for i, h := range header {
			entry[h] = strings.TrimSpace(record[i])
		}
		key := normalizeName(entry["name"])
		if key == "" {
			continue
		}
		entries[key] = entry
	}
	return entries, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns a copy of the attributes for name, matched case-insensitively.
func (s *Store) Lookup(name string) (map[string]string, bool) {
	entry, ok := s.entries[normalizeName(name)]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(entry))
	for k, v := range entry {
		out[k] = v
	}
	return out, true
}

// Names lists the keys of all objects in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for key := range s.entries {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// ByCategory lists display names of objects whose "category" or "type"
// attribute names category. Singular and plural forms match each other.
func (s *Store) ByCategory(category string) []string {
	want := singular(category)
	if want == "" {
		return nil
	}
	var names []string
	for key, entry := range s.entries {
		if singular(entry["category"]) == want || singular(entry["type"]) == want {
			name := entry["name"]
			if name == "" {
				name = key
			}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func singular(word string) string {
	w := normalizeName(word)
	switch {
	case strings.HasSuffix(w, "ies"):
		return strings.TrimSuffix(w, "ies") + "y"
	case strings.HasSuffix(w, "ae"):
		return strings.TrimSuffix(w, "e")
	case strings.HasSuffix(w, "s"):
		return strings.TrimSuffix(w, "s")
	}
	return w
}

// Len is the number of objects.
func (s *Store) Len() int {
	return len(s.entries)
}
