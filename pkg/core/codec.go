package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec converts the whole note collection to and from a single blob.
// Record order is significant and must survive a round-trip.
type Codec interface {
	// Name identifies the format (e.g. "json").
	Name() string
	// Ext is the file extension conventionally used for the format.
	Ext() string
	Encode(notes []Note) ([]byte, error)
	// Decode parses a blob holding a sequence of records. If the blob is not
	// a sequence it returns nil notes and an error. Otherwise it returns one
	// note per record; fields that fail to decode keep their zero value and
	// are reported as *FieldError values joined into the error.
	Decode(data []byte) ([]Note, error)
}

// FieldError reports a stored record field that could not be decoded.
// An empty Field means the record itself is not an object.
type FieldError struct {
	Index int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d: field %q: %v", e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

type noteField struct {
	name   string
	target any
}

// fields lists the persisted fields of n in their canonical order.
func (n *Note) fields() []noteField {
	return []noteField{
		{"id", &n.ID},
		{"title", &n.Title},
		{"content", &n.Content},
		{"updatedAt", &n.UpdatedAt},
	}
}

// CodecFor returns the codec registered under name ("json" or "yaml").
// An empty name selects JSON.
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: codec %q", ErrUnsupported, name)
	}
}

// JSONCodec stores the collection as a JSON array of note objects.
// It is the canonical persisted form.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Ext() string  { return ".json" }

func (JSONCodec) Encode(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return json.Marshal(notes)
}

func (JSONCodec) Decode(data []byte) ([]Note, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	notes := make([]Note, len(records))
	var errs []error
	for i, raw := range records {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			errs = append(errs, &FieldError{Index: i, Err: err})
			continue
		}
		for _, f := range notes[i].fields() {
			value, ok := lookupJSON(obj, f.name)
			if !ok {
				continue
			}
			if err := json.Unmarshal(value, f.target); err != nil {
				errs = append(errs, &FieldError{Index: i, Field: f.name, Err: err})
			}
		}
	}
	return notes, errors.Join(errs...)
}

// lookupJSON matches keys the way encoding/json does: exact first, then
// case-insensitive.
func lookupJSON(obj map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// YAMLCodec stores the collection as a YAML sequence, for hand-edited data files.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }
func (YAMLCodec) Ext() string  { return ".yaml" }

func (YAMLCodec) Encode(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return yaml.Marshal(notes)
}

func (YAMLCodec) Decode(data []byte) ([]Note, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	// An empty document or an explicit null is an empty collection.
	if len(doc.Content) == 0 {
		return []Note{}, nil
	}
	seq := doc.Content[0]
	if seq.Kind == yaml.ScalarNode && seq.Tag == "!!null" {
		return []Note{}, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("invalid yaml: line %d: expected a sequence of notes", seq.Line)
	}

	notes := make([]Note, len(seq.Content))
	var errs []error
	for i, record := range seq.Content {
		if record.Kind != yaml.MappingNode {
			errs = append(errs, &FieldError{Index: i, Err: fmt.Errorf("line %d: not a mapping", record.Line)})
			continue
		}
		fields := notes[i].fields()
		for j := 0; j+1 < len(record.Content); j += 2 {
			key, value := record.Content[j], record.Content[j+1]
			for _, f := range fields {
				if key.Value != f.name {
					continue
				}
				if err := value.Decode(f.target); err != nil {
					errs = append(errs, &FieldError{Index: i, Field: f.name, Err: err})
				}
			}
		}
	}
	return notes, errors.Join(errs...)
}
