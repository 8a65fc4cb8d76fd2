// Package presets provides named example schemas offered by the extraction form.
//
// A small set is built in. Additional presets can be loaded from a YAML file:
//
//	presets:
//	  - name: invoice
//	    description: Invoice header fields
//	    schema:
//	      vendor: string
//	      total: number
//
// The file is checked against an embedded JSON Schema before use, and every
// preset schema must be valid JSON once converted.
package presets

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/langextract/internal/schema"
)

// DefaultName is the preset selected on a fresh form.
const DefaultName = "person"

//go:embed file.schema.json
var fileSchemaJSON []byte

var compileFileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("presets.schema.json", bytes.NewReader(fileSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load presets schema: %w", err)
	}
	return compiler.Compile("presets.schema.json")
})

// Preset is a named example schema.
type Preset struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      schema.Document `json:"schema" yaml:"-"`
}

// Text returns the schema as it is placed in the form's schema field.
func (p Preset) Text() string {
	return p.Schema.Indent()
}

// Set is an ordered collection of presets keyed by name.
type Set struct {
	presets []Preset
	index   map[string]int
}

// NewSet creates a set from presets. Later entries replace earlier ones
// with the same name.
func NewSet(presets ...Preset) *Set {
	s := &Set{index: make(map[string]int)}
	for _, p := range presets {
		s.Add(p)
	}
	return s
}

// Builtin returns the presets shipped with the binary.
func Builtin() *Set {
	return NewSet(
		Preset{
			Name:        DefaultName,
			Description: "Name and age of a person",
			Schema:      schema.MustParse(schema.DefaultText),
		},
		Preset{
			Name:        "contact",
			Description: "Contact details",
			Schema:      schema.MustParse(`{"name":"string","email":"string","phone":"string","company":"string"}`),
		},
		Preset{
			Name:        "event",
			Description: "Event title, date, place and attendees",
			Schema:      schema.MustParse(`{"title":"string","date":"string","location":"string","attendees":"array"}`),
		},
	)
}

// Add inserts p, replacing any preset with the same name in place.
func (s *Set) Add(p Preset) {
	if i, ok := s.index[p.Name]; ok {
		s.presets[i] = p
		return
	}
	s.index[p.Name] = len(s.presets)
	s.presets = append(s.presets, p)
}

// Get returns the preset with the given name.
func (s *Set) Get(name string) (Preset, bool) {
	i, ok := s.index[name]
	if !ok {
		return Preset{}, false
	}
	return s.presets[i], true
}

// List returns the presets in insertion order.
func (s *Set) List() []Preset {
	out := make([]Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Len returns the number of presets.
func (s *Set) Len() int {
	return len(s.presets)
}

// Load returns the built-in presets merged with those in the YAML file at
// path. An empty path returns only the built-ins.
func Load(path string) (*Set, error) {
	set := Builtin()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	loaded, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid presets file %s: %w", path, err)
	}
	for _, p := range loaded {
		set.Add(p)
	}
	return set, nil
}

// fileDoc mirrors the presets file once it has been converted to JSON.
type fileDoc struct {
	Presets []struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Schema      json.RawMessage `json:"schema"`
	} `json:"presets"`
}

// Parse decodes and validates a presets YAML document.
func Parse(data []byte) ([]Preset, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert presets to JSON: %w", err)
	}
	var doc any
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode presets JSON: %w", err)
	}

	validator, err := compileFileSchema()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(doc); err != nil {
		return nil, fmt.Errorf("presets do not match schema: %w", err)
	}

	var file fileDoc
	if err := json.Unmarshal(asJSON, &file); err != nil {
		return nil, fmt.Errorf("failed to decode presets: %w", err)
	}

	presets := make([]Preset, 0, len(file.Presets))
	for _, p := range file.Presets {
		doc, err := schema.Parse(string(p.Schema))
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		presets = append(presets, Preset{
			Name:        p.Name,
			Description: p.Description,
			Schema:      doc,
		})
	}
	return presets, nil
}
