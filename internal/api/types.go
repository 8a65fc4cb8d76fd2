package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/langextract/internal/schema"
)

// ExtractionRequest is the body of POST /api/extract.
type ExtractionRequest struct {
	Text        string          `json:"text" yaml:"text"`
	Schema      schema.Document `json:"schema" yaml:"-"`
	Model       string          `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature *float64        `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   *int            `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// Extraction is a single extracted record.
type Extraction struct {
	Data       map[string]any `json:"data" yaml:"data"`
	Confidence *float64       `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Source     string         `json:"source,omitempty" yaml:"source,omitempty"`
}

// ExtractionMetadata describes how the backend produced the extractions.
type ExtractionMetadata struct {
	Model          string   `json:"model" yaml:"model"`
	Chunks         *int     `json:"chunks,omitempty" yaml:"chunks,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty" yaml:"processing_time,omitempty"`
}

// ExtractionResponse is the decoded body of a successful extraction.
//
// Raw keeps the body exactly as the backend sent it. JSON and YAML output
// and Indent are produced from Raw when it is set, so fields this client
// does not model, large integers and key order all survive. Numbers in Data
// decode as json.Number.
type ExtractionResponse struct {
	Extractions []Extraction        `json:"extractions" yaml:"extractions"`
	Metadata    *ExtractionMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Raw         json.RawMessage     `json:"-" yaml:"-" swaggerignore:"true"`
}

// UnmarshalJSON decodes the typed view and keeps a copy of data in Raw.
func (r *ExtractionResponse) UnmarshalJSON(data []byte) error {
	type plain ExtractionResponse
	var p plain
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*r = ExtractionResponse(p)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns Raw verbatim when set.
func (r *ExtractionResponse) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	type plain ExtractionResponse
	return json.Marshal((*plain)(r))
}

// MarshalYAML renders Raw as block YAML, keeping the backend's key order
// and number literals.
func (r *ExtractionResponse) MarshalYAML() (any, error) {
	type plain ExtractionResponse
	if len(r.Raw) == 0 {
		return (*plain)(r), nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(r.Raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert response to yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return (*plain)(r), nil
	}
	node := doc.Content[0]
	clearStyle(node)
	return node, nil
}

// clearStyle drops the flow and quoting styles JSON input carries so the
// encoder picks block style.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// Indent returns the response as two-space indented JSON.
func (r *ExtractionResponse) Indent() string {
	if len(r.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, r.Raw, "", "  "); err == nil {
			return buf.String()
		}
	}
	type plain ExtractionResponse
	out, err := json.MarshalIndent((*plain)(r), "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

// UploadResult is the decoded body of POST /api/upload.
type UploadResult struct {
	DocumentID string `json:"documentId" yaml:"documentId"`
	Text       string `json:"text" yaml:"text"`
}

// Provider is an extraction backend provider and the models it serves.
type Provider struct {
	ID     string   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Models []string `json:"models" yaml:"models"`
}
