// Package schema holds the extraction schema as an opaque JSON value.
//
// The extraction service owns the meaning of a schema. This package only
// guarantees that a Document is syntactically valid JSON.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultText is the schema shown in a fresh form.
const DefaultText = "{\n  \"name\": \"string\",\n  \"age\": \"number\"\n}"

// ParseError is returned when schema text is not valid JSON.
// Error returns the JSON parser's own message.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Offset returns the byte offset of a syntax error, or -1 if unknown.
func (e *ParseError) Offset() int64 {
	var syntaxErr *json.SyntaxError
	if errors.As(e.Err, &syntaxErr) {
		return syntaxErr.Offset
	}
	return -1
}

// Document is a validated JSON value. The zero value is empty and
// marshals as null.
type Document struct {
	raw json.RawMessage
}

// Parse validates text as JSON and returns it as a compact Document.
func Parse(text string) (Document, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return Document{}, &ParseError{Err: err}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return Document{}, &ParseError{Err: err}
	}
	return Document{raw: buf.Bytes()}, nil
}

// MustParse is like Parse but panics on invalid input.
// Only use it for schemas compiled into the binary.
func MustParse(text string) Document {
	doc, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("schema: invalid built-in schema: %v", err))
	}
	return doc
}

// IsZero reports whether the document is empty.
func (d Document) IsZero() bool {
	return len(d.raw) == 0
}

// Raw returns the compact JSON bytes.
func (d Document) Raw() json.RawMessage {
	return d.raw
}

// Indent returns the document pretty-printed with two-space indentation.
func (d Document) Indent() string {
	if d.IsZero() {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, d.raw, "", "  "); err != nil {
		return string(d.raw)
	}
	return buf.String()
}

// Value decodes the document into generic JSON values, or nil when empty.
func (d Document) Value() any {
	if d.IsZero() {
		return nil
	}
	var v any
	if err := json.Unmarshal(d.raw, &v); err != nil {
		return nil
	}
	return v
}

// MarshalJSON writes the document verbatim.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return d.raw, nil
}

// UnmarshalJSON accepts any JSON value.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Parse(string(data))
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
