package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "object", text: `{"name": "string", "age": "number"}`, want: `{"name":"string","age":"number"}`},
		{name: "default text", text: DefaultText, want: `{"name":"string","age":"number"}`},
		{name: "nested", text: "{\n \"a\": {\"b\": [1, 2]}\n}", want: `{"a":{"b":[1,2]}}`},
		{name: "scalar is still json", text: `"just a string"`, want: `"just a string"`},
		{name: "unterminated object", text: `{invalid`, wantErr: true},
		{name: "empty", text: ``, wantErr: true},
		{name: "trailing garbage", text: `{} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error", tt.text)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("expected *ParseError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.text, err)
			}
			if got := string(doc.Raw()); got != tt.want {
				t.Errorf("Raw() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseError_UsesParserMessage(t *testing.T) {
	_, err := Parse("{invalid")
	if err == nil {
		t.Fatal("expected error")
	}

	var v any
	want := json.Unmarshal([]byte("{invalid"), &v).Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want parser message %q", err.Error(), want)
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Offset() < 0 {
		t.Errorf("Offset() = %d, want a position", parseErr.Offset())
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	doc := MustParse(`{ "name" : "string" }`)

	out, err := json.Marshal(struct {
		Schema Document `json:"schema"`
	}{Schema: doc})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != `{"schema":{"name":"string"}}` {
		t.Errorf("unexpected output: %s", out)
	}

	out, err = json.Marshal(Document{})
	if err != nil {
		t.Fatalf("Marshal zero error = %v", err)
	}
	if string(out) != "null" {
		t.Errorf("zero document = %s, want null", out)
	}
}

func TestDocument_Indent(t *testing.T) {
	doc := MustParse(`{"name":"Jane","age":30}`)
	want := "{\n  \"name\": \"Jane\",\n  \"age\": 30\n}"
	if got := doc.Indent(); got != want {
		t.Errorf("Indent() = %q, want %q", got, want)
	}
	if (Document{}).Indent() != "" {
		t.Error("zero document should indent to empty string")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(r.(string), "invalid built-in schema") {
			t.Errorf("unexpected panic: %v", r)
		}
	}()
	MustParse("{")
}

func TestDocument_Value(t *testing.T) {
	got := MustParse(`{"tags":"array","age":"number"}`).Value()
	want := map[string]any{"tags": "array", "age": "number"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Value() mismatch (-want +got):\n%s", diff)
	}
	if (Document{}).Value() != nil {
		t.Error("zero document Value() should be nil")
	}
}
