package api

import (
	"bytes"
	"strings"
	"testing"
)

func TestOutputTo(t *testing.T) {
	providers := []Provider{{ID: "openai", Name: "OpenAI", Models: []string{"gpt-4o"}}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, providers); err != nil {
			t.Fatalf("OutputTo() error = %v", err)
		}
		if !strings.Contains(buf.String(), `"id": "openai"`) {
			t.Errorf("unexpected json output:\n%s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, UploadResult{DocumentID: "doc-1", Text: "hi"}); err != nil {
			t.Fatalf("OutputTo() error = %v", err)
		}
		if !strings.Contains(buf.String(), "documentId: doc-1") {
			t.Errorf("unexpected yaml output:\n%s", buf.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := OutputTo(&bytes.Buffer{}, OutputFormat("xml"), providers); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Errorf("expected json, got %s", GetOutputFormat())
	}
	SetOutputFormat("bogus")
	if GetOutputFormat() != DefaultOutput {
		t.Errorf("expected default, got %s", GetOutputFormat())
	}
}
