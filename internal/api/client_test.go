package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jackzampolin/langextract/internal/schema"
)

func TestExtract_Success(t *testing.T) {
	var got map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/extract" {
			t.Errorf("expected /api/extract, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"extractions":[{"data":{"name":"Jane","age":30},"confidence":0.9,"source":"chunk-1"}],"metadata":{"model":"gpt-4o","chunks":1,"processing_time":1.5}}`))
	}))
	defer server.Close()

	temp := 0.2
	maxTokens := 512
	client := NewClient(server.URL)
	resp, err := client.Extract(context.Background(), ExtractionRequest{
		Text:        "Jane is 30 years old.",
		Schema:      schema.MustParse(`{"name":"string","age":"number"}`),
		Model:       "gpt-4o",
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	wantReq := map[string]any{
		"text":        "Jane is 30 years old.",
		"schema":      map[string]any{"name": "string", "age": "number"},
		"model":       "gpt-4o",
		"temperature": 0.2,
		"max_tokens":  float64(512),
	}
	if diff := cmp.Diff(wantReq, got); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}

	confidence := 0.9
	chunks := 1
	processing := 1.5
	want := &ExtractionResponse{
		Extractions: []Extraction{{
			Data:       map[string]any{"name": "Jane", "age": json.Number("30")},
			Confidence: &confidence,
			Source:     "chunk-1",
		}},
		Metadata: &ExtractionMetadata{Model: "gpt-4o", Chunks: &chunks, ProcessingTime: &processing},
	}
	if diff := cmp.Diff(want, resp, cmpopts.IgnoreFields(ExtractionResponse{}, "Raw")); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
	if len(resp.Raw) == 0 {
		t.Error("Raw body not kept")
	}
}

func TestExtractionResponse_KeepsBody(t *testing.T) {
	body := `{"extractions":[{"data":{"name":"Jane","age":30,"id":12345678901234567890}}],"usage":{"tokens":5},"metadata":{"model":"m","provider":"x"}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Extract(context.Background(), ExtractionRequest{Text: "x", Schema: schema.MustParse(`{}`)})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if got := resp.Extractions[0].Data["id"]; got != json.Number("12345678901234567890") {
		t.Errorf("id = %v (%T), want exact json.Number", got, got)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != body {
		t.Errorf("Marshal() =\n%s\nwant\n%s", out, body)
	}

	want := `{
  "extractions": [
    {
      "data": {
        "name": "Jane",
        "age": 30,
        "id": 12345678901234567890
      }
    }
  ],
  "usage": {
    "tokens": 5
  },
  "metadata": {
    "model": "m",
    "provider": "x"
  }
}`
	if got := resp.Indent(); got != want {
		t.Errorf("Indent() =\n%s\nwant\n%s", got, want)
	}

	var yamlOut strings.Builder
	if err := OutputTo(&yamlOut, OutputFormatYAML, resp); err != nil {
		t.Fatalf("OutputTo(yaml) error = %v", err)
	}
	for _, line := range []string{"id: 12345678901234567890", "usage:", "provider: x"} {
		if !strings.Contains(yamlOut.String(), line) {
			t.Errorf("yaml output missing %q:\n%s", line, yamlOut.String())
		}
	}
	if strings.Index(yamlOut.String(), "name: Jane") > strings.Index(yamlOut.String(), "age: 30") {
		t.Errorf("yaml output reordered keys:\n%s", yamlOut.String())
	}
}

func TestExtractionResponse_IndentWithoutBody(t *testing.T) {
	resp := &ExtractionResponse{Extractions: []Extraction{{Data: map[string]any{"k": "v"}}}}
	want := `{
  "extractions": [
    {
      "data": {
        "k": "v"
      }
    }
  ]
}`
	if got := resp.Indent(); got != want {
		t.Errorf("Indent() =\n%s\nwant\n%s", got, want)
	}
}

func TestExtract_OmitsUnsetOptionalFields(t *testing.T) {
	var raw map[string]json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		w.Write([]byte(`{"extractions":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")
	if _, err := client.Extract(context.Background(), ExtractionRequest{
		Text:   "x",
		Schema: schema.MustParse(`{}`),
	}); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for _, key := range []string{"model", "temperature", "max_tokens"} {
		if _, ok := raw[key]; ok {
			t.Errorf("expected %q to be omitted", key)
		}
	}
	if string(raw["schema"]) != "{}" {
		t.Errorf("schema = %s, want {}", raw["schema"])
	}
}

func TestExtract_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"model crashed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Extract(context.Background(), ExtractionRequest{Text: "x", Schema: schema.MustParse(`{}`)})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if err.Error() != "API Error: Internal Server Error" {
		t.Errorf("Error() = %q", err.Error())
	}
	if strings.Contains(err.Error(), "model crashed") {
		t.Error("error body should not be inspected")
	}
}

func TestExtract_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Extract(context.Background(), ExtractionRequest{Text: "x", Schema: schema.MustParse(`{}`)})

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T (%v)", err, err)
	}
	if decodeErr.Op != "extract" {
		t.Errorf("Op = %q, want extract", decodeErr.Op)
	}
}

func TestExtract_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url)
	_, err := client.Extract(context.Background(), ExtractionRequest{Text: "x", Schema: schema.MustParse(`{}`)})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T (%v)", err, err)
	}
	if !strings.HasPrefix(err.Error(), "Network error: extract:") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestExtract_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL)
	_, err := client.Extract(ctx, ExtractionRequest{Text: "x", Schema: schema.MustParse(`{}`)})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestUploadDocument(t *testing.T) {
	t.Run("sends multipart file field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/upload" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("FormFile: %v", err)
			}
			defer file.Close()
			data, _ := io.ReadAll(file)
			if header.Filename != "notes.txt" {
				t.Errorf("filename = %q", header.Filename)
			}
			if string(data) != "hello world" {
				t.Errorf("content = %q", string(data))
			}
			w.Write([]byte(`{"documentId":"doc-1","text":"hello world"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		result, err := client.UploadDocument(context.Background(), "notes.txt", strings.NewReader("hello world"))
		if err != nil {
			t.Fatalf("UploadDocument() error = %v", err)
		}
		if diff := cmp.Diff(&UploadResult{DocumentID: "doc-1", Text: "hello world"}, result); diff != "" {
			t.Errorf("result mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non-2xx uses upload prefix", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.UploadDocument(context.Background(), "big.pdf", strings.NewReader("x"))
		if err == nil || err.Error() != "Upload Error: Request Entity Too Large" {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestGetProviders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/providers" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.ContentLength > 0 {
			t.Errorf("expected no body, got %d bytes", r.ContentLength)
		}
		w.Write([]byte(`[{"id":"openai","name":"OpenAI","models":["gpt-4o","gpt-4o-mini"]},{"id":"ollama","name":"Ollama","models":[]}]`))
	}))
	defer server.Close()

	providers, err := NewClient(server.URL).GetProviders(context.Background())
	if err != nil {
		t.Fatalf("GetProviders() error = %v", err)
	}

	want := []Provider{
		{ID: "openai", Name: "OpenAI", Models: []string{"gpt-4o", "gpt-4o-mini"}},
		{ID: "ollama", Name: "Ollama", Models: []string{}},
	}
	if diff := cmp.Diff(want, providers); diff != "" {
		t.Errorf("providers mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_OneRoundTripPerCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	for i := 0; i < 3; i++ {
		client.GetProviders(context.Background())
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("expected 3 requests (no retries), got %d", n)
	}
}

func TestNew_Defaults(t *testing.T) {
	client := New(ClientConfig{})
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}
	if client.httpClient.Timeout != 0 {
		t.Errorf("expected no timeout by default, got %s", client.httpClient.Timeout)
	}
}

func TestWaitReady(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if err := NewClient(server.URL).WaitReady(context.Background(), 5*time.Second); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("expected 2 attempts, got %d", n)
	}
}
