// Package testutil provides a fake extraction backend for tests.
package testutil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Canned responses of a default Backend.
const (
	ExtractResponse = `{"extractions":[{"data":{"name":"Jane","age":30}}],"metadata":{"model":"test-model"}}`
	UploadResponse  = `{"documentId":"doc-1","text":"uploaded text"}`
	ProvidersList   = `[{"id":"openai","name":"OpenAI","models":["gpt-4o"]}]`

	// FailText makes /api/extract answer 500 Internal Server Error.
	FailText = "fail"
)

// Backend is an in-process extraction service serving /api/extract,
// /api/upload and /api/providers. It records what it receives.
type Backend struct {
	URL string

	server *httptest.Server

	mu           sync.Mutex
	extractCalls int
	uploadCalls  int
	lastExtract  map[string]any
	lastUpload   string
}

// NewBackend starts a Backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/extract", b.handleExtract)
	mux.HandleFunc("POST /api/upload", b.handleUpload)
	mux.HandleFunc("GET /api/providers", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, ProvidersList)
	})

	b.server = httptest.NewServer(mux)
	b.URL = b.server.URL
	t.Cleanup(b.server.Close)
	return b
}

func (b *Backend) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.extractCalls++
	b.lastExtract = req
	b.mu.Unlock()

	if req["text"] == FailText {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeBody(w, ExtractResponse)
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file.Close()

	b.mu.Lock()
	b.uploadCalls++
	b.lastUpload = header.Filename
	b.mu.Unlock()

	writeBody(w, UploadResponse)
}

func writeBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, body)
}

// Close stops the backend so later calls fail with a transport error.
func (b *Backend) Close() {
	b.server.Close()
}

// ExtractCalls returns how many extraction requests arrived.
func (b *Backend) ExtractCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.extractCalls
}

// UploadCalls returns how many uploads arrived.
func (b *Backend) UploadCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploadCalls
}

// LastExtract returns the decoded body of the last extraction request.
func (b *Backend) LastExtract() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastExtract
}

// LastUpload returns the filename of the last upload.
func (b *Backend) LastUpload() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUpload
}

// ResetCalls zeroes the call counters.
func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.extractCalls = 0
	b.uploadCalls = 0
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
