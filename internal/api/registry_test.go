package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
)

type stubEndpoint struct {
	method, path string
	session      bool
	command      string
}

func (e *stubEndpoint) Route() (string, string, http.HandlerFunc) {
	return e.method, e.path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Session", r.Header.Get("X-Session"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (e *stubEndpoint) RequiresSession() bool { return e.session }

func (e *stubEndpoint) Command(getClient func() *Client) *cobra.Command {
	if e.command == "" {
		return nil
	}
	return &cobra.Command{
		Use: e.command,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Print(getClient().BaseURL())
			return nil
		},
	}
}

func TestRegistry_RegisterRoutes(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubEndpoint{method: "GET", path: "/open"})
	r.Register(&stubEndpoint{method: "POST", path: "/form", session: true})

	wrapped := 0
	middleware := func(next http.HandlerFunc) http.HandlerFunc {
		wrapped++
		return func(w http.ResponseWriter, req *http.Request) {
			req.Header.Set("X-Session", "yes")
			next(w, req)
		}
	}

	mux := http.NewServeMux()
	r.RegisterRoutes(mux, middleware)
	if wrapped != 1 {
		t.Errorf("middleware wrapped %d handlers, want 1", wrapped)
	}

	tests := []struct {
		method, path string
		wantStatus   int
		wantSession  string
	}{
		{"GET", "/open", http.StatusNoContent, ""},
		{"POST", "/form", http.StatusNoContent, "yes"},
		{"GET", "/form", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("X-Session"); got != tt.wantSession {
				t.Errorf("X-Session = %q, want %q", got, tt.wantSession)
			}
		})
	}
}

func TestRegistry_Commands(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubEndpoint{method: "GET", path: "/a", command: "alpha"})
	r.Register(&stubEndpoint{method: "GET", path: "/b"})
	r.Register(&stubEndpoint{method: "GET", path: "/c", command: "gamma"})

	calls := 0
	getClient := func() *Client {
		calls++
		return NewClient("http://backend:9000/")
	}

	cmds := r.Commands(getClient)
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	if cmds[0].Use != "alpha" || cmds[1].Use != "gamma" {
		t.Errorf("commands = %q, %q", cmds[0].Use, cmds[1].Use)
	}
	if calls != 0 {
		t.Errorf("getClient called %d times while building commands, want 0", calls)
	}
	if len(r.Endpoints()) != 3 {
		t.Errorf("Endpoints() = %d, want 3", len(r.Endpoints()))
	}
}
