package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/web"
)

// StaticEndpoint serves the embedded stylesheet and script.
type StaticEndpoint struct{}

var _ api.Endpoint = (*StaticEndpoint)(nil)

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/static/{path...}", e.handler
}

func (e *StaticEndpoint) RequiresSession() bool {
	return false
}

func (e *StaticEndpoint) Command(_ func() *api.Client) *cobra.Command {
	return nil // No CLI command for static files
}

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	staticFS, err := web.StaticFS()
	if err != nil {
		http.Error(w, "static assets not available", http.StatusInternalServerError)
		return
	}
	http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))).ServeHTTP(w, r)
}
