package endpoints

import (
	"bytes"
	"html/template"
	"net/http"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/form"
	"github.com/jackzampolin/langextract/internal/presets"
	"github.com/jackzampolin/langextract/internal/svcctx"
	"github.com/jackzampolin/langextract/web"
)

// PageData is what the page template renders.
type PageData struct {
	Snapshot form.Snapshot
	Presets  []presets.Preset
}

var pageTemplate = sync.OnceValues(web.PageTemplate)

// PageEndpoint renders the extraction form at GET /.
type PageEndpoint struct{}

var _ api.Endpoint = (*PageEndpoint)(nil)

func (e *PageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{$}", e.handler
}

func (e *PageEndpoint) RequiresSession() bool { return true }

func (e *PageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	tmpl, err := pageTemplate()
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to parse page template", "error", err)
		http.Error(w, "page not available", http.StatusInternalServerError)
		return
	}

	data := PageData{
		Snapshot: sess.Form.Snapshot(),
		Presets:  svcctx.PresetsFrom(r.Context()).List(),
	}
	if err := renderPage(w, tmpl, data); err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to render page", "error", err)
		http.Error(w, "page not available", http.StatusInternalServerError)
	}
}

// renderPage executes into a buffer so a template error never leaves a
// half-written page.
func renderPage(w http.ResponseWriter, tmpl *template.Template, data PageData) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, err := buf.WriteTo(w)
	return err
}

func (e *PageEndpoint) Command(_ func() *api.Client) *cobra.Command {
	return nil // Browser only
}
