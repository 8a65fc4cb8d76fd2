package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"
	"github.com/swaggo/swag"

	"github.com/jackzampolin/langextract/internal/api"

	// Registers the generated OpenAPI document with swag.
	_ "github.com/jackzampolin/langextract/docs/swagger"
)

// SwaggerEndpoint serves the OpenAPI spec.
type SwaggerEndpoint struct{}

var _ api.Endpoint = (*SwaggerEndpoint)(nil)

func (e *SwaggerEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/swagger.json", e.handler
}

func (e *SwaggerEndpoint) RequiresSession() bool { return false }

func (e *SwaggerEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "swagger.json not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write([]byte(doc))
}

func (e *SwaggerEndpoint) Command(_ func() *api.Client) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:    "swagger",
		Short:  "Print the OpenAPI spec of the web server",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := swag.ReadDoc()
			if err != nil {
				return err
			}
			if outputFile != "" {
				return writeFile(outputFile, []byte(doc))
			}
			_, err = cmd.OutOrStdout().Write([]byte(doc + "\n"))
			return err
		},
	}
	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "Output file path")
	return cmd
}

// SwaggerUIEndpoint serves Swagger UI.
type SwaggerUIEndpoint struct{}

var _ api.Endpoint = (*SwaggerUIEndpoint)(nil)

func (e *SwaggerUIEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/swagger", e.handler
}

func (e *SwaggerUIEndpoint) RequiresSession() bool { return false }

func (e *SwaggerUIEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	html := `<!DOCTYPE html>
<html>
<head>
  <title>LangExtract Web API</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '/swagger.json',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}

func (e *SwaggerUIEndpoint) Command(_ func() *api.Client) *cobra.Command {
	return nil
}
