// Package web provides the embedded page template and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// StaticFS returns the embedded static assets. The returned FS has "static"
// as the root, so files are accessed directly (e.g., "app.css").
func StaticFS() (fs.FS, error) {
	return fs.Sub(assets, "static")
}

// PageTemplate parses the extraction page template.
func PageTemplate() (*template.Template, error) {
	return template.New("index.html").ParseFS(assets, "templates/index.html")
}
