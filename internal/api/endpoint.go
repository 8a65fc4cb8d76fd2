package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Endpoint defines both an HTTP route of the web client and the matching CLI
// command. The route acts on a browser session; the command performs the
// same backend call directly from the terminal.
type Endpoint interface {
	// Route returns the HTTP method, path, and handler for this endpoint.
	Route() (method, path string, handler http.HandlerFunc)

	// RequiresSession returns true if the handler needs the caller's form
	// session attached to the request context.
	RequiresSession() bool

	// Command returns a Cobra command that performs this endpoint's backend
	// call, or nil if the endpoint is browser-only.
	// getClient is called at runtime, after flags and config are loaded.
	Command(getClient func() *Client) *cobra.Command
}
