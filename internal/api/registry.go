package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Registry holds all registered endpoints.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry creates a new endpoint registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an endpoint to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes registers all endpoint HTTP routes with the given mux.
// sessionMiddleware wraps handlers that act on a form session.
func (r *Registry) RegisterRoutes(mux *http.ServeMux, sessionMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	for _, ep := range r.endpoints {
		method, path, handler := ep.Route()
		if ep.RequiresSession() {
			handler = sessionMiddleware(handler)
		}
		mux.HandleFunc(method+" "+path, handler)
	}
}

// Commands returns the CLI commands of all registered endpoints.
// Browser-only endpoints are skipped.
func (r *Registry) Commands(getClient func() *Client) []*cobra.Command {
	var cmds []*cobra.Command
	for _, ep := range r.endpoints {
		if cmd := ep.Command(getClient); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Endpoints returns all registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
