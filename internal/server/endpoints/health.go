package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

var _ api.Endpoint = (*HealthEndpoint)(nil)

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresSession() bool { return false }

// handler godoc
//
//	@Summary		Server health
//	@Description	Reports OK while the web server is responding
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(_ func() *api.Client) *cobra.Command {
	return nil
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

var _ api.Endpoint = (*ReadyEndpoint)(nil)

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresSession() bool { return false }

// handler godoc
//
//	@Summary		Readiness
//	@Description	Reports OK only when the extraction backend answers its providers endpoint
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	client := svcctx.ClientFrom(r.Context())
	if client == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Backend: "not_initialized"})
		return
	}

	if _, err := client.GetProviders(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "degraded",
			Backend: "unreachable",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Backend: "ok"})
}

func (e *ReadyEndpoint) Command(getClient func() *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check that the extraction backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getClient()
			if _, err := client.GetProviders(cmd.Context()); err != nil {
				return fmt.Errorf("backend %s not ready: %w", client.BaseURL(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backend: ok (%s)\n", client.BaseURL())
			return nil
		},
	}
}
