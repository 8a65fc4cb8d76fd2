package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/svcctx"
)

// ProvidersEndpoint handles GET /form/providers.
type ProvidersEndpoint struct{}

var _ api.Endpoint = (*ProvidersEndpoint)(nil)

func (e *ProvidersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/form/providers", e.handler
}

func (e *ProvidersEndpoint) RequiresSession() bool { return false }

// handler godoc
//
//	@Summary		List providers
//	@Description	Providers and models offered by the extraction backend
//	@Tags			form
//	@Produce		json
//	@Success		200	{array}		api.Provider
//	@Failure		502	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/form/providers [get]
func (e *ProvidersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	client := svcctx.ClientFrom(r.Context())
	if client == nil {
		writeError(w, http.StatusServiceUnavailable, "backend client not initialized")
		return
	}

	providers, err := client.GetProviders(r.Context())
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Info("failed to list providers", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if providers == nil {
		providers = []api.Provider{}
	}
	writeJSON(w, http.StatusOK, providers)
}

func (e *ProvidersEndpoint) Command(getClient func() *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the providers and models the backend offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			providers, err := getClient().GetProviders(cmd.Context())
			if err != nil {
				return err
			}
			return api.OutputTo(cmd.OutOrStdout(), api.GetOutputFormat(), providers)
		},
	}
}
