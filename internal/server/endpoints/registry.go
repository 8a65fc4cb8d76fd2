package endpoints

import (
	"fmt"
	"os"

	"github.com/jackzampolin/langextract/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Page
		&PageEndpoint{},

		// Form actions
		&ExtractFormEndpoint{},
		&UploadFormEndpoint{},
		&PresetFormEndpoint{},
		&ResetFormEndpoint{},
		&FormStateEndpoint{},
		&ProvidersEndpoint{},

		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Static files
		&StaticEndpoint{},
	}
}

// NewRegistry returns a registry holding All endpoints.
func NewRegistry() *api.Registry {
	r := api.NewRegistry()
	for _, ep := range All() {
		r.Register(ep)
	}
	return r
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
