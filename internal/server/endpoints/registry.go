package endpoints

import (
	"github.com/jackzampolin/casebundle/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// ConfigFile and CaseDB are reported by /status.
	ConfigFile string
	CaseDB     string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{ConfigFile: cfg.ConfigFile, CaseDB: cfg.CaseDB},

		// Bundle endpoints
		&PreviewBundleEndpoint{},
		&CompileBundleEndpoint{},
		&ValidateBundleEndpoint{},

		// Case endpoints
		&ListCasesEndpoint{},
		&CaseDocumentsEndpoint{},
		&CompileCaseEndpoint{},

		// Document endpoints
		&InspectDocumentEndpoint{},

		// Settings endpoints
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},
		&UpdateSettingEndpoint{},
		&ResetSettingEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}
