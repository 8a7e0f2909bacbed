package main

import (
	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/server/endpoints"
)

var serverURL string

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	registry := api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{}) {
		registry.Register(ep)
	}

	apiCmd := registry.BuildCommands(getServerURL)
	apiCmd.Long += `

Examples:
  casebundle api health                          # Check server health
  casebundle api cases list                      # List cases
  casebundle api cases compile <id> --name trial # Compile a case bundle
  casebundle api bundles compile -m bundle.yaml  # Compile a manifest
  casebundle api settings set pagination.position --value bottom-center`

	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)
	rootCmd.AddCommand(apiCmd)
}
