package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/config"
	"github.com/jackzampolin/casebundle/internal/home"
	"github.com/jackzampolin/casebundle/internal/server"
)

var (
	serveHost string
	servePort string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the casebundle server",
	Long: `Start the casebundle HTTP server.

The server opens the case database and the settings store in the home
directory and closes them on shutdown (Ctrl+C or SIGTERM). Edits to the
config file and setting overrides apply without a restart.

The server provides:
  - /health        - Basic server health check
  - /ready         - Readiness check (case database and settings store)
  - /status        - Paths and effective pagination defaults
  - /api/...       - Bundles, cases, documents and settings
  - /swagger       - API documentation

Examples:
  casebundle serve                    # Start on default port 8080
  casebundle serve --port 3000        # Start on custom port
  casebundle serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}

		path := cfgFile
		if path == "" && h.ConfigExists() {
			path = h.ConfigPath()
		}
		mgr, err := config.NewManager(path)
		if err != nil {
			return err
		}
		if used := mgr.ConfigFile(); used != "" {
			logger.Info("watching config file", "path", used)
			mgr.WatchConfig()
		}

		// Create server
		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			Home:          h,
			ConfigManager: mgr,
			CaseDB:        serveDB,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "Case database (default: case_db or ~/.casebundle/cases.db)")

	rootCmd.AddCommand(serveCmd)
}
