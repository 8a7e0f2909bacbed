package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	CaseStore string `json:"case_store,omitempty"`
	Settings  string `json:"settings,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Health check
//	@Description	Reports that the HTTP server is up
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Readiness check
//	@Description	Reports whether the settings store and case database are open
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", CaseStore: "ok", Settings: "ok"}

	if svcctx.ConfigStoreFrom(r.Context()) == nil {
		resp.Status = "degraded"
		resp.Settings = "not_initialized"
	}
	if svcctx.CasesFrom(r.Context()) == nil {
		resp.Status = "degraded"
		resp.CaseStore = "not_initialized"
	}

	if resp.Status != "ok" {
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (includes the case database)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:     %s\n", resp.Status)
			fmt.Printf("Case store: %s\n", resp.CaseStore)
			fmt.Printf("Settings:   %s\n", resp.Settings)
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server     string         `json:"server"`
	Home       string         `json:"home,omitempty"`
	ConfigFile string         `json:"config_file,omitempty"`
	OutputDir  string         `json:"output_dir"`
	CaseStore  string         `json:"case_store"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginationInfo summarizes the effective compile defaults.
type PaginationInfo struct {
	Format         string  `json:"format"`
	Position       string  `json:"position"`
	FontSize       float64 `json:"font_size"`
	LateInsertMode string  `json:"late_insert_mode"`
	Bookmarks      bool    `json:"bookmarks"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct {
	// ConfigFile and CaseDB are set by the server since they are not in Services
	ConfigFile string
	CaseDB     string
}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Shows the home directory, output directory, case database and effective pagination defaults
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Server:     "running",
		ConfigFile: e.ConfigFile,
		CaseStore:  "not_initialized",
	}

	if h := svcctx.HomeFrom(r.Context()); h != nil {
		resp.Home = h.Path()
	}
	resp.OutputDir = outputDir(r.Context(), "")

	if svcctx.CasesFrom(r.Context()) != nil {
		resp.CaseStore = e.CaseDB
		if resp.CaseStore == "" {
			resp.CaseStore = "open"
		}
	}

	if live := svcctx.ConfigFrom(r.Context()); live != nil {
		cfg := live.Get()
		resp.Pagination = PaginationInfo{
			Format:         cfg.Pagination.Format,
			Position:       cfg.Pagination.Position,
			FontSize:       cfg.Pagination.FontSize,
			LateInsertMode: string(cfg.LateInsertMode()),
			Bookmarks:      cfg.Output.Bookmarks,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
