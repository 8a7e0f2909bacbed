package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/home"
	"github.com/jackzampolin/casebundle/internal/server/endpoints"
	"github.com/jackzampolin/casebundle/internal/testutil"
	"github.com/jackzampolin/casebundle/internal/types"
)

func TestServer_FullLifecycle(t *testing.T) {
	srv, cfg := newTestServer(t)
	s := startServer(t, srv, cfg.URL())
	client := api.NewClient(cfg.URL())
	h, _ := home.New(cfg.HomeDir)

	t.Run("health_endpoint", func(t *testing.T) {
		var health endpoints.HealthResponse
		if err := client.Get(t.Context(), "/health", &health); err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		if health.Status != "ok" {
			t.Errorf("health.Status = %q, want %q", health.Status, "ok")
		}
	})

	t.Run("ready_endpoint", func(t *testing.T) {
		resp, err := testutil.HTTPClient().Get(cfg.URL() + "/ready")
		if err != nil {
			t.Fatalf("ready check failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("ready status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var health endpoints.HealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if health.CaseStore != "ok" || health.Settings != "ok" {
			t.Errorf("ready = %+v", health)
		}
	})

	t.Run("status_endpoint", func(t *testing.T) {
		status, err := testutil.GetStatus(cfg.URL())
		if err != nil {
			t.Fatalf("status check failed: %v", err)
		}
		if status.Server != "running" {
			t.Errorf("status.Server = %q, want %q", status.Server, "running")
		}
		if status.OutputDir != h.BundlesPath() {
			t.Errorf("status.OutputDir = %q, want %q", status.OutputDir, h.BundlesPath())
		}
		if status.CaseStore != h.CaseDBPath() {
			t.Errorf("status.CaseStore = %q, want %q", status.CaseStore, h.CaseDBPath())
		}
	})

	t.Run("databases_created", func(t *testing.T) {
		for _, path := range []string{h.CaseDBPath(), h.SettingsDBPath()} {
			if _, err := os.Stat(path); err != nil {
				t.Errorf("%s not created: %v", path, err)
			}
		}
	})

	t.Run("compile_bundle", func(t *testing.T) {
		paths := testutil.WritePDFs(t, t.TempDir(), 1, 2)
		req := endpoints.CompileRequest{
			BundleName: "hearing",
			Documents: []types.BundleDocument{
				{ID: "1", FilePath: paths[0], Description: "Claim", PageCount: 1},
				{ID: "2", FilePath: paths[1], Description: "Reply", PageCount: 2},
			},
		}
		var result types.CompileResult
		if err := client.Post(t.Context(), "/api/bundles/compile", req, &result); err != nil {
			t.Fatalf("compile failed: %v", err)
		}
		if !result.Success || result.TotalPages != 4 {
			t.Fatalf("result = %+v", result)
		}
		if result.PDFPath != filepath.Join(h.BundlesPath(), "hearing.pdf") {
			t.Errorf("PDFPath = %q", result.PDFPath)
		}
	})

	t.Run("settings_reach_compiler_config", func(t *testing.T) {
		var resp endpoints.SettingResponse
		err := client.Put(t.Context(), "/api/settings/output.bookmarks", endpoints.UpdateSettingRequest{Value: false}, &resp)
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if srv.Config().Get().Output.Bookmarks {
			t.Error("bookmarks still enabled after update")
		}
	})

	t.Run("unknown_case_is_404", func(t *testing.T) {
		var resp endpoints.CaseDocumentsResponse
		err := client.Get(t.Context(), "/api/cases/missing/documents", &resp)
		statusErr, ok := err.(*api.StatusError)
		if !ok || statusErr.Code != http.StatusNotFound {
			t.Errorf("err = %v, want 404 StatusError", err)
		}
	})

	t.Run("is_running", func(t *testing.T) {
		if !srv.IsRunning() {
			t.Error("IsRunning() = false, want true")
		}
	})

	s.Cancel()
	if err := testutil.WaitForShutdown(s.Done, 30*time.Second); err != nil {
		t.Fatalf("server did not shut down: %v", err)
	}

	t.Run("not_running_after_shutdown", func(t *testing.T) {
		if srv.IsRunning() {
			t.Error("IsRunning() = true after shutdown, want false")
		}
	})

	t.Run("settings_persist_across_restart", func(t *testing.T) {
		again, err := New(Config{Host: cfg.Host, Port: cfg.Port, Home: h, Logger: cfg.Logger})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		startServer(t, again, cfg.URL())
		if again.Config().Get().Output.Bookmarks {
			t.Error("stored override lost after restart")
		}
	})
}
