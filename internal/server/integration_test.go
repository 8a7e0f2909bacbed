package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/config"
	"github.com/jackzampolin/casebundle/internal/home"
	"github.com/jackzampolin/casebundle/internal/server/endpoints"
	"github.com/jackzampolin/casebundle/internal/testutil"
	"github.com/jackzampolin/casebundle/internal/types"
)

func writeConfigFile(t *testing.T, path, position string) {
	t.Helper()
	content := "pagination:\n  position: " + position + "\nlate_insert:\n  mode: sub_number\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func statusPagination(t *testing.T, client *api.Client) endpoints.PaginationInfo {
	t.Helper()
	var status endpoints.StatusResponse
	if err := client.Get(t.Context(), "/status", &status); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	return status.Pagination
}

// TestServer_ConfigLayers covers file config, stored overrides and file reloads.
func TestServer_ConfigLayers(t *testing.T) {
	cfg := testutil.NewServerConfig(t)
	h, err := home.New(cfg.HomeDir)
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}
	if err := h.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	writeConfigFile(t, h.ConfigPath(), "bottom-center")

	mgr, err := config.NewManager(h.ConfigPath())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	mgr.WatchConfig()

	srv, err := New(Config{Host: cfg.Host, Port: cfg.Port, Home: h, ConfigManager: mgr, Logger: cfg.Logger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	startServer(t, srv, cfg.URL())
	client := api.NewClient(cfg.URL())

	t.Run("file_values", func(t *testing.T) {
		p := statusPagination(t, client)
		if p.Position != types.PositionBottomCenter || p.LateInsertMode != string(types.SubNumber) {
			t.Errorf("pagination = %+v", p)
		}
	})

	t.Run("override_beats_file", func(t *testing.T) {
		var resp endpoints.SettingResponse
		if err := client.Put(t.Context(), "/api/settings/pagination.position", endpoints.UpdateSettingRequest{Value: "top-center"}, &resp); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if p := statusPagination(t, client); p.Position != types.PositionTopCenter {
			t.Errorf("position = %q, want top-center", p.Position)
		}
	})

	t.Run("reset_restores_file_value", func(t *testing.T) {
		var resp endpoints.SettingResponse
		if err := client.Post(t.Context(), "/api/settings/reset/pagination.position", nil, &resp); err != nil {
			t.Fatalf("reset failed: %v", err)
		}
		if resp.Entry == nil || resp.Entry.Value != types.PositionBottomCenter {
			t.Errorf("entry after reset = %+v", resp.Entry)
		}
	})

	t.Run("file_reload", func(t *testing.T) {
		writeConfigFile(t, h.ConfigPath(), "top-center")

		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if statusPagination(t, client).Position == types.PositionTopCenter {
				return
			}
			time.Sleep(100 * time.Millisecond)
		}
		t.Error("config file change not applied")
	})

	t.Run("output_dir_from_file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "bundles")
		content := "output:\n  dir: " + out + "\n"
		if err := os.WriteFile(h.ConfigPath(), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if srv.Config().Get().Output.Dir == out {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		var status endpoints.StatusResponse
		if err := client.Get(t.Context(), "/status", &status); err != nil {
			t.Fatal(err)
		}
		if status.OutputDir != out {
			t.Errorf("output_dir = %q, want %q", status.OutputDir, out)
		}
	})
}
