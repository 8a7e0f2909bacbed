package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/casebundle/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Pagination.Format != types.FormatPageXOfY {
		t.Errorf("expected %q, got %q", types.FormatPageXOfY, cfg.Pagination.Format)
	}
	if cfg.LateInsertMode() != types.Repaginate {
		t.Errorf("expected repaginate, got %s", cfg.LateInsertMode())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad format", func(c *Config) { c.Pagination.Format = "Seite X" }, true},
		{"bad position", func(c *Config) { c.Pagination.Position = "left" }, true},
		{"zero font", func(c *Config) { c.Pagination.FontSize = 0 }, true},
		{"bad mode", func(c *Config) { c.LateInsert.Mode = "shuffle" }, true},
		{"sub number", func(c *Config) { c.LateInsert.Mode = "sub_number" }, false},
		{"negative reflows", func(c *Config) { c.TOC.MaxReflows = -1 }, true},
		{"zero reflows", func(c *Config) { c.TOC.MaxReflows = 0 }, true},
		{"max reflows", func(c *Config) { c.TOC.MaxReflows = 3 }, false},
		{"too many reflows", func(c *Config) { c.TOC.MaxReflows = 99 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_CompilerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TOC.MaxReflows = 2
	cfg.Output.Bookmarks = false

	bc := cfg.CompilerConfig(nil)
	if bc.MaxReflows != 2 {
		t.Errorf("MaxReflows = %d, want 2", bc.MaxReflows)
	}
	if bc.Bookmarks {
		t.Error("expected bookmarks off")
	}
	if bc.TOCRenderer == nil {
		t.Error("expected a TOC renderer")
	}
}

func TestConfig_ResolveLateInsert(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LateInsert.Mode = "subnumber"

	if got := cfg.ResolveLateInsert(nil); got != nil {
		t.Errorf("ResolveLateInsert(nil) = %+v, want nil", got)
	}

	in := &types.LateInsert{After: 1, Count: 2}
	got := cfg.ResolveLateInsert(in)
	if got.Mode != types.SubNumber || got.After != 1 || got.Count != 2 {
		t.Errorf("ResolveLateInsert() = %+v", got)
	}
	if in.Mode != "" {
		t.Error("input was modified")
	}

	explicit := cfg.ResolveLateInsert(&types.LateInsert{Mode: types.Repaginate, Count: 1})
	if explicit.Mode != types.Repaginate {
		t.Errorf("explicit mode replaced: %q", explicit.Mode)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_BUNDLE_DIR", "/srv/bundles")

		result := ResolveEnvVars("${TEST_BUNDLE_DIR}/out")
		if result != "/srv/bundles/out" {
			t.Errorf("expected /srv/bundles/out, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
pagination:
  format: "Page X"
late_insert:
  mode: sub_number
output:
  bookmarks: false
`)

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Pagination.Format != types.FormatPageX {
			t.Errorf("expected Page X, got %s", cfg.Pagination.Format)
		}
		// Keys absent from the file keep their defaults.
		if cfg.Pagination.Position != types.PositionTopRight {
			t.Errorf("expected default position, got %s", cfg.Pagination.Position)
		}
		if cfg.Pagination.FontSize != 10 {
			t.Errorf("expected default font size, got %v", cfg.Pagination.FontSize)
		}
		if cfg.LateInsertMode() != types.SubNumber {
			t.Errorf("expected sub_number, got %s", cfg.LateInsert.Mode)
		}
		if cfg.Output.Bookmarks {
			t.Error("expected bookmarks off")
		}
		if mgr.ConfigFile() != configFile {
			t.Errorf("ConfigFile() = %s, want %s", mgr.ConfigFile(), configFile)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		configFile := writeConfig(t, "pagination:\n  position: top-center\n")
		t.Setenv("CASEBUNDLE_PAGINATION_POSITION", "bottom-center")

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if got := mgr.Get().Pagination.Position; got != types.PositionBottomCenter {
			t.Errorf("expected bottom-center, got %s", got)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		configFile := writeConfig(t, "pagination:\n  format: nonsense\n")
		if _, err := NewManager(configFile); err == nil {
			t.Fatal("expected error for invalid format")
		}
	})

	t.Run("rejects unreadable file", func(t *testing.T) {
		configFile := writeConfig(t, "pagination: [unterminated\n")
		if _, err := NewManager(configFile); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# casebundle configuration") {
		t.Error("missing header")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config does not parse: %v", err)
	}
	if cfg.Pagination != DefaultConfig().Pagination {
		t.Errorf("pagination = %+v, want %+v", cfg.Pagination, DefaultConfig().Pagination)
	}

	// The written file loads back through the manager.
	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() on written default: %v", err)
	}
	if mgr.Get().TOC.Title != DefaultConfig().TOC.Title {
		t.Errorf("title = %q", mgr.Get().TOC.Title)
	}
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "toc:\n  max_reflows: 1\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	// Register multiple callbacks
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "toc:\n  max_reflows: 1\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	// Call Get concurrently to verify no race conditions
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				cfg := mgr.Get()
				_ = cfg.Pagination.Format
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	configFile := writeConfig(t, "pagination:\n  format: \"Page X of Y\"\n")

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Value

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.Pagination.Format)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("pagination:\n  format: \"X\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	// Wait for the watcher to detect the change (fsnotify is async)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().Pagination.Format; got != types.FormatX {
		t.Errorf("config not updated: expected X, got %s", got)
	}
	if v := lastValue.Load(); v != types.FormatX {
		t.Errorf("callback received wrong value: %v", v)
	}
}
