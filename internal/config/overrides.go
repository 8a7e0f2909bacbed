package config

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
)

type setter func(c *Config, v any) error

var setters = map[string]setter{
	"pagination.format": func(c *Config, v any) (err error) {
		c.Pagination.Format, err = asString(v)
		return err
	},
	"pagination.position": func(c *Config, v any) (err error) {
		c.Pagination.Position, err = asString(v)
		return err
	},
	"pagination.font_size": func(c *Config, v any) (err error) {
		c.Pagination.FontSize, err = asFloat(v)
		return err
	},
	"late_insert.mode": func(c *Config, v any) (err error) {
		c.LateInsert.Mode, err = asString(v)
		return err
	},
	"toc.title": func(c *Config, v any) (err error) {
		c.TOC.Title, err = asString(v)
		return err
	},
	"toc.max_reflows": func(c *Config, v any) (err error) {
		c.TOC.MaxReflows, err = asInt(v)
		return err
	},
	"output.bookmarks": func(c *Config, v any) (err error) {
		c.Output.Bookmarks, err = asBool(v)
		return err
	},
	"output.cleanup_attempts": func(c *Config, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("must be at least 1, got %d", n)
		}
		c.Output.CleanupAttempts = uint(n)
		return nil
	},
}

type getter func(c *Config) any

var getters = map[string]getter{
	"pagination.format":       func(c *Config) any { return c.Pagination.Format },
	"pagination.position":     func(c *Config) any { return c.Pagination.Position },
	"pagination.font_size":    func(c *Config) any { return c.Pagination.FontSize },
	"late_insert.mode":        func(c *Config) any { return c.LateInsert.Mode },
	"toc.title":               func(c *Config) any { return c.TOC.Title },
	"toc.max_reflows":         func(c *Config) any { return c.TOC.MaxReflows },
	"output.bookmarks":        func(c *Config) any { return c.Output.Bookmarks },
	"output.cleanup_attempts": func(c *Config) any { return c.Output.CleanupAttempts },
}

// Apply returns a copy of base with store entries applied on top.
// Entries for keys that are not config fields are ignored.
func Apply(base *Config, entries map[string]Entry) (*Config, error) {
	cfg := base.clone()

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		set, ok := setters[key]
		if !ok {
			continue
		}
		if err := set(cfg, entries[key].Value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateSetting checks that value is acceptable for key.
func ValidateSetting(key string, value any) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if _, ok := setters[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	_, err := Apply(DefaultConfig(), map[string]Entry{key: {Key: key, Value: value}})
	return err
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", v)
	}
	return s, nil
}

func asBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected a boolean, got %T", v)
	}
	return b, nil
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func asInt(v any) (int, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected a whole number, got %v", f)
	}
	return int(f), nil
}

// Live is the effective configuration: the file config with settings-store
// entries applied on top. Refresh recomputes it when either source changes.
type Live struct {
	mgr    *Manager
	store  Store
	logger *slog.Logger

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewLive computes the initial effective config. A nil manager means the
// built-in defaults; a nil store means no overrides. When mgr is set, file
// reloads trigger a Refresh.
func NewLive(ctx context.Context, mgr *Manager, store Store, logger *slog.Logger) (*Live, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Live{mgr: mgr, store: store, logger: logger}
	if err := l.Refresh(ctx); err != nil {
		return nil, err
	}
	if mgr != nil {
		mgr.OnChange(func(*Config) {
			if err := l.Refresh(context.Background()); err != nil {
				l.logger.Error("failed to apply settings after config reload", "error", err)
			}
		})
	}
	return l, nil
}

// Get returns the current effective configuration.
func (l *Live) Get() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// OnChange registers a callback run after every successful Refresh.
func (l *Live) OnChange(fn func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callbacks = append(l.callbacks, fn)
}

// Refresh recomputes the effective config. On error the previous config is kept.
func (l *Live) Refresh(ctx context.Context) error {
	base := DefaultConfig()
	if l.mgr != nil {
		base = l.mgr.Get()
	}
	entries := map[string]Entry{}
	if l.store != nil {
		var err error
		if entries, err = l.store.GetAll(ctx); err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	}
	cfg, err := Apply(base, entries)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.config = cfg
	callbacks := make([]func(*Config), len(l.callbacks))
	copy(callbacks, l.callbacks)
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}
