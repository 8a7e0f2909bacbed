package config

import (
	"fmt"
	"log/slog"

	"github.com/jackzampolin/casebundle/internal/bundle"
	"github.com/jackzampolin/casebundle/internal/toc"
	"github.com/jackzampolin/casebundle/internal/tocpdf"
	"github.com/jackzampolin/casebundle/internal/types"
)

// Config holds casebundle configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Pagination types.PaginationStyle `mapstructure:"pagination" yaml:"pagination"`
	LateInsert LateInsertCfg         `mapstructure:"late_insert" yaml:"late_insert"`
	TOC        TOCCfg                `mapstructure:"toc" yaml:"toc"`
	Output     OutputCfg             `mapstructure:"output" yaml:"output"`

	// CaseDB is the case database path. Empty means {home}/cases.db.
	CaseDB string `mapstructure:"case_db" yaml:"case_db"`
}

// LateInsertCfg configures how late inserts are numbered.
type LateInsertCfg struct {
	Mode string `mapstructure:"mode" yaml:"mode"` // "repaginate" or "sub_number"
}

// TOCCfg configures the table of contents.
type TOCCfg struct {
	Title      string `mapstructure:"title" yaml:"title"`
	MaxReflows int    `mapstructure:"max_reflows" yaml:"max_reflows"`
}

// OutputCfg configures compiled bundles.
type OutputCfg struct {
	Dir             string `mapstructure:"dir" yaml:"dir"` // Empty means {home}/bundles
	Bookmarks       bool   `mapstructure:"bookmarks" yaml:"bookmarks"`
	CleanupAttempts uint   `mapstructure:"cleanup_attempts" yaml:"cleanup_attempts"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Pagination: types.DefaultPaginationStyle(),
		LateInsert: LateInsertCfg{
			Mode: string(types.DefaultLateInsertMode),
		},
		TOC: TOCCfg{
			Title:      tocpdf.DefaultTitle,
			MaxReflows: 1,
		},
		Output: OutputCfg{
			Bookmarks:       true,
			CleanupAttempts: bundle.DefaultCleanupAttempts,
		},
	}
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	if err := c.Pagination.Validate(); err != nil {
		return err
	}
	if _, err := types.ParseLateInsertMode(c.LateInsert.Mode); err != nil {
		return err
	}
	if c.TOC.MaxReflows < 1 || c.TOC.MaxReflows > toc.MaxReflows {
		return fmt.Errorf("toc.max_reflows must be between 1 and %d, got %d", toc.MaxReflows, c.TOC.MaxReflows)
	}
	return nil
}

// LateInsertMode returns the parsed late insert mode, falling back to the default.
func (c *Config) LateInsertMode() types.LateInsertMode {
	mode, err := types.ParseLateInsertMode(c.LateInsert.Mode)
	if err != nil {
		return types.DefaultLateInsertMode
	}
	return mode
}

// ResolveLateInsert returns a copy of late with an unset mode replaced by the
// configured one. A nil late is returned unchanged.
func (c *Config) ResolveLateInsert(late *types.LateInsert) *types.LateInsert {
	if late == nil {
		return nil
	}
	cp := *late
	if cp.Mode == "" {
		cp.Mode = c.LateInsertMode()
	}
	return &cp
}

// CompilerConfig converts the config to a bundle.Config.
func (c *Config) CompilerConfig(logger *slog.Logger) bundle.Config {
	return bundle.Config{
		Logger:          logger,
		TOCRenderer:     tocpdf.Renderer{Title: c.TOC.Title},
		MaxReflows:      c.TOC.MaxReflows,
		Bookmarks:       c.Output.Bookmarks,
		CleanupAttempts: c.Output.CleanupAttempts,
	}
}

// clone returns a copy safe to modify.
func (c *Config) clone() *Config {
	cp := *c
	return &cp
}
