package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the casebundle home directory.
	DefaultDirName = ".casebundle"

	// BundlesDirName is the subdirectory compiled bundles are written to.
	BundlesDirName = "bundles"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// CaseDBFileName is the default case database file name.
	CaseDBFileName = "cases.db"

	// SettingsDBFileName holds settings changed at runtime.
	SettingsDBFileName = "settings.db"
)

// Dir represents the casebundle home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.casebundle).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// BundlesPath returns the default output directory for compiled bundles.
func (d *Dir) BundlesPath() string {
	return filepath.Join(d.path, BundlesDirName)
}

// CaseBundlesPath returns the output directory for bundles of one case.
func (d *Dir) CaseBundlesPath(caseID string) string {
	return filepath.Join(d.BundlesPath(), caseID)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// CaseDBPath returns the path to the default case database.
func (d *Dir) CaseDBPath() string {
	return filepath.Join(d.path, CaseDBFileName)
}

// SettingsDBPath returns the path to the settings database.
func (d *Dir) SettingsDBPath() string {
	return filepath.Join(d.path, SettingsDBFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	// Create bundles directory (this also creates the parent)
	if err := os.MkdirAll(d.BundlesPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create bundles directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
