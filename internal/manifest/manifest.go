// Package manifest loads bundle manifests: YAML or JSON files naming the
// documents of a bundle in order, validated against an embedded JSON schema.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/casebundle/internal/bundle"
	"github.com/jackzampolin/casebundle/internal/pdfgraph"
	"github.com/jackzampolin/casebundle/internal/types"
)

//go:embed schema.json
var schemaJSON []byte

// Manifest describes one bundle.
type Manifest struct {
	Name       string            `json:"name" yaml:"name"`
	OutputDir  string            `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Style      Style             `json:"style,omitempty" yaml:"style,omitempty"`
	LateInsert *types.LateInsert `json:"late_insert,omitempty" yaml:"late_insert,omitempty"`
	Documents  []Document        `json:"documents" yaml:"documents"`

	// dir resolves relative paths.
	dir string
}

// Style overrides individual pagination settings. Zero fields keep the default.
type Style struct {
	Format   string  `json:"format,omitempty" yaml:"format,omitempty"`
	Position string  `json:"position,omitempty" yaml:"position,omitempty"`
	FontSize float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
}

// Apply returns base with the set fields of s replaced.
func (s Style) Apply(base types.PaginationStyle) types.PaginationStyle {
	if s.Format != "" {
		base.Format = s.Format
	}
	if s.Position != "" {
		base.Position = s.Position
	}
	if s.FontSize > 0 {
		base.FontSize = s.FontSize
	}
	return base
}

// Document is one manifest entry.
type Document struct {
	File        string `json:"file" yaml:"file"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	PageCount   int    `json:"page_count,omitempty" yaml:"page_count,omitempty"`
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func manifestSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("manifest.json", bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("failed to load manifest schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("manifest.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile manifest schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Load reads and validates the manifest at path. Files ending in .json are
// parsed as JSON, anything else as YAML.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(abs)
	return m, nil
}

// Parse validates and decodes manifest data. Relative paths in the result
// resolve against the working directory.
func Parse(data []byte, isJSON bool) (*Manifest, error) {
	var doc any
	if isJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		// Normalize YAML scalars to JSON types for validation.
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("manifest is not JSON compatible: %w", err)
		}
		data = raw
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
	}

	schema, err := manifestSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("manifest does not match schema: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if m.LateInsert != nil && m.LateInsert.Mode != "" {
		mode, err := types.ParseLateInsertMode(string(m.LateInsert.Mode))
		if err != nil {
			return nil, err
		}
		m.LateInsert.Mode = mode
	}
	return &m, nil
}

// Dir returns the directory relative paths resolve against.
func (m *Manifest) Dir() string {
	return m.dir
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.dir == "" {
		return p
	}
	return filepath.Join(m.dir, p)
}

// BundleDocuments converts the manifest entries. Missing page counts are read
// from the file; files that do not exist keep a zero count and are reported
// by the compiler.
func (m *Manifest) BundleDocuments() ([]types.BundleDocument, error) {
	docs := make([]types.BundleDocument, len(m.Documents))
	for i, d := range m.Documents {
		path := m.resolve(d.File)
		desc := d.Description
		if desc == "" {
			base := filepath.Base(path)
			desc = strings.TrimSuffix(base, filepath.Ext(base))
		}
		doc := types.BundleDocument{
			ID:          fmt.Sprintf("doc-%d", i+1),
			FilePath:    path,
			Label:       d.Label,
			Description: desc,
			PageCount:   d.PageCount,
		}
		if doc.PageCount == 0 {
			if _, err := os.Stat(path); err == nil {
				n, err := pdfgraph.PageCount(path)
				if err != nil {
					return nil, err
				}
				doc.PageCount = n
			}
		}
		docs[i] = doc
	}
	return docs, nil
}

// Request builds a compile request. The manifest's style fields and output
// directory override style and outputDir.
func (m *Manifest) Request(style types.PaginationStyle, outputDir string) (bundle.Request, error) {
	docs, err := m.BundleDocuments()
	if err != nil {
		return bundle.Request{}, err
	}
	if m.OutputDir != "" {
		outputDir = m.resolve(m.OutputDir)
	}
	return bundle.Request{
		Documents:  docs,
		OutputDir:  outputDir,
		BundleName: m.Name,
		Style:      m.Style.Apply(style),
		LateInsert: m.LateInsert,
	}, nil
}
