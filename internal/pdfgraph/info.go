package pdfgraph

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info describes a PDF file.
type Info struct {
	Path      string `json:"path" yaml:"path"`
	PageCount int    `json:"page_count" yaml:"page_count"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Version   string `json:"version" yaml:"version"`
	Encrypted bool   `json:"encrypted" yaml:"encrypted"`
	FileSize  int64  `json:"file_size" yaml:"file_size"`
}

// Inspect reads the page count, title, PDF version, encryption and size of
// the PDF at path.
func Inspect(path string) (*Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	ctx, err := Load(path)
	if err != nil {
		return nil, err
	}
	refs, err := PageRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("not a valid PDF: %w", err)
	}
	return &Info{
		Path:      path,
		PageCount: len(refs),
		Title:     Title(ctx),
		Version:   ctx.VersionString(),
		Encrypted: ctx.Encrypt != nil,
		FileSize:  st.Size(),
	}, nil
}

// Title returns the document information Title, or "" when absent. pdfcpu
// decodes it while validating the file on load.
func Title(ctx *model.Context) string {
	return ctx.Title
}
