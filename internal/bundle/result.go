package bundle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/casebundle/internal/types"
)

// LoadResult reads a compile result saved as YAML or JSON.
func LoadResult(path string) (*types.CompileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var result types.CompileResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid compile result %s: %w", path, err)
	}
	if len(result.TOCEntries) == 0 && result.PDFPath == "" {
		return nil, fmt.Errorf("%s has no table of contents entries", path)
	}
	return &result, nil
}
