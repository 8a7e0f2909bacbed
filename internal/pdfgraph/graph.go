// Package pdfgraph operates on the object graph of PDF documents loaded with pdfcpu:
// page tree traversal, inherited attributes, content streams, and merging
// several independently loaded graphs into one.
package pdfgraph

import (
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxTreeDepth bounds page tree and Parent chain walks in malformed files.
const maxTreeDepth = 64

var (
	// ErrNoPageTree is returned when a document has no reachable page tree.
	ErrNoPageTree = errors.New("document has no page tree")

	// ErrPageTreeCycle is returned when the page tree references itself.
	ErrPageTreeCycle = errors.New("page tree contains a cycle")
)

// Load reads and validates the PDF at path into an in-memory object graph.
func Load(path string) (*model.Context, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load PDF %s: %w", path, err)
	}
	return ctx, nil
}

// Save writes ctx to path.
func Save(ctx *model.Context, path string) error {
	if err := api.WriteContextFile(ctx, path); err != nil {
		return fmt.Errorf("failed to save PDF %s: %w", path, err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count for %s: %w", path, err)
	}
	return n, nil
}

// RootPages returns the reference to and dictionary of the document's root Pages node.
func RootPages(ctx *model.Context) (types.IndirectRef, types.Dict, error) {
	if ctx.Root == nil {
		return types.IndirectRef{}, nil, ErrNoPageTree
	}
	catalog, err := ctx.DereferenceDict(*ctx.Root)
	if err != nil {
		return types.IndirectRef{}, nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if catalog == nil {
		return types.IndirectRef{}, nil, ErrNoPageTree
	}

	ref := catalog.IndirectRefEntry("Pages")
	if ref == nil {
		return types.IndirectRef{}, nil, ErrNoPageTree
	}
	pages, err := ctx.DereferenceDict(*ref)
	if err != nil {
		return types.IndirectRef{}, nil, fmt.Errorf("failed to read page tree root: %w", err)
	}
	if pages == nil {
		return types.IndirectRef{}, nil, ErrNoPageTree
	}
	return *ref, pages, nil
}

// PageRefs returns references to every leaf page in document order.
func PageRefs(ctx *model.Context) ([]types.IndirectRef, error) {
	rootRef, _, err := RootPages(ctx)
	if err != nil {
		return nil, err
	}

	var refs []types.IndirectRef
	visited := make(map[int]bool)

	var walk func(ref types.IndirectRef, depth int) error
	walk = func(ref types.IndirectRef, depth int) error {
		objNr := int(ref.ObjectNumber)
		if visited[objNr] || depth > maxTreeDepth {
			return ErrPageTreeCycle
		}
		visited[objNr] = true

		node, err := ctx.DereferenceDict(ref)
		if err != nil {
			return fmt.Errorf("failed to read page tree node %d: %w", objNr, err)
		}
		if node == nil {
			return fmt.Errorf("page tree node %d is missing", objNr)
		}

		kidsObj, hasKids := node["Kids"]
		if typ := node.NameEntry("Type"); (typ != nil && *typ == "Page") || !hasKids {
			refs = append(refs, ref)
			return nil
		}

		kids, err := ctx.DereferenceArray(kidsObj)
		if err != nil {
			return fmt.Errorf("failed to read Kids of node %d: %w", objNr, err)
		}
		for _, kid := range kids {
			kidRef, ok := kid.(types.IndirectRef)
			if !ok {
				return fmt.Errorf("page tree node %d has a direct kid", objNr)
			}
			if err := walk(kidRef, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(rootRef, 0); err != nil {
		return nil, err
	}
	return refs, nil
}

// MaxObjectNumber returns the highest object number in use.
func MaxObjectNumber(ctx *model.Context) int {
	maxNr := 0
	for objNr := range ctx.Table {
		maxNr = max(maxNr, objNr)
	}
	if ctx.Size != nil {
		maxNr = max(maxNr, *ctx.Size-1)
	}
	return maxNr
}

// Inherited looks key up on page's ancestors in the page tree.
func Inherited(ctx *model.Context, page types.Dict, key string) (types.Object, bool, error) {
	parent := page["Parent"]
	for depth := 0; parent != nil && depth < maxTreeDepth; depth++ {
		node, err := ctx.DereferenceDict(parent)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read page parent: %w", err)
		}
		if node == nil {
			break
		}
		if v, ok := node[key]; ok {
			return v, true, nil
		}
		parent = node["Parent"]
	}
	return nil, false, nil
}

// Attribute returns key from page itself or, failing that, from its ancestors.
func Attribute(ctx *model.Context, page types.Dict, key string) (types.Object, bool, error) {
	if v, ok := page[key]; ok {
		return v, true, nil
	}
	return Inherited(ctx, page, key)
}

// inheritableKeys are the page attributes a page may take from its ancestors.
var inheritableKeys = []string{"Resources", "MediaBox", "CropBox", "Rotate"}

// foldInherited copies inherited attributes into page so it can be re-parented.
func foldInherited(ctx *model.Context, page types.Dict) error {
	for _, key := range inheritableKeys {
		if _, ok := page[key]; ok {
			continue
		}
		v, ok, err := Inherited(ctx, page, key)
		if err != nil {
			return err
		}
		if ok {
			page[key] = v
		}
	}
	return nil
}
